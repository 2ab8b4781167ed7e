// Package engine owns the grammar configuration of a Casebook editor
// session: the base grammar, an optional override fragment, and the compiled
// parser built from their composition. The compiled parser sits behind an
// atomic pointer so a reload swaps it wholesale; readers never observe a
// half-built parser, and a failed reload keeps the previous one active.
package engine

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/casebook/grammar"
	"github.com/dhamidi/casebook/highlight"
	"github.com/dhamidi/casebook/parser"
)

// OverrideFileName is the well-known name the override fragment is loaded
// from when no explicit path is configured.
const OverrideFileName = "casebook.override.grammar"

var log = commonlog.GetLogger("casebook.engine")

type Options struct {
	// Base grammar; nil means grammar.Base().
	Base *grammar.Spec
	// OverridePath is the fragment file to layer over the base. An absent
	// file is not an error; it means no override.
	OverridePath string
	// Table maps token types to style ids; nil means the Casebook table.
	Table *highlight.StyleTable
}

type Engine struct {
	base         *grammar.Spec
	overridePath string
	table        *highlight.StyleTable
	current      atomic.Pointer[parser.Parser]
}

// New builds an engine and its initial parser. A broken override fragment is
// logged and ignored so the editor still highlights with the base grammar; a
// base grammar that does not build is an error.
func New(opts Options) (*Engine, error) {
	e := &Engine{
		base:         opts.Base,
		overridePath: opts.OverridePath,
		table:        opts.Table,
	}
	if e.base == nil {
		e.base = grammar.Base()
	}
	if e.table == nil {
		e.table = highlight.CasebookTable()
	}

	if err := e.Reload(); err != nil {
		if e.overridePath == "" {
			return nil, fmt.Errorf("base grammar: %w", err)
		}
		log.Errorf("override rejected, using base grammar: %s", err.Error())
		combined, composeErr := grammar.Compose(e.base, nil)
		if composeErr != nil {
			return nil, composeErr
		}
		p, buildErr := parser.Build(combined)
		if buildErr != nil {
			return nil, fmt.Errorf("base grammar: %w", buildErr)
		}
		e.current.Store(p)
	}
	return e, nil
}

// Parser returns the current compiled parser. The result is immutable; a
// concurrent reload swaps the pointer but never mutates what it points to.
func (e *Engine) Parser() *parser.Parser {
	return e.current.Load()
}

// Table returns the style table classification uses.
func (e *Engine) Table() *highlight.StyleTable {
	return e.table
}

// Reload re-reads the override fragment from disk, recomposes and rebuilds.
// On any error the previous parser, if one exists, stays active.
func (e *Engine) Reload() error {
	if e.overridePath == "" {
		return e.install(nil)
	}
	data, err := os.ReadFile(e.overridePath)
	if os.IsNotExist(err) {
		return e.install(nil)
	}
	if err != nil {
		return fmt.Errorf("read override %s: %w", e.overridePath, err)
	}
	return e.ReloadFragment(string(data))
}

// ReloadFragment composes the given fragment text over the base grammar and
// swaps in the resulting parser. On error the previous parser stays active.
func (e *Engine) ReloadFragment(text string) error {
	override, err := grammar.ParseFragment(text)
	if err != nil {
		return err
	}
	return e.install(override)
}

func (e *Engine) install(override *grammar.Spec) error {
	combined, err := grammar.Compose(e.base, override)
	if err != nil {
		return err
	}
	p, err := parser.Build(combined)
	if err != nil {
		return err
	}
	e.current.Store(p)
	if override != nil {
		log.Infof("grammar rebuilt with override (%d tokens, %d rules)",
			len(combined.Tokens), len(combined.Rules))
	}
	return nil
}

// Tokenize scans span with the current parser.
func (e *Engine) Tokenize(span string) ([]parser.Token, error) {
	return e.Parser().Tokenize(span)
}

// Classify styles span. Tokenization failure degrades to a single
// default-style run covering the whole span, so the returned run lengths
// always sum to len(span) and malformed input never reaches the editor's
// rendering path as an error.
func (e *Engine) Classify(span string) []highlight.StyleRun {
	tokens, err := e.Parser().Tokenize(span)
	if err != nil {
		log.Debugf("tokenize failed, styling span as default: %s", err.Error())
		return highlight.WholeSpan(span)
	}
	return highlight.Classify(span, tokens, e.table)
}

// Parse parses a whole document into its concrete syntax tree.
func (e *Engine) Parse(file, doc string) (*parser.Node, error) {
	return e.Parser().Parse(file, doc)
}

package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dhamidi/casebook/grammar"
)

// tokenPattern is a compiled token rule. Literal rules match by prefix
// comparison, regex rules are anchored at the scan position.
type tokenPattern struct {
	name     string
	literal  string
	re       *regexp.Regexp
	priority int
	ignored  bool
}

func (p *tokenPattern) matchLen(s string) int {
	if p.re == nil {
		if strings.HasPrefix(s, p.literal) {
			return len(p.literal)
		}
		return 0
	}
	loc := p.re.FindStringIndex(s)
	if loc == nil {
		return 0
	}
	return loc[1]
}

func compileTokens(spec *grammar.Spec) ([]tokenPattern, []string) {
	patterns := make([]tokenPattern, 0, len(spec.Tokens))
	var problems []string
	for _, t := range spec.Tokens {
		p := tokenPattern{name: t.Name, priority: t.Priority, ignored: spec.IsIgnored(t.Name)}
		if t.Literal {
			if t.Pattern == "" {
				problems = append(problems, fmt.Sprintf("token %s matches the empty string", t.Name))
				continue
			}
			p.literal = t.Pattern
		} else {
			re, err := regexp.Compile(`\A(?:` + t.Pattern + `)`)
			if err != nil {
				problems = append(problems, fmt.Sprintf("token %s: invalid pattern: %v", t.Name, err))
				continue
			}
			if re.MatchString("") {
				problems = append(problems, fmt.Sprintf("token %s matches the empty string", t.Name))
				continue
			}
			p.re = re
		}
		patterns = append(patterns, p)
	}
	return patterns, problems
}

// scan runs the tokenizer over src. At every position the winning rule is
// the one with the longest match; ties go to the higher priority, then to
// the rule declared first. Ignored tokens are kept in the output here so
// classification can still style them.
func (p *Parser) scan(file, src string) ([]Token, error) {
	idx := newLineIndex(file, src)
	var tokens []Token
	pos := 0
	for pos < len(src) {
		best, bestLen := -1, 0
		for i := range p.patterns {
			n := p.patterns[i].matchLen(src[pos:])
			if n == 0 {
				continue
			}
			if n > bestLen || (n == bestLen && p.patterns[i].priority > p.patterns[best].priority) {
				best, bestLen = i, n
			}
		}
		if best < 0 {
			return tokens, &TokenizeError{Pos: idx.position(pos)}
		}
		tokens = append(tokens, Token{
			Type: p.patterns[best].name,
			Text: src[pos : pos+bestLen],
			Span: Span{Start: idx.position(pos), End: idx.position(pos + bestLen)},
		})
		pos += bestLen
	}
	return tokens, nil
}

// Tokenize scans src and drops ignored tokens from the result. On error the
// tokens recognized before the bad offset are returned alongside it.
func (p *Parser) Tokenize(src string) ([]Token, error) {
	all, err := p.scan("", src)
	return p.dropIgnored(all), err
}

// TokenizeAll is Tokenize without the ignored-token filter.
func (p *Parser) TokenizeAll(src string) ([]Token, error) {
	return p.scan("", src)
}

func (p *Parser) dropIgnored(tokens []Token) []Token {
	kept := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		if !p.ignored[t.Type] {
			kept = append(kept, t)
		}
	}
	return kept
}

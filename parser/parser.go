package parser

import (
	"sort"

	"github.com/dhamidi/casebook/grammar"
)

const endOfInput = "$end"

// Parser is a compiled grammar: token patterns for the lexer plus LALR
// action and goto tables. It is immutable after Build and safe for
// concurrent use.
type Parser struct {
	spec     *grammar.Spec
	patterns []tokenPattern
	ignored  map[string]bool
	names    []string
	termID   map[string]int
	prods    []production
	action   []map[int]parseAction
	gotoTab  []map[int]int
}

func (p *Parser) Spec() *grammar.Spec { return p.spec }

// Parse tokenizes and parses src into a concrete syntax tree. Every
// non-ignored token appears as a leaf; epsilon productions become nodes
// with zero-width spans.
func (p *Parser) Parse(file, src string) (*Node, error) {
	all, err := p.scan(file, src)
	if err != nil {
		return nil, err
	}
	tokens := p.dropIgnored(all)

	idx := newLineIndex(file, src)
	eofPos := idx.position(len(src))

	type stackEntry struct {
		state int
		node  *Node
	}
	stack := []stackEntry{{state: 0}}
	cursor := 0
	for {
		state := stack[len(stack)-1].state
		var tok *Token
		la := 0 // end of input
		if cursor < len(tokens) {
			tok = &tokens[cursor]
			la = p.termID[tok.Type]
		}
		act, ok := p.action[state][la]
		if !ok {
			pos := eofPos
			if tok != nil {
				pos = tok.Span.Start
			}
			return nil, &ParseError{Pos: pos, Got: tok, Expected: p.expectedIn(state)}
		}

		switch act.kind {
		case actionShift:
			node := &Node{Kind: tok.Type, Span: tok.Span, Token: tok}
			stack = append(stack, stackEntry{state: act.target, node: node})
			cursor++

		case actionReduce:
			prod := p.prods[act.target]
			node := &Node{Kind: prod.name}
			if n := len(prod.rhs); n > 0 {
				children := make([]*Node, n)
				for i := range children {
					children[i] = stack[len(stack)-n+i].node
				}
				node.Children = children
				node.Span = Span{Start: children[0].Span.Start, End: children[n-1].Span.End}
				stack = stack[:len(stack)-n]
			} else {
				// Zero-width span at the end of whatever came before.
				boundary := Position{File: file, Offset: 0, Line: 1, Column: 1}
				if top := stack[len(stack)-1].node; top != nil {
					boundary = top.Span.End
				}
				node.Span = Span{Start: boundary, End: boundary}
			}
			next := p.gotoTab[stack[len(stack)-1].state][prod.lhs]
			stack = append(stack, stackEntry{state: next, node: node})

		case actionAccept:
			return stack[len(stack)-1].node, nil
		}
	}
}

func (p *Parser) expectedIn(state int) []string {
	names := make([]string, 0, len(p.action[state]))
	for t := range p.action[state] {
		names = append(names, p.names[t])
	}
	sort.Strings(names)
	return names
}

package grammar

import (
	"fmt"
	"strconv"
	"strings"
)

// FragmentError reports a syntax problem in a grammar fragment, with the
// 1-based line it occurred on.
type FragmentError struct {
	Line int
	Msg  string
}

func (e *FragmentError) Error() string {
	return fmt.Sprintf("grammar fragment: line %d: %s", e.Line, e.Msg)
}

// Importable tokens for %import directives.
var commonTokens = map[string]TokenRule{
	"NUMBER":  {Name: "NUMBER", Pattern: `[0-9]+(?:\.[0-9]+)?`, Priority: 2},
	"WS":      {Name: "WS", Pattern: `[ \t]+`},
	"NEWLINE": {Name: "NEWLINE", Pattern: `\r?\n`},
}

// ParseFragment reads grammar source in the override notation:
//
//	NAME.3: "literal"
//	OTHER: /regex/
//	rule: NAME other_rule | OTHER
//	    | NAME
//	%ignore WS
//	%import common.NUMBER
//
// Upper-case declarations are token rules, lower-case ones grammar rules.
// The result usually has no root of its own; Compose wires it onto a base.
func ParseFragment(src string) (*Spec, error) {
	spec := &Spec{}
	openRule := -1
	for i, raw := range strings.Split(src, "\n") {
		line := i + 1
		text := strings.TrimSpace(raw)
		switch {
		case text == "" || strings.HasPrefix(text, "//"):
			continue
		case strings.HasPrefix(text, "%ignore"):
			names := strings.Fields(strings.TrimPrefix(text, "%ignore"))
			if len(names) == 0 {
				return nil, &FragmentError{Line: line, Msg: "%ignore needs at least one token name"}
			}
			for _, n := range names {
				if !spec.IsIgnored(n) {
					spec.Ignored = append(spec.Ignored, n)
				}
			}
			openRule = -1
		case strings.HasPrefix(text, "%import"):
			ref := strings.TrimSpace(strings.TrimPrefix(text, "%import"))
			name, ok := strings.CutPrefix(ref, "common.")
			tok, known := commonTokens[name]
			if !ok || !known {
				return nil, &FragmentError{Line: line, Msg: fmt.Sprintf("unknown import %q", ref)}
			}
			if err := checkFresh(spec, tok.Name, line); err != nil {
				return nil, err
			}
			spec.Tokens = append(spec.Tokens, tok)
			openRule = -1
		case strings.HasPrefix(text, "|"):
			if openRule < 0 {
				return nil, &FragmentError{Line: line, Msg: "alternative continuation without a rule"}
			}
			alts, err := parseAlternatives(strings.TrimPrefix(text, "|"), line)
			if err != nil {
				return nil, err
			}
			spec.Rules[openRule].Alternatives = append(spec.Rules[openRule].Alternatives, alts...)
		default:
			var err error
			openRule, err = parseDeclaration(spec, text, line)
			if err != nil {
				return nil, err
			}
		}
	}
	if spec.RuleIndex(RootRule) >= 0 {
		spec.Root = RootRule
	}
	return spec, nil
}

// parseDeclaration handles "NAME.prio: pattern" and "name: alternatives".
// It returns the index of the grammar rule left open for | continuations,
// or -1 for token rules.
func parseDeclaration(spec *Spec, text string, line int) (int, error) {
	colon := strings.Index(text, ":")
	if colon <= 0 {
		return -1, &FragmentError{Line: line, Msg: "expected NAME: definition"}
	}
	head := strings.TrimSpace(text[:colon])
	rhs := strings.TrimSpace(text[colon+1:])

	name := head
	priority := 0
	if dot := strings.Index(head, "."); dot >= 0 {
		name = head[:dot]
		p, err := strconv.Atoi(head[dot+1:])
		if err != nil {
			return -1, &FragmentError{Line: line, Msg: fmt.Sprintf("bad priority %q", head[dot+1:])}
		}
		priority = p
	}
	if !validName(name) {
		return -1, &FragmentError{Line: line, Msg: fmt.Sprintf("bad name %q", name)}
	}
	if err := checkFresh(spec, name, line); err != nil {
		return -1, err
	}

	if isTokenName(name) {
		pattern, literal, err := parseTokenPattern(rhs, line)
		if err != nil {
			return -1, err
		}
		spec.Tokens = append(spec.Tokens, TokenRule{Name: name, Pattern: pattern, Literal: literal, Priority: priority})
		return -1, nil
	}

	if priority != 0 {
		return -1, &FragmentError{Line: line, Msg: fmt.Sprintf("priority is only valid on token rules, not %q", name)}
	}
	alts, err := parseAlternatives(rhs, line)
	if err != nil {
		return -1, err
	}
	spec.Rules = append(spec.Rules, GrammarRule{Name: name, Alternatives: alts})
	return len(spec.Rules) - 1, nil
}

func checkFresh(spec *Spec, name string, line int) error {
	if spec.TokenIndex(name) >= 0 || spec.RuleIndex(name) >= 0 {
		return &FragmentError{Line: line, Msg: fmt.Sprintf("%s defined more than once", name)}
	}
	return nil
}

func parseTokenPattern(rhs string, line int) (pattern string, literal bool, err error) {
	if rhs == "" {
		return "", false, &FragmentError{Line: line, Msg: "token rule needs a quoted literal or /regex/ pattern"}
	}
	switch rhs[0] {
	case '"':
		body, rest, ok := scanDelimited(rhs, '"')
		if !ok {
			return "", false, &FragmentError{Line: line, Msg: "unterminated string literal"}
		}
		if err := checkTrailing(rest, line); err != nil {
			return "", false, err
		}
		return unescapeLiteral(body), true, nil
	case '/':
		body, rest, ok := scanDelimited(rhs, '/')
		if !ok {
			return "", false, &FragmentError{Line: line, Msg: "unterminated regex pattern"}
		}
		if err := checkTrailing(rest, line); err != nil {
			return "", false, err
		}
		return strings.ReplaceAll(body, `\/`, `/`), false, nil
	default:
		return "", false, &FragmentError{Line: line, Msg: "token rule needs a quoted literal or /regex/ pattern"}
	}
}

// scanDelimited reads rhs[0]==delim up to the next unescaped delim,
// returning the body between the delimiters and the remainder after.
func scanDelimited(rhs string, delim byte) (body, rest string, ok bool) {
	for i := 1; i < len(rhs); i++ {
		switch rhs[i] {
		case '\\':
			i++
		case delim:
			return rhs[1:i], rhs[i+1:], true
		}
	}
	return "", "", false
}

func checkTrailing(rest string, line int) error {
	rest = strings.TrimSpace(rest)
	if rest != "" && !strings.HasPrefix(rest, "//") {
		return &FragmentError{Line: line, Msg: fmt.Sprintf("unexpected trailing %q", rest)}
	}
	return nil
}

func unescapeLiteral(body string) string {
	if !strings.Contains(body, `\`) {
		return body
	}
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		if body[i] != '\\' || i+1 == len(body) {
			b.WriteByte(body[i])
			continue
		}
		i++
		switch body[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		default:
			b.WriteByte(body[i])
		}
	}
	return b.String()
}

func parseAlternatives(rhs string, line int) ([][]string, error) {
	var alts [][]string
	for _, part := range strings.Split(rhs, "|") {
		symbols := strings.Fields(part)
		for _, sym := range symbols {
			if !validName(sym) {
				return nil, &FragmentError{Line: line, Msg: fmt.Sprintf("bad symbol %q", sym)}
			}
		}
		if symbols == nil {
			symbols = []string{}
		}
		alts = append(alts, symbols)
	}
	return alts, nil
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func isTokenName(name string) bool {
	return name == strings.ToUpper(name) && name != strings.ToLower(name)
}

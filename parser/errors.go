package parser

import (
	"fmt"
	"strings"
)

// BuildError reports everything wrong with a grammar in one pass: unknown
// symbols, duplicate rules, bad token patterns, and table conflicts.
type BuildError struct {
	Diagnostics []string
}

func (e *BuildError) Error() string {
	switch len(e.Diagnostics) {
	case 0:
		return "grammar build failed"
	case 1:
		return "grammar build: " + e.Diagnostics[0]
	}
	return fmt.Sprintf("grammar build: %d problems:\n  %s",
		len(e.Diagnostics), strings.Join(e.Diagnostics, "\n  "))
}

type TokenizeError struct {
	Pos Position
}

func (e *TokenizeError) Error() string {
	return fmt.Sprintf("%s: no token rule matches input", e.Pos)
}

type ParseError struct {
	Pos      Position
	Got      *Token // nil when the input ended early
	Expected []string
}

func (e *ParseError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: ", e.Pos)
	if e.Got == nil {
		sb.WriteString("unexpected end of input")
	} else {
		fmt.Fprintf(&sb, "unexpected %s %q", e.Got.Type, e.Got.Text)
	}
	if len(e.Expected) > 0 {
		shown := e.Expected
		more := ""
		if len(shown) > 6 {
			shown = shown[:6]
			more = ", ..."
		}
		fmt.Fprintf(&sb, ", expected %s%s", strings.Join(shown, ", "), more)
	}
	return sb.String()
}

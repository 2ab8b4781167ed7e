package highlight

import "github.com/dhamidi/casebook/parser"

// Classify converts a token stream over span into style runs. Gaps between
// tokens (ignored whitespace still occupies span positions) become default
// runs, and a final default run covers anything after the last token, so the
// run lengths always sum to len(span).
//
// Tokens must be in span order with offsets relative to the start of span,
// which is what Parser.Tokenize produces.
func Classify(span string, tokens []parser.Token, table *StyleTable) []StyleRun {
	runs := make([]StyleRun, 0, 2*len(tokens)+1)
	lastPos := 0
	for _, tok := range tokens {
		if tok.Offset() > lastPos {
			runs = append(runs, StyleRun{Length: tok.Offset() - lastPos, StyleID: StyleDefault})
		}
		runs = append(runs, StyleRun{Length: len(tok.Text), StyleID: table.StyleOf(tok.Type)})
		lastPos = tok.Offset() + len(tok.Text)
	}
	if lastPos < len(span) {
		runs = append(runs, StyleRun{Length: len(span) - lastPos, StyleID: StyleDefault})
	}
	return runs
}

// WholeSpan is the fail-safe result: one default run covering the entire
// span. Classification falls back to it when tokenization fails, so the
// caller's styled length always matches the span length even on malformed
// input.
func WholeSpan(span string) []StyleRun {
	if len(span) == 0 {
		return nil
	}
	return []StyleRun{{Length: len(span), StyleID: StyleDefault}}
}

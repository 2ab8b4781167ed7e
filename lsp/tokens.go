package lsp

import (
	"errors"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/casebook/highlight"
	"github.com/dhamidi/casebook/parser"
)

// semanticTokenTypes is the legend announced at initialize time; the indexes
// below refer into it.
var semanticTokenTypes = []string{
	"keyword",
	"string",
	"namespace",
	"function",
	"class",
	"comment",
}

// styleToLegend maps style ids to legend indexes. Default-styled tokens are
// not reported; the editor's base color covers them.
var styleToLegend = map[int]int{
	highlight.StyleKeyword:   0,
	highlight.StyleString:    1,
	highlight.StyleSection:   2,
	highlight.StyleAction:    3,
	highlight.StyleCharacter: 4,
	highlight.StyleComment:   5,
}

// encodeDocument produces LSP delta-encoded semantic tokens for the byte
// range [start, end) of doc. A tokenizer failure yields no tokens at all,
// mirroring the classifier's whole-span fallback.
func (s *Server) encodeDocument(doc string, start, end int) []protocol.UInteger {
	tokens, err := s.engine.Tokenize(doc)
	if err != nil {
		log.Debugf("semantic tokens unavailable: %s", err.Error())
		return []protocol.UInteger{}
	}

	table := s.engine.Table()
	data := make([]protocol.UInteger, 0, 5*len(tokens))
	prevLine, prevChar := 0, 0
	for _, tok := range tokens {
		legend, mapped := styleToLegend[table.StyleOf(tok.Type)]
		if !mapped {
			continue
		}
		if tok.Offset()+len(tok.Text) <= start || tok.Offset() >= end {
			continue
		}
		// Semantic tokens cannot span lines; split multi-line tokens
		// (triple-quoted strings, block comments) into one entry per line.
		line := tok.Span.Start.Line - 1
		char := tok.Span.Start.Column - 1
		for _, part := range strings.Split(tok.Text, "\n") {
			if len(part) > 0 {
				deltaLine := line - prevLine
				deltaChar := char
				if deltaLine == 0 {
					deltaChar = char - prevChar
				}
				data = append(data,
					protocol.UInteger(deltaLine),
					protocol.UInteger(deltaChar),
					protocol.UInteger(len(part)),
					protocol.UInteger(legend),
					0,
				)
				prevLine, prevChar = line, char
			}
			line++
			char = 0
		}
	}
	return data
}

// diagnose reports the first tokenizer or parser error of doc as an LSP
// diagnostic. A clean document yields an empty, non-nil slice so stale
// diagnostics get cleared.
func (s *Server) diagnose(doc string) []protocol.Diagnostic {
	if _, err := s.engine.Tokenize(doc); err != nil {
		var tokErr *parser.TokenizeError
		if errors.As(err, &tokErr) {
			return []protocol.Diagnostic{diagnosticAt(tokErr.Pos, err.Error())}
		}
		return []protocol.Diagnostic{diagnosticAt(parser.Position{Line: 1, Column: 1}, err.Error())}
	}
	if _, err := s.engine.Parse("", doc); err != nil {
		var parseErr *parser.ParseError
		if errors.As(err, &parseErr) {
			return []protocol.Diagnostic{diagnosticAt(parseErr.Pos, err.Error())}
		}
		return []protocol.Diagnostic{diagnosticAt(parser.Position{Line: 1, Column: 1}, err.Error())}
	}
	return []protocol.Diagnostic{}
}

func diagnosticAt(pos parser.Position, message string) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	source := lsName
	start := protocol.Position{
		Line:      protocol.UInteger(pos.Line - 1),
		Character: protocol.UInteger(pos.Column - 1),
	}
	end := start
	end.Character++
	return protocol.Diagnostic{
		Range:    protocol.Range{Start: start, End: end},
		Severity: &severity,
		Source:   &source,
		Message:  message,
	}
}

// offsetAt converts an LSP position to a byte offset into doc.
func offsetAt(doc string, pos protocol.Position) int {
	offset := 0
	for line := 0; line < int(pos.Line); line++ {
		next := strings.IndexByte(doc[offset:], '\n')
		if next < 0 {
			return len(doc)
		}
		offset += next + 1
	}
	offset += int(pos.Character)
	if offset > len(doc) {
		offset = len(doc)
	}
	return offset
}

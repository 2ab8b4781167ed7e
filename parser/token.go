package parser

import (
	"fmt"
	"sort"
)

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

type Span struct {
	Start Position
	End   Position
}

// Token types are grammar-defined names (HASH, ID_TEXT, ...), not a fixed
// enum: overrides can introduce types the base grammar never heard of.
type Token struct {
	Type string
	Text string
	Span Span
}

func (t Token) Offset() int { return t.Span.Start.Offset }

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Type, t.Text)
}

// lineIndex maps byte offsets to line/column positions.
type lineIndex struct {
	file  string
	lines []int
}

func newLineIndex(file, text string) *lineIndex {
	lines := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, i+1)
		}
	}
	return &lineIndex{file: file, lines: lines}
}

func (ix *lineIndex) position(offset int) Position {
	line := sort.Search(len(ix.lines), func(i int) bool { return ix.lines[i] > offset }) - 1
	return Position{
		File:   ix.file,
		Offset: offset,
		Line:   line + 1,
		Column: offset - ix.lines[line] + 1,
	}
}

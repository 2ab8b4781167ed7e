// Package highlight turns token streams into contiguous style runs for an
// editor to paint. Style ids, not colors, cross the package boundary; themes
// map ids to colors at render time.
package highlight

// Style ids. The numbering is part of the editor contract and must stay
// stable across grammar reloads.
const (
	StyleDefault   = 0
	StyleKeyword   = 1
	StyleString    = 2
	StyleSection   = 3
	StyleAction    = 4
	StyleCharacter = 5
	StyleComment   = 6
)

// StyleRun assigns one style to a contiguous byte range. Runs are emitted in
// order; their lengths always sum to the length of the classified span.
type StyleRun struct {
	Length  int
	StyleID int
}

// StyleTable maps token types to style ids. Unmapped types classify as
// StyleDefault.
type StyleTable struct {
	name   string
	styles map[string]int
}

func (t *StyleTable) Name() string { return t.name }

func (t *StyleTable) StyleOf(tokenType string) int {
	if t == nil {
		return StyleDefault
	}
	return t.styles[tokenType]
}

var casebookKeywords = []string{
	"SCENE", "DO", "LET", "WHILE", "RETURN", "THEN", "IF", "ELIF", "ELSE",
	"FOR", "IN", "TRUE", "FALSE", "NULL",
	"AND", "OR", "NOT", "EQ", "NE", "GT", "LT", "GE", "LE",
	"HASH", "DOUBLE_HASH", "DOLLAR", "LPAREN", "RPAREN", "LBRACE", "RBRACE",
	"LSQB", "RSQB", "COLON", "COMMA", "EQUALS", "PLUS", "MINUS", "TIMES",
	"DIVIDE", "TRIPLE_LT", "TRIPLE_GT",
}

// CasebookTable is the style table for Casebook sources.
func CasebookTable() *StyleTable {
	styles := map[string]int{
		"SECTION_TYPE": StyleSection,
		"ID_TEXT":      StyleSection,
		"IDENTIFIER":   StyleSection,

		"FUNCTION_NAME": StyleAction,
		"CHARACTER":     StyleCharacter,

		"DOUBLE_QUOTE_STRING": StyleString,
		"SINGLE_QUOTE_STRING": StyleString,
		"TRIPLE_QUOTE_STRING": StyleString,
		"UNICODE_STRING":      StyleString,

		"COMMENT":       StyleComment,
		"BLOCK_COMMENT": StyleComment,
	}
	for _, name := range casebookKeywords {
		styles[name] = StyleKeyword
	}
	return &StyleTable{name: "casebook", styles: styles}
}

// PlainTable maps every token type to the default style. It is the table for
// file types the engine has no grammar for.
func PlainTable() *StyleTable {
	return &StyleTable{name: "plain", styles: map[string]int{}}
}

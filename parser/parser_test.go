package parser

import (
	"errors"
	"testing"
)

const exampleDoc = "# SETUP intro\n" +
	"SCENE opening {\n" +
	"HOLMES: \"Elementary.\"\n" +
	"}\n"

func TestParseExampleDocument(t *testing.T) {
	p := buildBase(t)
	root, err := p.Parse("case.case", exampleDoc)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if root.Kind != "start" {
		t.Errorf("root Kind = %q, want start", root.Kind)
	}

	scene := root.EnclosingOfKind("scene_block", 20)
	if scene == nil {
		t.Fatal("no scene_block in the tree")
	}
	name := scene.FirstChildOfKind("scene_name")
	if name == nil || len(name.Children) == 0 || name.Children[0].TokenText() != "opening" {
		t.Errorf("scene name node = %v, want opening", name)
	}

	line := root.EnclosingOfKind("character_line", 31)
	if line == nil {
		t.Fatal("no character_line in the tree")
	}
	if got := line.Children[0].TokenText(); got != "HOLMES" {
		t.Errorf("character = %q, want HOLMES", got)
	}
}

func TestParseKeepsAllTokens(t *testing.T) {
	p := buildBase(t)
	root, err := p.Parse("", exampleDoc)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	tokens, err := p.Tokenize(exampleDoc)
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}

	var leaves []*Node
	root.Walk(func(n *Node) bool {
		if n.IsToken() {
			leaves = append(leaves, n)
		}
		return true
	})
	if len(leaves) != len(tokens) {
		t.Fatalf("tree has %d token leaves, tokenizer produced %d", len(leaves), len(tokens))
	}
	for i, leaf := range leaves {
		if leaf.Token.Type != tokens[i].Type || leaf.Token.Offset() != tokens[i].Offset() {
			t.Errorf("leaf %d = %v at %d, want %v at %d",
				i, leaf.Token.Type, leaf.Token.Offset(), tokens[i].Type, tokens[i].Offset())
		}
	}

	// Punctuation survives: the scene's braces are leaves of the tree.
	scene := root.EnclosingOfKind("scene_block", 20)
	if scene.FirstChildOfKind("LBRACE") == nil || scene.FirstChildOfKind("RBRACE") == nil {
		t.Error("scene_block lost its brace tokens")
	}
}

func TestParseSpans(t *testing.T) {
	p := buildBase(t)
	root, err := p.Parse("", exampleDoc)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if root.Span.Start.Offset != 0 {
		t.Errorf("root starts at %d, want 0", root.Span.Start.Offset)
	}
	// The root span ends at the last token, not the trailing newline.
	if root.Span.End.Offset != len(exampleDoc)-1 {
		t.Errorf("root ends at %d, want %d", root.Span.End.Offset, len(exampleDoc)-1)
	}

	scene := root.EnclosingOfKind("scene_block", 20)
	if got := scene.Span.Start.Offset; got != 14 {
		t.Errorf("scene starts at %d, want 14", got)
	}
	if scene.Span.Start.Line != 2 || scene.Span.Start.Column != 1 {
		t.Errorf("scene starts at %d:%d, want 2:1", scene.Span.Start.Line, scene.Span.Start.Column)
	}
	if got := exampleDoc[scene.Span.Start.Offset:scene.Span.End.Offset]; got != "SCENE opening {\nHOLMES: \"Elementary.\"\n}" {
		t.Errorf("scene span text = %q", got)
	}
}

func TestParseExpressionPrecedence(t *testing.T) {
	p := buildBase(t)
	doc := "# s\nLET x = 1 + 2 * 3\n"
	root, err := p.Parse("", doc)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	var sum *Node
	root.Walk(func(n *Node) bool {
		if n.Kind == "sum_expr" && len(n.Children) == 3 {
			sum = n
			return false
		}
		return true
	})
	if sum == nil {
		t.Fatal("no three-child sum_expr in the tree")
	}
	if sum.Children[1].Kind != "PLUS" {
		t.Errorf("sum operator = %s, want PLUS", sum.Children[1].Kind)
	}
	product := sum.Children[2]
	for product != nil && product.Kind != "product_expr" {
		if len(product.Children) == 0 {
			product = nil
			break
		}
		product = product.Children[0]
	}
	if product == nil || len(product.Children) != 3 || product.Children[1].Kind != "TIMES" {
		t.Error("2 * 3 did not reduce under the addition")
	}
}

func TestParseEmptyInput(t *testing.T) {
	p := buildBase(t)
	root, err := p.Parse("", "")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if root.Kind != "start" {
		t.Errorf("root Kind = %q, want start", root.Kind)
	}
	if root.Span.Start.Offset != 0 || root.Span.End.Offset != 0 {
		t.Errorf("empty document span = %v, want zero-width", root.Span)
	}
}

func TestParseErrorPosition(t *testing.T) {
	p := buildBase(t)
	_, err := p.Parse("", "# SETUP intro\n}\n")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Parse error = %v, want *ParseError", err)
	}
	if parseErr.Got == nil || parseErr.Got.Type != "RBRACE" {
		t.Errorf("Got = %v, want the stray RBRACE", parseErr.Got)
	}
	if parseErr.Pos.Line != 2 || parseErr.Pos.Column != 1 {
		t.Errorf("Pos = %d:%d, want 2:1", parseErr.Pos.Line, parseErr.Pos.Column)
	}
	if len(parseErr.Expected) == 0 {
		t.Error("Expected is empty, want the acceptable token types")
	}
}

func TestParseErrorAtEndOfInput(t *testing.T) {
	p := buildBase(t)
	_, err := p.Parse("", "# SETUP intro\nSCENE opening {\n")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Parse error = %v, want *ParseError", err)
	}
	if parseErr.Got != nil {
		t.Errorf("Got = %v, want nil at end of input", parseErr.Got)
	}
}

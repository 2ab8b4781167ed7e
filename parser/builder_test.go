package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/dhamidi/casebook/grammar"
)

func buildDiagnostics(t *testing.T, spec *grammar.Spec) []string {
	t.Helper()
	_, err := Build(spec)
	var buildErr *BuildError
	if !errors.As(err, &buildErr) {
		t.Fatalf("Build error = %v, want *BuildError", err)
	}
	return buildErr.Diagnostics
}

func hasDiagnostic(diags []string, substr string) bool {
	for _, d := range diags {
		if strings.Contains(d, substr) {
			return true
		}
	}
	return false
}

func TestBuildBaseGrammar(t *testing.T) {
	if _, err := Build(grammar.Base()); err != nil {
		t.Fatalf("Build(Base()) error: %v", err)
	}
}

func TestBuildRejectsBadSpecs(t *testing.T) {
	tokenA := grammar.TokenRule{Name: "A", Pattern: "a", Literal: true}
	tests := []struct {
		name string
		spec *grammar.Spec
		want string
	}{
		{
			"unknown symbol",
			&grammar.Spec{
				Tokens: []grammar.TokenRule{tokenA},
				Rules:  []grammar.GrammarRule{{Name: "start", Alternatives: [][]string{{"NOSUCH"}}}},
				Root:   "start",
			},
			"unknown symbol NOSUCH",
		},
		{
			"duplicate rule",
			&grammar.Spec{
				Tokens: []grammar.TokenRule{tokenA},
				Rules: []grammar.GrammarRule{
					{Name: "start", Alternatives: [][]string{{"A"}}},
					{Name: "start", Alternatives: [][]string{{"A", "A"}}},
				},
				Root: "start",
			},
			"duplicate rule start",
		},
		{
			"rule collides with token",
			&grammar.Spec{
				Tokens: []grammar.TokenRule{tokenA},
				Rules: []grammar.GrammarRule{
					{Name: "start", Alternatives: [][]string{{"A"}}},
					{Name: "A", Alternatives: [][]string{{"start"}}},
				},
				Root: "start",
			},
			"collides with a token",
		},
		{
			"empty-matching token",
			&grammar.Spec{
				Tokens: []grammar.TokenRule{{Name: "A", Pattern: "a*"}},
				Rules:  []grammar.GrammarRule{{Name: "start", Alternatives: [][]string{{"A"}}}},
				Root:   "start",
			},
			"matches the empty string",
		},
		{
			"invalid pattern",
			&grammar.Spec{
				Tokens: []grammar.TokenRule{{Name: "A", Pattern: "a(("}},
				Rules:  []grammar.GrammarRule{{Name: "start", Alternatives: [][]string{{"A"}}}},
				Root:   "start",
			},
			"invalid pattern",
		},
		{
			"missing root",
			&grammar.Spec{
				Tokens: []grammar.TokenRule{tokenA},
				Rules:  []grammar.GrammarRule{{Name: "thing", Alternatives: [][]string{{"A"}}}},
				Root:   "",
			},
			"no root rule",
		},
		{
			"undefined root",
			&grammar.Spec{
				Tokens: []grammar.TokenRule{tokenA},
				Rules:  []grammar.GrammarRule{{Name: "thing", Alternatives: [][]string{{"A"}}}},
				Root:   "start",
			},
			"root rule start is not defined",
		},
		{
			"reference to ignored token",
			&grammar.Spec{
				Tokens:  []grammar.TokenRule{tokenA, {Name: "WS", Pattern: `[ \t]+`}},
				Rules:   []grammar.GrammarRule{{Name: "start", Alternatives: [][]string{{"A", "WS"}}}},
				Root:    "start",
				Ignored: []string{"WS"},
			},
			"references ignored token WS",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := buildDiagnostics(t, tt.spec)
			if !hasDiagnostic(diags, tt.want) {
				t.Errorf("diagnostics = %v, want one containing %q", diags, tt.want)
			}
		})
	}
}

func TestBuildReportsShiftReduceConflict(t *testing.T) {
	// Ambiguous binary expression: e PLUS e with e already reducible.
	spec := &grammar.Spec{
		Tokens: []grammar.TokenRule{
			{Name: "A", Pattern: "a", Literal: true},
			{Name: "PLUS", Pattern: "+", Literal: true},
		},
		Rules: []grammar.GrammarRule{
			{Name: "start", Alternatives: [][]string{{"e"}}},
			{Name: "e", Alternatives: [][]string{{"e", "PLUS", "e"}, {"A"}}},
		},
		Root: "start",
	}
	diags := buildDiagnostics(t, spec)
	if !hasDiagnostic(diags, "shift/reduce conflict") {
		t.Errorf("diagnostics = %v, want a shift/reduce conflict", diags)
	}
}

func TestBuildReportsReduceReduceConflict(t *testing.T) {
	spec := &grammar.Spec{
		Tokens: []grammar.TokenRule{{Name: "A", Pattern: "a", Literal: true}},
		Rules: []grammar.GrammarRule{
			{Name: "start", Alternatives: [][]string{{"left"}, {"right"}}},
			{Name: "left", Alternatives: [][]string{{"A"}}},
			{Name: "right", Alternatives: [][]string{{"A"}}},
		},
		Root: "start",
	}
	diags := buildDiagnostics(t, spec)
	if !hasDiagnostic(diags, "reduce/reduce conflict") {
		t.Errorf("diagnostics = %v, want a reduce/reduce conflict", diags)
	}
}

func TestBuildSkipsUnreachableRules(t *testing.T) {
	// An unreachable rule may be broken in ways table construction would
	// reject (here: it would be ambiguous); it must be excluded, not fatal.
	spec := &grammar.Spec{
		Tokens: []grammar.TokenRule{
			{Name: "A", Pattern: "a", Literal: true},
			{Name: "PLUS", Pattern: "+", Literal: true},
		},
		Rules: []grammar.GrammarRule{
			{Name: "start", Alternatives: [][]string{{"A"}}},
			{Name: "dangling", Alternatives: [][]string{{"dangling", "PLUS", "dangling"}, {"A"}}},
		},
		Root: "start",
	}
	p, err := Build(spec)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if _, err := p.Parse("", "a"); err != nil {
		t.Errorf("Parse error: %v", err)
	}
}

func TestBuildComposedGrammar(t *testing.T) {
	override, err := grammar.ParseFragment("ARROW.2: \"->\"\nstart: base_start | ARROW\n")
	if err != nil {
		t.Fatalf("ParseFragment: %v", err)
	}
	combined, err := grammar.Compose(grammar.Base(), override)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	p, err := Build(combined)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if _, err := p.Parse("", "->"); err != nil {
		t.Errorf("Parse(->) error: %v", err)
	}
	if _, err := p.Parse("", "# SETUP intro\n"); err != nil {
		t.Errorf("Parse(base document) error: %v", err)
	}
}

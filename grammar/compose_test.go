package grammar

import (
	"errors"
	"testing"
)

func conflictSpec() *Spec {
	return &Spec{
		Tokens: []TokenRule{
			{Name: "FOO", Pattern: "foo", Literal: true, Priority: 1},
			{Name: "WS", Pattern: `[ \t]+`},
		},
		Rules: []GrammarRule{
			{Name: "start", Alternatives: [][]string{{"FOO"}}},
		},
		Root:    "start",
		Ignored: []string{"WS"},
	}
}

func TestComposeNilOverride(t *testing.T) {
	base := Base()
	combined, err := Compose(base, nil)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if combined.Root != "start" {
		t.Errorf("Root = %q, want %q", combined.Root, "start")
	}
	if len(combined.Rules) != len(base.Rules) || len(combined.Tokens) != len(base.Tokens) {
		t.Errorf("combined has %d rules / %d tokens, want %d / %d",
			len(combined.Rules), len(combined.Tokens), len(base.Rules), len(base.Tokens))
	}
	combined.Rules[0].Name = "mutated"
	if base.Rules[0].Name == "mutated" {
		t.Error("Compose returned a shallow copy of the base")
	}
}

func TestComposeRedefinesRule(t *testing.T) {
	override, err := ParseFragment("atom: NUMBER\n")
	if err != nil {
		t.Fatalf("ParseFragment: %v", err)
	}
	combined, err := Compose(Base(), override)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if combined.Root != "start" {
		t.Errorf("Root = %q, want %q", combined.Root, "start")
	}

	atom := combined.Rules[combined.RuleIndex("atom")]
	if len(atom.Alternatives) != 1 || len(atom.Alternatives[0]) != 1 || atom.Alternatives[0][0] != "NUMBER" {
		t.Errorf("atom alternatives = %v, want [[NUMBER]]", atom.Alternatives)
	}

	if combined.RuleIndex(BaseRootRule) < 0 {
		t.Fatalf("missing %s rule after composition", BaseRootRule)
	}
	start := combined.Rules[combined.RuleIndex("start")]
	if len(start.Alternatives) != 1 || len(start.Alternatives[0]) != 1 || start.Alternatives[0][0] != BaseRootRule {
		t.Errorf("synthesized start = %v, want [[%s]]", start.Alternatives, BaseRootRule)
	}
}

func TestComposeOverrideRoot(t *testing.T) {
	override, err := ParseFragment("start: base_start\n    | section\n")
	if err != nil {
		t.Fatalf("ParseFragment: %v", err)
	}
	combined, err := Compose(Base(), override)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if combined.Root != "start" {
		t.Errorf("Root = %q, want %q", combined.Root, "start")
	}
	count := 0
	for _, r := range combined.Rules {
		if r.Name == "start" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("found %d start rules, want exactly 1", count)
	}
	start := combined.Rules[combined.RuleIndex("start")]
	if len(start.Alternatives) != 2 {
		t.Errorf("start alternatives = %v, want the override's two", start.Alternatives)
	}
}

func TestComposeNewDefinitions(t *testing.T) {
	override, err := ParseFragment("BAR.2: /b+/\nextra: BAR\n")
	if err != nil {
		t.Fatalf("ParseFragment: %v", err)
	}
	combined, err := Compose(conflictSpec(), override)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if combined.TokenIndex("BAR") < 0 {
		t.Error("BAR token not merged")
	}
	if combined.RuleIndex("extra") < 0 {
		t.Error("extra rule not merged")
	}
}

func TestComposeTokenConflict(t *testing.T) {
	override, err := ParseFragment("FOO: /f+/\n")
	if err != nil {
		t.Fatalf("ParseFragment: %v", err)
	}
	_, err = Compose(conflictSpec(), override)
	var cerr *ConflictError
	if !errors.As(err, &cerr) {
		t.Fatalf("err = %v, want ConflictError", err)
	}
	if cerr.Name != "FOO" {
		t.Errorf("Name = %q, want %q", cerr.Name, "FOO")
	}
}

func TestComposeTokenPriorityRetune(t *testing.T) {
	override, err := ParseFragment("FOO.5: \"foo\"\n")
	if err != nil {
		t.Fatalf("ParseFragment: %v", err)
	}
	combined, err := Compose(conflictSpec(), override)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if got := combined.Tokens[combined.TokenIndex("FOO")].Priority; got != 5 {
		t.Errorf("FOO priority = %d, want 5", got)
	}
}

func TestComposeReservedBaseStart(t *testing.T) {
	override, err := ParseFragment("base_start: FOO\n")
	if err != nil {
		t.Fatalf("ParseFragment: %v", err)
	}
	_, err = Compose(conflictSpec(), override)
	var cerr *ConflictError
	if !errors.As(err, &cerr) {
		t.Fatalf("err = %v, want ConflictError", err)
	}
	if cerr.Name != BaseRootRule {
		t.Errorf("Name = %q, want %q", cerr.Name, BaseRootRule)
	}
}

func TestComposeRuleVsTokenClash(t *testing.T) {
	override, err := ParseFragment("foo: FOO\nFOO2: \"x\"\n")
	if err != nil {
		t.Fatalf("ParseFragment: %v", err)
	}
	base := conflictSpec()
	base.Rules = append(base.Rules, GrammarRule{Name: "FOO2"})
	_, err = Compose(base, override)
	var cerr *ConflictError
	if !errors.As(err, &cerr) {
		t.Fatalf("err = %v, want ConflictError", err)
	}
	if cerr.Name != "FOO2" {
		t.Errorf("Name = %q, want %q", cerr.Name, "FOO2")
	}
}

func TestComposeIgnoredUnion(t *testing.T) {
	override, err := ParseFragment("BAR: /b+/\n%ignore BAR WS\n")
	if err != nil {
		t.Fatalf("ParseFragment: %v", err)
	}
	combined, err := Compose(conflictSpec(), override)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if !combined.IsIgnored("BAR") || !combined.IsIgnored("WS") {
		t.Errorf("Ignored = %v, want BAR and WS", combined.Ignored)
	}
	if len(combined.Ignored) != 2 {
		t.Errorf("Ignored = %v, want no duplicates", combined.Ignored)
	}
}

package grammar

// RootRule is the rule every complete grammar must derive from. BaseRootRule
// is the reserved name the base grammar's root is renamed to during
// composition so an override can extend or wrap it.
const (
	RootRule     = "start"
	BaseRootRule = "base_start"
)

type TokenRule struct {
	Name     string
	Pattern  string
	Literal  bool
	Priority int
}

type GrammarRule struct {
	Name         string
	Alternatives [][]string
}

type Spec struct {
	Tokens  []TokenRule
	Rules   []GrammarRule
	Root    string
	Ignored []string
}

func (s *Spec) Clone() *Spec {
	c := &Spec{
		Tokens:  make([]TokenRule, len(s.Tokens)),
		Rules:   make([]GrammarRule, 0, len(s.Rules)),
		Root:    s.Root,
		Ignored: append([]string(nil), s.Ignored...),
	}
	copy(c.Tokens, s.Tokens)
	for _, r := range s.Rules {
		alts := make([][]string, len(r.Alternatives))
		for i, alt := range r.Alternatives {
			alts[i] = append([]string(nil), alt...)
		}
		c.Rules = append(c.Rules, GrammarRule{Name: r.Name, Alternatives: alts})
	}
	return c
}

func (s *Spec) TokenIndex(name string) int {
	for i := range s.Tokens {
		if s.Tokens[i].Name == name {
			return i
		}
	}
	return -1
}

func (s *Spec) RuleIndex(name string) int {
	for i := range s.Rules {
		if s.Rules[i].Name == name {
			return i
		}
	}
	return -1
}

func (s *Spec) IsIgnored(name string) bool {
	for _, n := range s.Ignored {
		if n == name {
			return true
		}
	}
	return false
}

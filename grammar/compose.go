package grammar

import "fmt"

// ConflictError reports a composition conflict, naming the definition that
// could not be merged.
type ConflictError struct {
	Name   string
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("grammar conflict: %s: %s", e.Name, e.Reason)
}

// Compose layers an override grammar on top of a base grammar. The base
// root is renamed to base_start so the override can reference it; if the
// override declares no start rule of its own, a start rule deriving
// base_start is synthesized. Override grammar rules replace base rules of
// the same name wholesale. Override token rules may re-declare a base token
// only with an identical pattern (to retune its priority); a redefinition
// with a different pattern is a conflict, never silently resolved.
func Compose(base, override *Spec) (*Spec, error) {
	if base.Root == "" {
		return nil, fmt.Errorf("compose: base grammar has no root rule")
	}
	if override == nil {
		return base.Clone(), nil
	}

	combined := base.Clone()
	if combined.Root != BaseRootRule {
		if combined.RuleIndex(BaseRootRule) >= 0 {
			return nil, &ConflictError{Name: BaseRootRule, Reason: "reserved name already defined in the base"}
		}
		renameRule(combined, combined.Root, BaseRootRule)
		combined.Root = BaseRootRule
	}

	for _, tok := range override.Tokens {
		if combined.RuleIndex(tok.Name) >= 0 {
			return nil, &ConflictError{Name: tok.Name, Reason: "defined as a grammar rule in the base"}
		}
		i := combined.TokenIndex(tok.Name)
		if i < 0 {
			combined.Tokens = append(combined.Tokens, tok)
			continue
		}
		if combined.Tokens[i].Pattern != tok.Pattern || combined.Tokens[i].Literal != tok.Literal {
			return nil, &ConflictError{Name: tok.Name, Reason: "token redefined with a different pattern"}
		}
		combined.Tokens[i] = tok
	}

	for _, rule := range override.Rules {
		if rule.Name == BaseRootRule {
			return nil, &ConflictError{Name: BaseRootRule, Reason: "reserved for the renamed base root"}
		}
		if combined.TokenIndex(rule.Name) >= 0 {
			return nil, &ConflictError{Name: rule.Name, Reason: "defined as a token rule in the base"}
		}
		if j := combined.RuleIndex(rule.Name); j >= 0 {
			combined.Rules[j] = rule
		} else {
			combined.Rules = append(combined.Rules, rule)
		}
	}

	for _, name := range override.Ignored {
		if !combined.IsIgnored(name) {
			combined.Ignored = append(combined.Ignored, name)
		}
	}

	if combined.RuleIndex(RootRule) >= 0 {
		combined.Root = RootRule
	} else {
		combined.Rules = append(combined.Rules, GrammarRule{
			Name:         RootRule,
			Alternatives: [][]string{{BaseRootRule}},
		})
		combined.Root = RootRule
	}
	return combined, nil
}

func renameRule(s *Spec, from, to string) {
	for i := range s.Rules {
		if s.Rules[i].Name == from {
			s.Rules[i].Name = to
		}
		for _, alt := range s.Rules[i].Alternatives {
			for k, sym := range alt {
				if sym == from {
					alt[k] = to
				}
			}
		}
	}
}

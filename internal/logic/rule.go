package logic

// Rule is a tagged union: either a FORule or a BacktrackRule. Rules are
// immutable after construction and shared read-only across solver calls.
type Rule interface {
	isRule()
	RuleName() string
	RuleComplexity() int
}

// FORule is a plain first-order rule: fires by enumerating witnesses of
// Condition and applying Conclusions to each.
type FORule struct {
	Name        string
	Condition   Formula
	Conclusions []Conclusion
	Complexity  int
}

func (FORule) isRule()               {}
func (r FORule) RuleName() string    { return r.Name }
func (r FORule) RuleComplexity() int { return r.Complexity }

// BacktrackRule hypothetically commits a candidate value and runs bounded
// FO inference (using rules up to MaxRuleComplexity) to look for a
// contradiction, nested at most RuleDepth levels deep.
type BacktrackRule struct {
	Name              string
	Complexity        int
	RuleDepth         int
	MaxRuleComplexity int
}

func (BacktrackRule) isRule()               {}
func (r BacktrackRule) RuleName() string    { return r.Name }
func (r BacktrackRule) RuleComplexity() int { return r.Complexity }

// SortRulesByComplexity returns a copy of rules ordered ascending by
// complexity, stable on ties (preserving the caller's original order among
// equal-complexity rules, matching the solver's documented tie-breaking).
func SortRulesByComplexity(rules []Rule) []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	// Insertion sort: stable, and rule lists are small (tens, not thousands).
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1].RuleComplexity() > out[j].RuleComplexity(); j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

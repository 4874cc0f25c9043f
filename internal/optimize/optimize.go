package optimize

import "arrows-engine/internal/logic"

// OptimizeRule rewrites an FORule's condition via existential-equality
// elimination followed by miniscoping, replaying any variable eliminations
// onto the rule's conclusions. The result is idempotent: optimizing an
// already-optimized rule returns it unchanged (no further equality or
// miniscoping opportunities remain).
func OptimizeRule(rule logic.FORule) logic.FORule {
	condition, elims := eliminateQuantifiersInFormula(rule.Condition)

	conclusions := make([]logic.Conclusion, len(rule.Conclusions))
	copy(conclusions, rule.Conclusions)
	for _, e := range elims {
		for i, c := range conclusions {
			conclusions[i] = SubstituteConclusion(c, e.Name, e.Replacement)
		}
	}

	condition = Minscope(condition)

	return logic.FORule{
		Name:        rule.Name,
		Condition:   condition,
		Conclusions: conclusions,
		Complexity:  rule.Complexity,
	}
}

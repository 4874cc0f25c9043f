package typecheck

import (
	"testing"

	"arrows-engine/internal/logic"
)

func TestCheckRuleAccepts(t *testing.T) {
	rule := logic.FORule{
		Name: "forces-one",
		Condition: logic.ExistsPosition{
			Vars: []logic.Variable{{Name: "p"}},
			Formula: logic.Equality{
				Left:  logic.FunctionCall{Name: "val", Args: []logic.Term{logic.Variable{Name: "p"}}},
				Right: logic.Constant{Symbol: "nil"},
			},
		},
		Conclusions: []logic.Conclusion{
			logic.Set{Position: logic.Variable{Name: "p"}, Value: logic.IntConstant(1)},
		},
		Complexity: 1,
	}
	if err := CheckRule(rule, StandardTables()); err != nil {
		t.Errorf("expected rule to type-check, got %v", err)
	}
}

func TestCheckRuleRejectsUnboundConclusionVar(t *testing.T) {
	rule := logic.FORule{
		Name: "bad",
		Condition: logic.ExistsPosition{
			Vars: []logic.Variable{{Name: "p"}},
			Formula: logic.Equality{
				Left:  logic.FunctionCall{Name: "val", Args: []logic.Term{logic.Variable{Name: "p"}}},
				Right: logic.Constant{Symbol: "nil"},
			},
		},
		Conclusions: []logic.Conclusion{
			// q is never bound.
			logic.Set{Position: logic.Variable{Name: "q"}, Value: logic.IntConstant(1)},
		},
		Complexity: 1,
	}
	if err := CheckRule(rule, StandardTables()); err == nil {
		t.Errorf("expected type error for unbound conclusion variable")
	}
}

func TestCheckRuleRejectsSortMismatch(t *testing.T) {
	rule := logic.FORule{
		Name: "bad-sort",
		Condition: logic.ExistsPosition{
			Vars: []logic.Variable{{Name: "p"}},
			Formula: logic.Equality{
				Left:  logic.Variable{Name: "p"},
				Right: logic.IntConstant(1), // POSITION vs NUMBER
			},
		},
		Complexity: 1,
	}
	if err := CheckRule(rule, StandardTables()); err == nil {
		t.Errorf("expected type error for sort mismatch")
	}
}

func TestCheckRuleRejectsUniversalOnlyVariable(t *testing.T) {
	rule := logic.FORule{
		Name: "forall-leak",
		Condition: logic.ForAllPosition{
			Vars: []logic.Variable{{Name: "p"}},
			Formula: logic.Equality{
				Left:  logic.FunctionCall{Name: "val", Args: []logic.Term{logic.Variable{Name: "p"}}},
				Right: logic.Constant{Symbol: "nil"},
			},
		},
		Conclusions: []logic.Conclusion{
			logic.Set{Position: logic.Variable{Name: "p"}, Value: logic.IntConstant(1)},
		},
		Complexity: 1,
	}
	if err := CheckRule(rule, StandardTables()); err == nil {
		t.Errorf("expected type error: p is only bound by forall, not in scope for conclusions")
	}
}

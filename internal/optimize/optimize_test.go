package optimize

import (
	"testing"

	"arrows-engine/internal/logic"
)

func TestFindEqualitySubstitutionReturnsTerm(t *testing.T) {
	conjuncts := []logic.Formula{
		logic.Equality{
			Left:  logic.Variable{Name: "q"},
			Right: logic.FunctionCall{Name: "next", Args: []logic.Term{logic.Variable{Name: "p"}}},
		},
	}
	term, ok := FindEqualitySubstitution(conjuncts, "q")
	if !ok {
		t.Fatalf("expected a substitution for q")
	}
	fc, ok := term.(logic.FunctionCall)
	if !ok || fc.Name != "next" {
		t.Errorf("expected next(p), got %v", term)
	}
}

func TestFindEqualitySubstitutionSelfReference(t *testing.T) {
	// q = f(q) must not be returned as a substitution (q occurs in its
	// own replacement term).
	conjuncts := []logic.Formula{
		logic.Equality{
			Left:  logic.Variable{Name: "q"},
			Right: logic.FunctionCall{Name: "f", Args: []logic.Term{logic.Variable{Name: "q"}}},
		},
	}
	_, ok := FindEqualitySubstitution(conjuncts, "q")
	if ok {
		t.Errorf("expected no substitution when the variable occurs in its own replacement")
	}
}

func TestMinscopeEffect(t *testing.T) {
	// exists p, q (val(p)=1 ^ val(q)=2) should split into two
	// single-variable existentials joined by And.
	phi := logic.ExistsPosition{
		Vars: []logic.Variable{{Name: "p"}, {Name: "q"}},
		Formula: logic.And{Formulas: []logic.Formula{
			logic.Equality{Left: logic.FunctionCall{Name: "val", Args: []logic.Term{logic.Variable{Name: "p"}}}, Right: logic.IntConstant(1)},
			logic.Equality{Left: logic.FunctionCall{Name: "val", Args: []logic.Term{logic.Variable{Name: "q"}}}, Right: logic.IntConstant(2)},
		}},
	}
	got := Minscope(phi)
	and, ok := got.(logic.And)
	if !ok || len(and.Formulas) != 2 {
		t.Fatalf("expected a 2-conjunct And after miniscoping, got %v", got)
	}
	for _, f := range and.Formulas {
		if _, ok := f.(logic.ExistsPosition); !ok {
			t.Errorf("expected each conjunct to be its own ExistsPosition, got %T", f)
		}
	}
}

func TestOptimizeRuleEliminatesEqualityVariable(t *testing.T) {
	rule := logic.FORule{
		Name: "example",
		Condition: logic.ExistsPosition{
			Vars: []logic.Variable{{Name: "p"}, {Name: "q"}},
			Formula: logic.And{Formulas: []logic.Formula{
				logic.Equality{
					Left:  logic.Variable{Name: "q"},
					Right: logic.FunctionCall{Name: "next", Args: []logic.Term{logic.Variable{Name: "p"}}},
				},
				logic.Equality{
					Left:  logic.FunctionCall{Name: "val", Args: []logic.Term{logic.Variable{Name: "q"}}},
					Right: logic.IntConstant(1),
				},
			}},
		},
		Conclusions: []logic.Conclusion{
			logic.Set{Position: logic.Variable{Name: "q"}, Value: logic.IntConstant(0)},
		},
		Complexity: 1,
	}
	optimized := OptimizeRule(rule)
	set, ok := optimized.Conclusions[0].(logic.Set)
	if !ok {
		t.Fatalf("expected a Set conclusion, got %T", optimized.Conclusions[0])
	}
	if _, stillVar := set.Position.(logic.Variable); stillVar {
		t.Errorf("expected q to be substituted in the conclusion, got %v", set.Position)
	}
}

func TestOptimizeRuleIdempotent(t *testing.T) {
	rule := logic.FORule{
		Name: "example",
		Condition: logic.ExistsPosition{
			Vars: []logic.Variable{{Name: "p"}},
			Formula: logic.Equality{
				Left:  logic.FunctionCall{Name: "val", Args: []logic.Term{logic.Variable{Name: "p"}}},
				Right: logic.IntConstant(1),
			},
		},
		Conclusions: []logic.Conclusion{
			logic.Set{Position: logic.Variable{Name: "p"}, Value: logic.IntConstant(1)},
		},
		Complexity: 1,
	}
	once := OptimizeRule(rule)
	twice := OptimizeRule(once)
	if once.Condition.String() != twice.Condition.String() {
		t.Errorf("optimize not idempotent:\nonce:  %s\ntwice: %s", once.Condition.String(), twice.Condition.String())
	}
}

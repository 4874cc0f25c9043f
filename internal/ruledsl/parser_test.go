package ruledsl

import (
	"testing"

	"arrows-engine/internal/logic"
)

func TestParseFORuleSimpleForcing(t *testing.T) {
	rule, err := ParseFORule("forces-one", 1, "exists p (val(p) = nil) => set(p, 1)")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if rule.Name != "forces-one" || rule.Complexity != 1 {
		t.Errorf("unexpected name/complexity: %+v", rule)
	}
	if _, ok := rule.Condition.(logic.ExistsPosition); !ok {
		t.Errorf("expected ExistsPosition condition, got %T", rule.Condition)
	}
	if len(rule.Conclusions) != 1 {
		t.Fatalf("expected 1 conclusion, got %d", len(rule.Conclusions))
	}
	if _, ok := rule.Conclusions[0].(logic.Set); !ok {
		t.Errorf("expected Set conclusion, got %T", rule.Conclusions[0])
	}
}

func TestParseFORuleExcludeWithOp(t *testing.T) {
	rule, err := ParseFORule("exclude-lt", 2, "exists p (candidate(p, 3)) => exclude(p, <3)")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	ex, ok := rule.Conclusions[0].(logic.Exclude)
	if !ok {
		t.Fatalf("expected Exclude conclusion, got %T", rule.Conclusions[0])
	}
	if ex.Op != logic.OpLt {
		t.Errorf("expected OpLt, got %v", ex.Op)
	}
}

func TestParseFORuleOnlyConclusion(t *testing.T) {
	rule, err := ParseFORule("only-rule", 1, "exists p (candidate(p, 1)) => only(p, [1, 2])")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	only, ok := rule.Conclusions[0].(logic.Only)
	if !ok {
		t.Fatalf("expected Only conclusion, got %T", rule.Conclusions[0])
	}
	if len(only.Values) != 2 {
		t.Errorf("expected 2 values, got %d", len(only.Values))
	}
}

func TestParseFormulaAndOrPrecedence(t *testing.T) {
	// a ^ b v c should parse as (a ^ b) v c: And binds tighter than Or.
	f, err := ParseFormula("candidate(p, 1) ^ candidate(p, 2) v candidate(q, 1)")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	or, ok := f.(logic.Or)
	if !ok || len(or.Formulas) != 2 {
		t.Fatalf("expected a top-level Or with 2 operands, got %T", f)
	}
	if _, ok := or.Formulas[0].(logic.And); !ok {
		t.Errorf("expected first Or operand to be an And, got %T", or.Formulas[0])
	}
}

func TestParseFormulaImplicationDesugars(t *testing.T) {
	f, err := ParseFormula("candidate(p, 1) -> candidate(p, 2)")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	or, ok := f.(logic.Or)
	if !ok || len(or.Formulas) != 2 {
		t.Fatalf("expected Or{Not{A}, B} desugaring, got %T", f)
	}
	if _, ok := or.Formulas[0].(logic.Not); !ok {
		t.Errorf("expected first operand to be Not, got %T", or.Formulas[0])
	}
}

func TestParseFormulaBareNegationRejected(t *testing.T) {
	_, err := ParseFormula("!candidate(p, 1)")
	if err == nil {
		t.Errorf("expected a parse error: bare '!atom' is rejected, only '!(...)' is accepted")
	}
}

func TestParseFormulaParenthesizedNegationAccepted(t *testing.T) {
	f, err := ParseFormula("!(candidate(p, 1))")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if _, ok := f.(logic.Not); !ok {
		t.Errorf("expected Not, got %T", f)
	}
}

func TestParseFormulaNotEqualsDesugars(t *testing.T) {
	f, err := ParseFormula("val(p) != 1")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	not, ok := f.(logic.Not)
	if !ok {
		t.Fatalf("expected Not{Equality{...}}, got %T", f)
	}
	if _, ok := not.Formula.(logic.Equality); !ok {
		t.Errorf("expected inner Equality, got %T", not.Formula)
	}
}

func TestParseFormulaArithmeticTerm(t *testing.T) {
	f, err := ParseFormula("val(p) = val(q) + 1")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	eq, ok := f.(logic.Equality)
	if !ok {
		t.Fatalf("expected Equality, got %T", f)
	}
	fc, ok := eq.Right.(logic.FunctionCall)
	if !ok || fc.Name != "+" {
		t.Errorf("expected right side to be a '+' call, got %v", eq.Right)
	}
}

func TestParseFormulaMixedSortQuantifierRejected(t *testing.T) {
	_, err := ParseFormula("exists p, n (val(p) = n)")
	if err == nil {
		t.Errorf("expected a parse error: p and n have different sorts")
	}
}

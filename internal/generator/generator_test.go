package generator

import (
	"math/rand"
	"testing"

	"arrows-engine/internal/logic"
)

func forceOneRule() logic.Rule {
	return logic.FORule{
		Name: "force-one",
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
}

func TestGenerateOneAlwaysTerminatesAndSolves(t *testing.T) {
	cfg := Config{Rows: 2, Cols: 2, AllowDiagonals: false}
	rng := rand.New(rand.NewSource(42))
	attempt, err := GenerateOne(cfg, []logic.Rule{forceOneRule()}, rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Outward damping leaves no arrow pointing off a 2x2 grid, so every ray
	// holds exactly one cell and every cell's value is 1. force-one commits
	// every pending cell to 1 in one pass, so this configuration can never
	// hit NO_SOLUTION or run out of budget.
	if !attempt.Accepted {
		t.Fatalf("expected acceptance, got rejection %q", attempt.Rejection)
	}
	if attempt.Result.Status.String() != "SOLVED" {
		t.Errorf("expected SOLVED, got %s", attempt.Result.Status)
	}
}

func TestGenerateOneRespectsRuleComplexityConstraint(t *testing.T) {
	bound := 0.5
	cfg := Config{
		Rows: 2, Cols: 2,
		Constraints: []Constraint{
			RuleComplexityFraction{Complexity: 99, Bound: fractionBound{minFraction: &bound}},
		},
	}
	rng := rand.New(rand.NewSource(7))
	attempt, err := GenerateOne(cfg, []logic.Rule{forceOneRule()}, rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempt.Accepted {
		t.Errorf("expected rejection: no step has complexity 99")
	}
	if attempt.RejectedByConstraint != "RuleComplexityFraction" {
		t.Errorf("expected rejection attributed to RuleComplexityFraction, got %q", attempt.RejectedByConstraint)
	}
}

func TestGenerateManyReturnsAtMostCount(t *testing.T) {
	cfg := Config{Rows: 2, Cols: 2, NJobs: 2, MaxAttempts: 20, TimeoutSeconds: 5}
	results, stats, err := GenerateMany(cfg, []logic.Rule{forceOneRule()}, 3, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) > 3 {
		t.Errorf("expected at most 3 puzzles, got %d", len(results))
	}
	if stats.Accepted != len(results) {
		t.Errorf("stats.Accepted (%d) should match returned count (%d)", stats.Accepted, len(results))
	}
}

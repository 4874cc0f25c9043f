package solver

import (
	"testing"

	"arrows-engine/internal/logic"
	"arrows-engine/internal/puzzle"
)

func build1x2Solved() *puzzle.Puzzle {
	p := puzzle.NewPuzzle(1, 2, puzzle.East)
	p.At(0, 0).Commit(1)
	p.At(0, 1).Commit(0)
	return p
}

func TestSolveAlreadySolvedPuzzle(t *testing.T) {
	p := build1x2Solved()
	result, err := Solve(nil, p, SolveOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != Solved {
		t.Errorf("expected Solved, got %s", result.Status)
	}
}

func TestSolveUnderconstrainedWithNoRules(t *testing.T) {
	p := puzzle.NewPuzzle(1, 2, puzzle.East)
	p.At(0, 0).Commit(1)
	// (0,1) left pending with no rules able to narrow it.
	result, err := Solve(nil, p, SolveOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != Underconstrained {
		t.Errorf("expected Underconstrained, got %s", result.Status)
	}
}

// TestSolveAppliesForcingRule exercises a single FORule that commits cell
// (0,1) to 0 whenever it finds a position with val = nil (uncommitted),
// matching the forcing pattern of spec scenario 1.
func TestSolveAppliesForcingRule(t *testing.T) {
	p := puzzle.NewPuzzle(1, 2, puzzle.East)
	p.At(0, 0).Commit(1)

	rule := logic.FORule{
		Name: "force-zero",
		Condition: logic.ExistsPosition{
			Vars: []logic.Variable{{Name: "p"}},
			Formula: logic.Equality{
				Left:  logic.FunctionCall{Name: "val", Args: []logic.Term{logic.Variable{Name: "p"}}},
				Right: logic.Constant{Symbol: "nil"},
			},
		},
		Conclusions: []logic.Conclusion{
			logic.Set{Position: logic.Variable{Name: "p"}, Value: logic.IntConstant(0)},
		},
		Complexity: 1,
	}

	result, err := Solve([]logic.Rule{rule}, p, SolveOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != Solved {
		t.Fatalf("expected Solved, got %s (steps=%d)", result.Status, len(result.Steps))
	}
	if len(result.Steps) == 0 {
		t.Errorf("expected at least one recorded step")
	}
	if result.CountsByRule["force-zero"] == 0 {
		t.Errorf("expected force-zero to be counted")
	}
}

// TestSolveDetectsContradiction feeds a rule that sets an impossible value,
// which ApplyConclusion should report as a Contradiction, ending the call
// with NO_SOLUTION.
func TestSolveDetectsContradiction(t *testing.T) {
	p := puzzle.NewPuzzle(1, 2, puzzle.East)
	p.At(0, 0).Commit(1)

	forceImpossible := logic.FORule{
		Name: "force-impossible",
		Condition: logic.ExistsPosition{
			Vars: []logic.Variable{{Name: "p"}},
			Formula: logic.Equality{
				Left:  logic.FunctionCall{Name: "val", Args: []logic.Term{logic.Variable{Name: "p"}}},
				Right: logic.Constant{Symbol: "nil"},
			},
		},
		Conclusions: []logic.Conclusion{
			// Domain here is {0,1}; 99 is never a candidate, so Set must
			// collapse the candidate set to empty.
			logic.Set{Position: logic.Variable{Name: "p"}, Value: logic.IntConstant(99)},
		},
		Complexity: 1,
	}

	result, err := Solve([]logic.Rule{forceImpossible}, p, SolveOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != NoSolution {
		t.Errorf("expected NoSolution, got %s", result.Status)
	}
	if result.ContradictionLocation == nil {
		t.Fatalf("expected a contradiction location")
	}
	loc := *result.ContradictionLocation
	cell := result.Puzzle.At(loc.Row, loc.Col)
	if cell.Candidates.Len() != 0 {
		t.Errorf("expected the contradiction cell to have empty candidates, got %v", cell.Candidates.Sorted())
	}
	if cell.IsCommit {
		t.Errorf("expected the contradiction cell to be left uncommitted")
	}
}

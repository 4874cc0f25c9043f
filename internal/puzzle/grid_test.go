package puzzle

import "testing"

func TestValidateAlreadySolved(t *testing.T) {
	// 1x2 grid: [→1, →0] — cell (0,0) points at (0,1) which is distinct
	// value 0, so sees 1 distinct value; cell (0,1) points off-grid, sees 0.
	p := &Puzzle{
		Rows: 1,
		Cols: 2,
		Grid: [][]Cell{
			{NewCommittedCell(East, 1), NewCommittedCell(East, 0)},
		},
	}
	if !p.Validate() {
		t.Errorf("expected already-solved puzzle to validate")
	}
}

func TestValidateRejectsPending(t *testing.T) {
	p := NewPuzzle(1, 1, South)
	if p.Validate() {
		t.Errorf("expected pending puzzle not to validate")
	}
}

func TestValidateRejectsWrongCount(t *testing.T) {
	p := &Puzzle{
		Rows: 1,
		Cols: 2,
		Grid: [][]Cell{
			{NewCommittedCell(East, 0), NewCommittedCell(East, 0)},
		},
	}
	// (0,0) sees one distinct value (0) on its ray but claims 0.
	if p.Validate() {
		t.Errorf("expected mismatched count to fail validation")
	}
}

func TestPathCacheAheadAndPointsAt(t *testing.T) {
	p := NewPuzzle(3, 3, East)
	cache := ComputeAllPaths(p)
	if got := cache.Len(1, 0); got != 2 {
		t.Errorf("Len(1,0) = %d, want 2", got)
	}
	if !cache.Contains(1, 0, Coord{1, 2}) {
		t.Errorf("expected (1,0) ray to contain (1,2)")
	}
	if cache.Contains(1, 0, Coord{0, 0}) {
		t.Errorf("did not expect (1,0) ray to contain (0,0)")
	}
}

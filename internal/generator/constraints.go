// Package generator builds solvable puzzles by randomising arrow
// directions, guessing through underconstrained solves, and rotating
// arrows away from contradictions, subject to user-supplied Constraints.
package generator

import (
	"math"

	"arrows-engine/internal/puzzle"
	"arrows-engine/internal/solver"
)

// Constraint is a predicate over a puzzle attempt. PreCheck runs against
// the arrow-only puzzle before solving; Check runs against the solved
// trace. A constraint with nothing to test at one of these stages returns
// true from that method.
type Constraint interface {
	Name() string
	PreCheck(p *puzzle.Puzzle) bool
	Check(result solver.SolverResult) bool
}

// fractionBound holds an optional lower and/or upper fractional bound,
// plus optional absolute count bounds, shared by several constraints.
type fractionBound struct {
	minFraction *float64
	maxFraction *float64
	minCount    *int
	maxCount    *int
}

func (b fractionBound) accepts(count, total int) bool {
	if total == 0 {
		total = 1
	}
	frac := float64(count) / float64(total)
	if b.minFraction != nil && frac < *b.minFraction {
		return false
	}
	if b.maxFraction != nil && frac > *b.maxFraction {
		return false
	}
	if b.minCount != nil && count < *b.minCount {
		return false
	}
	if b.maxCount != nil && count > *b.maxCount {
		return false
	}
	return true
}

// RuleComplexityFraction bounds the fraction or count of solver steps
// whose rule has the given complexity.
type RuleComplexityFraction struct {
	Complexity int
	Bound      fractionBound
}

func (c RuleComplexityFraction) Name() string                      { return "RuleComplexityFraction" }
func (c RuleComplexityFraction) PreCheck(p *puzzle.Puzzle) bool     { return true }
func (c RuleComplexityFraction) Check(result solver.SolverResult) bool {
	count := 0
	for _, step := range result.Steps {
		if step.RuleComplexity == c.Complexity {
			count++
		}
	}
	return c.Bound.accepts(count, len(result.Steps))
}

// NumberFraction bounds the fraction of cells whose committed value
// equals N. Its pre-check derives bounds purely from ray geometry: for
// N=0, cells whose ray length is 0 are exactly the cells committed to 0;
// for N=1, ray length 1 cells are a lower bound and ray length >= 1 an
// upper bound; for N>=2, ray length >= N is an upper bound.
type NumberFraction struct {
	N     int
	Bound fractionBound
}

func (c NumberFraction) Name() string { return "NumberFraction" }

func (c NumberFraction) PreCheck(p *puzzle.Puzzle) bool {
	cache := puzzle.ComputeAllPaths(p)
	total := p.Rows * p.Cols
	switch {
	case c.N == 0:
		count := 0
		for r := 0; r < p.Rows; r++ {
			for col := 0; col < p.Cols; col++ {
				if cache.Len(r, col) == 0 {
					count++
				}
			}
		}
		return c.Bound.accepts(count, total)
	case c.N == 1:
		lower, upper := 0, 0
		for r := 0; r < p.Rows; r++ {
			for col := 0; col < p.Cols; col++ {
				l := cache.Len(r, col)
				if l == 1 {
					lower++
				}
				if l >= 1 {
					upper++
				}
			}
		}
		if c.Bound.minFraction != nil && !boundAllowsAtLeast(c.Bound, upper, total) {
			return false
		}
		if c.Bound.maxFraction != nil && !boundAllowsAtMost(c.Bound, lower, total) {
			return false
		}
		return true
	default:
		upper := 0
		for r := 0; r < p.Rows; r++ {
			for col := 0; col < p.Cols; col++ {
				if cache.Len(r, col) >= c.N {
					upper++
				}
			}
		}
		if c.Bound.minFraction != nil && !boundAllowsAtLeast(c.Bound, upper, total) {
			return false
		}
		return true
	}
}

func boundAllowsAtLeast(b fractionBound, achievable, total int) bool {
	if total == 0 {
		total = 1
	}
	return float64(achievable)/float64(total) >= *b.minFraction-1e-9 || achievable == total
}

func boundAllowsAtMost(b fractionBound, floor, total int) bool {
	if total == 0 {
		total = 1
	}
	return float64(floor)/float64(total) <= *b.maxFraction+1e-9 || floor == 0
}

func (c NumberFraction) Check(result solver.SolverResult) bool {
	p := result.Puzzle
	total := p.Rows * p.Cols
	count := 0
	for r := 0; r < p.Rows; r++ {
		for col := 0; col < p.Cols; col++ {
			cell := p.At(r, col)
			if cell.IsCommit && cell.Value == c.N {
				count++
			}
		}
	}
	return c.Bound.accepts(count, total)
}

// UsesRule requires a named rule to have fired at least min_count times
// or at least min_fraction of all steps.
type UsesRule struct {
	RuleName    string
	MinCount    *int
	MinFraction *float64
}

func (c UsesRule) Name() string                  { return "UsesRule" }
func (c UsesRule) PreCheck(p *puzzle.Puzzle) bool { return true }
func (c UsesRule) Check(result solver.SolverResult) bool {
	count := result.CountsByRule[c.RuleName]
	if c.MinCount != nil && count < *c.MinCount {
		return false
	}
	if c.MinFraction != nil {
		total := len(result.Steps)
		if total == 0 {
			total = 1
		}
		if float64(count)/float64(total) < *c.MinFraction {
			return false
		}
	}
	return true
}

// FollowingArrowsFraction bounds the fraction of cells whose arrow points
// at a neighbour sharing the same direction (an "arrow chain" measure not
// present in the original reference implementation).
type FollowingArrowsFraction struct {
	Bound fractionBound
}

func (c FollowingArrowsFraction) Name() string { return "FollowingArrowsFraction" }
func (c FollowingArrowsFraction) PreCheck(p *puzzle.Puzzle) bool {
	total := p.Rows * p.Cols
	count := followingCount(p)
	return c.Bound.accepts(count, total)
}
func (c FollowingArrowsFraction) Check(result solver.SolverResult) bool {
	p := result.Puzzle
	return c.Bound.accepts(followingCount(p), p.Rows*p.Cols)
}

func followingCount(p *puzzle.Puzzle) int {
	count := 0
	for r := 0; r < p.Rows; r++ {
		for col := 0; col < p.Cols; col++ {
			cell := p.At(r, col)
			dr, dc := cell.Direction.Delta()
			nr, nc := r+dr, col+dc
			if p.InBounds(nr, nc) && p.At(nr, nc).Direction == cell.Direction {
				count++
			}
		}
	}
	return count
}

// PrefilledCellsFraction bounds the fraction of cells committed in the
// initial puzzle (before any solver steps ran). Like
// FollowingArrowsFraction, this has no counterpart in the original
// reference implementation.
type PrefilledCellsFraction struct {
	Bound fractionBound
}

func (c PrefilledCellsFraction) Name() string { return "PrefilledCellsFraction" }
func (c PrefilledCellsFraction) PreCheck(p *puzzle.Puzzle) bool {
	return c.Bound.accepts(countCommitted(p), p.Rows*p.Cols)
}
func (c PrefilledCellsFraction) Check(result solver.SolverResult) bool {
	init := result.InitialPuzzle
	return c.Bound.accepts(countCommitted(init), init.Rows*init.Cols)
}

func countCommitted(p *puzzle.Puzzle) int {
	count := 0
	for r := 0; r < p.Rows; r++ {
		for col := 0; col < p.Cols; col++ {
			if p.At(r, col).IsCommit {
				count++
			}
		}
	}
	return count
}

func ceilFraction(n int, frac float64) int {
	return int(math.Ceil(float64(n) * frac))
}

func maxOf(a, b int) int {
	if a > b {
		return a
	}
	return b
}

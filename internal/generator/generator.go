package generator

import (
	"math/rand"

	"arrows-engine/internal/logic"
	"arrows-engine/internal/puzzle"
	"arrows-engine/internal/solver"
	"arrows-engine/pkg/constants"
)

// Config parameterises a batch or single-attempt generation run.
type Config struct {
	Rows                int
	Cols                int
	AllowDiagonals      bool
	MaxComplexity       *int
	Constraints         []Constraint
	MaxAttempts         int // -1 = unlimited
	PrefilledCellsCount *int
	NJobs               int
	TimeoutSeconds      int
}

// RejectionReason classifies why a single attempt failed.
type RejectionReason string

// Attempt is the outcome of one GenerateOne call.
type Attempt struct {
	Puzzle               *puzzle.Puzzle
	Result               solver.SolverResult
	Accepted             bool
	Rejection            RejectionReason
	RejectedByConstraint string // set when Rejection == constraint
	GuessesUsed          int
	RotationsUsed        int
}

func ruleSubset(rules []logic.Rule, maxComplexity *int) []logic.Rule {
	if maxComplexity == nil {
		return rules
	}
	out := make([]logic.Rule, 0, len(rules))
	for _, r := range rules {
		if r.RuleComplexity() <= *maxComplexity {
			out = append(out, r)
		}
	}
	return out
}

// GenerateOne runs one single-attempt generation using rng for every
// random choice, so that replaying a single attempt never depends on
// interleaving with any other attempt.
func GenerateOne(cfg Config, rules []logic.Rule, rng *rand.Rand) (Attempt, error) {
	active := ruleSubset(rules, cfg.MaxComplexity)
	allowed := puzzle.AllowedDirections(cfg.AllowDiagonals)

	base := puzzle.NewPuzzle(cfg.Rows, cfg.Cols, allowed[0])
	for r := 0; r < cfg.Rows; r++ {
		for c := 0; c < cfg.Cols; c++ {
			base.At(r, c).Direction = allowed[rng.Intn(len(allowed))]
		}
	}

	dampOutwardArrows(base, allowed, rng)

	for _, con := range cfg.Constraints {
		if !con.PreCheck(base) {
			return Attempt{Puzzle: base, Rejection: constants.RejectConstraint, RejectedByConstraint: con.Name()}, nil
		}
	}

	total := cfg.Rows * cfg.Cols
	maxGuesses := maxOf(ceilFraction(total, constants.MaxGuessesFraction), constants.MinGuessOrModificationCap)
	maxRotations := maxOf(ceilFraction(total, constants.MaxModificationsFraction), constants.MinGuessOrModificationCap)

	guessesUsed := 0
	rotationsUsed := 0
	working := base.Clone()

	type guess struct {
		r, c, v int
	}
	var guesses []guess

	opts := solver.SolveOptions{}
	for {
		result, err := solver.Solve(active, working, opts)
		if err != nil {
			return Attempt{}, err
		}

		switch result.Status {
		case solver.Solved:
			for _, con := range cfg.Constraints {
				if !con.Check(result) {
					return Attempt{Puzzle: base, Result: result, Rejection: constants.RejectConstraint, RejectedByConstraint: con.Name()}, nil
				}
			}
			emitted := base.Clone()
			for _, g := range guesses {
				emitted.At(g.r, g.c).Commit(g.v)
			}
			return Attempt{
				Puzzle:        emitted,
				Result:        result,
				Accepted:      true,
				GuessesUsed:   guessesUsed,
				RotationsUsed: rotationsUsed,
			}, nil

		case solver.Underconstrained:
			if guessesUsed >= maxGuesses {
				return Attempt{Puzzle: base, Result: result, Rejection: constants.RejectExcessiveGuessing}, nil
			}
			cell, ok := pickPendingCell(result.Puzzle, rng)
			if !ok {
				return Attempt{Puzzle: base, Result: result, Rejection: constants.RejectNoSolution}, nil
			}
			values := cell.cand.Sorted()
			val := values[rng.Intn(len(values))]
			working = result.Puzzle
			target := working.At(cell.r, cell.c)
			target.Commit(val)
			guesses = append(guesses, guess{cell.r, cell.c, val})
			guessesUsed++
			opts = solver.SolveOptions{ReuseCandidates: true}

		case solver.NoSolution:
			if result.ContradictionLocation == nil {
				return Attempt{Puzzle: base, Result: result, Rejection: constants.RejectNoSolution}, nil
			}
			if rotationsUsed >= maxRotations {
				return Attempt{Puzzle: base, Result: result, Rejection: constants.RejectExcessiveRotation}, nil
			}
			loc := *result.ContradictionLocation
			cell := base.At(loc.Row, loc.Col)
			cell.Direction = puzzle.NextInSet(cell.Direction, allowed)
			rotationsUsed++
			guesses = nil
			guessesUsed = 0
			working = base.Clone()
			opts = solver.SolveOptions{}
		}
	}
}

func dampOutwardArrows(p *puzzle.Puzzle, allowed []puzzle.Direction, rng *rand.Rand) {
	threshold := int(float64(p.Rows*p.Cols) * constants.OutwardThreshold)
	// Bounded: a 1xN/Nx1 grid can have every arrow permanently pointing
	// out of bounds, which no flip can fix. Stop damping rather than spin.
	maxIterations := p.Rows*p.Cols*4 + 4
	for i := 0; i < maxIterations; i++ {
		var outward []puzzle.Coord
		cache := puzzle.ComputeAllPaths(p)
		for r := 0; r < p.Rows; r++ {
			for c := 0; c < p.Cols; c++ {
				if cache.Len(r, c) == 0 {
					outward = append(outward, puzzle.Coord{Row: r, Col: c})
				}
			}
		}
		if len(outward) <= threshold {
			return
		}
		pick := outward[rng.Intn(len(outward))]
		cell := p.At(pick.Row, pick.Col)
		cell.Direction = cell.Direction.Opposite()
	}
}

type pendingCell struct {
	r, c int
	cand puzzle.IntSet
}

func pickPendingCell(p *puzzle.Puzzle, rng *rand.Rand) (pendingCell, bool) {
	var pending []pendingCell
	for r := 0; r < p.Rows; r++ {
		for c := 0; c < p.Cols; c++ {
			cell := p.At(r, c)
			if !cell.IsCommit && cell.Candidates.Len() > 0 {
				pending = append(pending, pendingCell{r, c, cell.Candidates})
			}
		}
	}
	if len(pending) == 0 {
		return pendingCell{}, false
	}
	return pending[rng.Intn(len(pending))], true
}

package solver

import (
	"time"

	"arrows-engine/internal/logic"
	"arrows-engine/internal/puzzle"
	"arrows-engine/internal/universe"
	"arrows-engine/pkg/constants"
)

// Status is the terminal outcome of a Solve call.
type Status int

const (
	Solved Status = iota
	NoSolution
	Underconstrained
)

func (s Status) String() string {
	switch s {
	case Solved:
		return "SOLVED"
	case NoSolution:
		return "NO_SOLUTION"
	case Underconstrained:
		return "UNDERCONSTRAINED"
	default:
		return "UNKNOWN"
	}
}

// SolverStep records one successful rule application.
type SolverStep struct {
	RuleName           string
	RuleComplexity     int
	Witness            universe.Witness
	Conclusions        []logic.Conclusion
	PuzzleSnapshot     *puzzle.Puzzle
	ContradictionTrace []string
}

// SolverResult is the full observable outcome of a Solve call.
type SolverResult struct {
	Status                Status
	Puzzle                *puzzle.Puzzle
	InitialPuzzle         *puzzle.Puzzle
	MaxComplexityUsed     int
	CountsByRule          map[string]int
	SelfTimeByRule        map[string]time.Duration
	Steps                 []SolverStep
	ContradictionLocation *puzzle.Coord
}

// SolveOptions configures a Solve call.
type SolveOptions struct {
	// ReuseCandidates skips candidate initialisation, trusting the
	// puzzle's existing candidate sets (used by the generator when
	// re-solving after a guess, to avoid redoing earlier propagation).
	ReuseCandidates bool
}

// solveContext threads the shared evaluation state through one Solve call,
// including the timing stack used for self-time attribution: each rule
// invocation's wall time has the time attributed to any rules it invoked
// recursively (a BacktrackRule's hypothesis rules) subtracted out.
type solveContext struct {
	universe    *universe.Universe
	result      *SolverResult
	timerStack  []time.Duration
	allRulesAsc []logic.Rule
}

func (ctx *solveContext) timeRule(name string, fn func()) {
	ctx.timerStack = append(ctx.timerStack, 0)
	start := time.Now()
	fn()
	elapsed := time.Since(start)
	idx := len(ctx.timerStack) - 1
	childTime := ctx.timerStack[idx]
	ctx.timerStack = ctx.timerStack[:idx]
	self := elapsed - childTime
	if self < 0 {
		self = 0
	}
	ctx.result.SelfTimeByRule[name] += self
	if len(ctx.timerStack) > 0 {
		ctx.timerStack[len(ctx.timerStack)-1] += elapsed
	}
}

// Solve clones p, initialises candidates (unless ReuseCandidates), and
// runs the complexity-ordered fixpoint loop until either a contradiction
// aborts with NO_SOLUTION or a full pass makes no progress, at which point
// the status is SOLVED iff the puzzle validates, else UNDERCONSTRAINED.
func Solve(rules []logic.Rule, p *puzzle.Puzzle, opts SolveOptions) (SolverResult, error) {
	working := p.Clone()
	if !opts.ReuseCandidates {
		initializeCandidates(working)
	}
	cache := puzzle.ComputeAllPaths(working)
	u := universe.NewUniverse(working, cache)

	result := SolverResult{
		Puzzle:        working,
		InitialPuzzle: p.Clone(),
		CountsByRule:  make(map[string]int),
		SelfTimeByRule: make(map[string]time.Duration),
	}

	ctx := &solveContext{
		universe:    u,
		result:      &result,
		allRulesAsc: logic.SortRulesByComplexity(rules),
	}

	steps := 0
	for {
		progressed := false
		for _, rule := range ctx.allRulesAsc {
			steps++
			if steps > constants.MaxSolverSteps {
				result.Status = Underconstrained
				return result, nil
			}
			var (
				didProgress  bool
				contradicted bool
				contraCoord  puzzle.Coord
				step         SolverStep
				stepErr      error
			)
			switch r := rule.(type) {
			case logic.FORule:
				ctx.timeRule(r.Name, func() {
					didProgress, contradicted, contraCoord, step, stepErr = tryApplyFORule(ctx, r)
				})
			case logic.BacktrackRule:
				ctx.timeRule(r.Name, func() {
					didProgress, contradicted, contraCoord, step, stepErr = tryApplyBacktrackRule(ctx, r)
				})
			default:
				continue
			}
			if stepErr != nil {
				return result, stepErr
			}
			if contradicted {
				result.Status = NoSolution
				loc := contraCoord
				result.ContradictionLocation = &loc
				return result, nil
			}
			if didProgress {
				result.Steps = append(result.Steps, step)
				result.CountsByRule[step.RuleName]++
				if step.RuleComplexity > result.MaxComplexityUsed {
					result.MaxComplexityUsed = step.RuleComplexity
				}
				progressed = true
				break
			}
		}
		if !progressed {
			break
		}
	}

	if working.Validate() {
		result.Status = Solved
	} else {
		result.Status = Underconstrained
	}
	return result, nil
}

func initializeCandidates(p *puzzle.Puzzle) {
	domain := p.Rows
	if p.Cols > domain {
		domain = p.Cols
	}
	for r := 0; r < p.Rows; r++ {
		for c := 0; c < p.Cols; c++ {
			cell := p.At(r, c)
			if cell.IsCommit {
				cell.Candidates = puzzle.NewIntSet(cell.Value)
			} else {
				cell.Candidates = puzzle.FullRange(domain)
			}
		}
	}
}

// tryApplyFORule enumerates rule.Condition's witnesses; for the first
// witness yielding at least one Progress conclusion, it applies every
// conclusion for that witness (aborting immediately on Contradiction) and
// returns the committed step.
func tryApplyFORule(ctx *solveContext, rule logic.FORule) (progressed, contradicted bool, contraCoord puzzle.Coord, step SolverStep, err error) {
	enumErr := ctx.universe.Enumerate(rule.Condition, func(w universe.Witness) bool {
		var applied []logic.Conclusion
		for _, concl := range rule.Conclusions {
			res, coord, applyErr := ApplyConclusion(ctx.universe, concl, w)
			if applyErr != nil {
				err = applyErr
				return false
			}
			if res == Contradiction {
				contradicted = true
				contraCoord = coord
				return false
			}
			if res == Progress {
				applied = append(applied, concl)
			}
		}
		if len(applied) > 0 {
			progressed = true
			step = SolverStep{
				RuleName:       rule.Name,
				RuleComplexity: rule.Complexity,
				Witness:        w,
				Conclusions:    applied,
				PuzzleSnapshot: ctx.universe.Puzzle.Clone(),
			}
			return false
		}
		return true
	})
	if enumErr != nil {
		err = enumErr
	}
	return
}

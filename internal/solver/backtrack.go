package solver

import (
	"fmt"
	"sort"

	"arrows-engine/internal/logic"
	"arrows-engine/internal/puzzle"
	"arrows-engine/internal/universe"
)

// tryApplyBacktrackRule tries, for each pending cell in ascending
// candidate-set-size order and each of its candidate values in turn, a
// tentative commit followed by a bounded search for a contradiction. The
// first value that provably leads to a contradiction is excluded for real;
// everything else is left as found (no assumption survives past this call).
func tryApplyBacktrackRule(ctx *solveContext, rule logic.BacktrackRule) (progressed, contradicted bool, contraCoord puzzle.Coord, step SolverStep, err error) {
	p := ctx.universe.Puzzle
	hypothesisRules := hypothesisRulesFor(ctx, rule)

	type entry struct {
		coord      puzzle.Coord
		candidates []int
	}
	var entries []entry
	for r := 0; r < p.Rows; r++ {
		for c := 0; c < p.Cols; c++ {
			cell := p.At(r, c)
			if !cell.IsCommit && cell.Candidates.Len() > 0 {
				entries = append(entries, entry{puzzle.Coord{Row: r, Col: c}, cell.Candidates.Sorted()})
			}
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return len(entries[i].candidates) < len(entries[j].candidates)
	})

	for _, e := range entries {
		for _, val := range e.candidates {
			snapshot := p.Clone()
			cell := p.At(e.coord.Row, e.coord.Col)
			cell.Commit(val)

			trace, findErr := findContradiction(ctx, rule, hypothesisRules, rule.RuleDepth)

			restoreCellsFrom(p, snapshot)

			if findErr != nil {
				err = findErr
				return
			}
			if trace == nil {
				continue
			}

			fullTrace := append([]string{fmt.Sprintf("Assuming %d,%d is %d:", e.coord.Row, e.coord.Col, val)}, trace...)
			w := universe.Witness{"__cell": universe.PositionValue(e.coord)}
			concl := logic.Exclude{Position: logic.Variable{Name: "__cell"}, Op: logic.OpEq, Value: logic.IntConstant(val)}
			res, coord, applyErr := ApplyConclusion(ctx.universe, concl, w)
			if applyErr != nil {
				err = applyErr
				return
			}
			if res == Contradiction {
				contradicted = true
				contraCoord = coord
				return
			}
			if res == Progress {
				progressed = true
				step = SolverStep{
					RuleName:           rule.Name,
					RuleComplexity:     rule.Complexity,
					Conclusions:        []logic.Conclusion{concl},
					PuzzleSnapshot:     p.Clone(),
					ContradictionTrace: fullTrace,
				}
			}
			// Whether or not the real exclusion moved anything, the
			// hypothesis at (e.coord, val) is resolved; stop scanning.
			return
		}
	}
	return
}

// hypothesisRulesFor selects the FO rules a backtrack rule may invoke
// during its look-ahead: those at or below its configured complexity
// ceiling, in ascending complexity order. Nested backtrack rules are not
// used as hypothesis rules — a backtrack-within-backtrack search is not
// part of this algorithm.
func hypothesisRulesFor(ctx *solveContext, rule logic.BacktrackRule) []logic.FORule {
	var out []logic.FORule
	for _, r := range ctx.allRulesAsc {
		fo, ok := r.(logic.FORule)
		if !ok {
			continue
		}
		if fo.Complexity <= rule.MaxRuleComplexity {
			out = append(out, fo)
		}
	}
	return out
}

// findContradiction performs the recursive hypothetical search: it first
// checks grid consistency (a cell with no candidates, or a committed cell
// whose ray already holds more distinct values than it declares), and
// returns a one-line trace if one is found. At depth 0 no further rules
// are tried. At depth > 0, each hypothesis rule's witnesses are tried in
// turn, and within a witness each conclusion is tried one at a time: it is
// applied, the search recurses one level shallower, and the conclusion is
// undone again before the next one is tried, whether or not that recursion
// found anything.
func findContradiction(ctx *solveContext, rule logic.BacktrackRule, hypothesisRules []logic.FORule, depth int) ([]string, error) {
	if msg, ok := checkConsistency(ctx.universe.Puzzle); !ok {
		return []string{msg}, nil
	}
	if depth == 0 {
		return nil, nil
	}

	for _, hr := range hypothesisRules {
		var trace []string
		var findErr error
		var enumErr error
		ctx.timeRule(hr.Name, func() {
			enumErr = ctx.universe.Enumerate(hr.Condition, func(w universe.Witness) bool {
				subTrace, subErr := tryConclusionsOneAtATime(ctx, rule, hypothesisRules, hr, w, depth)
				if subErr != nil {
					findErr = subErr
					return false
				}
				if subTrace != nil {
					trace = subTrace
					return false
				}
				return true
			})
		})
		if enumErr != nil {
			return nil, enumErr
		}
		if findErr != nil {
			return nil, findErr
		}
		if trace != nil {
			return trace, nil
		}
	}
	return nil, nil
}

// tryConclusionsOneAtATime applies one hypothesis rule's conclusions to a
// single witness in order. Each conclusion is applied, the search recurses
// at depth-1, and the conclusion is undone before the next one is tried; an
// immediate Contradiction ends the attempt without needing to recurse.
func tryConclusionsOneAtATime(ctx *solveContext, rule logic.BacktrackRule, hypothesisRules []logic.FORule, hr logic.FORule, w universe.Witness, depth int) ([]string, error) {
	for _, concl := range hr.Conclusions {
		res, undo, applyErr := ApplyConclusionWithUndo(ctx.universe, concl, w)
		if applyErr != nil {
			return nil, applyErr
		}
		if res == Contradiction {
			return []string{fmt.Sprintf("applying %s leads to an immediate contradiction", hr.Name)}, nil
		}
		if res != Progress {
			continue
		}

		subTrace, subErr := findContradiction(ctx, rule, hypothesisRules, depth-1)
		if subErr != nil {
			undo.Restore(ctx.universe.Puzzle)
			return nil, subErr
		}
		undo.Restore(ctx.universe.Puzzle)
		if subTrace != nil {
			return append([]string{fmt.Sprintf("applying %s:", hr.Name)}, subTrace...), nil
		}
	}
	return nil, nil
}

// checkConsistency reports the grid's first detected inconsistency, if any.
func checkConsistency(p *puzzle.Puzzle) (string, bool) {
	cache := puzzle.ComputeAllPaths(p)
	for r := 0; r < p.Rows; r++ {
		for c := 0; c < p.Cols; c++ {
			cell := p.At(r, c)
			if !cell.IsCommit && cell.Candidates.Len() == 0 {
				return fmt.Sprintf("cell (%d,%d) has no remaining candidates", r, c), false
			}
			if cell.IsCommit {
				distinct := countDistinctCommittedOnRay(p, cache, r, c)
				if distinct > cell.Value {
					return fmt.Sprintf("cell (%d,%d) declares %d but its ray already holds %d distinct values", r, c, cell.Value, distinct), false
				}
			}
		}
	}
	return "", true
}

func countDistinctCommittedOnRay(p *puzzle.Puzzle, cache puzzle.PathCache, r, c int) int {
	seen := make(map[int]struct{})
	for _, q := range cache.PathsFrom(r, c) {
		cell := p.At(q.Row, q.Col)
		if cell.IsCommit {
			seen[cell.Value] = struct{}{}
		}
	}
	return len(seen)
}

func restoreCellsFrom(p *puzzle.Puzzle, snapshot *puzzle.Puzzle) {
	for r := 0; r < p.Rows; r++ {
		for c := 0; c < p.Cols; c++ {
			dst := p.At(r, c)
			src := snapshot.At(r, c)
			dst.IsCommit = src.IsCommit
			dst.Value = src.Value
			dst.Candidates = src.Candidates.Clone()
			dst.Direction = src.Direction
		}
	}
}

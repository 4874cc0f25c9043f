// Package solver drives rules against a puzzle to fixpoint: the conclusion
// applier mutates per-cell candidates, the FO loop commits the first
// progress-making witness each pass, and bounded backtrack rules run
// hypothetical look-ahead to discover contradictions.
package solver

import (
	"arrows-engine/internal/logic"
	"arrows-engine/internal/puzzle"
	"arrows-engine/internal/universe"
)

// ApplyResult is the outcome of applying one conclusion.
type ApplyResult int

const (
	NoProgress ApplyResult = iota
	Progress
	Contradiction
)

// evalNewCandidates evaluates a conclusion against a witness, returning
// the position cell coordinate, the new candidate set it implies, and
// whether it applies at all (false if the position evaluates to OOB).
func evalNewCandidates(u *universe.Universe, c logic.Conclusion, w universe.Witness) (puzzle.Coord, puzzle.IntSet, bool, error) {
	var posTerm logic.Term
	switch v := c.(type) {
	case logic.Set:
		posTerm = v.Position
	case logic.Exclude:
		posTerm = v.Position
	case logic.Only:
		posTerm = v.Position
	}
	posVal, err := u.EvalTerm(posTerm, w)
	if err != nil {
		return puzzle.Coord{}, nil, false, err
	}
	if posVal.Kind != universe.KindPosition {
		return puzzle.Coord{}, nil, false, nil
	}
	coord := posVal.Pos
	cell := u.Puzzle.At(coord.Row, coord.Col)
	current := cell.EffectiveCandidates()

	switch v := c.(type) {
	case logic.Set:
		valVal, err := u.EvalTerm(v.Value, w)
		if err != nil {
			return coord, nil, true, err
		}
		if valVal.Kind != universe.KindNumber {
			return coord, puzzle.IntSet{}, true, nil // non-integer value: contradiction
		}
		return coord, current.Intersect(puzzle.NewIntSet(valVal.Num)), true, nil

	case logic.Exclude:
		valVal, err := u.EvalTerm(v.Value, w)
		if err != nil {
			return coord, nil, true, err
		}
		if valVal.Kind != universe.KindNumber {
			return coord, current.Clone(), true, nil // excluding against nil removes nothing
		}
		newSet := make(puzzle.IntSet)
		for cand := range current {
			if !v.Op.Apply(cand, valVal.Num) {
				newSet[cand] = struct{}{}
			}
		}
		return coord, newSet, true, nil

	case logic.Only:
		allowed := make(puzzle.IntSet)
		for _, term := range v.Values {
			val, err := u.EvalTerm(term, w)
			if err != nil {
				return coord, nil, true, err
			}
			if val.Kind == universe.KindNumber {
				allowed.Add(val.Num)
			}
		}
		return coord, current.Intersect(allowed), true, nil

	default:
		return coord, nil, false, nil
	}
}

// ApplyConclusion mutates the puzzle per the algorithm of the conclusion
// applier: OOB positions are NO_PROGRESS; a non-integer required value or
// an empty resulting set is CONTRADICTION, in which case the cell is left
// with empty candidates and uncommitted so the caller can report its
// coordinate as the contradiction location; an unchanged set is
// NO_PROGRESS; otherwise the new set is written back (committing the cell
// if it narrows to one element) and PROGRESS is reported.
func ApplyConclusion(u *universe.Universe, c logic.Conclusion, w universe.Witness) (ApplyResult, puzzle.Coord, error) {
	coord, newSet, applicable, err := evalNewCandidates(u, c, w)
	if err != nil {
		return NoProgress, coord, err
	}
	if !applicable {
		return NoProgress, coord, nil
	}
	cell := u.Puzzle.At(coord.Row, coord.Col)
	if len(newSet) == 0 {
		cell.Candidates = make(puzzle.IntSet)
		cell.IsCommit = false
		return Contradiction, coord, nil
	}
	if newSet.Equals(cell.EffectiveCandidates()) {
		return NoProgress, coord, nil
	}
	cell.Candidates = newSet
	cell.IsCommit = false
	if v, ok := newSet.Only(); ok {
		cell.Commit(v)
	}
	return Progress, coord, nil
}

// Undo restores a cell's prior state, precisely reversing one
// ApplyConclusion call that reported Progress.
type Undo struct {
	Coord        puzzle.Coord
	PriorCommit  bool
	PriorValue   int
	PriorCandSet puzzle.IntSet
}

// Restore undoes the mutation this Undo records.
func (u Undo) Restore(p *puzzle.Puzzle) {
	cell := p.At(u.Coord.Row, u.Coord.Col)
	cell.IsCommit = u.PriorCommit
	cell.Value = u.PriorValue
	cell.Candidates = u.PriorCandSet
}

// ApplyConclusionWithUndo is ApplyConclusion's undo-exposing twin, used
// exclusively inside bounded backtrack search. On Contradiction, no
// mutation is performed (the empty set is never written through this
// form); on Progress, it returns an Undo the caller can later Restore.
func ApplyConclusionWithUndo(u *universe.Universe, c logic.Conclusion, w universe.Witness) (ApplyResult, *Undo, error) {
	coord, newSet, applicable, err := evalNewCandidates(u, c, w)
	if err != nil {
		return NoProgress, nil, err
	}
	if !applicable {
		return NoProgress, nil, nil
	}
	if len(newSet) == 0 {
		return Contradiction, nil, nil
	}
	cell := u.Puzzle.At(coord.Row, coord.Col)
	if newSet.Equals(cell.EffectiveCandidates()) {
		return NoProgress, nil, nil
	}
	prior := Undo{
		Coord:        coord,
		PriorCommit:  cell.IsCommit,
		PriorValue:   cell.Value,
		PriorCandSet: cell.Candidates.Clone(),
	}
	cell.Candidates = newSet
	cell.IsCommit = false
	if v, ok := newSet.Only(); ok {
		cell.Commit(v)
	}
	return Progress, &prior, nil
}

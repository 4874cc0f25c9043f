package universe

import "arrows-engine/internal/puzzle"

type functionImpl func(u *Universe, args []Value) (Value, error)
type relationImpl func(u *Universe, args []Value) (bool, error)

// Universe bundles the per-sort element domains and the function/relation
// dispatch tables interpreted against one puzzle. It does not own the
// puzzle; functions close over the borrowed pointer for the duration of a
// single solve call.
type Universe struct {
	Puzzle *puzzle.Puzzle
	Cache  puzzle.PathCache

	positions []Value
	numbers   []Value

	functions map[string]functionImpl
	relations map[string]relationImpl
}

// NewUniverse builds the Universe for p using the given (already computed)
// path cache. Position elements are every grid coordinate (OOB is never a
// domain element — it is the quantifier-exclusion sentinel); number
// elements are 0..max(rows,cols)-1 (nil is likewise never a domain
// element).
func NewUniverse(p *puzzle.Puzzle, cache puzzle.PathCache) *Universe {
	u := &Universe{Puzzle: p, Cache: cache}

	u.positions = make([]Value, 0, p.Rows*p.Cols)
	for r := 0; r < p.Rows; r++ {
		for c := 0; c < p.Cols; c++ {
			u.positions = append(u.positions, PositionValue(puzzle.Coord{Row: r, Col: c}))
		}
	}

	domain := p.Rows
	if p.Cols > domain {
		domain = p.Cols
	}
	u.numbers = make([]Value, domain)
	for i := 0; i < domain; i++ {
		u.numbers[i] = NumberValue(i)
	}

	u.functions = map[string]functionImpl{
		"next":                     fnNext,
		"val":                      fnVal,
		"ahead":                    fnAhead,
		"behind":                   fnBehind,
		"ahead_free":               fnAheadFree,
		"between_free":             fnBetweenFree,
		"dir":                      fnDir,
		"sees_distinct":            fnSeesDistinct,
		"sees_distinct_candidates": fnSeesDistinctCandidates,
		"min_candidate":            fnMinCandidate,
		"max_candidate":            fnMaxCandidate,
		"+":                        fnAdd,
		"-":                        fnSub,
	}

	u.relations = map[string]relationImpl{
		"points_at":  relPointsAt,
		"candidate":  relCandidate,
		"sees_value": relSeesValue,
		"<":          relLt,
		">":          relGt,
		"<=":         relLe,
		">=":         relGe,
	}

	return u
}

// positionElements and numberElements return the quantifier domain of the
// POSITION and NUMBER sorts; the OOB and nil sentinels are never members.
func (u *Universe) positionElements() []Value { return u.positions }
func (u *Universe) numberElements() []Value   { return u.numbers }

func coordOf(r, c int) puzzle.Coord { return puzzle.Coord{Row: r, Col: c} }

package universe

// relPointsAt is true iff q is on p's ray. O(1) via the cache.
func relPointsAt(u *Universe, args []Value) (bool, error) {
	p, q := args[0], args[1]
	if p.Kind != KindPosition || q.Kind != KindPosition {
		return false, nil
	}
	return u.Cache.Contains(p.Pos.Row, p.Pos.Col, q.Pos), nil
}

// relCandidate is true iff i is in p's effective candidate set.
func relCandidate(u *Universe, args []Value) (bool, error) {
	p, i := args[0], args[1]
	if p.Kind != KindPosition || i.Kind != KindNumber {
		return false, nil
	}
	cell := u.Puzzle.At(p.Pos.Row, p.Pos.Col)
	return cell.EffectiveCandidates().Has(i.Num), nil
}

// relSeesValue is true iff any cell on p's ray is committed to i.
func relSeesValue(u *Universe, args []Value) (bool, error) {
	p, i := args[0], args[1]
	if p.Kind != KindPosition || i.Kind != KindNumber {
		return false, nil
	}
	for _, coord := range u.Cache.PathsFrom(p.Pos.Row, p.Pos.Col) {
		cell := u.Puzzle.At(coord.Row, coord.Col)
		if cell.IsCommit && cell.Value == i.Num {
			return true, nil
		}
	}
	return false, nil
}

func numberPair(args []Value) (int, int, bool) {
	a, b := args[0], args[1]
	if a.Kind != KindNumber || b.Kind != KindNumber {
		return 0, 0, false
	}
	return a.Num, b.Num, true
}

func relLt(u *Universe, args []Value) (bool, error) {
	a, b, ok := numberPair(args)
	return ok && a < b, nil
}

func relGt(u *Universe, args []Value) (bool, error) {
	a, b, ok := numberPair(args)
	return ok && a > b, nil
}

func relLe(u *Universe, args []Value) (bool, error) {
	a, b, ok := numberPair(args)
	return ok && a <= b, nil
}

func relGe(u *Universe, args []Value) (bool, error) {
	a, b, ok := numberPair(args)
	return ok && a >= b, nil
}

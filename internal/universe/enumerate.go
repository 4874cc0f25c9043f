package universe

import "arrows-engine/internal/logic"

// Enumerate produces every witness assignment satisfying phi, calling
// visit once per witness. visit returns false to request early
// termination (Enumerate then stops without visiting further witnesses).
// Evaluation errors (unknown symbol, undefined variable) abort the walk
// immediately and are returned.
//
// This is a callback-driven traversal rather than a generator/iterator:
// the module targets Go 1.22, before range-over-func, so a visit callback
// plays the role the reference implementation's generator functions play.
func (u *Universe) Enumerate(phi logic.Formula, visit func(Witness) bool) error {
	assign := make(Witness)
	_, err := u.check(phi, assign, visit)
	return err
}

// check is the recursive dispatcher. It returns (cont, err): cont is false
// when visit requested early termination (propagated up through all
// enclosing loops); err is non-nil on an evaluation failure.
func (u *Universe) check(phi logic.Formula, assign Witness, visit func(Witness) bool) (bool, error) {
	switch f := phi.(type) {
	case logic.Relation:
		ok, err := u.evalRelation(f.Name, f.Args, assign)
		if err != nil {
			return true, err
		}
		if !ok {
			return true, nil
		}
		return visit(assign.Clone()), nil

	case logic.Equality:
		left, err := u.EvalTerm(f.Left, assign)
		if err != nil {
			return true, err
		}
		right, err := u.EvalTerm(f.Right, assign)
		if err != nil {
			return true, err
		}
		if !left.Equals(right) {
			return true, nil
		}
		return visit(assign.Clone()), nil

	case logic.Not:
		return u.checkNot(f.Formula, assign, visit)

	case logic.And:
		return u.checkAnd(f.Formulas, 0, assign, visit)

	case logic.Or:
		return u.checkOr(f.Formulas, assign, visit)

	case logic.ExistsPosition:
		return u.checkExists(f.Vars, u.positionElements(), f.Formula, assign, visit)

	case logic.ExistsNumber:
		return u.checkExists(f.Vars, u.numberElements(), f.Formula, assign, visit)

	case logic.ForAllPosition:
		return u.checkForAll(f.Vars, u.positionElements(), f.Formula, assign, visit)

	case logic.ForAllNumber:
		return u.checkForAll(f.Vars, u.numberElements(), f.Formula, assign, visit)

	default:
		return true, &logic.UnknownSymbolError{Name: "<unknown formula kind>"}
	}
}

// checkNot yields one empty witness iff inner has no witness under the
// current assignment (closed-world negation over the witness search).
func (u *Universe) checkNot(inner logic.Formula, assign Witness, visit func(Witness) bool) (bool, error) {
	found := false
	_, err := u.check(inner, assign, func(Witness) bool {
		found = true
		return false // one witness is enough to know Not fails
	})
	if err != nil {
		return true, err
	}
	if found {
		return true, nil
	}
	return visit(assign.Clone()), nil
}

// checkAnd yields the cross-product join: for every witness of
// formulas[idx] it recurses on formulas[idx+1:] under the extended
// assignment.
func (u *Universe) checkAnd(formulas []logic.Formula, idx int, assign Witness, visit func(Witness) bool) (bool, error) {
	if idx == len(formulas) {
		return visit(assign.Clone()), nil
	}
	var nestedErr error
	cont, err := u.check(formulas[idx], assign, func(Witness) bool {
		c, e := u.checkAnd(formulas, idx+1, assign, visit)
		if e != nil {
			nestedErr = e
			return false
		}
		return c
	})
	if err != nil {
		return true, err
	}
	if nestedErr != nil {
		return true, nestedErr
	}
	return cont, nil
}

// checkOr yields from each disjunct in order.
func (u *Universe) checkOr(formulas []logic.Formula, assign Witness, visit func(Witness) bool) (bool, error) {
	for _, f := range formulas {
		cont, err := u.check(f, assign, visit)
		if err != nil {
			return true, err
		}
		if !cont {
			return false, nil
		}
	}
	return true, nil
}

// checkExists iterates over the domain elements (tuples when multiple
// variables are bound together), extending the assignment and recursing;
// the yielded witness includes the binding.
func (u *Universe) checkExists(vars []logic.Variable, domain []Value, formula logic.Formula, assign Witness, visit func(Witness) bool) (bool, error) {
	var rec func(i int) (bool, error)
	rec = func(i int) (bool, error) {
		if i == len(vars) {
			return u.check(formula, assign, visit)
		}
		name := vars[i].Name
		for _, elem := range domain {
			assign[name] = elem
			cont, err := rec(i + 1)
			delete(assign, name)
			if err != nil {
				return true, err
			}
			if !cont {
				return false, nil
			}
		}
		return true, nil
	}
	return rec(0)
}

// checkForAll yields one empty witness iff, for every element tuple over
// the domain, the inner formula yields at least one witness.
func (u *Universe) checkForAll(vars []logic.Variable, domain []Value, formula logic.Formula, assign Witness, visit func(Witness) bool) (bool, error) {
	satisfied := true
	var rec func(i int) error
	rec = func(i int) error {
		if !satisfied {
			return nil
		}
		if i == len(vars) {
			found := false
			_, err := u.check(formula, assign, func(Witness) bool {
				found = true
				return false
			})
			if err != nil {
				return err
			}
			if !found {
				satisfied = false
			}
			return nil
		}
		name := vars[i].Name
		for _, elem := range domain {
			if !satisfied {
				break
			}
			assign[name] = elem
			err := rec(i + 1)
			delete(assign, name)
			if err != nil {
				return err
			}
		}
		return nil
	}
	if err := rec(0); err != nil {
		return true, err
	}
	if !satisfied {
		return true, nil
	}
	return visit(assign.Clone()), nil
}

package optimize

import "arrows-engine/internal/logic"

// FindEqualitySubstitution scans conjuncts for a top-level Equality that
// pins varName to a term not containing varName, and returns that term.
// Only plain Equality conjuncts are considered — an equality nested inside
// a Not is never a candidate, which is how "skip the rewrite when the
// equality is inside a negation" falls out naturally.
func FindEqualitySubstitution(conjuncts []logic.Formula, varName string) (logic.Term, bool) {
	t, _, ok := findEqualitySubstitutionIndexed(conjuncts, varName)
	return t, ok
}

// findEqualitySubstitutionIndexed is FindEqualitySubstitution plus the
// index of the matched conjunct, so the caller can drop it without relying
// on Term equality (Term implementations embed slices and are not
// comparable with ==).
func findEqualitySubstitutionIndexed(conjuncts []logic.Formula, varName string) (logic.Term, int, bool) {
	for i, c := range conjuncts {
		eq, ok := c.(logic.Equality)
		if !ok {
			continue
		}
		if lv, ok := eq.Left.(logic.Variable); ok && lv.Name == varName {
			if _, occurs := FreeVariablesTerm(eq.Right)[varName]; !occurs {
				return eq.Right, i, true
			}
		}
		if rv, ok := eq.Right.(logic.Variable); ok && rv.Name == varName {
			if _, occurs := FreeVariablesTerm(eq.Left)[varName]; !occurs {
				return eq.Left, i, true
			}
		}
	}
	return nil, -1, false
}

// elimination records one variable eliminated by equality substitution, so
// the caller can replay it on the rule's conclusions.
type elimination struct {
	Name        string
	Replacement logic.Term
	Sort        logic.Sort
}

func flattenAnd(f logic.Formula) []logic.Formula {
	if and, ok := f.(logic.And); ok {
		return and.Formulas
	}
	return []logic.Formula{f}
}

func rebuildAnd(conjuncts []logic.Formula) logic.Formula {
	if len(conjuncts) == 0 {
		return logic.And{}
	}
	if len(conjuncts) == 1 {
		return conjuncts[0]
	}
	return logic.And{Formulas: conjuncts}
}

func removeConjunctAt(conjuncts []logic.Formula, idx int) []logic.Formula {
	out := make([]logic.Formula, 0, len(conjuncts)-1)
	out = append(out, conjuncts[:idx]...)
	out = append(out, conjuncts[idx+1:]...)
	return out
}

// eliminateQuantifiersInFormula walks f, performing existential-equality
// elimination at each ExistsPosition/ExistsNumber node whose body is (or
// flattens to) a conjunction. It returns the rewritten formula plus the
// list of eliminations performed so the caller can replay them on
// conclusions. A POSITION variable is only eliminated when its replacement
// term still mentions another (retained) variable — so conclusions stay
// anchored to a cell rather than collapsing to a closed term (this
// repository's resolution of the "retained position variable" open
// question). NUMBER variables have no such restriction.
//
// Eliminations performed strictly inside a Not or an Or branch are not
// propagated to the caller: those bindings are not visible in the rule's
// existential prefix, so conclusions can never legally reference them.
func eliminateQuantifiersInFormula(f logic.Formula) (logic.Formula, []elimination) {
	switch v := f.(type) {
	case logic.ExistsPosition:
		return eliminateExists(v.Vars, v.Formula, logic.Position)
	case logic.ExistsNumber:
		return eliminateExists(v.Vars, v.Formula, logic.Number)
	case logic.ForAllPosition:
		body, _ := eliminateQuantifiersInFormula(v.Formula)
		return logic.ForAllPosition{Vars: v.Vars, Formula: body}, nil
	case logic.ForAllNumber:
		body, _ := eliminateQuantifiersInFormula(v.Formula)
		return logic.ForAllNumber{Vars: v.Vars, Formula: body}, nil
	case logic.And:
		fs := make([]logic.Formula, len(v.Formulas))
		var elims []elimination
		for i, sub := range v.Formulas {
			rewritten, e := eliminateQuantifiersInFormula(sub)
			fs[i] = rewritten
			elims = append(elims, e...)
		}
		return logic.And{Formulas: fs}, elims
	case logic.Or:
		fs := make([]logic.Formula, len(v.Formulas))
		for i, sub := range v.Formulas {
			rewritten, _ := eliminateQuantifiersInFormula(sub)
			fs[i] = rewritten
		}
		return logic.Or{Formulas: fs}, nil
	case logic.Not:
		body, _ := eliminateQuantifiersInFormula(v.Formula)
		return logic.Not{Formula: body}, nil
	default:
		return f, nil
	}
}

func eliminateExists(vars []logic.Variable, body logic.Formula, sort logic.Sort) (logic.Formula, []elimination) {
	innerBody, innerElims := eliminateQuantifiersInFormula(body)
	conjuncts := flattenAnd(innerBody)

	var remaining []logic.Variable
	var elims []elimination
	elims = append(elims, innerElims...)

	for _, bv := range vars {
		t, idx, ok := findEqualitySubstitutionIndexed(conjuncts, bv.Name)
		if ok && sort == logic.Position {
			if len(FreeVariablesTerm(t)) == 0 {
				ok = false // would orphan the conclusion's anchor
			}
		}
		if !ok {
			remaining = append(remaining, bv)
			continue
		}
		conjuncts = removeConjunctAt(conjuncts, idx)
		for i, c := range conjuncts {
			conjuncts[i] = SubstituteFormula(c, bv.Name, t)
		}
		elims = append(elims, elimination{Name: bv.Name, Replacement: t, Sort: sort})
	}

	newBody := rebuildAnd(conjuncts)
	if len(remaining) == 0 {
		return newBody, elims
	}
	if sort == logic.Position {
		return logic.ExistsPosition{Vars: remaining, Formula: newBody}, elims
	}
	return logic.ExistsNumber{Vars: remaining, Formula: newBody}, elims
}

// Package optimize rewrites a rule's condition formula to preserve its
// witness set (modulo renaming of variables that disappear) while cutting
// enumeration work, via existential-equality elimination and quantifier
// miniscoping. Every rewrite must be followed by a fresh type check
// (package typecheck) by the caller.
package optimize

import "arrows-engine/internal/logic"

// FreeVariablesTerm returns the set of variable names occurring in t.
func FreeVariablesTerm(t logic.Term) map[string]struct{} {
	out := make(map[string]struct{})
	collectTermVars(t, out)
	return out
}

func collectTermVars(t logic.Term, out map[string]struct{}) {
	switch v := t.(type) {
	case logic.Variable:
		out[v.Name] = struct{}{}
	case logic.Constant:
		// no variables
	case logic.FunctionCall:
		for _, a := range v.Args {
			collectTermVars(a, out)
		}
	}
}

// FreeVariablesFormula returns the set of variable names free in f (bound
// variables of its own quantifiers are excluded).
func FreeVariablesFormula(f logic.Formula) map[string]struct{} {
	out := make(map[string]struct{})
	collectFormulaVars(f, out)
	return out
}

func collectFormulaVars(f logic.Formula, out map[string]struct{}) {
	switch v := f.(type) {
	case logic.Relation:
		for _, a := range v.Args {
			collectTermVars(a, out)
		}
	case logic.Equality:
		collectTermVars(v.Left, out)
		collectTermVars(v.Right, out)
	case logic.Not:
		collectFormulaVars(v.Formula, out)
	case logic.And:
		for _, sub := range v.Formulas {
			collectFormulaVars(sub, out)
		}
	case logic.Or:
		for _, sub := range v.Formulas {
			collectFormulaVars(sub, out)
		}
	case logic.ExistsPosition:
		collectQuantifierVars(v.Vars, v.Formula, out)
	case logic.ExistsNumber:
		collectQuantifierVars(v.Vars, v.Formula, out)
	case logic.ForAllPosition:
		collectQuantifierVars(v.Vars, v.Formula, out)
	case logic.ForAllNumber:
		collectQuantifierVars(v.Vars, v.Formula, out)
	}
}

func collectQuantifierVars(bound []logic.Variable, body logic.Formula, out map[string]struct{}) {
	inner := make(map[string]struct{})
	collectFormulaVars(body, inner)
	boundSet := make(map[string]struct{}, len(bound))
	for _, v := range bound {
		boundSet[v.Name] = struct{}{}
	}
	for name := range inner {
		if _, isBound := boundSet[name]; !isBound {
			out[name] = struct{}{}
		}
	}
}

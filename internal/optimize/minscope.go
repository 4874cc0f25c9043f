package optimize

import "arrows-engine/internal/logic"

// Minscope pushes each bound variable of an existential down into the
// minimal conjunct subset that mentions it, recursing through
// And/Or/Not/ForAll. Unused bound variables are pruned.
func Minscope(phi logic.Formula) logic.Formula {
	switch v := phi.(type) {
	case logic.ExistsPosition:
		return minscopeExists(v.Vars, v.Formula, logic.Position)
	case logic.ExistsNumber:
		return minscopeExists(v.Vars, v.Formula, logic.Number)
	case logic.ForAllPosition:
		return logic.ForAllPosition{Vars: v.Vars, Formula: Minscope(v.Formula)}
	case logic.ForAllNumber:
		return logic.ForAllNumber{Vars: v.Vars, Formula: Minscope(v.Formula)}
	case logic.And:
		fs := make([]logic.Formula, len(v.Formulas))
		for i, f := range v.Formulas {
			fs[i] = Minscope(f)
		}
		return logic.And{Formulas: fs}
	case logic.Or:
		fs := make([]logic.Formula, len(v.Formulas))
		for i, f := range v.Formulas {
			fs[i] = Minscope(f)
		}
		return logic.Or{Formulas: fs}
	case logic.Not:
		return logic.Not{Formula: Minscope(v.Formula)}
	default:
		return phi
	}
}

func minscopeExists(vars []logic.Variable, body logic.Formula, sort logic.Sort) logic.Formula {
	inner := Minscope(body)
	conjuncts := flattenAnd(inner)

	current := make([]logic.Formula, len(conjuncts))
	copy(current, conjuncts)
	var retained []logic.Variable

	for _, v := range vars {
		var using, notUsing []logic.Formula
		for _, c := range current {
			if _, ok := FreeVariablesFormula(c)[v.Name]; ok {
				using = append(using, c)
			} else {
				notUsing = append(notUsing, c)
			}
		}
		switch {
		case len(notUsing) > 0 && len(using) > 0:
			var sub logic.Formula
			if len(using) == 1 {
				sub = using[0]
			} else {
				sub = logic.And{Formulas: using}
			}
			var pushed logic.Formula
			if sort == logic.Position {
				pushed = logic.ExistsPosition{Vars: []logic.Variable{v}, Formula: sub}
			} else {
				pushed = logic.ExistsNumber{Vars: []logic.Variable{v}, Formula: sub}
			}
			current = append(notUsing, pushed)
		case len(using) == 0:
			// v is unused in this scope; drop it.
		default:
			retained = append(retained, v)
		}
	}

	body2 := rebuildAnd(current)
	if len(retained) == 0 {
		return body2
	}
	if sort == logic.Position {
		return logic.ExistsPosition{Vars: retained, Formula: body2}
	}
	return logic.ExistsNumber{Vars: retained, Formula: body2}
}

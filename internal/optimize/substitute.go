package optimize

import "arrows-engine/internal/logic"

// SubstituteTerm replaces every occurrence of Variable(name) with repl
// inside t.
func SubstituteTerm(t logic.Term, name string, repl logic.Term) logic.Term {
	switch v := t.(type) {
	case logic.Variable:
		if v.Name == name {
			return repl
		}
		return v
	case logic.Constant:
		return v
	case logic.FunctionCall:
		args := make([]logic.Term, len(v.Args))
		for i, a := range v.Args {
			args[i] = SubstituteTerm(a, name, repl)
		}
		return logic.FunctionCall{Name: v.Name, Args: args}
	default:
		return t
	}
}

// SubstituteFormula replaces every free occurrence of Variable(name) with
// repl inside f. Recursion stops rewriting within a quantifier that
// re-binds the same name (shadowing).
func SubstituteFormula(f logic.Formula, name string, repl logic.Term) logic.Formula {
	switch v := f.(type) {
	case logic.Relation:
		args := make([]logic.Term, len(v.Args))
		for i, a := range v.Args {
			args[i] = SubstituteTerm(a, name, repl)
		}
		return logic.Relation{Name: v.Name, Args: args}
	case logic.Equality:
		return logic.Equality{Left: SubstituteTerm(v.Left, name, repl), Right: SubstituteTerm(v.Right, name, repl)}
	case logic.Not:
		return logic.Not{Formula: SubstituteFormula(v.Formula, name, repl)}
	case logic.And:
		fs := make([]logic.Formula, len(v.Formulas))
		for i, sub := range v.Formulas {
			fs[i] = SubstituteFormula(sub, name, repl)
		}
		return logic.And{Formulas: fs}
	case logic.Or:
		fs := make([]logic.Formula, len(v.Formulas))
		for i, sub := range v.Formulas {
			fs[i] = SubstituteFormula(sub, name, repl)
		}
		return logic.Or{Formulas: fs}
	case logic.ExistsPosition:
		if shadows(v.Vars, name) {
			return v
		}
		return logic.ExistsPosition{Vars: v.Vars, Formula: SubstituteFormula(v.Formula, name, repl)}
	case logic.ExistsNumber:
		if shadows(v.Vars, name) {
			return v
		}
		return logic.ExistsNumber{Vars: v.Vars, Formula: SubstituteFormula(v.Formula, name, repl)}
	case logic.ForAllPosition:
		if shadows(v.Vars, name) {
			return v
		}
		return logic.ForAllPosition{Vars: v.Vars, Formula: SubstituteFormula(v.Formula, name, repl)}
	case logic.ForAllNumber:
		if shadows(v.Vars, name) {
			return v
		}
		return logic.ForAllNumber{Vars: v.Vars, Formula: SubstituteFormula(v.Formula, name, repl)}
	default:
		return f
	}
}

func shadows(vars []logic.Variable, name string) bool {
	for _, v := range vars {
		if v.Name == name {
			return true
		}
	}
	return false
}

// SubstituteConclusion replaces every occurrence of Variable(name) with
// repl inside a conclusion's terms.
func SubstituteConclusion(c logic.Conclusion, name string, repl logic.Term) logic.Conclusion {
	switch v := c.(type) {
	case logic.Set:
		return logic.Set{
			Position: SubstituteTerm(v.Position, name, repl),
			Value:    SubstituteTerm(v.Value, name, repl),
		}
	case logic.Exclude:
		return logic.Exclude{
			Position: SubstituteTerm(v.Position, name, repl),
			Op:       v.Op,
			Value:    SubstituteTerm(v.Value, name, repl),
		}
	case logic.Only:
		values := make([]logic.Term, len(v.Values))
		for i, val := range v.Values {
			values[i] = SubstituteTerm(val, name, repl)
		}
		return logic.Only{Position: SubstituteTerm(v.Position, name, repl), Values: values}
	default:
		return c
	}
}

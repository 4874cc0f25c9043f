package universe

import "arrows-engine/internal/logic"

// EvalTerm evaluates t under the given assignment. A Variable not present
// in assign fails with logic.UndefinedVariableError; a FunctionCall naming
// an unknown function fails with logic.UnknownSymbolError.
func (u *Universe) EvalTerm(t logic.Term, assign Witness) (Value, error) {
	switch v := t.(type) {
	case logic.Variable:
		val, ok := assign[v.Name]
		if !ok {
			return Value{}, &logic.UndefinedVariableError{Name: v.Name}
		}
		return val, nil
	case logic.Constant:
		if v.IsInt {
			return NumberValue(v.Int), nil
		}
		switch v.Symbol {
		case "OOB":
			return OOBValue(), nil
		case "nil":
			return NilValue(), nil
		default:
			return Value{}, &logic.UnknownSymbolError{Name: v.Symbol}
		}
	case logic.FunctionCall:
		fn, ok := u.functions[v.Name]
		if !ok {
			return Value{}, &logic.UnknownSymbolError{Name: v.Name}
		}
		args := make([]Value, len(v.Args))
		for i, a := range v.Args {
			val, err := u.EvalTerm(a, assign)
			if err != nil {
				return Value{}, err
			}
			args[i] = val
		}
		return fn(u, args)
	default:
		return Value{}, &logic.UnknownSymbolError{Name: "<unknown term kind>"}
	}
}

// evalRelation evaluates a named relation over evaluated args.
func (u *Universe) evalRelation(name string, argTerms []logic.Term, assign Witness) (bool, error) {
	rel, ok := u.relations[name]
	if !ok {
		return false, &logic.UnknownSymbolError{Name: name}
	}
	args := make([]Value, len(argTerms))
	for i, a := range argTerms {
		val, err := u.EvalTerm(a, assign)
		if err != nil {
			return false, err
		}
		args[i] = val
	}
	return rel(u, args)
}

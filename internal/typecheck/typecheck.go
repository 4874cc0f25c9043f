// Package typecheck statically checks a rule's terms, formulas, and
// conclusions against three tables: constant sorts, function signatures,
// and relation argument sorts. It runs both before and after optimisation
// (package optimize); a rule that fails either pass is rejected.
package typecheck

import (
	"fmt"

	"arrows-engine/internal/logic"
)

// FunctionSignature is a function's argument sorts and result sort.
type FunctionSignature struct {
	ArgSorts   []logic.Sort
	ResultSort logic.Sort
}

// Tables holds the three maps the checker consults.
type Tables struct {
	Constants map[string]logic.Sort
	Functions map[string]FunctionSignature
	Relations map[string]RelationSignature
}

// RelationSignature is a relation's argument sorts.
type RelationSignature struct {
	ArgSorts []logic.Sort
}

// StandardTables returns the Tables describing the puzzle domain's
// built-in functions and relations (package universe's dispatch tables,
// mirrored here statically so type errors surface before a Universe is
// ever constructed).
func StandardTables() Tables {
	return Tables{
		Constants: map[string]logic.Sort{
			"OOB": logic.Position,
			"nil": logic.Number,
		},
		Functions: map[string]FunctionSignature{
			"next":                     {[]logic.Sort{logic.Position}, logic.Position},
			"val":                      {[]logic.Sort{logic.Position}, logic.Number},
			"ahead":                    {[]logic.Sort{logic.Position}, logic.Number},
			"behind":                   {[]logic.Sort{logic.Position}, logic.Number},
			"ahead_free":               {[]logic.Sort{logic.Position}, logic.Number},
			"between_free":             {[]logic.Sort{logic.Position, logic.Position}, logic.Number},
			"dir":                      {[]logic.Sort{logic.Position}, logic.DirectionSort},
			"sees_distinct":            {[]logic.Sort{logic.Position}, logic.Number},
			"sees_distinct_candidates": {[]logic.Sort{logic.Position}, logic.Number},
			"min_candidate":            {[]logic.Sort{logic.Position}, logic.Number},
			"max_candidate":            {[]logic.Sort{logic.Position}, logic.Number},
			"+":                        {[]logic.Sort{logic.Number, logic.Number}, logic.Number},
			"-":                        {[]logic.Sort{logic.Number, logic.Number}, logic.Number},
		},
		Relations: map[string]RelationSignature{
			"points_at":  {[]logic.Sort{logic.Position, logic.Position}},
			"candidate":  {[]logic.Sort{logic.Position, logic.Number}},
			"sees_value": {[]logic.Sort{logic.Position, logic.Number}},
			"<":          {[]logic.Sort{logic.Number, logic.Number}},
			">":          {[]logic.Sort{logic.Number, logic.Number}},
			"<=":         {[]logic.Sort{logic.Number, logic.Number}},
			">=":         {[]logic.Sort{logic.Number, logic.Number}},
		},
	}
}

// scope tracks each variable's declared sort as quantifiers are entered,
// plus which names are in the existential prefix (visible to conclusions).
type scope struct {
	sorts       map[string]logic.Sort
	existential map[string]struct{}
}

func newScope() *scope {
	return &scope{sorts: make(map[string]logic.Sort), existential: make(map[string]struct{})}
}

func (s *scope) withBindings(vars []logic.Variable, sort logic.Sort, existential bool) *scope {
	out := &scope{sorts: make(map[string]logic.Sort, len(s.sorts)+len(vars)), existential: make(map[string]struct{}, len(s.existential)+len(vars))}
	for k, v := range s.sorts {
		out.sorts[k] = v
	}
	for k := range s.existential {
		out.existential[k] = struct{}{}
	}
	for _, v := range vars {
		out.sorts[v.Name] = sort
		if existential {
			out.existential[v.Name] = struct{}{}
		}
	}
	return out
}

// CheckRule type-checks an FORule's condition and conclusions against
// tables, returning a *logic.TypeCheckError on the first violation.
func CheckRule(rule logic.FORule, tables Tables) error {
	s := newScope()
	if err := checkFormula(rule.Condition, s, tables); err != nil {
		return err
	}
	prefix := gatherExistentialPrefix(rule.Condition)
	for _, c := range rule.Conclusions {
		if err := checkConclusion(c, prefix, tables); err != nil {
			return err
		}
	}
	return nil
}

func checkFormula(f logic.Formula, s *scope, tables Tables) error {
	switch v := f.(type) {
	case logic.Relation:
		sig, ok := tables.Relations[v.Name]
		if !ok {
			return &logic.TypeCheckError{Reason: fmt.Sprintf("unknown relation %q", v.Name)}
		}
		if len(sig.ArgSorts) != len(v.Args) {
			return &logic.TypeCheckError{Reason: fmt.Sprintf("relation %q expects %d args, got %d", v.Name, len(sig.ArgSorts), len(v.Args))}
		}
		for i, a := range v.Args {
			sort, err := inferTermSort(a, s, tables)
			if err != nil {
				return err
			}
			if sort != sig.ArgSorts[i] {
				return &logic.TypeCheckError{Reason: fmt.Sprintf("relation %q arg %d: expected %s, got %s", v.Name, i, sig.ArgSorts[i], sort)}
			}
		}
		return nil
	case logic.Equality:
		left, err := inferTermSort(v.Left, s, tables)
		if err != nil {
			return err
		}
		right, err := inferTermSort(v.Right, s, tables)
		if err != nil {
			return err
		}
		if left != right {
			return &logic.TypeCheckError{Reason: fmt.Sprintf("equality sort mismatch: %s vs %s", left, right)}
		}
		return nil
	case logic.Not:
		return checkFormula(v.Formula, s, tables)
	case logic.And:
		for _, sub := range v.Formulas {
			if err := checkFormula(sub, s, tables); err != nil {
				return err
			}
		}
		return nil
	case logic.Or:
		for _, sub := range v.Formulas {
			if err := checkFormula(sub, s, tables); err != nil {
				return err
			}
		}
		return nil
	case logic.ExistsPosition:
		return checkFormula(v.Formula, s.withBindings(v.Vars, logic.Position, true), tables)
	case logic.ExistsNumber:
		return checkFormula(v.Formula, s.withBindings(v.Vars, logic.Number, true), tables)
	case logic.ForAllPosition:
		return checkFormula(v.Formula, s.withBindings(v.Vars, logic.Position, false), tables)
	case logic.ForAllNumber:
		return checkFormula(v.Formula, s.withBindings(v.Vars, logic.Number, false), tables)
	default:
		return &logic.TypeCheckError{Reason: "unknown formula kind"}
	}
}

func inferTermSort(t logic.Term, s *scope, tables Tables) (logic.Sort, error) {
	switch v := t.(type) {
	case logic.Variable:
		sort, ok := s.sorts[v.Name]
		if !ok {
			return logic.Unknown, &logic.TypeCheckError{Reason: fmt.Sprintf("variable %q not bound by any quantifier", v.Name)}
		}
		return sort, nil
	case logic.Constant:
		if v.IsInt {
			return logic.Number, nil
		}
		sort, ok := tables.Constants[v.Symbol]
		if !ok {
			return logic.Unknown, &logic.TypeCheckError{Reason: fmt.Sprintf("unknown constant %q", v.Symbol)}
		}
		return sort, nil
	case logic.FunctionCall:
		sig, ok := tables.Functions[v.Name]
		if !ok {
			return logic.Unknown, &logic.TypeCheckError{Reason: fmt.Sprintf("unknown function %q", v.Name)}
		}
		if len(sig.ArgSorts) != len(v.Args) {
			return logic.Unknown, &logic.TypeCheckError{Reason: fmt.Sprintf("function %q expects %d args, got %d", v.Name, len(sig.ArgSorts), len(v.Args))}
		}
		for i, a := range v.Args {
			argSort, err := inferTermSort(a, s, tables)
			if err != nil {
				return logic.Unknown, err
			}
			if argSort != sig.ArgSorts[i] {
				return logic.Unknown, &logic.TypeCheckError{Reason: fmt.Sprintf("function %q arg %d: expected %s, got %s", v.Name, i, sig.ArgSorts[i], argSort)}
			}
		}
		return sig.ResultSort, nil
	default:
		return logic.Unknown, &logic.TypeCheckError{Reason: "unknown term kind"}
	}
}

// gatherExistentialPrefix collects every variable bound by an Exists
// reachable from the root without crossing a ForAll — the scope in which
// conclusions may reference a variable.
func gatherExistentialPrefix(f logic.Formula) map[string]logic.Sort {
	out := make(map[string]logic.Sort)
	gatherPrefix(f, out)
	return out
}

func gatherPrefix(f logic.Formula, out map[string]logic.Sort) {
	switch v := f.(type) {
	case logic.ExistsPosition:
		for _, bv := range v.Vars {
			out[bv.Name] = logic.Position
		}
		gatherPrefix(v.Formula, out)
	case logic.ExistsNumber:
		for _, bv := range v.Vars {
			out[bv.Name] = logic.Number
		}
		gatherPrefix(v.Formula, out)
	case logic.And:
		for _, sub := range v.Formulas {
			gatherPrefix(sub, out)
		}
	case logic.Or:
		for _, sub := range v.Formulas {
			gatherPrefix(sub, out)
		}
	// ForAll and Not stop the prefix: variables bound only under a
	// universal or only under a negation are not in scope for conclusions.
	default:
	}
}

func checkConclusion(c logic.Conclusion, prefix map[string]logic.Sort, tables Tables) error {
	switch v := c.(type) {
	case logic.Set:
		if err := checkConclusionTerm(v.Position, logic.Position, prefix, tables); err != nil {
			return err
		}
		return checkConclusionTerm(v.Value, logic.Number, prefix, tables)
	case logic.Exclude:
		if err := checkConclusionTerm(v.Position, logic.Position, prefix, tables); err != nil {
			return err
		}
		return checkConclusionTerm(v.Value, logic.Number, prefix, tables)
	case logic.Only:
		if err := checkConclusionTerm(v.Position, logic.Position, prefix, tables); err != nil {
			return err
		}
		for _, val := range v.Values {
			if err := checkConclusionTerm(val, logic.Number, prefix, tables); err != nil {
				return err
			}
		}
		return nil
	default:
		return &logic.TypeCheckError{Reason: "unknown conclusion kind"}
	}
}

func checkConclusionTerm(t logic.Term, want logic.Sort, prefix map[string]logic.Sort, tables Tables) error {
	s := &scope{sorts: prefix, existential: map[string]struct{}{}}
	sort, err := inferTermSort(t, s, tables)
	if err != nil {
		return err
	}
	if sort != want {
		return &logic.TypeCheckError{Reason: fmt.Sprintf("conclusion term %v: expected %s, got %s", t, want, sort)}
	}
	return checkVarsInPrefix(t, prefix)
}

func checkVarsInPrefix(t logic.Term, prefix map[string]logic.Sort) error {
	switch v := t.(type) {
	case logic.Variable:
		if _, ok := prefix[v.Name]; !ok {
			return &logic.TypeCheckError{Reason: fmt.Sprintf("variable %q used in a conclusion is not in the condition's existential prefix", v.Name)}
		}
		return nil
	case logic.FunctionCall:
		for _, a := range v.Args {
			if err := checkVarsInPrefix(a, prefix); err != nil {
				return err
			}
		}
		return nil
	default:
		return nil
	}
}

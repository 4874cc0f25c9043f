package logic

import "testing"

func TestSortRulesByComplexityStable(t *testing.T) {
	rules := []Rule{
		FORule{Name: "b1", Complexity: 2},
		FORule{Name: "a1", Complexity: 1},
		FORule{Name: "a2", Complexity: 1},
		BacktrackRule{Name: "c1", Complexity: 3},
	}
	sorted := SortRulesByComplexity(rules)
	order := make([]string, len(sorted))
	for i, r := range sorted {
		order[i] = r.RuleName()
	}
	want := []string{"a1", "a2", "b1", "c1"}
	for i, name := range want {
		if order[i] != name {
			t.Errorf("sorted[%d] = %s, want %s (full order %v)", i, order[i], name, order)
		}
	}
}

func TestCompareOpApply(t *testing.T) {
	cases := []struct {
		op        CompareOp
		candidate int
		value     int
		want      bool
	}{
		{OpEq, 3, 3, true},
		{OpEq, 3, 4, false},
		{OpNe, 3, 4, true},
		{OpLt, 2, 3, true},
		{OpGe, 3, 3, true},
	}
	for _, tc := range cases {
		if got := tc.op.Apply(tc.candidate, tc.value); got != tc.want {
			t.Errorf("%d %v %d = %v, want %v", tc.candidate, tc.op, tc.value, got, tc.want)
		}
	}
}

func TestSortOfVariableName(t *testing.T) {
	if SortOfVariableName("p1") != Position {
		t.Errorf("p1 should be POSITION")
	}
	if SortOfVariableName("i") != Number {
		t.Errorf("i should be NUMBER")
	}
}

package puzzle

import "testing"

func sampleDoc() string {
	return "+----+----+\n" +
		"| →1 | ↓0 |\n" +
		"+----+----+\n" +
		"| ↑. | ←2 |\n" +
		"+----+----+\n"
}

func TestFromStringParsesShape(t *testing.T) {
	p, err := FromString(sampleDoc())
	if err != nil {
		t.Fatalf("FromString: %v", err)
	}
	if p.Rows != 2 || p.Cols != 2 {
		t.Fatalf("dims = %dx%d, want 2x2", p.Rows, p.Cols)
	}
	if !p.Grid[0][0].IsCommit || p.Grid[0][0].Value != 1 || p.Grid[0][0].Direction != East {
		t.Errorf("cell (0,0) = %+v, want committed East/1", p.Grid[0][0])
	}
	if p.Grid[1][0].IsCommit {
		t.Errorf("cell (1,0) should be pending")
	}
}

func TestToStringFromStringRoundTrip(t *testing.T) {
	doc := sampleDoc()
	p, err := FromString(doc)
	if err != nil {
		t.Fatalf("FromString: %v", err)
	}
	got := p.ToString()
	if got != doc {
		t.Errorf("round trip mismatch:\ngot:\n%q\nwant:\n%q", got, doc)
	}
}

func TestFromStringRejectsMalformed(t *testing.T) {
	bad := "not a puzzle"
	if _, err := FromString(bad); err == nil {
		t.Errorf("expected error for malformed document")
	}
}

func TestCellStringRoundTrip(t *testing.T) {
	c := NewCommittedCell(SouthEast, 7)
	s := cellString(c)
	got, err := cellFromString(s)
	if err != nil {
		t.Fatalf("cellFromString: %v", err)
	}
	if got.Direction != c.Direction || got.Value != c.Value || got.IsCommit != c.IsCommit {
		t.Errorf("cell round trip = %+v, want %+v", got, c)
	}
}

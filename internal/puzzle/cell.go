package puzzle

import (
	"fmt"
	"sort"
	"strings"
)

// IntSet is a small set of non-negative integers used for a pending cell's
// candidate values. A fixed-width bitmask won't do here: the NUMBER domain
// runs 0..max(rows,cols)-1 with no compile-time upper bound, so candidates
// are a map-backed set instead.
type IntSet map[int]struct{}

// NewIntSet builds an IntSet from the given values.
func NewIntSet(values ...int) IntSet {
	s := make(IntSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// FullRange builds the IntSet {0, 1, ..., n-1}.
func FullRange(n int) IntSet {
	s := make(IntSet, n)
	for i := 0; i < n; i++ {
		s[i] = struct{}{}
	}
	return s
}

// Has reports whether v is a member.
func (s IntSet) Has(v int) bool {
	_, ok := s[v]
	return ok
}

// Add inserts v.
func (s IntSet) Add(v int) {
	s[v] = struct{}{}
}

// Remove deletes v.
func (s IntSet) Remove(v int) {
	delete(s, v)
}

// Len returns the number of members.
func (s IntSet) Len() int {
	return len(s)
}

// Clone returns an independent copy.
func (s IntSet) Clone() IntSet {
	out := make(IntSet, len(s))
	for v := range s {
		out[v] = struct{}{}
	}
	return out
}

// Sorted returns the members in ascending order.
func (s IntSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

// Only returns the single member if there is exactly one, else (0, false).
func (s IntSet) Only() (int, bool) {
	if len(s) != 1 {
		return 0, false
	}
	for v := range s {
		return v, true
	}
	return 0, false
}

// Equals reports whether s and other have identical membership.
func (s IntSet) Equals(other IntSet) bool {
	if len(s) != len(other) {
		return false
	}
	for v := range s {
		if !other.Has(v) {
			return false
		}
	}
	return true
}

// Intersect returns the intersection of s and other.
func (s IntSet) Intersect(other IntSet) IntSet {
	out := make(IntSet)
	for v := range s {
		if other.Has(v) {
			out[v] = struct{}{}
		}
	}
	return out
}

func (s IntSet) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, v := range s.Sorted() {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", v)
	}
	b.WriteByte('}')
	return b.String()
}

// Cell is a single grid cell: a fixed direction plus either a committed
// value or a pending candidate set. Invariant: Committed implies
// len(Candidates) == 0 is NOT required — Candidates is kept in sync as
// {Value} whenever the cell is committed, so code can always consult
// EffectiveCandidates without branching on commit state.
type Cell struct {
	Direction  Direction
	IsCommit   bool
	Value      int
	Candidates IntSet
}

// NewPendingCell creates a pending cell with the given candidate set.
func NewPendingCell(dir Direction, candidates IntSet) Cell {
	return Cell{Direction: dir, Candidates: candidates}
}

// NewCommittedCell creates a committed cell.
func NewCommittedCell(dir Direction, value int) Cell {
	return Cell{Direction: dir, IsCommit: true, Value: value, Candidates: NewIntSet(value)}
}

// EffectiveCandidates returns the explicit candidate set, or {Value} if the
// cell is already committed.
func (c Cell) EffectiveCandidates() IntSet {
	if c.IsCommit {
		return NewIntSet(c.Value)
	}
	return c.Candidates
}

// Commit marks the cell committed to v, narrowing Candidates to {v}.
func (c *Cell) Commit(v int) {
	c.IsCommit = true
	c.Value = v
	c.Candidates = NewIntSet(v)
}

// Clone returns an independent deep copy of the cell.
func (c Cell) Clone() Cell {
	return Cell{
		Direction:  c.Direction,
		IsCommit:   c.IsCommit,
		Value:      c.Value,
		Candidates: c.Candidates.Clone(),
	}
}

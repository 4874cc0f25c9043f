package puzzle

// PathCache maps every cell coordinate to the ordered list of coordinates on
// its ray, exclusive of the source, terminating at the grid edge, plus a
// membership index for O(1) points_at lookups. It is purely geometric
// (direction-derived) and must be rebuilt whenever any cell's direction
// changes.
type PathCache struct {
	paths   map[Coord][]Coord
	members map[Coord]map[Coord]struct{}
}

// ComputeAllPaths builds the path cache for the current directions of p.
func ComputeAllPaths(p *Puzzle) PathCache {
	pc := PathCache{
		paths:   make(map[Coord][]Coord, p.Rows*p.Cols),
		members: make(map[Coord]map[Coord]struct{}, p.Rows*p.Cols),
	}
	for r := 0; r < p.Rows; r++ {
		for c := 0; c < p.Cols; c++ {
			src := Coord{r, c}
			ray := computeRay(p, r, c)
			pc.paths[src] = ray
			set := make(map[Coord]struct{}, len(ray))
			for _, coord := range ray {
				set[coord] = struct{}{}
			}
			pc.members[src] = set
		}
	}
	return pc
}

func computeRay(p *Puzzle, r, c int) []Coord {
	dr, dc := p.Grid[r][c].Direction.Delta()
	var path []Coord
	cur := Coord{r, c}
	for {
		nr, nc := cur.Row+dr, cur.Col+dc
		if !p.InBounds(nr, nc) {
			break
		}
		cur = Coord{nr, nc}
		path = append(path, cur)
	}
	return path
}

// PathsFrom returns the cached ray for (r, c), in order from nearest to
// farthest.
func (pc PathCache) PathsFrom(r, c int) []Coord {
	return pc.paths[Coord{r, c}]
}

// Len returns the ray length ("ahead") for (r, c) — number of cells ahead
// before the edge. O(1).
func (pc PathCache) Len(r, c int) int {
	return len(pc.paths[Coord{r, c}])
}

// Contains reports whether q lies on (r, c)'s ray ("points_at"). O(1).
func (pc PathCache) Contains(r, c int, q Coord) bool {
	_, ok := pc.members[Coord{r, c}][q]
	return ok
}

package maze

// Flags is the per-cell bitset of a Grid.
type Flags uint8

const (
	// South marks an open passage to the cell directly below.
	South Flags = 0x2
	// East marks an open passage to the cell directly to the right.
	East Flags = 0x4
	// Visited is set by FloodFill on every cell it reaches.
	Visited Flags = 0x10

	passageMask = East | South
)

// Has reports whether every bit of flag is set in f.
func (f Flags) Has(flag Flags) bool { return f&flag == flag }

// Grid is the connectivity map of a maze.
type Grid struct {
	Width  int
	Height int
	Cells  []Flags
}

func newGrid(width, height int) (*Grid, error) {
	if err := CheckBounds(width, height); err != nil {
		return nil, err
	}
	cells, err := makeSlice[Flags](width*height, "connectivity map")
	if err != nil {
		return nil, err
	}
	return &Grid{Width: width, Height: height, Cells: cells}, nil
}

// Area returns the number of cells.
func (g *Grid) Area() int { return g.Width * g.Height }

// Index returns the cell index at row, col.
func (g *Grid) Index(row, col int) int { return row*g.Width + col }

// Coordinate returns the row and column of a cell index.
func (g *Grid) Coordinate(cell int) (row, col int) {
	return cell / g.Width, cell % g.Width
}

// East reports whether cell has an open passage to cell+1.
func (g *Grid) East(cell int) bool { return g.Cells[cell].Has(East) }

// South reports whether cell has an open passage to cell+Width.
func (g *Grid) South(cell int) bool { return g.Cells[cell].Has(South) }

// Connected reports whether adjacent cells a and b share a passage.
// Non-adjacent pairs are never connected.
func (g *Grid) Connected(a, b int) bool {
	if a > b {
		a, b = b, a
	}
	switch {
	case b == a+1 && a%g.Width != g.Width-1:
		return g.East(a)
	case b == a+g.Width:
		return g.South(a)
	}
	return false
}

// carve opens the wall between adjacent cells a and b, recording the
// passage on the smaller index. In a one-column grid a+1 is the cell
// below, so the south test comes first.
func (g *Grid) carve(a, b int) {
	if a > b {
		a, b = b, a
	}
	if b == a+g.Width {
		g.Cells[a] |= South
	} else {
		g.Cells[a] |= East
	}
}

// Links returns the cells sharing a passage with cell, in north, east,
// south, west order.
func (g *Grid) Links(cell int) []int {
	links := make([]int, 0, 4)
	w := g.Width
	if cell >= w && g.South(cell-w) {
		links = append(links, cell-w)
	}
	if cell%w != w-1 && g.East(cell) {
		links = append(links, cell+1)
	}
	if cell+w < g.Area() && g.South(cell) {
		links = append(links, cell+w)
	}
	if cell%w != 0 && g.East(cell-1) {
		links = append(links, cell-1)
	}
	return links
}

// Passages counts the open passages. A perfect maze has Area()-1.
func (g *Grid) Passages() int {
	n := 0
	for _, f := range g.Cells {
		if f.Has(East) {
			n++
		}
		if f.Has(South) {
			n++
		}
	}
	return n
}

// DeadEnds counts cells with exactly one passage.
func (g *Grid) DeadEnds() int {
	n := 0
	for c := range g.Cells {
		if len(g.Links(c)) == 1 {
			n++
		}
	}
	return n
}

// Stats summarizes a generated maze.
type Stats struct {
	Cells    int `json:"cells"`
	Passages int `json:"passages"`
	DeadEnds int `json:"dead_ends"`
}

// Stats returns the cell, passage and dead-end counts.
func (g *Grid) Stats() Stats {
	return Stats{
		Cells:    g.Area(),
		Passages: g.Passages(),
		DeadEnds: g.DeadEnds(),
	}
}

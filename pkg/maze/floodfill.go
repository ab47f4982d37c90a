package maze

// FloodFill generates a maze with a randomized depth-first traversal that
// starts at cell 0 and backtracks along an explicit stack.
//
// Each step marks the current cell Visited and gathers its unvisited
// neighbours in north, east, south, west order. If there are any, one is
// picked with rng.IntN, the wall between them is carved, the current cell
// is pushed and the walk moves on. Otherwise the walk backtracks by popping.
// Generation ends when a cell has no unvisited neighbour and the stack is
// empty, at which point every cell is Visited.
//
// It fails with INVALID_ARGUMENT or BOUNDS_EXCEEDED for bad dimensions and
// OUT_OF_MEMORY if the grid or the stack cannot be allocated.
func FloodFill(width, height int, rng Source) (*Grid, error) {
	g, err := newGrid(width, height)
	if err != nil {
		return nil, err
	}
	path, err := newStack(g.Area())
	if err != nil {
		return nil, err
	}

	var buf [4]int
	c := 0
	for {
		g.Cells[c] |= Visited
		next := unvisitedNeighbors(g, c, buf[:0])
		if len(next) > 0 {
			n := next[rng.IntN(len(next))]
			g.carve(c, n)
			path.push(c)
			c = n
			continue
		}
		if path.len() == 0 {
			return g, nil
		}
		c = path.pop()
	}
}

// unvisitedNeighbors appends the unvisited grid neighbours of c to dst.
// All four boundary tests compare without subtracting from c.
func unvisitedNeighbors(g *Grid, c int, dst []int) []int {
	w, area := g.Width, g.Area()
	if c >= w && !g.Cells[c-w].Has(Visited) {
		dst = append(dst, c-w)
	}
	if c%w != w-1 && !g.Cells[c+1].Has(Visited) {
		dst = append(dst, c+1)
	}
	if c+w < area && !g.Cells[c+w].Has(Visited) {
		dst = append(dst, c+w)
	}
	if c%w != 0 && !g.Cells[c-1].Has(Visited) {
		dst = append(dst, c-1)
	}
	return dst
}

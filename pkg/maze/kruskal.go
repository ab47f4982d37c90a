package maze

// Kruskal generates a maze by scanning a shuffled list of every grid edge
// and accepting each edge whose endpoints are still in different sets.
//
// Steps:
//  1. Check bounds and allocate the grid.
//  2. Build the edge list and shuffle it with rng.
//  3. Put every cell in its own set.
//  4. For each edge (a, b) in shuffled order, if Find(a) != Find(b), carve
//     the passage on a and merge the sets. Edges inside one set would close
//     a cycle and are skipped.
//  5. Stop after width*height-1 merges; every remaining edge would be
//     rejected.
//
// It fails with INVALID_ARGUMENT or BOUNDS_EXCEEDED for bad dimensions and
// OUT_OF_MEMORY if the grid, edge list or disjoint set cannot be allocated.
func Kruskal(width, height int, rng Source) (*Grid, error) {
	g, err := newGrid(width, height)
	if err != nil {
		return nil, err
	}
	edges, err := buildEdges(width, height)
	if err != nil {
		return nil, err
	}
	shuffleEdges(edges, rng)

	sets, err := NewDisjointSet(g.Area())
	if err != nil {
		return nil, err
	}
	kruskalScan(g, edges, sets)
	return g, nil
}

func kruskalScan(g *Grid, edges []Edge, sets *DisjointSet) {
	for _, e := range edges {
		if sets.Roots() == 1 {
			return
		}
		if sets.Union(e.A, e.B) {
			g.carve(e.A, e.B)
		}
	}
}

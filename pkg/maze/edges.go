package maze

// Edge is a candidate passage between two adjacent cells, A < B.
type Edge struct {
	A, B int
}

// edgeCount returns the number of east and south adjacencies in a grid.
func edgeCount(width, height int) int {
	return (width-1)*height + width*(height-1)
}

// buildEdges lists every adjacency once, row-major, east before south.
func buildEdges(width, height int) ([]Edge, error) {
	edges, err := makeSlice[Edge](edgeCount(width, height), "edge list")
	if err != nil {
		return nil, err
	}
	area := width * height
	i := 0
	for c := 0; c < area; c++ {
		if c%width != width-1 {
			edges[i] = Edge{A: c, B: c + 1}
			i++
		}
		if c+width < area {
			edges[i] = Edge{A: c, B: c + width}
			i++
		}
	}
	return edges, nil
}

// shuffleEdges permutes edges in place with Fisher-Yates, swapping each
// position i, from the last down to 1, with a position drawn from [0, i].
func shuffleEdges(edges []Edge, rng Source) {
	for i := len(edges) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		edges[i], edges[j] = edges[j], edges[i]
	}
}

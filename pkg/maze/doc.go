// Package maze generates perfect mazes on rectangular grids.
//
// A perfect maze is a spanning tree over the grid graph: every cell is
// reachable from every other cell along exactly one path. Two generators are
// provided:
//
//   - [FloodFill]: randomized depth-first traversal with an explicit
//     backtracking stack.
//   - [Kruskal]: randomized Kruskal over a shuffled edge list, using a
//     [DisjointSet] to reject edges that would close a cycle.
//
// # Grid
//
// Cells are addressed by a single index, cell = row*width + col. No node
// objects exist; a [Grid] holds one [Flags] byte per cell. A passage is stored
// once, on the smaller-index cell of the pair: [East] opens the wall to
// cell+1, [South] opens the wall to cell+width. [Visited] is a traversal
// marker left behind by [FloodFill] and carries no maze meaning.
//
// # Randomness
//
// Generators never touch global random state. Each call takes a [Source];
// *rand.Rand from math/rand/v2 satisfies it and [NewRand] builds a seeded one:
//
//	g, err := maze.Kruskal(20, 10, maze.NewRand(42))
//
// Identical dimensions and an identically seeded source always produce the
// same grid.
//
// # Limits
//
// Call [CheckBounds] before sizing anything from user input. It rejects
// dimensions below 1 and areas that overflow int or exceed [MaxArea].
// [MaxArea] keeps every accepted maze within the memory of a large host.
// Only allocations the runtime refuses outright surface as OUT_OF_MEMORY
// errors from package errors; a size the runtime accepts but the host
// cannot back still ends the process.
package maze

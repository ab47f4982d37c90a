// Package nodelink renders a maze as a node-link diagram of its passages.
//
// # Overview
//
// Every cell becomes a point pinned to its lattice position and every
// passage becomes a line between two points. The drawing is the spanning
// tree itself: walls are the absence of lines.
//
// # Usage
//
// Convert a grid to DOT, then render it:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// # Options
//
//   - Labels: draw cell indices instead of bare points
//   - Color: stroke color for passages
//
// # Limits
//
// Graphviz layout cost grows quickly with node count, so [ToDOT] callers
// should check [CheckSize] first; grids above [MaxCells] are rejected.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG and
// PNG rendering with the neato engine.
package nodelink

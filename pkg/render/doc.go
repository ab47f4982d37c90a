// Package render groups the maze output renderers.
//
// # Overview
//
// A generated [maze.Grid] is read-only input to every renderer:
//
//   - Block text (in [text] subpackage): the terminal rendering, two rows
//     and four columns of glyphs per cell
//   - Node-link diagrams (in [nodelink] subpackage): the passage graph laid
//     out on the cell lattice with Graphviz, as DOT, SVG or PNG
//
// # Block Text
//
//	out := text.Render(g, text.Options{})
//	os.Stdout.Write(out)
//
// # Node-Link Diagrams
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// [maze.Grid]: github.com/fruitnuke/maze/pkg/maze
// [text]: github.com/fruitnuke/maze/pkg/render/text
// [nodelink]: github.com/fruitnuke/maze/pkg/render/nodelink
package render

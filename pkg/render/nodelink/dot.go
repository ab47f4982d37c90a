package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/fruitnuke/maze/pkg/errors"
	"github.com/fruitnuke/maze/pkg/maze"
)

// MaxCells is the largest grid the graph renderers accept.
const MaxCells = 10000

// spacing is the distance in points between neighbouring cells.
const spacing = 24

// Options configures node-link diagram rendering.
type Options struct {
	// Labels draws each cell's index in a circle instead of a point.
	Labels bool

	// Color is the Graphviz color of nodes and passages. Defaults to black.
	Color string
}

// CheckSize rejects grids too large to lay out.
func CheckSize(g *maze.Grid) error {
	if g.Area() > MaxCells {
		return errors.New(errors.ErrCodeBoundsExceeded, "%dx%d has %d cells, graph output supports at most %d",
			g.Width, g.Height, g.Area(), MaxCells)
	}
	return nil
}

// ToDOT converts a grid to an undirected Graphviz graph with one node per
// cell, pinned to its lattice position, and one edge per passage.
// The result can be rendered with [RenderSVG] or [RenderPNG].
func ToDOT(g *maze.Grid, opts Options) string {
	color := opts.Color
	if color == "" {
		color = "black"
	}

	var buf bytes.Buffer
	buf.WriteString("graph maze {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=false;\n")
	if opts.Labels {
		fmt.Fprintf(&buf, "  node [shape=circle, fixedsize=true, width=0.3, fontsize=8, color=%q];\n", color)
	} else {
		fmt.Fprintf(&buf, "  node [shape=point, width=0.08, color=%q];\n", color)
	}
	fmt.Fprintf(&buf, "  edge [penwidth=3, color=%q];\n", color)
	buf.WriteString("\n")

	for c := range g.Cells {
		row, col := g.Coordinate(c)
		// Graphviz y grows upward; row 0 is drawn on top.
		fmt.Fprintf(&buf, "  %d [pos=\"%d,%d!\"", c, col*spacing, (g.Height-1-row)*spacing)
		if opts.Labels {
			fmt.Fprintf(&buf, ", label=\"%d\"", c)
		}
		buf.WriteString("];\n")
	}

	buf.WriteString("\n")
	for c := range g.Cells {
		if g.East(c) {
			fmt.Fprintf(&buf, "  %d -- %d;\n", c, c+1)
		}
		if g.South(c) {
			fmt.Fprintf(&buf, "  %d -- %d;\n", c, c+g.Width)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG with the neato engine, which honours
// the pinned node positions.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG with the neato engine.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with one whose
// viewBox starts at the origin, so the SVG scales cleanly when embedded.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

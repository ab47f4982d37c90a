package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/fruitnuke/maze/pkg/errors"
	"github.com/fruitnuke/maze/pkg/maze"
	"github.com/fruitnuke/maze/pkg/observability"
	"github.com/fruitnuke/maze/pkg/render/nodelink"
	"github.com/fruitnuke/maze/pkg/render/text"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, g *maze.Grid, opts Options) (map[string][]byte, error) {
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts := make(map[string][]byte, len(opts.Formats))
	var err error
	for _, format := range opts.Formats {
		var data []byte
		if data, err = RenderFormat(ctx, g, format, opts); err != nil {
			break
		}
		artifacts[format] = data
	}

	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

// RenderFormat renders a single format.
func RenderFormat(ctx context.Context, g *maze.Grid, format string, opts Options) ([]byte, error) {
	if graphFormats[format] {
		if err := nodelink.CheckSize(g); err != nil {
			return nil, err
		}
	}

	var (
		data []byte
		err  error
	)
	switch format {
	case FormatText:
		data = text.Render(g, text.Options{Glyphs: opts.Glyphs(), Color: opts.Color})
	case FormatDOT:
		data = []byte(nodelink.ToDOT(g, nodelinkOptions(opts)))
	case FormatSVG:
		data, err = nodelink.RenderSVG(ctx, nodelink.ToDOT(g, nodelinkOptions(opts)))
	case FormatPNG:
		data, err = nodelink.RenderPNG(ctx, nodelink.ToDOT(g, nodelinkOptions(opts)))
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// nodelinkOptions maps render options onto Graphviz. ANSI color indices
// ("212") mean nothing to Graphviz and fall back to its default.
func nodelinkOptions(opts Options) nodelink.Options {
	color := opts.Color
	if strings.Trim(color, "0123456789") == "" {
		color = ""
	}
	return nodelink.Options{Labels: opts.Labels, Color: color}
}

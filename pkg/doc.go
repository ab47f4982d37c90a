// Package pkg provides the libraries behind the maze generator.
//
// # Overview
//
// A perfect maze is a spanning tree over a rectangular grid: every pair of
// cells is joined by exactly one path. The pkg directory is organized into
// four areas:
//
//  1. [maze] - Core algorithms (grid, flood fill, Kruskal, validation)
//  2. [render] - Outputs (block text, Graphviz DOT/SVG/PNG)
//  3. [pipeline] - Orchestration (validate → generate → render, with caching)
//  4. Infrastructure - [cache], [errors], [observability], [buildinfo]
//
// # Architecture
//
// The data flow for one maze:
//
//	width, height, algorithm, seed
//	         ↓
//	    [maze] package (CheckBounds, FloodFill or Kruskal)
//	         ↓
//	    [maze.Grid] (one Flags byte per cell)
//	         ↓
//	    [render] packages (text, nodelink)
//	         ↓
//	    txt / dot / svg / png
//
// # Quick Start
//
//	import (
//	    "os"
//
//	    "github.com/fruitnuke/maze/pkg/maze"
//	    "github.com/fruitnuke/maze/pkg/render/text"
//	)
//
//	g, err := maze.Kruskal(20, 10, maze.NewRand(7))
//	if err != nil {
//	    return err
//	}
//	os.Stdout.Write(text.Render(g, text.Options{}))
//
// Or through the pipeline, which validates options, caches artifacts of
// seeded runs and reports hooks:
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	seed := uint64(7)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Width:     20,
//	    Height:    10,
//	    Algorithm: "kruskal",
//	    Seed:      &seed,
//	    Formats:   []string{"txt", "svg"},
//	})
//
// # Errors
//
// Every package returns [errors.Error] values carrying a machine-readable
// [errors.Code] such as OUT_OF_MEMORY or BOUNDS_EXCEEDED. Use [errors.Is]
// to branch on a code and [errors.UserMessage] for display.
//
// [maze]: github.com/fruitnuke/maze/pkg/maze
// [maze.Grid]: github.com/fruitnuke/maze/pkg/maze#Grid
// [render]: github.com/fruitnuke/maze/pkg/render
// [pipeline]: github.com/fruitnuke/maze/pkg/pipeline
// [cache]: github.com/fruitnuke/maze/pkg/cache
// [errors]: github.com/fruitnuke/maze/pkg/errors
// [errors.Error]: github.com/fruitnuke/maze/pkg/errors#Error
// [errors.Code]: github.com/fruitnuke/maze/pkg/errors#Code
// [errors.Is]: github.com/fruitnuke/maze/pkg/errors#Is
// [errors.UserMessage]: github.com/fruitnuke/maze/pkg/errors#UserMessage
// [observability]: github.com/fruitnuke/maze/pkg/observability
// [buildinfo]: github.com/fruitnuke/maze/pkg/buildinfo
package pkg

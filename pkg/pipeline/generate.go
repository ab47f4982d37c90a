package pipeline

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/fruitnuke/maze/pkg/maze"
	"github.com/fruitnuke/maze/pkg/observability"
)

// ResolveSeed returns the explicit seed, or a fresh random one.
func ResolveSeed(seed *uint64) uint64 {
	if seed != nil {
		return *seed
	}
	return rand.Uint64()
}

// Generate builds the maze described by opts with the given seed.
// Options must have passed ValidateForGenerate.
func Generate(ctx context.Context, opts Options, seed uint64) (*maze.Grid, error) {
	alg := maze.Algorithm(opts.Algorithm)
	hooks := observability.Generate()
	hooks.OnGenerateStart(ctx, opts.Algorithm, opts.Width, opts.Height)

	start := time.Now()
	g, err := maze.Generate(alg, opts.Width, opts.Height, maze.NewRand(seed))
	hooks.OnGenerateComplete(ctx, opts.Algorithm, opts.Width, opts.Height, time.Since(start), err)
	return g, err
}

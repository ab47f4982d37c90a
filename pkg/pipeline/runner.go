package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/fruitnuke/maze/pkg/cache"
	"github.com/fruitnuke/maze/pkg/errors"
	"github.com/fruitnuke/maze/pkg/maze"
	"github.com/fruitnuke/maze/pkg/observability"
)

const artifactKeyType = "artifact"

// Runner encapsulates pipeline execution with caching.
// The CLI, the viewer and the server all run mazes through it.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options; each
// run draws from its own random source.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// If logger is nil, runs are not logged.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete generate → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		ID:        uuid.NewString(),
		Algorithm: maze.Algorithm(opts.Algorithm),
		Seed:      ResolveSeed(opts.Seed),
	}
	logger := opts.Logger.With("run", result.ID[:8])

	// Stage 1: Generate
	generateStart := time.Now()
	g, err := r.Generate(ctx, opts, result.Seed)
	if err != nil {
		return nil, err
	}
	result.Grid = g
	result.Stats.Stats = g.Stats()
	result.Stats.GenerateTime = time.Since(generateStart)

	logger.Info("generated maze",
		"algorithm", opts.Algorithm,
		"size", sizeString(opts.Width, opts.Height),
		"seed", result.Seed,
		"passages", result.Stats.Passages,
		"duration", result.Stats.GenerateTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, g, result.Seed, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Generate validates the generate options and builds the maze for seed.
func (r *Runner) Generate(ctx context.Context, opts Options, seed uint64) (*maze.Grid, error) {
	if err := opts.ValidateForGenerate(); err != nil {
		return nil, err
	}
	g, err := Generate(ctx, opts, seed)
	if err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "%s produced an invalid maze", opts.Algorithm)
	}
	return g, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns whether
// every artifact came from the cache. The cache is consulted only for
// cacheable options (explicit seed, no refresh); a refresh still stores the
// fresh artifacts.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *maze.Grid, seed uint64, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	hooks := observability.Cache()
	store := opts.Seed != nil

	if opts.Cacheable() {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(opts.ArtifactKeyOpts(format, seed))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil {
				opts.Logger.Warn("cache read failed", "format", format, "err", err)
				break
			}
			if !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			hooks.OnCacheHit(ctx, artifactKeyType)
			return artifacts, true, nil
		}
		hooks.OnCacheMiss(ctx, artifactKeyType)
	}

	rendered, err := Render(ctx, g, opts)
	if err != nil {
		return nil, false, err
	}

	if store {
		for format, data := range rendered {
			key := r.Keyer.ArtifactKey(opts.ArtifactKeyOpts(format, seed))
			if err := r.Cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
				opts.Logger.Warn("cache write failed", "format", format, "err", err)
				continue
			}
			hooks.OnCacheSet(ctx, artifactKeyType, len(data))
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, g *maze.Grid, seed uint64, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, g, seed, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func sizeString(width, height int) string {
	return fmt.Sprintf("%dx%d", width, height)
}

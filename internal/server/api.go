package server

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/fruitnuke/maze/pkg/buildinfo"
	mazeerrors "github.com/fruitnuke/maze/pkg/errors"
	"github.com/fruitnuke/maze/pkg/maze"
	"github.com/fruitnuke/maze/pkg/pipeline"
)

// Response headers describing the served maze.
const (
	headerID        = "X-Maze-ID"
	headerSeed      = "X-Maze-Seed"
	headerAlgorithm = "X-Maze-Algorithm"
	headerCache     = "X-Cache"
)

/* *** Maze API *** */

type MazeHandler struct {
	runner       *pipeline.Runner
	maxDimension int
}

func NewMazeHandler(runner *pipeline.Runner, maxDimension int) MazeHandler {
	return MazeHandler{runner: runner, maxDimension: maxDimension}
}

// GetMaze generates and renders one maze in the requested format.
func (h *MazeHandler) GetMaze(w http.ResponseWriter, r *http.Request) {
	opts, err := h.parseOptions(r.URL.Query())
	if err != nil {
		render.Render(w, r, ErrFromError(err))
		return
	}

	result, err := h.runner.Execute(r.Context(), opts)
	if err != nil {
		render.Render(w, r, ErrFromError(err))
		return
	}

	format := opts.Formats[0]
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set(headerID, result.ID)
	w.Header().Set(headerSeed, strconv.FormatUint(result.Seed, 10))
	w.Header().Set(headerAlgorithm, string(result.Algorithm))
	if opts.Seed != nil {
		w.Header().Set("Cache-Control", "public, max-age=86400, immutable")
	} else {
		w.Header().Set("Cache-Control", "no-store")
	}
	if result.CacheInfo.RenderHit {
		w.Header().Set(headerCache, "HIT")
	} else {
		w.Header().Set(headerCache, "MISS")
	}
	w.WriteHeader(http.StatusOK)
	w.Write(result.Artifacts[format])
}

// GetStats generates a maze and describes it without rendering.
func (h *MazeHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	opts, err := h.parseOptions(r.URL.Query())
	if err != nil {
		render.Render(w, r, ErrFromError(err))
		return
	}

	seed := pipeline.ResolveSeed(opts.Seed)
	start := time.Now()
	g, err := h.runner.Generate(r.Context(), opts, seed)
	if err != nil {
		render.Render(w, r, ErrFromError(err))
		return
	}

	w.Header().Set(headerID, uuid.NewString())
	render.Status(r, http.StatusOK)
	render.Render(w, r, &MazeResponse{
		Algorithm:    opts.Algorithm,
		Width:        g.Width,
		Height:       g.Height,
		Seed:         seed,
		Stats:        g.Stats(),
		GenerateTime: time.Since(start).Seconds() * 1000,
	})
}

// parseOptions reads pipeline options from query parameters. Only one
// format is served per request.
func (h *MazeHandler) parseOptions(q url.Values) (pipeline.Options, error) {
	opts := pipeline.Options{
		Algorithm:    q.Get("algorithm"),
		Wall:         q.Get("wall"),
		Open:         q.Get("open"),
		Color:        q.Get("color"),
		MaxDimension: h.maxDimension,
	}

	var err error
	if opts.Width, err = dimensionParam(q, "width", h.maxDimension); err != nil {
		return opts, err
	}
	if opts.Height, err = dimensionParam(q, "height", h.maxDimension); err != nil {
		return opts, err
	}
	if s := q.Get("seed"); s != "" {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return opts, mazeerrors.New(mazeerrors.ErrCodeInvalidArgument, "seed must be an unsigned integer, got %q", s)
		}
		opts.Seed = &seed
	}
	if opts.Labels, err = boolParam(q, "labels"); err != nil {
		return opts, err
	}
	if opts.Refresh, err = boolParam(q, "refresh"); err != nil {
		return opts, err
	}

	format := q.Get("format")
	if format == "" {
		format = pipeline.DefaultFormat
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return opts, err
	}
	opts.Formats = []string{format}

	return opts, opts.ValidateAndSetDefaults()
}

// dimensionParam parses an optional dimension. An explicit value must lie
// in [1, max]; an absent one defers to the pipeline default.
func dimensionParam(q url.Values, name string, max int) (int, error) {
	s := q.Get(name)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, mazeerrors.New(mazeerrors.ErrCodeInvalidArgument, "%s must be an integer, got %q", name, s)
	}
	if err := mazeerrors.ValidateDimension(name, v, max); err != nil {
		return 0, err
	}
	return v, nil
}

func boolParam(q url.Values, name string) (bool, error) {
	s := q.Get(name)
	if s == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, mazeerrors.New(mazeerrors.ErrCodeInvalidArgument, "%s must be a boolean, got %q", name, s)
	}
	return v, nil
}

type MazeResponse struct {
	Algorithm    string     `json:"algorithm"`
	Width        int        `json:"width"`
	Height       int        `json:"height"`
	Seed         uint64     `json:"seed,string"`
	Stats        maze.Stats `json:"stats"`
	GenerateTime float64    `json:"generate_ms"`
}

func (m *MazeResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

/* *** Version API *** */

func GetVersion(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, buildinfo.Get())
}

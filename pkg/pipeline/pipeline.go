// Package pipeline provides the generate → render pipeline shared by the
// CLI, the interactive viewer and the HTTP server.
//
// # Architecture
//
// The pipeline has two stages:
//
//  1. Generate: build a perfect maze with the requested algorithm, size and
//     seed
//  2. Render: produce output artifacts (txt, dot, svg, png)
//
// Generation always runs; it is linear in the maze area. Rendered artifacts
// are cached when the seed is explicit, since only then does a request name
// one specific maze.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	seed := uint64(7)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Algorithm: "kruskal",
//	    Width:     20,
//	    Height:    10,
//	    Seed:      &seed,
//	    Formats:   []string{"txt", "svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Artifacts["txt"])
package pipeline

import (
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/fruitnuke/maze/pkg/cache"
	"github.com/fruitnuke/maze/pkg/errors"
	"github.com/fruitnuke/maze/pkg/maze"
	"github.com/fruitnuke/maze/pkg/render/text"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, Viewer and Server
// =============================================================================

const (
	// DefaultWidth is the default maze width in cells.
	DefaultWidth = 10

	// DefaultHeight is the default maze height in cells.
	DefaultHeight = 10

	// DefaultFormat is the default output format.
	DefaultFormat = FormatText
)

// DefaultAlgorithm is the default generator.
const DefaultAlgorithm = string(maze.DefaultAlgorithm)

// Format constants for output formats.
const (
	FormatText = "txt"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatText: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// graphFormats are rendered through Graphviz and bounded by nodelink.MaxCells.
var graphFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
}

// ContentTypes maps formats to MIME types.
var ContentTypes = map[string]string{
	FormatText: "text/plain; charset=utf-8",
	FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Generate options
	Algorithm string  `json:"algorithm,omitempty"`
	Width     int     `json:"width,omitempty"`
	Height    int     `json:"height,omitempty"`
	Seed      *uint64 `json:"seed,omitempty"` // nil picks a random seed

	// Render options
	Formats []string `json:"formats,omitempty"`
	Wall    string   `json:"wall,omitempty"`
	Open    string   `json:"open,omitempty"`
	Color   string   `json:"color,omitempty"`
	Labels  bool     `json:"labels,omitempty"`
	Refresh bool     `json:"refresh,omitempty"` // bypass cached artifacts

	// MaxDimension caps Width and Height. Zero means maze.MaxDimension.
	MaxDimension int `json:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies this run in logs and API responses.
	ID string

	// Grid is the generated maze.
	Grid *maze.Grid

	// Algorithm is the generator that produced Grid.
	Algorithm maze.Algorithm

	// Seed reproduces Grid with the same algorithm and size.
	Seed uint64

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains maze and timing information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	maze.Stats
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// FormatNames returns the supported formats in sorted order.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// ParseFormats splits a comma-separated format list, dropping blanks and
// duplicates. An empty list yields the default format.
func ParseFormats(s string) []string {
	var formats []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(formats, f) {
			formats = append(formats, f)
		}
	}
	if len(formats) == 0 {
		return []string{DefaultFormat}
	}
	return formats
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults for the
// full pipeline. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForGenerate(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetGenerateDefaults sets default values for generation.
func (o *Options) SetGenerateDefaults() {
	if o.Algorithm == "" {
		o.Algorithm = DefaultAlgorithm
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.MaxDimension == 0 {
		o.MaxDimension = maze.MaxDimension
	}
}

// ValidateForGenerate validates and sets defaults for generation.
func (o *Options) ValidateForGenerate() error {
	o.SetGenerateDefaults()

	alg, err := maze.ParseAlgorithm(o.Algorithm)
	if err != nil {
		return err
	}
	o.Algorithm = string(alg)

	if err := errors.ValidateDimension("width", o.Width, o.MaxDimension); err != nil {
		return err
	}
	if err := errors.ValidateDimension("height", o.Height, o.MaxDimension); err != nil {
		return err
	}
	return maze.CheckBounds(o.Width, o.Height)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Wall == "" {
		o.Wall = text.DefaultGlyphs.Wall
	}
	if o.Open == "" {
		o.Open = text.DefaultGlyphs.Open
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return o.Glyphs().Validate()
}

// Glyphs returns the text renderer glyphs.
func (o *Options) Glyphs() text.Glyphs {
	return text.Glyphs{Wall: o.Wall, Open: o.Open}
}

// Cacheable reports whether artifacts of this run may be cached.
// Only runs with an explicit seed name a reproducible maze.
func (o *Options) Cacheable() bool {
	return o.Seed != nil && !o.Refresh
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string, seed uint64) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Algorithm: o.Algorithm,
		Width:     o.Width,
		Height:    o.Height,
		Seed:      seed,
		Format:    format,
		Color:     o.Color,
	}
	switch format {
	case FormatText:
		opts.Wall, opts.Open = o.Wall, o.Open
	case FormatDOT, FormatSVG, FormatPNG:
		opts.Labels = o.Labels
	}
	return opts
}

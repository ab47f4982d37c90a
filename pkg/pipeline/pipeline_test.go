package pipeline

import (
	"bytes"
	"context"
	"slices"
	"strings"
	"testing"

	"github.com/fruitnuke/maze/pkg/cache"
	"github.com/fruitnuke/maze/pkg/errors"
	"github.com/fruitnuke/maze/pkg/maze"
)

func seedPtr(v uint64) *uint64 { return &v }

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"txt", false},
		{"dot", false},
		{"svg", false},
		{"png", false},
		{"pdf", true},
		{"TXT", true}, // ParseFormats lowercases; ValidateFormat does not
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s, want INVALID_FORMAT", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"txt", "svg"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"txt", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"txt"}},
		{" , ", []string{"txt"}},
		{"svg", []string{"svg"}},
		{"TXT, svg,txt", []string{"txt", "svg"}},
	}
	for _, tt := range tests {
		if got := ParseFormats(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("ParseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatNames(t *testing.T) {
	want := []string{"dot", "png", "svg", "txt"}
	if got := FormatNames(); !slices.Equal(got, want) {
		t.Errorf("FormatNames() = %v, want %v", got, want)
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}

	if opts.Algorithm != string(maze.AlgorithmFloodFill) {
		t.Errorf("Algorithm = %q, want %q", opts.Algorithm, maze.AlgorithmFloodFill)
	}
	if opts.Width != DefaultWidth || opts.Height != DefaultHeight {
		t.Errorf("size = %dx%d, want %dx%d", opts.Width, opts.Height, DefaultWidth, DefaultHeight)
	}
	if !slices.Equal(opts.Formats, []string{DefaultFormat}) {
		t.Errorf("Formats = %v, want [%s]", opts.Formats, DefaultFormat)
	}
	if opts.Wall != "█" || opts.Open != " " {
		t.Errorf("glyphs = %q/%q, want default", opts.Wall, opts.Open)
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"negative width", Options{Width: -1}, errors.ErrCodeInvalidArgument},
		{"negative height", Options{Height: -3}, errors.ErrCodeInvalidArgument},
		{"over max dimension", Options{Width: 65, MaxDimension: 64}, errors.ErrCodeInvalidArgument},
		{"unknown algorithm", Options{Algorithm: "prim"}, errors.ErrCodeInvalidAlgorithm},
		{"unknown format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"wide wall glyph", Options{Wall: "##"}, errors.ErrCodeInvalidGlyph},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			err := opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("ValidateAndSetDefaults() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestOptionsAlgorithmAliases(t *testing.T) {
	opts := Options{Algorithm: "DFS"}
	if err := opts.ValidateForGenerate(); err != nil {
		t.Fatalf("ValidateForGenerate() error: %v", err)
	}
	if opts.Algorithm != string(maze.AlgorithmFloodFill) {
		t.Errorf("Algorithm = %q, want canonical %q", opts.Algorithm, maze.AlgorithmFloodFill)
	}
}

func TestCacheable(t *testing.T) {
	tests := []struct {
		opts Options
		want bool
	}{
		{Options{}, false},
		{Options{Seed: seedPtr(1)}, true},
		{Options{Seed: seedPtr(1), Refresh: true}, false},
	}
	for _, tt := range tests {
		if got := tt.opts.Cacheable(); got != tt.want {
			t.Errorf("Cacheable(seed=%v refresh=%v) = %v, want %v", tt.opts.Seed != nil, tt.opts.Refresh, got, tt.want)
		}
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Algorithm: "kruskal", Width: 4, Height: 3, Wall: "#", Open: ".", Labels: true}

	txt := opts.ArtifactKeyOpts(FormatText, 9)
	if txt.Wall != "#" || txt.Open != "." || txt.Labels {
		t.Errorf("txt key opts = %+v, want glyphs without labels", txt)
	}
	svg := opts.ArtifactKeyOpts(FormatSVG, 9)
	if svg.Wall != "" || svg.Open != "" || !svg.Labels {
		t.Errorf("svg key opts = %+v, want labels without glyphs", svg)
	}

	keyer := cache.NewDefaultKeyer()
	if keyer.ArtifactKey(txt) == keyer.ArtifactKey(svg) {
		t.Error("txt and svg artifacts share a cache key")
	}
}

func TestResolveSeed(t *testing.T) {
	if got := ResolveSeed(seedPtr(42)); got != 42 {
		t.Errorf("ResolveSeed(42) = %d", got)
	}
	// Two random draws colliding is a 2^-64 event.
	if ResolveSeed(nil) == ResolveSeed(nil) {
		t.Error("ResolveSeed(nil) returned the same seed twice")
	}
}

func TestRenderFormatText(t *testing.T) {
	g := &maze.Grid{Width: 2, Height: 2, Cells: []maze.Flags{
		maze.East, maze.South,
		maze.East, 0,
	}}
	opts := Options{Wall: "#", Open: "."}
	got, err := RenderFormat(context.Background(), g, FormatText, opts)
	if err != nil {
		t.Fatalf("RenderFormat() error: %v", err)
	}
	want := "######..\n....##..\n######..\n........\n"
	if string(got) != want {
		t.Errorf("RenderFormat(txt) =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderFormatDOT(t *testing.T) {
	g := &maze.Grid{Width: 1, Height: 2, Cells: []maze.Flags{maze.South, 0}}
	got, err := RenderFormat(context.Background(), g, FormatDOT, Options{Color: "212"})
	if err != nil {
		t.Fatalf("RenderFormat() error: %v", err)
	}
	if !bytes.Contains(got, []byte("0 -- 1;")) {
		t.Errorf("DOT output missing passage:\n%s", got)
	}
	if bytes.Contains(got, []byte(`"212"`)) {
		t.Errorf("DOT output kept ANSI color:\n%s", got)
	}
}

func TestRenderFormatGraphTooLarge(t *testing.T) {
	g := &maze.Grid{Width: 200, Height: 200}
	_, err := RenderFormat(context.Background(), g, FormatSVG, Options{})
	if !errors.Is(err, errors.ErrCodeBoundsExceeded) {
		t.Errorf("RenderFormat(svg, 200x200) = %v, want BOUNDS_EXCEEDED", err)
	}
}

func TestRunnerExecute(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{
		Algorithm: "kruskal",
		Width:     6,
		Height:    4,
		Seed:      seedPtr(11),
		Formats:   []string{"txt", "dot"},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if result.ID == "" {
		t.Error("Result.ID is empty")
	}
	if result.Seed != 11 || result.Algorithm != maze.AlgorithmKruskal {
		t.Errorf("Result = seed %d alg %s, want 11 kruskal", result.Seed, result.Algorithm)
	}
	if err := result.Grid.Validate(); err != nil {
		t.Errorf("generated grid invalid: %v", err)
	}
	if result.Stats.Cells != 24 || result.Stats.Passages != 23 {
		t.Errorf("Stats = %+v, want 24 cells 23 passages", result.Stats.Stats)
	}
	txt := string(result.Artifacts["txt"])
	if lines := strings.Count(txt, "\n"); lines != 8 {
		t.Errorf("txt has %d lines, want 8", lines)
	}
	if _, ok := result.Artifacts["dot"]; !ok {
		t.Error("dot artifact missing")
	}
	if result.CacheInfo.RenderHit {
		t.Error("RenderHit with null cache")
	}
}

func TestRunnerDeterministic(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	opts := Options{Width: 9, Height: 7, Seed: seedPtr(5)}

	a, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	b, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !slices.Equal(a.Grid.Cells, b.Grid.Cells) {
		t.Error("same seed produced different mazes")
	}
	if a.ID == b.ID {
		t.Error("runs share an ID")
	}
}

func TestRunnerCachesExplicitSeed(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	r := NewRunner(fc, nil, nil)
	defer r.Close()
	ctx := context.Background()
	opts := Options{Width: 5, Height: 5, Seed: seedPtr(3), Formats: []string{"txt", "dot"}}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if first.CacheInfo.RenderHit {
		t.Fatal("first run hit an empty cache")
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run missed the cache")
	}
	if !bytes.Equal(first.Artifacts["txt"], second.Artifacts["txt"]) {
		t.Error("cached txt differs from rendered txt")
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if third.CacheInfo.RenderHit {
		t.Error("refresh run hit the cache")
	}
}

func TestRunnerSkipsCacheForRandomSeed(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	r := NewRunner(fc, nil, nil)

	if _, err := r.Execute(context.Background(), Options{Width: 3, Height: 3}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	n, err := fc.Clear()
	if err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if n != 0 {
		t.Errorf("random-seed run stored %d cache entries, want 0", n)
	}
}

func TestRunnerRejectsInvalidOptions(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), Options{Width: 0, Height: -2})
	if !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("Execute() = %v, want INVALID_ARGUMENT", err)
	}
}

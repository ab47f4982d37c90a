package text

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/go-cmp/cmp"

	"github.com/fruitnuke/maze/pkg/errors"
	"github.com/fruitnuke/maze/pkg/maze"
)

func TestLines(t *testing.T) {
	tests := []struct {
		name   string
		grid   *maze.Grid
		glyphs Glyphs
		want   []string
	}{
		{
			name: "single cell",
			grid: &maze.Grid{Width: 1, Height: 1, Cells: []maze.Flags{0}},
			want: []string{
				"██  ",
				"    ",
			},
		},
		{
			name: "two by two",
			grid: &maze.Grid{Width: 2, Height: 2, Cells: []maze.Flags{
				maze.East | maze.Visited, maze.South | maze.Visited,
				maze.East | maze.Visited, maze.Visited,
			}},
			want: []string{
				"██████  ",
				"    ██  ",
				"██████  ",
				"        ",
			},
		},
		{
			name: "column",
			grid: &maze.Grid{Width: 1, Height: 3, Cells: []maze.Flags{maze.South, maze.South, 0}},
			want: []string{
				"██  ",
				"██  ",
				"██  ",
				"██  ",
				"██  ",
				"    ",
			},
		},
		{
			name:   "custom glyphs",
			grid:   &maze.Grid{Width: 2, Height: 1, Cells: []maze.Flags{maze.East, 0}},
			glyphs: Glyphs{Wall: "#", Open: "."},
			want: []string{
				"######..",
				"........",
			},
		},
		{
			name:   "partial glyphs",
			grid:   &maze.Grid{Width: 1, Height: 1, Cells: []maze.Flags{0}},
			glyphs: Glyphs{Open: "."},
			want: []string{
				"██..",
				"....",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Lines(tt.grid, tt.glyphs)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLines_Dimensions(t *testing.T) {
	for _, alg := range maze.Algorithms {
		g, err := maze.Generate(alg, 13, 7, maze.NewRand(4))
		if err != nil {
			t.Fatalf("Generate(%s) error: %v", alg, err)
		}
		lines := Lines(g, Glyphs{})
		if len(lines) != 14 {
			t.Fatalf("%s: %d lines, want 14", alg, len(lines))
		}
		for i, line := range lines {
			if n := utf8.RuneCountInString(line); n != 52 {
				t.Errorf("%s: line %d has %d glyphs, want 52", alg, i, n)
			}
		}
	}
}

func TestLines_BlockContract(t *testing.T) {
	g, err := maze.Kruskal(9, 6, maze.NewRand(8))
	if err != nil {
		t.Fatalf("Kruskal() error: %v", err)
	}
	lines := Lines(g, Glyphs{Wall: "#", Open: "."})

	for c := range g.Cells {
		row, col := g.Coordinate(c)
		top := lines[row*2][col*4 : col*4+4]
		bottom := lines[row*2+1][col*4 : col*4+4]

		want := "##.."
		if g.East(c) {
			want = "####"
		}
		if top != want {
			t.Errorf("cell %d top = %q, want %q", c, top, want)
		}

		want = "...."
		if g.South(c) {
			want = "##.."
		}
		if bottom != want {
			t.Errorf("cell %d bottom = %q, want %q", c, bottom, want)
		}
	}
}

func TestRender(t *testing.T) {
	g := &maze.Grid{Width: 2, Height: 1, Cells: []maze.Flags{maze.East, 0}}
	got := string(Render(g, Options{}))
	want := "██████  \n        \n"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestWrite_ColorWithoutTerminal(t *testing.T) {
	g, err := maze.FloodFill(4, 3, maze.NewRand(2))
	if err != nil {
		t.Fatalf("FloodFill() error: %v", err)
	}

	var plain, colored bytes.Buffer
	if err := Write(&plain, g, Options{}); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if err := Write(&colored, g, Options{Color: "212"}); err != nil {
		t.Fatalf("Write(color) error: %v", err)
	}
	if diff := cmp.Diff(plain.String(), colored.String()); diff != "" {
		t.Errorf("colored output differs off-terminal (-plain +colored):\n%s", diff)
	}
}

func TestColorRuns(t *testing.T) {
	style := lipgloss.NewStyle()
	tests := []string{
		"",
		"    ",
		"██  ██",
		"██████  ",
		"  ██  ",
	}
	for _, line := range tests {
		if got := colorRuns(line, "█", style); got != line {
			t.Errorf("colorRuns(%q) = %q, want unchanged", line, got)
		}
	}
}

func TestGlyphsValidate(t *testing.T) {
	tests := []struct {
		glyphs  Glyphs
		wantErr bool
	}{
		{DefaultGlyphs, false},
		{Glyphs{Wall: "#", Open: "."}, false},
		{Glyphs{Wall: "##", Open: "."}, true},
		{Glyphs{Wall: "#", Open: ""}, true},
		{Glyphs{Wall: "\n", Open: " "}, true},
	}
	for _, tt := range tests {
		err := tt.glyphs.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%+v.Validate() error = %v, wantErr %v", tt.glyphs, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidGlyph) {
			t.Errorf("%+v.Validate() code = %v", tt.glyphs, errors.GetCode(err))
		}
	}
}

func TestLines_TrailingOpenColumns(t *testing.T) {
	g, err := maze.FloodFill(5, 5, maze.NewRand(1))
	if err != nil {
		t.Fatalf("FloodFill() error: %v", err)
	}
	for i, line := range Lines(g, Glyphs{Wall: "#", Open: "."}) {
		if !strings.HasSuffix(line, "..") {
			t.Errorf("line %d = %q, want open east edge", i, line)
		}
	}
}

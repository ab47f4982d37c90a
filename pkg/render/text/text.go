// Package text renders a maze as a block-glyph grid for terminals.
//
// Each cell becomes a block of 2 rows by 4 columns, so a maze renders to
// Height*2 lines of Width*4 glyphs:
//
//	top row:    W W e e    e = wall glyph iff the cell has an East passage
//	bottom row: s s . .    s = wall glyph iff the cell has a South passage
//
// W is always the wall glyph and . is always the open glyph. The filled
// glyphs trace the carved passages; open glyphs are the gaps between them.
package text

import (
	"bytes"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fruitnuke/maze/pkg/errors"
	"github.com/fruitnuke/maze/pkg/maze"
)

// Glyphs are the two single-character strings a rendering is made of.
type Glyphs struct {
	Wall string `json:"wall"`
	Open string `json:"open"`
}

// DefaultGlyphs draws walls with a full block and openings with a space.
var DefaultGlyphs = Glyphs{Wall: "█", Open: " "}

// Validate checks that both glyphs are single printable characters.
func (g Glyphs) Validate() error {
	if err := errors.ValidateGlyph(g.Wall); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidGlyph, err, "wall glyph")
	}
	if err := errors.ValidateGlyph(g.Open); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidGlyph, err, "open glyph")
	}
	return nil
}

func (g Glyphs) withDefaults() Glyphs {
	if g.Wall == "" {
		g.Wall = DefaultGlyphs.Wall
	}
	if g.Open == "" {
		g.Open = DefaultGlyphs.Open
	}
	return g
}

// Options configures text rendering.
type Options struct {
	// Glyphs overrides DefaultGlyphs. Empty fields keep the default.
	Glyphs Glyphs

	// Color is a lipgloss color ("212", "#ff8800") applied to runs of wall
	// glyphs. Empty renders plain text. Color only shows when the output
	// terminal supports it.
	Color string
}

// Lines returns the rendering as Height*2 strings of Width*4 glyphs.
func Lines(g *maze.Grid, glyphs Glyphs) []string {
	glyphs = glyphs.withDefaults()
	wall, open := glyphs.Wall, glyphs.Open
	wall2, open2 := wall+wall, open+open

	lines := make([]string, 0, g.Height*2)
	var top, bottom strings.Builder
	for row := 0; row < g.Height; row++ {
		top.Reset()
		bottom.Reset()
		for col := 0; col < g.Width; col++ {
			c := g.Index(row, col)

			top.WriteString(wall2)
			if g.East(c) {
				top.WriteString(wall2)
			} else {
				top.WriteString(open2)
			}

			if g.South(c) {
				bottom.WriteString(wall2)
			} else {
				bottom.WriteString(open2)
			}
			bottom.WriteString(open2)
		}
		lines = append(lines, top.String(), bottom.String())
	}
	return lines
}

// Render returns the rendering with a newline after every line.
func Render(g *maze.Grid, opts Options) []byte {
	var buf bytes.Buffer
	_ = Write(&buf, g, opts)
	return buf.Bytes()
}

// Write writes the rendering to w with a newline after every line.
func Write(w io.Writer, g *maze.Grid, opts Options) error {
	wall := opts.Glyphs.withDefaults().Wall
	var style *lipgloss.Style
	if opts.Color != "" {
		s := lipgloss.NewStyle().Foreground(lipgloss.Color(opts.Color))
		style = &s
	}

	for _, line := range Lines(g, opts.Glyphs) {
		if style != nil {
			line = colorRuns(line, wall, *style)
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// colorRuns styles each maximal run of wall glyphs in line.
func colorRuns(line, wall string, style lipgloss.Style) string {
	var b strings.Builder
	for len(line) > 0 {
		i := strings.Index(line, wall)
		if i < 0 {
			b.WriteString(line)
			break
		}
		b.WriteString(line[:i])
		line = line[i:]

		n := 0
		for strings.HasPrefix(line[n:], wall) {
			n += len(wall)
		}
		b.WriteString(style.Render(line[:n]))
		line = line[n:]
	}
	return b.String()
}

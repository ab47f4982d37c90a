package maze

import "github.com/fruitnuke/maze/pkg/errors"

// Validate checks that g is a perfect maze: cells sized to the dimensions,
// no passage leaving the grid, and passages forming a spanning tree.
// Failures are INVALID_MAZE errors.
func (g *Grid) Validate() error {
	if g.Width < 1 || g.Height < 1 {
		return errors.New(errors.ErrCodeInvalidMaze, "dimensions %dx%d", g.Width, g.Height)
	}
	area := g.Area()
	if len(g.Cells) != area {
		return errors.New(errors.ErrCodeInvalidMaze, "%d cells for a %dx%d grid", len(g.Cells), g.Width, g.Height)
	}

	sets, err := NewDisjointSet(area)
	if err != nil {
		return err
	}
	for c, f := range g.Cells {
		if f&^(passageMask|Visited) != 0 {
			return errors.New(errors.ErrCodeInvalidMaze, "cell %d has unknown flags %#x", c, uint8(f))
		}
		if f.Has(East) {
			if c%g.Width == g.Width-1 {
				return errors.New(errors.ErrCodeInvalidMaze, "cell %d opens east out of the grid", c)
			}
			if !sets.Union(c, c+1) {
				return errors.New(errors.ErrCodeInvalidMaze, "passage %d-%d closes a cycle", c, c+1)
			}
		}
		if f.Has(South) {
			if c+g.Width >= area {
				return errors.New(errors.ErrCodeInvalidMaze, "cell %d opens south out of the grid", c)
			}
			if !sets.Union(c, c+g.Width) {
				return errors.New(errors.ErrCodeInvalidMaze, "passage %d-%d closes a cycle", c, c+g.Width)
			}
		}
	}
	if sets.Roots() != 1 {
		return errors.New(errors.ErrCodeInvalidMaze, "%d disconnected regions", sets.Roots())
	}
	return nil
}

package maze

import (
	"math"

	"github.com/fruitnuke/maze/pkg/errors"
)

const (
	// MaxDimension is the largest accepted width or height.
	MaxDimension = math.MaxInt32

	// MaxArea is the largest accepted width*height, 16384x16384 cells.
	// Kruskal needs about 40 bytes per cell for its edge list and forest,
	// so a maze at the limit still fits in a large host's memory.
	MaxArea = 1 << 28
)

// CheckBounds validates maze dimensions before anything is allocated.
//
// It fails with INVALID_ARGUMENT when a dimension is below 1 and with
// BOUNDS_EXCEEDED when a dimension exceeds MaxDimension or width*height
// overflows int or exceeds MaxArea.
func CheckBounds(width, height int) error {
	if width < 1 || height < 1 {
		return errors.New(errors.ErrCodeInvalidArgument, "width and height must be at least 1, got width=%d height=%d", width, height)
	}
	if width > MaxDimension || height > MaxDimension {
		return errors.New(errors.ErrCodeBoundsExceeded, "%dx%d: dimension exceeds %d", width, height, MaxDimension)
	}
	if width > math.MaxInt/height || width*height > MaxArea {
		return errors.New(errors.ErrCodeBoundsExceeded, "%dx%d: area exceeds %d cells", width, height, MaxArea)
	}
	return nil
}

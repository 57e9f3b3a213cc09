package tiling

import (
	"math"

	"github.com/1broseidon/tilecore/internal/window"
)

// CalculateGrid determines the optimal grid dimensions for the given number of windows
func CalculateGrid(numWindows int) (rows, cols int) {
	if numWindows == 0 {
		return 0, 0
	}

	// Calculate columns first (ceiling of square root)
	cols = int(math.Ceil(math.Sqrt(float64(numWindows))))

	// Calculate rows needed
	rows = int(math.Ceil(float64(numWindows) / float64(cols)))

	return rows, cols
}

// Grid arranges tiles row by row in a near-square grid. The master is the
// top-left cell. A short last row stretches its cells across the full width,
// and the last row and column absorb rounding remainders so the cells
// partition the screen exactly.
type Grid struct {
	sequence
}

func (Grid) Name() string { return NameGrid }

func (Grid) Geometry(w window.ID, screen window.Screen, tiles []window.ID) (window.Geometry, error) {
	i := indexOf(tiles, w)
	if i < 0 {
		return window.Geometry{}, window.UnknownWindow(w)
	}

	n := len(tiles)
	rows, cols := CalculateGrid(n)
	row := i / cols
	col := i % cols

	inRow := cols
	if row == rows-1 {
		inRow = n - row*cols
	}

	y, height := splitSpan(screen.Height, rows, row)
	x, width := splitSpan(screen.Width, inRow, col)
	return window.Geometry{X: int(x), Y: int(y), Width: width, Height: height}, nil
}

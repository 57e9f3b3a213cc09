package tiling

import "github.com/1broseidon/tilecore/internal/window"

// Vertical puts the master tile in the left half of the screen and stacks
// the remaining tiles in the right half. A lone tile gets the whole screen.
type Vertical struct {
	sequence
}

func (Vertical) Name() string { return NameVertical }

func (Vertical) Geometry(w window.ID, screen window.Screen, tiles []window.ID) (window.Geometry, error) {
	i := indexOf(tiles, w)
	if i < 0 {
		return window.Geometry{}, window.UnknownWindow(w)
	}

	n := len(tiles)
	if n == 1 {
		return screen.Geometry(), nil
	}

	masterWidth := screen.Width / 2
	if i == 0 {
		return window.Geometry{X: 0, Y: 0, Width: masterWidth, Height: screen.Height}, nil
	}

	y, height := splitSpan(screen.Height, n-1, i-1)
	return window.Geometry{
		X:      int(masterWidth),
		Y:      int(y),
		Width:  screen.Width - masterWidth,
		Height: height,
	}, nil
}

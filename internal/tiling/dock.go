package tiling

import "github.com/1broseidon/tilecore/internal/window"

// DefaultDockPercent is the share of the screen a dock edge takes when
// SizePercent is unset.
const DefaultDockPercent = 25

type dockEdge int

const (
	edgeLeft dockEdge = iota
	edgeRight
	edgeBottom
	edgeCount
)

// Dock gives the master tile a central region that shrinks as docks along
// the left, right and bottom edges fill up. Side tiles are dealt to the
// edges round-robin, so every edge holds one tile before any edge stacks a
// second. Tiles sharing an edge split it evenly.
type Dock struct {
	sequence
	// SizePercent is the width of the left/right docks and the height of
	// the bottom dock, as a percentage of the screen.
	SizePercent uint
}

func (Dock) Name() string { return NameDock }

func (d Dock) Geometry(w window.ID, screen window.Screen, tiles []window.ID) (window.Geometry, error) {
	i := indexOf(tiles, w)
	if i < 0 {
		return window.Geometry{}, window.UnknownWindow(w)
	}

	pct := d.SizePercent
	if pct == 0 || pct >= 50 {
		pct = DefaultDockPercent
	}

	var counts [edgeCount]int
	for k := 1; k < len(tiles); k++ {
		counts[edgeFor(k)]++
	}

	var leftWidth, rightWidth, bottomHeight uint
	if counts[edgeLeft] > 0 {
		leftWidth = screen.Width * pct / 100
	}
	if counts[edgeRight] > 0 {
		rightWidth = screen.Width * pct / 100
	}
	if counts[edgeBottom] > 0 {
		bottomHeight = screen.Height * pct / 100
	}
	upperHeight := screen.Height - bottomHeight

	if i == 0 {
		return window.Geometry{
			X:      int(leftWidth),
			Y:      0,
			Width:  screen.Width - leftWidth - rightWidth,
			Height: upperHeight,
		}, nil
	}

	edge := edgeFor(i)
	// position of tile i among the tiles sharing its edge
	slot := (i - 1) / int(edgeCount)

	switch edge {
	case edgeLeft:
		y, h := splitSpan(upperHeight, counts[edgeLeft], slot)
		return window.Geometry{X: 0, Y: int(y), Width: leftWidth, Height: h}, nil
	case edgeRight:
		y, h := splitSpan(upperHeight, counts[edgeRight], slot)
		return window.Geometry{X: int(screen.Width - rightWidth), Y: int(y), Width: rightWidth, Height: h}, nil
	default:
		x, wd := splitSpan(screen.Width, counts[edgeBottom], slot)
		return window.Geometry{X: int(x), Y: int(upperHeight), Width: wd, Height: bottomHeight}, nil
	}
}

// edgeFor returns the dock edge of the k-th tile (k >= 1).
func edgeFor(k int) dockEdge {
	return dockEdge((k - 1) % int(edgeCount))
}

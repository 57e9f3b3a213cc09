package tiling

import (
	"fmt"

	"github.com/1broseidon/tilecore/internal/window"
)

// Strategy computes tile geometries from the position of a window in an
// ordered tile sequence. Implementations are stateless with respect to the
// sequence: it is always passed in, and swaps rearrange it in place.
type Strategy interface {
	Name() string
	Geometry(w window.ID, screen window.Screen, tiles []window.ID) (window.Geometry, error)
	Master(tiles []window.ID) (window.ID, bool)
	SwapWithMaster(w window.ID, tiles []window.ID) error
	SwapNeighbour(w window.ID, dir window.Direction, tiles []window.ID) error
}

// Strategy names accepted by New.
const (
	NameVertical = "vertical"
	NameDock     = "dock"
	NameGrid     = "grid"
)

// Names lists the available strategies.
func Names() []string {
	return []string{NameVertical, NameDock, NameGrid}
}

// New returns the strategy registered under name. dockPercent only applies
// to the dock strategy; 0 selects its default.
func New(name string, dockPercent uint) (Strategy, error) {
	switch name {
	case NameVertical, "":
		return Vertical{}, nil
	case NameDock:
		return Dock{SizePercent: dockPercent}, nil
	case NameGrid:
		return Grid{}, nil
	default:
		return nil, fmt.Errorf("unknown tiling layout %q", name)
	}
}

// sequence implements the master/swap half of Strategy for layouts whose
// master is the front of the tile sequence.
type sequence struct{}

func (sequence) Master(tiles []window.ID) (window.ID, bool) {
	if len(tiles) == 0 {
		return 0, false
	}
	return tiles[0], true
}

// SwapWithMaster moves w to the front, shifting the tiles before it back by one.
func (sequence) SwapWithMaster(w window.ID, tiles []window.ID) error {
	i := indexOf(tiles, w)
	if i < 0 {
		return window.UnknownWindow(w)
	}
	copy(tiles[1:i+1], tiles[:i])
	tiles[0] = w
	return nil
}

// SwapNeighbour exchanges w with the tile before or after it, wrapping around.
func (sequence) SwapNeighbour(w window.ID, dir window.Direction, tiles []window.ID) error {
	i := indexOf(tiles, w)
	if i < 0 {
		return window.UnknownWindow(w)
	}
	n := len(tiles)
	j := (i + 1) % n
	if dir == window.Prev {
		j = (i - 1 + n) % n
	}
	tiles[i], tiles[j] = tiles[j], tiles[i]
	return nil
}

func indexOf(tiles []window.ID, w window.ID) int {
	for i, t := range tiles {
		if t == w {
			return i
		}
	}
	return -1
}

// splitSpan divides total into parts equal slices and returns the offset and
// size of slice idx. The last slice absorbs the division remainder.
func splitSpan(total uint, parts, idx int) (offset, size uint) {
	step := total / uint(parts)
	offset = step * uint(idx)
	if idx == parts-1 {
		return offset, total - offset
	}
	return offset, step
}

package tiling

import "github.com/1broseidon/tilecore/internal/window"

// Gap decorates another strategy, shrinking every tile by Size pixels on
// each side. Master and swap logic is forwarded untouched.
type Gap struct {
	Inner Strategy
	Size  uint
}

// NewGap wraps inner; a nil inner means Vertical.
func NewGap(inner Strategy, size uint) *Gap {
	if inner == nil {
		inner = Vertical{}
	}
	return &Gap{Inner: inner, Size: size}
}

func (g *Gap) Name() string { return g.Inner.Name() }

func (g *Gap) Geometry(w window.ID, screen window.Screen, tiles []window.ID) (window.Geometry, error) {
	geom, err := g.Inner.Geometry(w, screen, tiles)
	if err != nil {
		return window.Geometry{}, err
	}
	return Shrink(geom, g.Size), nil
}

func (g *Gap) Master(tiles []window.ID) (window.ID, bool) {
	return g.Inner.Master(tiles)
}

func (g *Gap) SwapWithMaster(w window.ID, tiles []window.ID) error {
	return g.Inner.SwapWithMaster(w, tiles)
}

func (g *Gap) SwapNeighbour(w window.ID, dir window.Direction, tiles []window.ID) error {
	return g.Inner.SwapNeighbour(w, dir, tiles)
}

// Shrink insets geom by size on all four sides. Width and height stop at zero.
func Shrink(geom window.Geometry, size uint) window.Geometry {
	geom.X += int(size)
	geom.Y += int(size)
	geom.Width = saturatingSub(geom.Width, 2*size)
	geom.Height = saturatingSub(geom.Height, 2*size)
	return geom
}

func saturatingSub(a, b uint) uint {
	if b >= a {
		return 0
	}
	return a - b
}

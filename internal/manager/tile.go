package manager

import (
	"fmt"

	"github.com/1broseidon/tilecore/internal/tiling"
	"github.com/1broseidon/tilecore/internal/window"
)

// TileManager owns the ordered tile sequence. Geometries are never stored:
// they are computed from the sequence by the tiling strategy on demand.
type TileManager struct {
	screen   window.Screen
	strategy tiling.Strategy
	tiles    []window.ID
	original map[window.ID]window.Info
}

var _ LayoutManager = (*TileManager)(nil)

// NewTileManager returns an empty tile manager. A nil strategy means
// tiling.Vertical.
func NewTileManager(screen window.Screen, strategy tiling.Strategy) *TileManager {
	if strategy == nil {
		strategy = tiling.Vertical{}
	}
	return &TileManager{
		screen:   screen,
		strategy: strategy,
		original: make(map[window.ID]window.Info),
	}
}

// Strategy returns the tiling strategy in use.
func (t *TileManager) Strategy() tiling.Strategy {
	return t.strategy
}

// SetStrategy replaces the tiling strategy; the tile order is kept.
func (t *TileManager) SetStrategy(s tiling.Strategy) {
	t.strategy = s
}

// Add appends the window to the tile sequence, remembering info as given.
func (t *TileManager) Add(info window.Info) error {
	if t.Contains(info.Window) {
		return window.AlreadyManaged(info.Window)
	}
	t.tiles = append(t.tiles, info.Window)
	t.original[info.Window] = info
	return nil
}

func (t *TileManager) Remove(w window.ID) error {
	i := indexOf(t.tiles, w)
	if i < 0 {
		return window.UnknownWindow(w)
	}
	t.tiles = removeAt(t.tiles, i)
	delete(t.original, w)
	return nil
}

func (t *TileManager) Contains(w window.ID) bool {
	_, ok := t.original[w]
	return ok
}

// Windows returns the tile sequence, master first.
func (t *TileManager) Windows() []window.ID {
	return append([]window.ID(nil), t.tiles...)
}

// WindowInfo returns w tagged as a non-fullscreen tile at its computed geometry.
func (t *TileManager) WindowInfo(w window.ID) (window.Info, error) {
	geom, err := t.strategy.Geometry(w, t.screen, t.tiles)
	if err != nil {
		return window.Info{}, err
	}
	return window.Info{Window: w, Geometry: geom, Mode: window.ModeTile}, nil
}

// OriginalInfo returns the info w was added with.
func (t *TileManager) OriginalInfo(w window.ID) (window.Info, error) {
	info, ok := t.original[w]
	if !ok {
		return window.Info{}, window.UnknownWindow(w)
	}
	return info, nil
}

// Snapshot returns the add-time info re-tagged as a tile. A restored tile
// keeps its requested geometry so floating it later lands where it asked.
func (t *TileManager) Snapshot(w window.ID) (window.Info, error) {
	info, err := t.OriginalInfo(w)
	if err != nil {
		return window.Info{}, err
	}
	info.Mode = window.ModeTile
	return info, nil
}

// WindowLayout returns a placement per tile, in sequence order.
func (t *TileManager) WindowLayout() []window.Placement {
	out := make([]window.Placement, 0, len(t.tiles))
	for _, w := range t.tiles {
		geom, err := t.strategy.Geometry(w, t.screen, t.tiles)
		if err != nil {
			panic(fmt.Sprintf("tiling %s: tile %d missing from its own sequence: %v", t.strategy.Name(), w, err))
		}
		out = append(out, window.Placement{Window: w, Geometry: geom})
	}
	return out
}

// FocusShifted does nothing: focus never changes a tile's geometry.
func (t *TileManager) FocusShifted(window.ID) {}

// Master returns the master tile, if there are any tiles.
func (t *TileManager) Master() (window.ID, bool) {
	return t.strategy.Master(t.tiles)
}

// SwapWithMaster makes w the master tile and focuses it.
func (t *TileManager) SwapWithMaster(w window.ID, focus *FocusManager) error {
	if !t.Contains(w) {
		return window.UnknownWindow(w)
	}
	if err := focus.Focus(w); err != nil {
		return err
	}
	return t.strategy.SwapWithMaster(w, t.tiles)
}

// SwapWindows swaps the focused tile with its neighbour in the given
// direction. Nothing happens when the focused window is not a tile.
func (t *TileManager) SwapWindows(dir window.Direction, focus *FocusManager) {
	w, ok := focus.Focused()
	if !ok || !t.Contains(w) {
		return
	}
	if err := t.strategy.SwapNeighbour(w, dir, t.tiles); err != nil {
		panic(fmt.Sprintf("tiling %s: swap of tracked tile %d failed: %v", t.strategy.Name(), w, err))
	}
}

func (t *TileManager) Screen() window.Screen {
	return t.screen
}

func (t *TileManager) Resize(screen window.Screen) {
	t.screen = screen
}

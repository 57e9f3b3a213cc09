package manager

import (
	"fmt"

	"github.com/1broseidon/tilecore/internal/tiling"
	"github.com/1broseidon/tilecore/internal/window"
)

// FloatOrTileManager routes each window to a TileManager or a FloatManager
// according to its mode. Floats are always painted above tiles.
type FloatOrTileManager struct {
	tiles  *TileManager
	floats *FloatManager
}

var _ LayoutManager = (*FloatOrTileManager)(nil)

// NewFloatOrTileManager returns an empty manager tiling with strategy.
func NewFloatOrTileManager(screen window.Screen, strategy tiling.Strategy) *FloatOrTileManager {
	return &FloatOrTileManager{
		tiles:  NewTileManager(screen, strategy),
		floats: NewFloatManager(screen),
	}
}

// Tiles exposes the tile half.
func (m *FloatOrTileManager) Tiles() *TileManager {
	return m.tiles
}

func (m *FloatOrTileManager) Add(info window.Info) error {
	if m.Contains(info.Window) {
		return window.AlreadyManaged(info.Window)
	}
	if info.Mode == window.ModeFloat {
		return m.floats.Add(info)
	}
	return m.tiles.Add(info)
}

func (m *FloatOrTileManager) Remove(w window.ID) error {
	if m.floats.Contains(w) {
		return m.floats.Remove(w)
	}
	return m.tiles.Remove(w)
}

func (m *FloatOrTileManager) Contains(w window.ID) bool {
	return m.tiles.Contains(w) || m.floats.Contains(w)
}

// Windows returns the tiles followed by the floats.
func (m *FloatOrTileManager) Windows() []window.ID {
	return append(m.tiles.Windows(), m.floats.Windows()...)
}

// IsFloating reports whether w is a tracked float.
func (m *FloatOrTileManager) IsFloating(w window.ID) bool {
	return m.floats.Contains(w)
}

// FloatingWindows returns the floats bottom to top.
func (m *FloatOrTileManager) FloatingWindows() []window.ID {
	return m.floats.Windows()
}

func (m *FloatOrTileManager) WindowInfo(w window.ID) (window.Info, error) {
	if m.floats.Contains(w) {
		return m.floats.WindowInfo(w)
	}
	return m.tiles.WindowInfo(w)
}

func (m *FloatOrTileManager) Snapshot(w window.ID) (window.Info, error) {
	if m.floats.Contains(w) {
		return m.floats.WindowInfo(w)
	}
	return m.tiles.Snapshot(w)
}

// WindowLayout returns the tiles in sequence order, then the floats in
// stacking order.
func (m *FloatOrTileManager) WindowLayout() []window.Placement {
	return append(m.tiles.WindowLayout(), m.floats.WindowLayout()...)
}

func (m *FloatOrTileManager) FocusShifted(w window.ID) {
	m.floats.FocusShifted(w)
}

// ToggleFloating focuses w and then moves it between the tiles and the
// floats. A tile that floats again gets back the geometry it was added with.
func (m *FloatOrTileManager) ToggleFloating(w window.ID, focus *FocusManager) error {
	if !m.Contains(w) {
		return window.UnknownWindow(w)
	}
	if err := focus.Focus(w); err != nil {
		return err
	}
	m.toggle(w)
	m.floats.FocusShifted(w)
	return nil
}

// toggle moves w to the other bucket. w must be tracked.
func (m *FloatOrTileManager) toggle(w window.ID) {
	if m.floats.Contains(w) {
		info, _ := m.floats.WindowInfo(w)
		info.Mode = window.ModeTile
		mustNot(m.floats.Remove(w))
		mustNot(m.tiles.Add(info))
		return
	}
	info, err := m.tiles.OriginalInfo(w)
	mustNot(err)
	info.Mode = window.ModeFloat
	mustNot(m.tiles.Remove(w))
	mustNot(m.floats.Add(info))
}

// SetWindowGeometry moves and resizes the float w.
func (m *FloatOrTileManager) SetWindowGeometry(w window.ID, g window.Geometry) error {
	if m.tiles.Contains(w) {
		return window.NotFloating(w)
	}
	return m.floats.SetGeometry(w, g)
}

func (m *FloatOrTileManager) Master() (window.ID, bool) {
	return m.tiles.Master()
}

// SwapWithMaster makes w the master tile and focuses it. A floating w is
// tiled first, and the tile it displaces from the master slot is floated,
// so the two trade places.
func (m *FloatOrTileManager) SwapWithMaster(w window.ID, focus *FocusManager) error {
	if !m.Contains(w) {
		return window.UnknownWindow(w)
	}
	if !focus.Contains(w) {
		return window.UnknownWindow(w)
	}
	if !m.floats.Contains(w) {
		return m.tiles.SwapWithMaster(w, focus)
	}

	oldMaster, hadMaster := m.tiles.Master()
	m.toggle(w)
	if err := m.tiles.SwapWithMaster(w, focus); err != nil {
		return err
	}
	if hadMaster {
		m.toggle(oldMaster)
	}
	return nil
}

// SwapWindows swaps the focused tile with its neighbour.
func (m *FloatOrTileManager) SwapWindows(dir window.Direction, focus *FocusManager) {
	m.tiles.SwapWindows(dir, focus)
}

func (m *FloatOrTileManager) Screen() window.Screen {
	return m.tiles.Screen()
}

func (m *FloatOrTileManager) Resize(screen window.Screen) {
	m.tiles.Resize(screen)
	m.floats.Resize(screen)
}

// mustNot panics on errors that preceding checks have ruled out.
func mustNot(err error) {
	if err != nil {
		panic(fmt.Sprintf("manager: invariant violated: %v", err))
	}
}

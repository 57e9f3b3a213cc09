package wm

import (
	"github.com/1broseidon/tilecore/internal/manager"
	"github.com/1broseidon/tilecore/internal/tiling"
	"github.com/1broseidon/tilecore/internal/window"
)

// TilingWM tiles every window, whatever mode it was added with.
type TilingWM struct {
	focus *manager.FocusManager
	tiles *manager.TileManager
	gap   *tiling.Gap
}

var (
	_ TilingSupport = (*TilingWM)(nil)
	_ GapSupport    = (*TilingWM)(nil)
)

// NewTilingWM returns an empty tiling window manager. A nil strategy means
// tiling.Vertical.
func NewTilingWM(screen window.Screen, strategy tiling.Strategy) *TilingWM {
	gap := tiling.NewGap(strategy, 0)
	return &TilingWM{
		focus: manager.NewFocusManager(),
		tiles: manager.NewTileManager(screen, gap),
		gap:   gap,
	}
}

func (m *TilingWM) Windows() []window.ID {
	return m.focus.Windows()
}

func (m *TilingWM) FocusedWindow() (window.ID, bool) {
	return m.focus.Focused()
}

func (m *TilingWM) AddWindow(info window.Info) error {
	if m.focus.Contains(info.Window) {
		return window.AlreadyManaged(info.Window)
	}
	info.Mode = window.ModeTile
	if err := m.tiles.Add(info); err != nil {
		return err
	}
	mustNot(m.focus.Add(info))
	return nil
}

func (m *TilingWM) RemoveWindow(w window.ID) error {
	if !m.focus.Contains(w) {
		return window.UnknownWindow(w)
	}
	if err := m.tiles.Remove(w); err != nil {
		return err
	}
	mustNot(m.focus.Remove(w))
	return nil
}

func (m *TilingWM) WindowLayout() window.Layout {
	focused, ok := m.focus.Focused()
	return window.NewLayout(focused, ok, m.tiles.WindowLayout())
}

func (m *TilingWM) FocusWindow(w window.ID) error {
	return m.focus.Focus(w)
}

func (m *TilingWM) UnfocusWindow() {
	m.focus.Unfocus()
}

func (m *TilingWM) CycleFocus(dir window.Direction) {
	m.focus.Cycle(dir)
}

func (m *TilingWM) WindowInfo(w window.ID) (window.Info, error) {
	return m.tiles.WindowInfo(w)
}

func (m *TilingWM) Screen() window.Screen {
	return m.tiles.Screen()
}

func (m *TilingWM) ResizeScreen(screen window.Screen) {
	m.tiles.Resize(screen)
}

func (m *TilingWM) IsManaged(w window.ID) bool {
	return m.focus.Contains(w)
}

func (m *TilingWM) MasterWindow() (window.ID, bool) {
	return m.tiles.Master()
}

func (m *TilingWM) SwapWithMaster(w window.ID) error {
	return m.tiles.SwapWithMaster(w, m.focus)
}

func (m *TilingWM) SwapWindows(dir window.Direction) {
	m.tiles.SwapWindows(dir, m.focus)
}

func (m *TilingWM) Gap() uint {
	return m.gap.Size
}

func (m *TilingWM) SetGap(size uint) {
	m.gap.Size = size
}

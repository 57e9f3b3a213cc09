package wm

import (
	"github.com/1broseidon/tilecore/internal/manager"
	"github.com/1broseidon/tilecore/internal/tiling"
	"github.com/1broseidon/tilecore/internal/window"
)

// FloatWM tiles windows added as tiles and floats the rest above them.
// Focusing a float raises it.
type FloatWM struct {
	focus  *manager.FocusManager
	layout *manager.FloatOrTileManager
	gap    *tiling.Gap
}

var (
	_ TilingSupport = (*FloatWM)(nil)
	_ FloatSupport  = (*FloatWM)(nil)
	_ GapSupport    = (*FloatWM)(nil)
)

// NewFloatWM returns an empty floating window manager. A nil strategy means
// tiling.Vertical.
func NewFloatWM(screen window.Screen, strategy tiling.Strategy) *FloatWM {
	gap := tiling.NewGap(strategy, 0)
	return &FloatWM{
		focus:  manager.NewFocusManager(),
		layout: manager.NewFloatOrTileManager(screen, gap),
		gap:    gap,
	}
}

func (m *FloatWM) Windows() []window.ID {
	return m.focus.Windows()
}

func (m *FloatWM) FocusedWindow() (window.ID, bool) {
	return m.focus.Focused()
}

func (m *FloatWM) AddWindow(info window.Info) error {
	if m.focus.Contains(info.Window) {
		return window.AlreadyManaged(info.Window)
	}
	if err := m.layout.Add(info); err != nil {
		return err
	}
	mustNot(m.focus.Add(info))
	m.layout.FocusShifted(info.Window)
	return nil
}

func (m *FloatWM) RemoveWindow(w window.ID) error {
	if !m.focus.Contains(w) {
		return window.UnknownWindow(w)
	}
	if err := m.layout.Remove(w); err != nil {
		return err
	}
	mustNot(m.focus.Remove(w))
	if focused, ok := m.focus.Focused(); ok {
		m.layout.FocusShifted(focused)
	}
	return nil
}

func (m *FloatWM) WindowLayout() window.Layout {
	focused, ok := m.focus.Focused()
	return window.NewLayout(focused, ok, m.layout.WindowLayout())
}

func (m *FloatWM) FocusWindow(w window.ID) error {
	if err := m.focus.Focus(w); err != nil {
		return err
	}
	m.layout.FocusShifted(w)
	return nil
}

func (m *FloatWM) UnfocusWindow() {
	m.focus.Unfocus()
}

func (m *FloatWM) CycleFocus(dir window.Direction) {
	m.focus.Cycle(dir)
	if focused, ok := m.focus.Focused(); ok {
		m.layout.FocusShifted(focused)
	}
}

func (m *FloatWM) WindowInfo(w window.ID) (window.Info, error) {
	return m.layout.WindowInfo(w)
}

func (m *FloatWM) Screen() window.Screen {
	return m.layout.Screen()
}

func (m *FloatWM) ResizeScreen(screen window.Screen) {
	m.layout.Resize(screen)
}

func (m *FloatWM) IsManaged(w window.ID) bool {
	return m.focus.Contains(w)
}

func (m *FloatWM) MasterWindow() (window.ID, bool) {
	return m.layout.Master()
}

func (m *FloatWM) SwapWithMaster(w window.ID) error {
	return m.layout.SwapWithMaster(w, m.focus)
}

func (m *FloatWM) SwapWindows(dir window.Direction) {
	m.layout.SwapWindows(dir, m.focus)
}

func (m *FloatWM) FloatingWindows() []window.ID {
	return m.layout.FloatingWindows()
}

func (m *FloatWM) ToggleFloating(w window.ID) error {
	return m.layout.ToggleFloating(w, m.focus)
}

func (m *FloatWM) SetWindowGeometry(w window.ID, g window.Geometry) error {
	return m.layout.SetWindowGeometry(w, g)
}

func (m *FloatWM) Gap() uint {
	return m.gap.Size
}

func (m *FloatWM) SetGap(size uint) {
	m.gap.Size = size
}

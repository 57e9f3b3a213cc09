package wm

import (
	"github.com/1broseidon/tilecore/internal/manager"
	"github.com/1broseidon/tilecore/internal/tiling"
	"github.com/1broseidon/tilecore/internal/window"
)

// MinimiseWM is a FloatWM that can also hide windows. Any operation that
// would focus a minimised window restores it first.
type MinimiseWM struct {
	focus  *manager.FocusManager
	layout *manager.MinimiseManager[*manager.FloatOrTileManager]
	gap    *tiling.Gap
}

var (
	_ TilingSupport   = (*MinimiseWM)(nil)
	_ FloatSupport    = (*MinimiseWM)(nil)
	_ MinimiseSupport = (*MinimiseWM)(nil)
	_ GapSupport      = (*MinimiseWM)(nil)
)

// NewMinimiseWM returns an empty minimising window manager. A nil strategy
// means tiling.Vertical.
func NewMinimiseWM(screen window.Screen, strategy tiling.Strategy) *MinimiseWM {
	gap := tiling.NewGap(strategy, 0)
	return &MinimiseWM{
		focus:  manager.NewFocusManager(),
		layout: manager.NewMinimiseManager(manager.NewFloatOrTileManager(screen, gap)),
		gap:    gap,
	}
}

func (m *MinimiseWM) Windows() []window.ID {
	return m.focus.Windows()
}

func (m *MinimiseWM) FocusedWindow() (window.ID, bool) {
	return m.focus.Focused()
}

func (m *MinimiseWM) AddWindow(info window.Info) error {
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

// RemoveWindow forgets w, whether it is visible or minimised.
func (m *MinimiseWM) RemoveWindow(w window.ID) error {
	if !m.focus.Contains(w) {
		return window.UnknownWindow(w)
	}
	if err := m.layout.Remove(w); err != nil {
		return err
	}
	mustNot(m.focus.Remove(w))
	if focused, ok := m.focus.Focused(); ok {
		m.reveal(focused)
	}
	return nil
}

// WindowLayout leaves out minimised windows.
func (m *MinimiseWM) WindowLayout() window.Layout {
	focused, ok := m.focus.Focused()
	return window.NewLayout(focused, ok, m.layout.WindowLayout())
}

func (m *MinimiseWM) FocusWindow(w window.ID) error {
	if m.layout.IsMinimised(w) {
		return m.layout.ToggleMinimised(w, m.focus)
	}
	if err := m.focus.Focus(w); err != nil {
		return err
	}
	m.layout.FocusShifted(w)
	return nil
}

func (m *MinimiseWM) UnfocusWindow() {
	m.focus.Unfocus()
}

// CycleFocus restores the window it lands on if that one is minimised.
func (m *MinimiseWM) CycleFocus(dir window.Direction) {
	m.focus.Cycle(dir)
	if focused, ok := m.focus.Focused(); ok {
		m.reveal(focused)
	}
}

func (m *MinimiseWM) WindowInfo(w window.ID) (window.Info, error) {
	return m.layout.WindowInfo(w)
}

func (m *MinimiseWM) Screen() window.Screen {
	return m.layout.Screen()
}

func (m *MinimiseWM) ResizeScreen(screen window.Screen) {
	m.layout.Resize(screen)
}

func (m *MinimiseWM) IsManaged(w window.ID) bool {
	return m.focus.Contains(w)
}

func (m *MinimiseWM) MasterWindow() (window.ID, bool) {
	return m.layout.Inner().Master()
}

func (m *MinimiseWM) SwapWithMaster(w window.ID) error {
	if !m.focus.Contains(w) {
		return window.UnknownWindow(w)
	}
	mustNot(m.layout.Restore(w))
	return m.layout.Inner().SwapWithMaster(w, m.focus)
}

func (m *MinimiseWM) SwapWindows(dir window.Direction) {
	m.layout.Inner().SwapWindows(dir, m.focus)
}

func (m *MinimiseWM) FloatingWindows() []window.ID {
	return m.layout.Inner().FloatingWindows()
}

func (m *MinimiseWM) ToggleFloating(w window.ID) error {
	if !m.focus.Contains(w) {
		return window.UnknownWindow(w)
	}
	mustNot(m.layout.Restore(w))
	return m.layout.Inner().ToggleFloating(w, m.focus)
}

// SetWindowGeometry also works on a minimised float, changing where it
// reappears.
func (m *MinimiseWM) SetWindowGeometry(w window.ID, g window.Geometry) error {
	if m.layout.IsMinimised(w) {
		return m.layout.SetMinimisedGeometry(w, g)
	}
	return m.layout.Inner().SetWindowGeometry(w, g)
}

// MinimisedWindows returns the minimised windows in the order they were
// minimised.
func (m *MinimiseWM) MinimisedWindows() []window.ID {
	return m.layout.MinimisedWindows()
}

func (m *MinimiseWM) ToggleMinimised(w window.ID) error {
	return m.layout.ToggleMinimised(w, m.focus)
}

func (m *MinimiseWM) Gap() uint {
	return m.gap.Size
}

func (m *MinimiseWM) SetGap(size uint) {
	m.gap.Size = size
}

// reveal restores w if needed and raises it. Used after focus moved to w
// without going through FocusWindow.
func (m *MinimiseWM) reveal(w window.ID) {
	mustNot(m.layout.Restore(w))
	m.layout.FocusShifted(w)
}

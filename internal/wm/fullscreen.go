package wm

import (
	"github.com/1broseidon/tilecore/internal/manager"
	"github.com/1broseidon/tilecore/internal/window"
)

// FullscreenWM shows only the focused window, covering the whole screen.
type FullscreenWM struct {
	screen window.Screen
	focus  *manager.FocusManager
}

var _ WindowManager = (*FullscreenWM)(nil)

func NewFullscreenWM(screen window.Screen) *FullscreenWM {
	return &FullscreenWM{screen: screen, focus: manager.NewFocusManager()}
}

func (m *FullscreenWM) Windows() []window.ID {
	return m.focus.Windows()
}

func (m *FullscreenWM) FocusedWindow() (window.ID, bool) {
	return m.focus.Focused()
}

func (m *FullscreenWM) AddWindow(info window.Info) error {
	return m.focus.Add(info)
}

func (m *FullscreenWM) RemoveWindow(w window.ID) error {
	return m.focus.Remove(w)
}

// WindowLayout is empty when nothing has focus.
func (m *FullscreenWM) WindowLayout() window.Layout {
	w, ok := m.focus.Focused()
	if !ok {
		return window.NewLayout(0, false, nil)
	}
	return window.NewLayout(w, true, []window.Placement{{Window: w, Geometry: m.screen.Geometry()}})
}

func (m *FullscreenWM) FocusWindow(w window.ID) error {
	return m.focus.Focus(w)
}

func (m *FullscreenWM) UnfocusWindow() {
	m.focus.Unfocus()
}

func (m *FullscreenWM) CycleFocus(dir window.Direction) {
	m.focus.Cycle(dir)
}

// WindowInfo reports every window as a fullscreen tile.
func (m *FullscreenWM) WindowInfo(w window.ID) (window.Info, error) {
	if !m.focus.Contains(w) {
		return window.Info{}, window.UnknownWindow(w)
	}
	return window.Info{
		Window:     w,
		Geometry:   m.screen.Geometry(),
		Mode:       window.ModeTile,
		Fullscreen: true,
	}, nil
}

func (m *FullscreenWM) Screen() window.Screen {
	return m.screen
}

func (m *FullscreenWM) ResizeScreen(screen window.Screen) {
	m.screen = screen
}

func (m *FullscreenWM) IsManaged(w window.ID) bool {
	return m.focus.Contains(w)
}

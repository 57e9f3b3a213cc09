package manager

import "github.com/1broseidon/tilecore/internal/window"

// MinimiseManager hides windows of an inner layout manager. A minimised
// window stays managed but is left out of the layout until it is restored.
type MinimiseManager[M LayoutManager] struct {
	inner     M
	minimised []minimisedWindow
}

// minimisedWindow keeps what w looked like when it was minimised next to
// the info it is re-added with.
type minimisedWindow struct {
	shown   window.Info
	restore window.Info
}

// NewMinimiseManager wraps inner with an empty minimised bucket.
func NewMinimiseManager[M LayoutManager](inner M) *MinimiseManager[M] {
	return &MinimiseManager[M]{inner: inner}
}

// Inner returns the wrapped layout manager.
func (m *MinimiseManager[M]) Inner() M {
	return m.inner
}

// Add hands info to the inner manager; minimised windows count as managed.
func (m *MinimiseManager[M]) Add(info window.Info) error {
	if m.IsMinimised(info.Window) {
		return window.AlreadyManaged(info.Window)
	}
	return m.inner.Add(info)
}

func (m *MinimiseManager[M]) Remove(w window.ID) error {
	if i := m.index(w); i >= 0 {
		m.minimised = append(m.minimised[:i:i], m.minimised[i+1:]...)
		return nil
	}
	return m.inner.Remove(w)
}

func (m *MinimiseManager[M]) Contains(w window.ID) bool {
	return m.IsMinimised(w) || m.inner.Contains(w)
}

// Windows returns the visible windows followed by the minimised ones.
func (m *MinimiseManager[M]) Windows() []window.ID {
	return append(m.inner.Windows(), m.MinimisedWindows()...)
}

// MinimisedWindows returns the minimised windows in the order they were
// minimised.
func (m *MinimiseManager[M]) MinimisedWindows() []window.ID {
	out := make([]window.ID, len(m.minimised))
	for i, mw := range m.minimised {
		out[i] = mw.shown.Window
	}
	return out
}

func (m *MinimiseManager[M]) IsMinimised(w window.ID) bool {
	return m.index(w) >= 0
}

// WindowInfo returns the info a minimised window had when it was last
// shown, or asks the inner manager.
func (m *MinimiseManager[M]) WindowInfo(w window.ID) (window.Info, error) {
	if i := m.index(w); i >= 0 {
		return m.minimised[i].shown, nil
	}
	return m.inner.WindowInfo(w)
}

func (m *MinimiseManager[M]) Snapshot(w window.ID) (window.Info, error) {
	if i := m.index(w); i >= 0 {
		return m.minimised[i].restore, nil
	}
	return m.inner.Snapshot(w)
}

// WindowLayout leaves out every minimised window.
func (m *MinimiseManager[M]) WindowLayout() []window.Placement {
	return m.inner.WindowLayout()
}

func (m *MinimiseManager[M]) FocusShifted(w window.ID) {
	m.inner.FocusShifted(w)
}

// ToggleMinimised minimises a visible w or restores a minimised one.
// Restoring focuses w. Minimising the focused window leaves nothing focused.
func (m *MinimiseManager[M]) ToggleMinimised(w window.ID, focus *FocusManager) error {
	if !focus.Contains(w) {
		return window.UnknownWindow(w)
	}
	if i := m.index(w); i >= 0 {
		if err := m.inner.Add(m.minimised[i].restore); err != nil {
			return err
		}
		m.minimised = append(m.minimised[:i:i], m.minimised[i+1:]...)
		mustNot(focus.Focus(w))
		m.inner.FocusShifted(w)
		return nil
	}

	shown, err := m.inner.WindowInfo(w)
	if err != nil {
		return err
	}
	restore, err := m.inner.Snapshot(w)
	if err != nil {
		return err
	}
	mustNot(m.inner.Remove(w))
	m.minimised = append(m.minimised, minimisedWindow{shown: shown, restore: restore})
	if focus.IsFocused(w) {
		focus.Unfocus()
	}
	return nil
}

// Restore un-minimises w if it is minimised, without touching focus.
func (m *MinimiseManager[M]) Restore(w window.ID) error {
	i := m.index(w)
	if i < 0 {
		return nil
	}
	if err := m.inner.Add(m.minimised[i].restore); err != nil {
		return err
	}
	m.minimised = append(m.minimised[:i:i], m.minimised[i+1:]...)
	return nil
}

// SetMinimisedGeometry changes where a minimised float reappears.
func (m *MinimiseManager[M]) SetMinimisedGeometry(w window.ID, g window.Geometry) error {
	i := m.index(w)
	if i < 0 {
		return window.UnknownWindow(w)
	}
	if m.minimised[i].restore.Mode != window.ModeFloat {
		return window.NotFloating(w)
	}
	m.minimised[i].shown.Geometry = g
	m.minimised[i].restore.Geometry = g
	return nil
}

func (m *MinimiseManager[M]) Screen() window.Screen {
	return m.inner.Screen()
}

func (m *MinimiseManager[M]) Resize(screen window.Screen) {
	m.inner.Resize(screen)
}

func (m *MinimiseManager[M]) index(w window.ID) int {
	for i, mw := range m.minimised {
		if mw.shown.Window == w {
			return i
		}
	}
	return -1
}

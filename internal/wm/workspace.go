package wm

import (
	"errors"

	"github.com/1broseidon/tilecore/internal/window"
)

// WorkspaceWM switches between several window managers, one per workspace.
// Only the current workspace is visible and addressable. A window id is
// unique across all workspaces. Screen and gap changes reach every
// workspace.
//
// Capability methods forward to the current workspace and fail with
// ErrUnsupported when its window manager lacks the capability; use As to
// ask first.
type WorkspaceWM struct {
	spaces  []WindowManager
	current int
}

var (
	_ TilingSupport         = (*WorkspaceWM)(nil)
	_ FloatSupport          = (*WorkspaceWM)(nil)
	_ MinimiseSupport       = (*WorkspaceWM)(nil)
	_ GapSupport            = (*WorkspaceWM)(nil)
	_ MultiWorkspaceSupport = (*WorkspaceWM)(nil)
)

// NewWorkspaceWM returns a manager over spaces, starting on the first one.
// The spaces must be empty and share one screen.
func NewWorkspaceWM(spaces ...WindowManager) (*WorkspaceWM, error) {
	if len(spaces) == 0 {
		return nil, errors.New("workspace manager needs at least one workspace")
	}
	for i, s := range spaces {
		if s == nil {
			return nil, window.InvalidWorkspace(i, len(spaces))
		}
	}
	return &WorkspaceWM{spaces: spaces}, nil
}

// Current returns the window manager of the current workspace.
func (m *WorkspaceWM) Current() WindowManager {
	return m.spaces[m.current]
}

func (m *WorkspaceWM) CurrentWorkspaceIndex() int {
	return m.current
}

func (m *WorkspaceWM) WorkspaceCount() int {
	return len(m.spaces)
}

// Workspace returns a read-only view of the workspace at index. Windows are
// added and changed through m so ids stay unique across workspaces.
func (m *WorkspaceWM) Workspace(index int) (WorkspaceView, error) {
	if index < 0 || index >= len(m.spaces) {
		return WorkspaceView{}, window.InvalidWorkspace(index, len(m.spaces))
	}
	return WorkspaceView{wm: m.spaces[index]}, nil
}

// WorkspaceView inspects one workspace without changing it.
type WorkspaceView struct {
	wm WindowManager
}

func (v WorkspaceView) Windows() []window.ID {
	return v.wm.Windows()
}

func (v WorkspaceView) FocusedWindow() (window.ID, bool) {
	return v.wm.FocusedWindow()
}

func (v WorkspaceView) WindowLayout() window.Layout {
	return v.wm.WindowLayout()
}

func (v WorkspaceView) WindowInfo(w window.ID) (window.Info, error) {
	return v.wm.WindowInfo(w)
}

func (v WorkspaceView) Screen() window.Screen {
	return v.wm.Screen()
}

func (v WorkspaceView) IsManaged(w window.ID) bool {
	return v.wm.IsManaged(w)
}

// Gap reports the workspace's gap, if it has one.
func (v WorkspaceView) Gap() (uint, bool) {
	if g, ok := v.wm.(GapSupport); ok {
		return g.Gap(), true
	}
	return 0, false
}

// SwitchWorkspace makes index the current workspace. Focus on each workspace
// is kept as it was.
func (m *WorkspaceWM) SwitchWorkspace(index int) error {
	if index < 0 || index >= len(m.spaces) {
		return window.InvalidWorkspace(index, len(m.spaces))
	}
	m.current = index
	return nil
}

// WorkspaceOf returns the index of the workspace managing w.
func (m *WorkspaceWM) WorkspaceOf(w window.ID) (int, bool) {
	for i, s := range m.spaces {
		if s.IsManaged(w) {
			return i, true
		}
	}
	return 0, false
}

func (m *WorkspaceWM) Windows() []window.ID {
	return m.Current().Windows()
}

func (m *WorkspaceWM) FocusedWindow() (window.ID, bool) {
	return m.Current().FocusedWindow()
}

// AddWindow adds to the current workspace. It fails if any workspace
// already manages the window.
func (m *WorkspaceWM) AddWindow(info window.Info) error {
	if _, ok := m.WorkspaceOf(info.Window); ok {
		return window.AlreadyManaged(info.Window)
	}
	return m.Current().AddWindow(info)
}

func (m *WorkspaceWM) RemoveWindow(w window.ID) error {
	return m.Current().RemoveWindow(w)
}

func (m *WorkspaceWM) WindowLayout() window.Layout {
	return m.Current().WindowLayout()
}

func (m *WorkspaceWM) FocusWindow(w window.ID) error {
	return m.Current().FocusWindow(w)
}

func (m *WorkspaceWM) UnfocusWindow() {
	m.Current().UnfocusWindow()
}

func (m *WorkspaceWM) CycleFocus(dir window.Direction) {
	m.Current().CycleFocus(dir)
}

func (m *WorkspaceWM) WindowInfo(w window.ID) (window.Info, error) {
	return m.Current().WindowInfo(w)
}

func (m *WorkspaceWM) Screen() window.Screen {
	return m.Current().Screen()
}

func (m *WorkspaceWM) ResizeScreen(screen window.Screen) {
	for _, s := range m.spaces {
		s.ResizeScreen(screen)
	}
}

// IsManaged reports whether the current workspace manages w.
func (m *WorkspaceWM) IsManaged(w window.ID) bool {
	return m.Current().IsManaged(w)
}

func (m *WorkspaceWM) MasterWindow() (window.ID, bool) {
	if t, ok := m.Current().(TilingSupport); ok {
		return t.MasterWindow()
	}
	return 0, false
}

func (m *WorkspaceWM) SwapWithMaster(w window.ID) error {
	t, ok := m.Current().(TilingSupport)
	if !ok {
		return ErrUnsupported
	}
	return t.SwapWithMaster(w)
}

func (m *WorkspaceWM) SwapWindows(dir window.Direction) {
	if t, ok := m.Current().(TilingSupport); ok {
		t.SwapWindows(dir)
	}
}

func (m *WorkspaceWM) FloatingWindows() []window.ID {
	if f, ok := m.Current().(FloatSupport); ok {
		return f.FloatingWindows()
	}
	return nil
}

func (m *WorkspaceWM) ToggleFloating(w window.ID) error {
	f, ok := m.Current().(FloatSupport)
	if !ok {
		return ErrUnsupported
	}
	return f.ToggleFloating(w)
}

func (m *WorkspaceWM) SetWindowGeometry(w window.ID, g window.Geometry) error {
	f, ok := m.Current().(FloatSupport)
	if !ok {
		return ErrUnsupported
	}
	return f.SetWindowGeometry(w, g)
}

func (m *WorkspaceWM) MinimisedWindows() []window.ID {
	if mm, ok := m.Current().(MinimiseSupport); ok {
		return mm.MinimisedWindows()
	}
	return nil
}

func (m *WorkspaceWM) ToggleMinimised(w window.ID) error {
	mm, ok := m.Current().(MinimiseSupport)
	if !ok {
		return ErrUnsupported
	}
	return mm.ToggleMinimised(w)
}

func (m *WorkspaceWM) Gap() uint {
	if g, ok := m.Current().(GapSupport); ok {
		return g.Gap()
	}
	return 0
}

// SetGap changes the gap on every workspace that has one.
func (m *WorkspaceWM) SetGap(size uint) {
	for _, s := range m.spaces {
		if g, ok := s.(GapSupport); ok {
			g.SetGap(size)
		}
	}
}

package manager

import "github.com/1broseidon/tilecore/internal/window"

// FloatManager keeps floating windows in stacking order: the last entry is
// painted on top.
type FloatManager struct {
	screen window.Screen
	floats []window.Info
}

// NewFloatManager returns an empty float manager.
func NewFloatManager(screen window.Screen) *FloatManager {
	return &FloatManager{screen: screen}
}

// Add puts the window on top of the stack.
func (f *FloatManager) Add(info window.Info) error {
	if f.Contains(info.Window) {
		return window.AlreadyManaged(info.Window)
	}
	f.floats = append(f.floats, info)
	return nil
}

func (f *FloatManager) Remove(w window.ID) error {
	i := f.index(w)
	if i < 0 {
		return window.UnknownWindow(w)
	}
	f.floats = append(f.floats[:i:i], f.floats[i+1:]...)
	return nil
}

func (f *FloatManager) Contains(w window.ID) bool {
	return f.index(w) >= 0
}

// Windows returns the floats bottom to top.
func (f *FloatManager) Windows() []window.ID {
	out := make([]window.ID, len(f.floats))
	for i, info := range f.floats {
		out[i] = info.Window
	}
	return out
}

func (f *FloatManager) WindowInfo(w window.ID) (window.Info, error) {
	i := f.index(w)
	if i < 0 {
		return window.Info{}, window.UnknownWindow(w)
	}
	return f.floats[i], nil
}

// SetGeometry moves and resizes the float w.
func (f *FloatManager) SetGeometry(w window.ID, g window.Geometry) error {
	i := f.index(w)
	if i < 0 {
		return window.UnknownWindow(w)
	}
	f.floats[i].Geometry = g
	return nil
}

// FocusShifted raises w to the top if it is a float.
func (f *FloatManager) FocusShifted(w window.ID) {
	i := f.index(w)
	if i < 0 || i == len(f.floats)-1 {
		return
	}
	info := f.floats[i]
	f.floats = append(f.floats[:i:i], f.floats[i+1:]...)
	f.floats = append(f.floats, info)
}

func (f *FloatManager) WindowLayout() []window.Placement {
	out := make([]window.Placement, len(f.floats))
	for i, info := range f.floats {
		out[i] = window.Placement{Window: info.Window, Geometry: info.Geometry}
	}
	return out
}

func (f *FloatManager) Screen() window.Screen {
	return f.screen
}

func (f *FloatManager) Resize(screen window.Screen) {
	f.screen = screen
}

func (f *FloatManager) index(w window.ID) int {
	for i, info := range f.floats {
		if info.Window == w {
			return i
		}
	}
	return -1
}

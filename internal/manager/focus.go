package manager

import "github.com/1broseidon/tilecore/internal/window"

// FocusManager tracks every managed window and which one, if any, has focus.
// The focused window is kept out of the sequence; unfocusing pushes it to
// the back, which is what makes cycling move through windows in order.
type FocusManager struct {
	windows  []window.ID
	focused  window.ID
	hasFocus bool
}

// NewFocusManager returns an empty focus manager.
func NewFocusManager() *FocusManager {
	return &FocusManager{}
}

// Windows returns all tracked windows, the focused one last.
func (f *FocusManager) Windows() []window.ID {
	out := make([]window.ID, 0, len(f.windows)+1)
	out = append(out, f.windows...)
	if f.hasFocus {
		out = append(out, f.focused)
	}
	return out
}

// Contains reports whether w is tracked.
func (f *FocusManager) Contains(w window.ID) bool {
	if f.hasFocus && f.focused == w {
		return true
	}
	return indexOf(f.windows, w) >= 0
}

// Focused returns the focused window, if any.
func (f *FocusManager) Focused() (window.ID, bool) {
	return f.focused, f.hasFocus
}

// IsFocused reports whether w has focus.
func (f *FocusManager) IsFocused(w window.ID) bool {
	return f.hasFocus && f.focused == w
}

// Add starts tracking the window of info and focuses it.
func (f *FocusManager) Add(info window.Info) error {
	if f.Contains(info.Window) {
		return window.AlreadyManaged(info.Window)
	}
	f.pushFocusedBack()
	f.focused, f.hasFocus = info.Window, true
	return nil
}

// Remove stops tracking w. If w had focus, the window at the back of the
// sequence inherits it.
func (f *FocusManager) Remove(w window.ID) error {
	if f.IsFocused(w) {
		f.hasFocus = false
		if n := len(f.windows); n > 0 {
			f.focused, f.hasFocus = f.windows[n-1], true
			f.windows = f.windows[:n-1]
		}
		return nil
	}
	i := indexOf(f.windows, w)
	if i < 0 {
		return window.UnknownWindow(w)
	}
	f.windows = removeAt(f.windows, i)
	return nil
}

// Focus gives focus to w. The previously focused window moves to the back.
// Nothing changes when w is unknown.
func (f *FocusManager) Focus(w window.ID) error {
	if !f.Contains(w) {
		return window.UnknownWindow(w)
	}
	f.pushFocusedBack()
	i := indexOf(f.windows, w)
	f.windows = removeAt(f.windows, i)
	f.focused, f.hasFocus = w, true
	return nil
}

// Unfocus leaves no window focused.
func (f *FocusManager) Unfocus() {
	f.pushFocusedBack()
}

// Cycle moves focus to the next or previous window.
func (f *FocusManager) Cycle(dir window.Direction) {
	if dir == window.Prev {
		if f.hasFocus {
			f.windows = append([]window.ID{f.focused}, f.windows...)
			f.hasFocus = false
		}
		if n := len(f.windows); n > 0 {
			f.focused, f.hasFocus = f.windows[n-1], true
			f.windows = f.windows[:n-1]
		}
		return
	}

	f.pushFocusedBack()
	if len(f.windows) > 0 {
		f.focused, f.hasFocus = f.windows[0], true
		f.windows = f.windows[1:]
	}
}

func (f *FocusManager) pushFocusedBack() {
	if f.hasFocus {
		f.windows = append(f.windows, f.focused)
		f.hasFocus = false
	}
}

func indexOf(ws []window.ID, w window.ID) int {
	for i, x := range ws {
		if x == w {
			return i
		}
	}
	return -1
}

// removeAt deletes ws[i] without aliasing the caller's backing array.
func removeAt(ws []window.ID, i int) []window.ID {
	out := make([]window.ID, 0, len(ws)-1)
	out = append(out, ws[:i]...)
	return append(out, ws[i+1:]...)
}

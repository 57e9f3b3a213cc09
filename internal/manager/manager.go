// Package manager holds the single-purpose window state managers that the
// composite window managers in package wm are assembled from: focus, tiles,
// floats and the minimised bucket.
//
// None of the managers are safe for concurrent use.
package manager

import "github.com/1broseidon/tilecore/internal/window"

// LayoutManager is a manager that decides where its windows go on screen.
// TileManager and FloatOrTileManager implement it; MinimiseManager wraps one.
type LayoutManager interface {
	Add(info window.Info) error
	Remove(w window.ID) error
	Contains(w window.ID) bool
	Windows() []window.ID
	// WindowInfo returns the effective info of w, with the geometry the
	// window is currently shown at.
	WindowInfo(w window.ID) (window.Info, error)
	// Snapshot returns the info needed to re-add w later with its mode and
	// requested geometry intact.
	Snapshot(w window.ID) (window.Info, error)
	WindowLayout() []window.Placement
	// FocusShifted tells the manager that w received focus.
	FocusShifted(w window.ID)
	Screen() window.Screen
	Resize(screen window.Screen)
}

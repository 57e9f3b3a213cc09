// Package platform pushes engine layouts to a real window system.
package platform

import (
	"github.com/1broseidon/tilecore/internal/window"
)

// Window is a top-level window the window system reports.
type Window struct {
	ID     window.ID
	Title  string
	Bounds window.Geometry
	Hidden bool
}

// Backend abstracts window-system operations across platforms. Geometries
// are relative to the usable screen area.
type Backend interface {
	ScreenSize() (window.Screen, error)
	ListWindows() ([]Window, error)
	MoveResize(id window.ID, bounds window.Geometry) error
	Minimize(id window.ID) error
	Activate(id window.ID) error
}

//go:build !linux

package platform

import (
	"errors"

	"github.com/1broseidon/tilecore/internal/window"
)

var errNoX11 = errors.New("the X11 backend is only available on linux")

// LinuxBackend is unavailable on this platform.
type LinuxBackend struct{}

var _ Backend = (*LinuxBackend)(nil)

// NewX11Backend always fails on this platform.
func NewX11Backend() (*LinuxBackend, error) { return nil, errNoX11 }

func (*LinuxBackend) Close() error                                { return nil }
func (*LinuxBackend) ScreenSize() (window.Screen, error)          { return window.Screen{}, errNoX11 }
func (*LinuxBackend) ListWindows() ([]Window, error)              { return nil, errNoX11 }
func (*LinuxBackend) MoveResize(window.ID, window.Geometry) error { return errNoX11 }
func (*LinuxBackend) Minimize(window.ID) error                    { return errNoX11 }
func (*LinuxBackend) Activate(window.ID) error                    { return errNoX11 }

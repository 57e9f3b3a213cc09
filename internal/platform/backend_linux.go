//go:build linux

package platform

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/tilecore/internal/window"
	"github.com/1broseidon/tilecore/internal/x11"
)

// LinuxBackend wraps an X11 connection behind the platform Backend interface.
type LinuxBackend struct {
	conn *x11.Connection
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{conn: conn}
}

// NewX11Backend opens a fresh X11 connection.
func NewX11Backend() (*LinuxBackend, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &LinuxBackend{conn: conn}, nil
}

// Close closes the underlying X11 connection.
func (b *LinuxBackend) Close() error {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
	return nil
}

// ScreenSize returns the size of the current desktop's work area.
func (b *LinuxBackend) ScreenSize() (window.Screen, error) {
	conn, err := b.connection()
	if err != nil {
		return window.Screen{}, err
	}
	area, err := conn.WorkArea()
	if err != nil {
		return window.Screen{}, err
	}
	return window.Screen{Width: uint(area.Width), Height: uint(area.Height)}, nil
}

// ListWindows lists normal windows on the current desktop with bounds
// relative to the work area.
func (b *LinuxBackend) ListWindows() ([]Window, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}
	area, err := conn.WorkArea()
	if err != nil {
		return nil, err
	}
	clients, err := conn.Clients()
	if err != nil {
		return nil, err
	}

	windows := make([]Window, 0, len(clients))
	for _, c := range clients {
		windows = append(windows, Window{
			ID:    window.ID(c.ID),
			Title: c.Title,
			Bounds: window.Geometry{
				X:      c.Area.X - area.X,
				Y:      c.Area.Y - area.Y,
				Width:  uint(c.Area.Width),
				Height: uint(c.Area.Height),
			},
			Hidden: conn.IsHidden(c.ID),
		})
	}
	return windows, nil
}

// MoveResize moves and resizes a window, translating into root coordinates.
func (b *LinuxBackend) MoveResize(id window.ID, bounds window.Geometry) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	area, err := conn.WorkArea()
	if err != nil {
		return err
	}
	return conn.MoveResizeWindow(
		xproto.Window(id),
		area.X+bounds.X,
		area.Y+bounds.Y,
		int(bounds.Width),
		int(bounds.Height),
	)
}

// Minimize iconifies a window.
func (b *LinuxBackend) Minimize(id window.ID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.MinimizeWindow(xproto.Window(id))
}

// Activate focuses and raises a window, mapping it if it was iconified.
func (b *LinuxBackend) Activate(id window.ID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.ActivateWindow(xproto.Window(id))
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.conn, nil
}

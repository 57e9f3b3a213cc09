// Package x11 wraps the xgbutil calls tilecore needs to drive an EWMH
// window manager.
package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window
}

// Area is a rectangle in root window coordinates.
type Area struct {
	X      int
	Y      int
	Width  int
	Height int
}

// NewConnection establishes a connection to the X11 server named by $DISPLAY.
func NewConnection() (*Connection, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, err
	}

	return &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}, nil
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}

// WorkArea returns the usable area of the current desktop, excluding panels
// and docks. It falls back to the root window geometry when the window
// manager does not publish _NET_WORKAREA.
func (c *Connection) WorkArea() (Area, error) {
	if areas, err := ewmh.WorkareaGet(c.XUtil); err == nil && len(areas) > 0 {
		idx := 0
		if desktop, err := c.GetCurrentDesktop(); err == nil && desktop < len(areas) {
			idx = desktop
		}
		a := areas[idx]
		if a.Width > 0 && a.Height > 0 {
			return Area{X: a.X, Y: a.Y, Width: int(a.Width), Height: int(a.Height)}, nil
		}
	}

	geom, err := xwindow.New(c.XUtil, c.Root).Geometry()
	if err != nil {
		return Area{}, fmt.Errorf("failed to get root geometry: %w", err)
	}
	return Area{X: geom.X(), Y: geom.Y(), Width: geom.Width(), Height: geom.Height()}, nil
}

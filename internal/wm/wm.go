// Package wm assembles the managers of package manager into complete window
// managers. Every window manager implements WindowManager; optional features
// are separate capability interfaces that a caller discovers with As.
package wm

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/1broseidon/tilecore/internal/tiling"
	"github.com/1broseidon/tilecore/internal/window"
)

// ErrUnsupported is returned when an operation needs a capability the
// window manager does not have.
var ErrUnsupported = errors.New("operation not supported by this window manager")

// WindowManager is the set of operations every window manager supports.
type WindowManager interface {
	// Windows returns every managed window, the focused one last.
	Windows() []window.ID
	FocusedWindow() (window.ID, bool)
	// AddWindow starts managing a window and focuses it.
	AddWindow(info window.Info) error
	RemoveWindow(w window.ID) error
	// WindowLayout returns the visible windows back to front.
	WindowLayout() window.Layout
	FocusWindow(w window.ID) error
	UnfocusWindow()
	CycleFocus(dir window.Direction)
	WindowInfo(w window.ID) (window.Info, error)
	Screen() window.Screen
	ResizeScreen(screen window.Screen)
	IsManaged(w window.ID) bool
}

// TilingSupport is implemented by window managers that tile.
type TilingSupport interface {
	WindowManager
	MasterWindow() (window.ID, bool)
	// SwapWithMaster makes w the master tile and focuses it.
	SwapWithMaster(w window.ID) error
	// SwapWindows swaps the focused tile with its neighbour.
	SwapWindows(dir window.Direction)
}

// FloatSupport is implemented by window managers with floating windows.
type FloatSupport interface {
	WindowManager
	// FloatingWindows returns the floats bottom to top.
	FloatingWindows() []window.ID
	ToggleFloating(w window.ID) error
	SetWindowGeometry(w window.ID, g window.Geometry) error
}

// MinimiseSupport is implemented by window managers that can hide windows.
type MinimiseSupport interface {
	WindowManager
	MinimisedWindows() []window.ID
	ToggleMinimised(w window.ID) error
}

// GapSupport is implemented by window managers with spacing between tiles.
type GapSupport interface {
	WindowManager
	Gap() uint
	SetGap(size uint)
}

// MultiWorkspaceSupport is implemented by window managers with several
// workspaces, only one of which is shown at a time.
type MultiWorkspaceSupport interface {
	WindowManager
	CurrentWorkspaceIndex() int
	WorkspaceCount() int
	Workspace(index int) (WorkspaceView, error)
	SwitchWorkspace(index int) error
}

// As reports whether m supports capability C. For a WorkspaceWM the answer
// depends on the window manager of the current workspace, except for
// MultiWorkspaceSupport itself.
func As[C any](m WindowManager) (C, bool) {
	var zero C
	target := m
	if ws, ok := m.(*WorkspaceWM); ok && reflect.TypeFor[C]() != reflect.TypeFor[MultiWorkspaceSupport]() {
		target = ws.Current()
	}
	if _, ok := target.(C); !ok {
		return zero, false
	}
	c, ok := m.(C)
	if !ok {
		return zero, false
	}
	return c, true
}

// Variant names accepted by New.
const (
	VariantFullscreen = "fullscreen"
	VariantTiling     = "tiling"
	VariantFloating   = "floating"
	VariantMinimising = "minimising"
)

// Variants lists the window manager variants New can build.
func Variants() []string {
	return []string{VariantFullscreen, VariantTiling, VariantFloating, VariantMinimising}
}

// Options selects and configures a window manager.
type Options struct {
	Screen      window.Screen
	Variant     string
	Layout      string
	DockPercent uint
	Gap         uint
	// Workspaces above one wrap the variant in a WorkspaceWM.
	Workspaces int
}

// New builds the window manager described by opts.
func New(opts Options) (WindowManager, error) {
	if opts.Workspaces <= 1 {
		return newVariant(opts)
	}
	spaces := make([]WindowManager, opts.Workspaces)
	for i := range spaces {
		m, err := newVariant(opts)
		if err != nil {
			return nil, err
		}
		spaces[i] = m
	}
	ws, err := NewWorkspaceWM(spaces...)
	if err != nil {
		return nil, err
	}
	return ws, nil
}

func newVariant(opts Options) (WindowManager, error) {
	if opts.Variant == VariantFullscreen {
		return NewFullscreenWM(opts.Screen), nil
	}

	strategy, err := tiling.New(opts.Layout, opts.DockPercent)
	if err != nil {
		return nil, err
	}

	var m WindowManager
	switch opts.Variant {
	case VariantTiling:
		m = NewTilingWM(opts.Screen, strategy)
	case VariantFloating:
		m = NewFloatWM(opts.Screen, strategy)
	case VariantMinimising, "":
		m = NewMinimiseWM(opts.Screen, strategy)
	default:
		return nil, fmt.Errorf("unknown window manager variant %q", opts.Variant)
	}
	if g, ok := m.(GapSupport); ok {
		g.SetGap(opts.Gap)
	}
	return m, nil
}

// mustNot panics on errors that preceding checks have ruled out.
func mustNot(err error) {
	if err != nil {
		panic(fmt.Sprintf("wm: invariant violated: %v", err))
	}
}

package window

import (
	"fmt"
	"strings"
)

// ID is an opaque window identifier.
type ID uint32

// Geometry describes a rectangle in screen coordinates.
type Geometry struct {
	X      int  `json:"x" yaml:"x"`
	Y      int  `json:"y" yaml:"y"`
	Width  uint `json:"width" yaml:"width"`
	Height uint `json:"height" yaml:"height"`
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", g.Width, g.Height, g.X, g.Y)
}

// ParseGeometry parses the WxH+X+Y form String produces. Offsets may be
// negative, as in 100x50+-10+0.
func ParseGeometry(s string) (Geometry, error) {
	size, offset, ok := strings.Cut(s, "+")
	if !ok {
		return Geometry{}, fmt.Errorf("invalid geometry %q (want WxH+X+Y)", s)
	}
	screen, err := ParseScreen(size)
	if err != nil {
		return Geometry{}, fmt.Errorf("invalid geometry %q (want WxH+X+Y)", s)
	}
	g := Geometry{Width: screen.Width, Height: screen.Height}
	if n, err := fmt.Sscanf(offset, "%d+%d", &g.X, &g.Y); err != nil || n != 2 || offset != fmt.Sprintf("%d+%d", g.X, g.Y) {
		return Geometry{}, fmt.Errorf("invalid geometry %q (want WxH+X+Y)", s)
	}
	return g, nil
}

// Area returns Width*Height.
func (g Geometry) Area() uint {
	return g.Width * g.Height
}

// Overlaps reports whether two rectangles share any area.
func (g Geometry) Overlaps(o Geometry) bool {
	if g.Width == 0 || g.Height == 0 || o.Width == 0 || o.Height == 0 {
		return false
	}
	return g.X < o.X+int(o.Width) && o.X < g.X+int(g.Width) &&
		g.Y < o.Y+int(o.Height) && o.Y < g.Y+int(g.Height)
}

// Screen is the size of the area windows are laid out on.
type Screen struct {
	Width  uint `json:"width" yaml:"width"`
	Height uint `json:"height" yaml:"height"`
}

// Geometry returns the full-screen rectangle at the origin.
func (s Screen) Geometry() Geometry {
	return Geometry{X: 0, Y: 0, Width: s.Width, Height: s.Height}
}

func (s Screen) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// ParseScreen parses a WxH size such as 1920x1080.
func ParseScreen(s string) (Screen, error) {
	var sc Screen
	if n, err := fmt.Sscanf(s, "%dx%d", &sc.Width, &sc.Height); err != nil || n != 2 || sc.String() != s {
		return Screen{}, fmt.Errorf("invalid size %q (want WxH)", s)
	}
	return sc, nil
}

// Mode says whether a window is tiled or floating.
type Mode string

const (
	ModeTile  Mode = "tile"
	ModeFloat Mode = "float"
)

// ParseMode accepts "tile" and "float"; empty means tile.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeTile:
		return ModeTile, nil
	case ModeFloat:
		return ModeFloat, nil
	default:
		return "", fmt.Errorf("invalid window mode %q (want tile or float)", s)
	}
}

// Direction is used for cycling focus and swapping neighbours.
type Direction string

const (
	Prev Direction = "prev"
	Next Direction = "next"
)

// ParseDirection accepts "prev" and "next"; empty means next.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case "", Next:
		return Next, nil
	case Prev:
		return Prev, nil
	default:
		return "", fmt.Errorf("invalid direction %q (want prev or next)", s)
	}
}

// Info describes one window as supplied by the caller or computed by a manager.
// For tiled windows kept by a manager, Geometry is the originally requested one.
type Info struct {
	Window     ID       `json:"window" yaml:"window"`
	Geometry   Geometry `json:"geometry" yaml:"geometry"`
	Mode       Mode     `json:"mode" yaml:"mode"`
	Fullscreen bool     `json:"fullscreen" yaml:"fullscreen"`
}

// NewTiled returns the Info of a non-fullscreen tile.
func NewTiled(w ID, g Geometry) Info {
	return Info{Window: w, Geometry: g, Mode: ModeTile}
}

// NewFloating returns the Info of a non-fullscreen float.
func NewFloating(w ID, g Geometry) Info {
	return Info{Window: w, Geometry: g, Mode: ModeFloat}
}

// Placement is a window together with its effective geometry.
type Placement struct {
	Window   ID       `json:"window"`
	Geometry Geometry `json:"geometry"`
}

// Layout is the result of a layout computation. Windows are listed in paint
// order, back to front.
type Layout struct {
	Focused *ID         `json:"focused_window,omitempty"`
	Windows []Placement `json:"windows"`
}

// FocusedWindow returns the focused window, if any.
func (l Layout) FocusedWindow() (ID, bool) {
	if l.Focused == nil {
		return 0, false
	}
	return *l.Focused, true
}

// Geometry returns the placement of w, if w is visible.
func (l Layout) Geometry(w ID) (Geometry, bool) {
	for _, p := range l.Windows {
		if p.Window == w {
			return p.Geometry, true
		}
	}
	return Geometry{}, false
}

// NewLayout assembles a Layout, copying the focused id.
func NewLayout(focused ID, hasFocus bool, windows []Placement) Layout {
	l := Layout{Windows: windows}
	if l.Windows == nil {
		l.Windows = []Placement{}
	}
	if hasFocus {
		f := focused
		l.Focused = &f
	}
	return l
}

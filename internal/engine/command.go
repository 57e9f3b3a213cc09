package engine

import (
	"errors"
	"fmt"

	"github.com/1broseidon/tilecore/internal/window"
)

// Op names an engine operation.
type Op string

const (
	OpAdd             Op = "add"
	OpRemove          Op = "remove"
	OpFocus           Op = "focus"
	OpUnfocus         Op = "unfocus"
	OpCycle           Op = "cycle"
	OpInfo            Op = "info"
	OpLayout          Op = "layout"
	OpResize          Op = "resize"
	OpMaster          Op = "master"
	OpSwapMaster      Op = "swap_master"
	OpSwap            Op = "swap"
	OpToggleFloat     Op = "toggle_float"
	OpSetGeometry     Op = "set_geometry"
	OpToggleMinimise  Op = "toggle_minimise"
	OpGap             Op = "gap"
	OpSetGap          Op = "set_gap"
	OpWorkspace       Op = "workspace"
	OpSwitchWorkspace Op = "switch_workspace"
	OpStatus          Op = "status"
)

// Ops lists every operation in the order they are documented.
func Ops() []Op {
	return []Op{
		OpAdd, OpRemove, OpFocus, OpUnfocus, OpCycle, OpInfo, OpLayout, OpResize,
		OpMaster, OpSwapMaster, OpSwap, OpToggleFloat, OpSetGeometry, OpToggleMinimise,
		OpGap, OpSetGap, OpWorkspace, OpSwitchWorkspace, OpStatus,
	}
}

// ErrInvalidCommand is returned for commands with a missing or malformed argument.
var ErrInvalidCommand = errors.New("invalid command")

// Command is one request to the engine. Only the fields the operation needs
// are read.
type Command struct {
	Op         Op               `json:"op" yaml:"op"`
	Window     window.ID        `json:"window,omitempty" yaml:"window,omitempty"`
	Mode       window.Mode      `json:"mode,omitempty" yaml:"mode,omitempty"`
	Geometry   *window.Geometry `json:"geometry,omitempty" yaml:"geometry,omitempty"`
	Fullscreen bool             `json:"fullscreen,omitempty" yaml:"fullscreen,omitempty"`
	Direction  window.Direction `json:"direction,omitempty" yaml:"direction,omitempty"`
	Gap        *uint            `json:"gap,omitempty" yaml:"gap,omitempty"`
	Workspace  *int             `json:"workspace,omitempty" yaml:"workspace,omitempty"`
	Screen     *window.Screen   `json:"screen,omitempty" yaml:"screen,omitempty"`
}

// Mutates reports whether the operation can change the layout.
func (op Op) Mutates() bool {
	switch op {
	case OpInfo, OpLayout, OpMaster, OpGap, OpWorkspace, OpStatus:
		return false
	}
	return true
}

// Validate checks that the command names a known operation and carries the
// arguments that operation needs.
func (c Command) Validate() error {
	switch c.Op {
	case OpAdd:
		if _, err := window.ParseMode(string(c.Mode)); err != nil {
			return invalid(c.Op, err.Error())
		}
	case OpCycle, OpSwap:
		if _, err := window.ParseDirection(string(c.Direction)); err != nil {
			return invalid(c.Op, err.Error())
		}
	case OpResize:
		if c.Screen == nil {
			return invalid(c.Op, "screen is required")
		}
	case OpSetGeometry:
		if c.Geometry == nil {
			return invalid(c.Op, "geometry is required")
		}
	case OpSetGap:
		if c.Gap == nil {
			return invalid(c.Op, "gap is required")
		}
	case OpSwitchWorkspace:
		if c.Workspace == nil {
			return invalid(c.Op, "workspace is required")
		}
	case OpRemove, OpFocus, OpUnfocus, OpInfo, OpLayout, OpMaster, OpSwapMaster,
		OpToggleFloat, OpToggleMinimise, OpGap, OpWorkspace, OpStatus:
	default:
		return fmt.Errorf("%w: unknown operation %q", ErrInvalidCommand, c.Op)
	}
	return nil
}

// Info builds the window description an add command carries.
func (c Command) Info() window.Info {
	mode, _ := window.ParseMode(string(c.Mode))
	info := window.Info{Window: c.Window, Mode: mode, Fullscreen: c.Fullscreen}
	if c.Geometry != nil {
		info.Geometry = *c.Geometry
	}
	return info
}

func invalid(op Op, msg string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidCommand, op, msg)
}

// Result is what the engine returns for a command. Layout is always the
// layout after the command ran.
type Result struct {
	Op        Op            `json:"op"`
	Info      *window.Info  `json:"info,omitempty"`
	Master    *window.ID    `json:"master,omitempty"`
	Gap       *uint         `json:"gap,omitempty"`
	Workspace *int          `json:"workspace,omitempty"`
	Status    *Status       `json:"status,omitempty"`
	Layout    window.Layout `json:"layout"`
}

// Status summarises the whole session.
type Status struct {
	Variant       string        `json:"variant"`
	Layout        string        `json:"layout"`
	Screen        window.Screen `json:"screen"`
	Windows       []window.ID   `json:"windows"`
	Focused       *window.ID    `json:"focused_window,omitempty"`
	Master        *window.ID    `json:"master,omitempty"`
	Floating      []window.ID   `json:"floating,omitempty"`
	Minimised     []window.ID   `json:"minimised,omitempty"`
	Gap           *uint         `json:"gap,omitempty"`
	Workspace     int           `json:"workspace"`
	Workspaces    int           `json:"workspaces"`
	UptimeSeconds int64         `json:"uptime_seconds"`
}

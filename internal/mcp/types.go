package mcp

import "github.com/1broseidon/tilecore/internal/window"

// EmptyInput is the input of tools that take no arguments.
type EmptyInput struct{}

// WindowInput names one window.
type WindowInput struct {
	Window uint32 `json:"window" jsonschema:"required,Window id"`
}

// AddWindowInput is the input for the add_window tool.
type AddWindowInput struct {
	Window     uint32 `json:"window" jsonschema:"required,Window id; must not already be managed"`
	Mode       string `json:"mode,omitempty" jsonschema:"tile (default) or float"`
	X          int    `json:"x,omitempty" jsonschema:"Requested left edge"`
	Y          int    `json:"y,omitempty" jsonschema:"Requested top edge"`
	Width      uint   `json:"width,omitempty" jsonschema:"Requested width; floats keep the requested geometry"`
	Height     uint   `json:"height,omitempty" jsonschema:"Requested height"`
	Fullscreen bool   `json:"fullscreen,omitempty" jsonschema:"Cover the whole screen while focused"`
}

// DirectionInput is the input for tools that move through the window order.
type DirectionInput struct {
	Direction string `json:"direction,omitempty" jsonschema:"next (default) or prev"`
}

// ResizeScreenInput is the input for the resize_screen tool.
type ResizeScreenInput struct {
	Width  uint `json:"width" jsonschema:"required,Screen width in pixels"`
	Height uint `json:"height" jsonschema:"required,Screen height in pixels"`
}

// SetGeometryInput is the input for the set_window_geometry tool.
type SetGeometryInput struct {
	Window uint32 `json:"window" jsonschema:"required,Floating window id"`
	X      int    `json:"x" jsonschema:"Left edge"`
	Y      int    `json:"y" jsonschema:"Top edge"`
	Width  uint   `json:"width" jsonschema:"required,Width in pixels"`
	Height uint   `json:"height" jsonschema:"required,Height in pixels"`
}

// SetGapInput is the input for the set_gap tool.
type SetGapInput struct {
	Gap uint `json:"gap" jsonschema:"required,Spacing between tiles in pixels"`
}

// SwitchWorkspaceInput is the input for the switch_workspace tool.
type SwitchWorkspaceInput struct {
	Workspace int `json:"workspace" jsonschema:"required,Zero-based workspace index"`
}

// geometry returns the requested rectangle, or nil when no size was given.
func (in AddWindowInput) geometry() *window.Geometry {
	if in.Width == 0 && in.Height == 0 {
		return nil
	}
	return &window.Geometry{X: in.X, Y: in.Y, Width: in.Width, Height: in.Height}
}

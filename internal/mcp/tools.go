package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/tilecore/internal/engine"
	"github.com/1broseidon/tilecore/internal/window"
)

// addTool registers a tool that runs the command build returns and replies
// with the engine result, which always carries the layout afterwards.
func addTool[In any](s *Server, name, description string, build func(In) engine.Command) {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        name,
		Description: description,
	}, func(ctx context.Context, _ *mcpsdk.CallToolRequest, in In) (*mcpsdk.CallToolResult, engine.Result, error) {
		res, err := s.execute(ctx, name, build(in))
		return nil, res, err
	})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_status",
		Description: "Summarise the window manager: variant, screen, managed windows, focus, master, floating and minimised windows, gap and workspace.",
	}, s.handleStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_layout",
		Description: "Return the visible windows back to front with their geometry, plus the focused window.",
	}, s.handleLayout)

	addTool(s, "add_window", "Start managing a window and focus it. Tiles are placed by the layout strategy; floats keep the requested geometry.",
		func(in AddWindowInput) engine.Command {
			return engine.Command{
				Op:         engine.OpAdd,
				Window:     window.ID(in.Window),
				Mode:       window.Mode(in.Mode),
				Geometry:   in.geometry(),
				Fullscreen: in.Fullscreen,
			}
		})

	addTool(s, "remove_window", "Stop managing a window.",
		windowCommand(engine.OpRemove))

	addTool(s, "focus_window", "Focus a managed window. Minimised windows are restored; floats are raised.",
		windowCommand(engine.OpFocus))

	addTool(s, "unfocus", "Clear the focus.",
		func(EmptyInput) engine.Command { return engine.Command{Op: engine.OpUnfocus} })

	addTool(s, "cycle_focus", "Move the focus to the next or previous window.",
		func(in DirectionInput) engine.Command {
			return engine.Command{Op: engine.OpCycle, Direction: window.Direction(in.Direction)}
		})

	addTool(s, "window_info", "Describe a managed window: mode, fullscreen flag and requested geometry.",
		windowCommand(engine.OpInfo))

	addTool(s, "resize_screen", "Change the screen size and recompute every layout.",
		func(in ResizeScreenInput) engine.Command {
			return engine.Command{Op: engine.OpResize, Screen: &window.Screen{Width: in.Width, Height: in.Height}}
		})

	addTool(s, "get_master", "Return the master tile, if any. Needs a tiling window manager.",
		func(EmptyInput) engine.Command { return engine.Command{Op: engine.OpMaster} })

	addTool(s, "swap_with_master", "Make a window the master tile and focus it.",
		windowCommand(engine.OpSwapMaster))

	addTool(s, "swap_windows", "Swap the focused tile with its next or previous neighbour.",
		func(in DirectionInput) engine.Command {
			return engine.Command{Op: engine.OpSwap, Direction: window.Direction(in.Direction)}
		})

	addTool(s, "toggle_floating", "Switch a window between tiled and floating.",
		windowCommand(engine.OpToggleFloat))

	addTool(s, "set_window_geometry", "Move and resize a floating window.",
		func(in SetGeometryInput) engine.Command {
			return engine.Command{
				Op:       engine.OpSetGeometry,
				Window:   window.ID(in.Window),
				Geometry: &window.Geometry{X: in.X, Y: in.Y, Width: in.Width, Height: in.Height},
			}
		})

	addTool(s, "toggle_minimised", "Minimise a window, or restore it if it is minimised.",
		windowCommand(engine.OpToggleMinimise))

	addTool(s, "get_gap", "Return the spacing between tiles.",
		func(EmptyInput) engine.Command { return engine.Command{Op: engine.OpGap} })

	addTool(s, "set_gap", "Set the spacing between tiles.",
		func(in SetGapInput) engine.Command {
			gap := in.Gap
			return engine.Command{Op: engine.OpSetGap, Gap: &gap}
		})

	addTool(s, "get_workspace", "Return the index of the current workspace.",
		func(EmptyInput) engine.Command { return engine.Command{Op: engine.OpWorkspace} })

	addTool(s, "switch_workspace", "Show another workspace. Windows of the previous one are hidden, not closed.",
		func(in SwitchWorkspaceInput) engine.Command {
			ws := in.Workspace
			return engine.Command{Op: engine.OpSwitchWorkspace, Workspace: &ws}
		})
}

func windowCommand(op engine.Op) func(WindowInput) engine.Command {
	return func(in WindowInput) engine.Command {
		return engine.Command{Op: op, Window: window.ID(in.Window)}
	}
}

func (s *Server) handleStatus(ctx context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, engine.Status, error) {
	res, err := s.execute(ctx, "get_status", engine.Command{Op: engine.OpStatus})
	if err != nil {
		return nil, engine.Status{}, err
	}
	if res.Status == nil {
		return nil, engine.Status{}, nil
	}
	return nil, *res.Status, nil
}

func (s *Server) handleLayout(ctx context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, window.Layout, error) {
	res, err := s.execute(ctx, "get_layout", engine.Command{Op: engine.OpLayout})
	if err != nil {
		return nil, window.Layout{}, err
	}
	return nil, res.Layout, nil
}

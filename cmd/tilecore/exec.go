package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/1broseidon/tilecore/internal/engine"
	"github.com/1broseidon/tilecore/internal/window"
)

// commandFlags are the engine.Command fields settable from the command line.
type commandFlags struct {
	window     uint32
	mode       string
	geometry   string
	fullscreen bool
	direction  string
	gap        uint
	workspace  int
	screen     string
}

func (f *commandFlags) register(fs *pflag.FlagSet) {
	fs.Uint32VarP(&f.window, "window", "w", 0, "Window id")
	fs.StringVar(&f.mode, "mode", "", "Window mode for add: tile or float")
	fs.StringVarP(&f.geometry, "geometry", "g", "", "Geometry as WxH+X+Y (add, set_geometry)")
	fs.BoolVar(&f.fullscreen, "fullscreen", false, "Add the window fullscreen")
	fs.StringVarP(&f.direction, "direction", "d", "", "Direction for cycle and swap: next or prev")
	fs.UintVar(&f.gap, "gap", 0, "Gap size for set_gap")
	fs.IntVar(&f.workspace, "workspace", 0, "Workspace index for switch_workspace")
	fs.StringVar(&f.screen, "screen", "", "Screen size as WxH for resize")
}

// command builds the engine command for op. Only flags that were set are
// copied so the engine can report the missing ones.
func (f *commandFlags) command(fs *pflag.FlagSet, op string) (engine.Command, error) {
	cmd := engine.Command{
		Op:         engine.Op(op),
		Window:     window.ID(f.window),
		Mode:       window.Mode(f.mode),
		Fullscreen: f.fullscreen,
		Direction:  window.Direction(f.direction),
	}
	if fs.Changed("geometry") {
		g, err := window.ParseGeometry(f.geometry)
		if err != nil {
			return engine.Command{}, err
		}
		cmd.Geometry = &g
	}
	if fs.Changed("screen") {
		s, err := window.ParseScreen(f.screen)
		if err != nil {
			return engine.Command{}, err
		}
		cmd.Screen = &s
	}
	if fs.Changed("gap") {
		gap := f.gap
		cmd.Gap = &gap
	}
	if fs.Changed("workspace") {
		ws := f.workspace
		cmd.Workspace = &ws
	}
	return cmd, cmd.Validate()
}

func opNames() string {
	names := make([]string, 0, len(engine.Ops()))
	for _, op := range engine.Ops() {
		names = append(names, string(op))
	}
	return strings.Join(names, ", ")
}

func runExec(args []string) int {
	fs := newFlagSet("exec",
		"Usage: tilecore exec <op> [options]",
		"",
		"Run one engine operation on the daemon and print the result.",
		"",
		"Operations: "+opNames(),
		"",
		"Examples:",
		"  tilecore exec add --window 42",
		"  tilecore exec add --window 7 --mode float --geometry 640x480+100+100",
		"  tilecore exec cycle --direction prev",
		"  tilecore exec set_gap --gap 8")
	var flags commandFlags
	flags.register(fs)
	asJSON := fs.Bool("json", false, "Print JSON even on a terminal")
	socket := fs.String("socket", "", "IPC socket path")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "exec requires exactly one operation")
		fs.Usage()
		return 2
	}

	cmd, err := flags.command(fs, fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	res, err := newClient(*socket).Execute(context.Background(), cmd)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := newPrinter(os.Stdout, *asJSON).result(res); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

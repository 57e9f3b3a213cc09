package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/tilecore/internal/engine"
	"github.com/1broseidon/tilecore/internal/ipc"
	"github.com/1broseidon/tilecore/internal/script"
	"github.com/1broseidon/tilecore/internal/window"
	"github.com/1broseidon/tilecore/internal/wm"
)

func TestCommandFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    engine.Command
		wantErr bool
	}{
		{
			name: "add float",
			args: []string{"add", "--window", "7", "--mode", "float", "-g", "640x480+10+20"},
			want: engine.Command{Op: engine.OpAdd, Window: 7, Mode: window.ModeFloat,
				Geometry: &window.Geometry{X: 10, Y: 20, Width: 640, Height: 480}},
		},
		{
			name: "cycle prev",
			args: []string{"cycle", "-d", "prev"},
			want: engine.Command{Op: engine.OpCycle, Direction: window.Prev},
		},
		{
			name: "resize",
			args: []string{"resize", "--screen", "1280x720"},
			want: engine.Command{Op: engine.OpResize, Screen: &window.Screen{Width: 1280, Height: 720}},
		},
		{name: "resize without screen", args: []string{"resize"}, wantErr: true},
		{name: "bad geometry", args: []string{"add", "-w", "1", "-g", "big"}, wantErr: true},
		{name: "unknown op", args: []string{"explode"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newFlagSet("exec")
			var flags commandFlags
			flags.register(fs)
			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("Parse: %v", err)
			}
			got, err := flags.command(fs, fs.Arg(0))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("command: %v", err)
			}
			if got.Op != tt.want.Op || got.Window != tt.want.Window || got.Mode != tt.want.Mode || got.Direction != tt.want.Direction {
				t.Fatalf("command = %+v, want %+v", got, tt.want)
			}
			if (got.Geometry == nil) != (tt.want.Geometry == nil) || (got.Geometry != nil && *got.Geometry != *tt.want.Geometry) {
				t.Fatalf("geometry = %v, want %v", got.Geometry, tt.want.Geometry)
			}
			if (got.Screen == nil) != (tt.want.Screen == nil) || (got.Screen != nil && *got.Screen != *tt.want.Screen) {
				t.Fatalf("screen = %v, want %v", got.Screen, tt.want.Screen)
			}
		})
	}
}

func TestCommandFlags_GapZeroIsSet(t *testing.T) {
	fs := newFlagSet("exec")
	var flags commandFlags
	flags.register(fs)
	if err := fs.Parse([]string{"set_gap", "--gap", "0"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cmd, err := flags.command(fs, fs.Arg(0))
	if err != nil || cmd.Gap == nil || *cmd.Gap != 0 {
		t.Fatalf("command = %+v, %v", cmd, err)
	}
}

func TestPrinter_Tables(t *testing.T) {
	var buf bytes.Buffer
	p := printer{w: &buf}
	focused := window.ID(2)
	gap := uint(4)

	err := p.status(&engine.Status{
		Variant:    wm.VariantMinimising,
		Layout:     "vertical",
		Screen:     window.Screen{Width: 800, Height: 600},
		Windows:    []window.ID{1, 2},
		Focused:    &focused,
		Gap:        &gap,
		Workspaces: 1,
	})
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	for _, want := range []string{"variant:", "minimising", "800x600", "1 2", "gap:", "1/1"} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("status output missing %q:\n%s", want, buf.String())
		}
	}

	buf.Reset()
	layout := window.NewLayout(2, true, []window.Placement{
		{Window: 1, Geometry: window.Geometry{Width: 400, Height: 600}},
		{Window: 2, Geometry: window.Geometry{X: 400, Width: 400, Height: 600}},
	})
	if err := p.layout(layout); err != nil {
		t.Fatalf("layout: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[0], "WINDOW") {
		t.Fatalf("layout output:\n%s", buf.String())
	}
	if !strings.Contains(lines[2], "400x600+400+0") || !strings.HasSuffix(lines[2], "*") {
		t.Fatalf("focused row = %q", lines[2])
	}
}

func TestPrinter_JSON(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf, false)
	if !p.json {
		t.Fatalf("non-terminal writers should get JSON")
	}
	if err := p.layout(window.NewLayout(0, false, nil)); err != nil {
		t.Fatalf("layout: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "{\n  \"windows\": []\n}" {
		t.Fatalf("json = %q", buf.String())
	}
}

func TestPrintStep(t *testing.T) {
	var buf bytes.Buffer
	printStep(&buf, script.StepResult{Index: 3, Command: engine.Command{Op: engine.OpFocus, Window: 9},
		Err: window.UnknownWindow(9)})
	if got := buf.String(); !strings.HasPrefix(got, "ok     3 focus window=9 (expected:") {
		t.Fatalf("printStep = %q", got)
	}
}

// startDaemonStub serves a fresh session on a short socket path.
func startDaemonStub(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "tc")
	if err != nil {
		t.Fatalf("MkdirTemp: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	m, err := wm.New(wm.Options{Screen: window.Screen{Width: 800, Height: 600}, Variant: wm.VariantTiling})
	if err != nil {
		t.Fatalf("wm.New: %v", err)
	}
	sock := filepath.Join(dir, "tilecore.sock")
	srv, err := ipc.NewServer(sock, engine.NewSession(m, engine.Description{Variant: wm.VariantTiling}, nil), nil)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(srv.Stop)
	return sock
}

func TestRunExec_AgainstServer(t *testing.T) {
	sock := startDaemonStub(t)

	if code := runExec([]string{"add", "--window", "1", "--socket", sock}); code != 0 {
		t.Fatalf("exec add exit = %d", code)
	}
	if code := runExec([]string{"focus", "--window", "9", "--socket", sock}); code != 1 {
		t.Fatalf("exec focus unknown exit = %d, want 1", code)
	}
	if code := runExec([]string{"resize", "--socket", sock}); code != 2 {
		t.Fatalf("exec resize without screen exit = %d, want 2", code)
	}
	if code := runExec([]string{"--socket", sock}); code != 2 {
		t.Fatalf("exec without op exit = %d, want 2", code)
	}
	if code := runStatus([]string{"--socket", sock, "--json"}); code != 0 {
		t.Fatalf("status exit = %d", code)
	}
	if code := runLayout([]string{"--socket", sock}); code != 0 {
		t.Fatalf("layout exit = %d", code)
	}
}

func TestRunReplay_Local(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	scriptPath := filepath.Join(dir, "script.yaml")
	if err := os.WriteFile(cfgPath, []byte("variant: tiling\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	body := `
screen: {width: 800, height: 600}
steps:
  - op: add
    window: 1
    expect:
      geometry:
        1: {x: 0, y: 0, width: 800, height: 600}
  - op: cycle
    direction: prev
`
	if err := os.WriteFile(scriptPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}

	if code := runReplay([]string{"--config", cfgPath, "--keep-going", scriptPath}); code != 0 {
		t.Fatalf("replay exit = %d", code)
	}

	failing := strings.Replace(body, "{x: 0, y: 0, width: 800", "{x: 0, y: 0, width: 801", 1)
	if err := os.WriteFile(scriptPath, []byte(failing), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	if code := runReplay([]string{"--config", cfgPath, "--json", scriptPath}); code != 1 {
		t.Fatalf("failing replay exit = %d, want 1", code)
	}
}

func TestRunConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("gap_size: 4\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if code := runConfig([]string{"validate", "--path", path}); code != 0 {
		t.Fatalf("validate exit = %d", code)
	}
	if code := runConfig([]string{"print", "--defaults"}); code != 0 {
		t.Fatalf("print --defaults exit = %d", code)
	}
	if err := os.WriteFile(path, []byte("gap_size: -1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if code := runConfig([]string{"validate", "--path", path}); code != 1 {
		t.Fatalf("validate invalid exit = %d, want 1", code)
	}
	if code := runConfig([]string{"frobnicate"}); code != 2 {
		t.Fatalf("unknown subcommand exit = %d, want 2", code)
	}
}

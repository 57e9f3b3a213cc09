package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/tilecore/internal/window"
	"github.com/1broseidon/tilecore/internal/wm"
)

var screen = window.Screen{Width: 800, Height: 600}

type recordingSink struct {
	layouts []window.Layout
	fail    bool
}

func (r *recordingSink) Name() string { return "recording" }

func (r *recordingSink) Apply(_ context.Context, l window.Layout) error {
	r.layouts = append(r.layouts, l)
	if r.fail {
		return errors.New("display went away")
	}
	return nil
}

type countingRecorder struct {
	commands   map[string]int
	sinkErrors int
	managed    int
}

func (c *countingRecorder) ObserveCommand(op, result string, _ time.Duration) {
	if c.commands == nil {
		c.commands = make(map[string]int)
	}
	c.commands[op+"/"+result]++
}

func (c *countingRecorder) SetWindows(managed, _, _ int) { c.managed = managed }
func (c *countingRecorder) IncSinkError(string)          { c.sinkErrors++ }

func newSession(t *testing.T, opts wm.Options) *Session {
	t.Helper()
	if opts.Screen == (window.Screen{}) {
		opts.Screen = screen
	}
	m, err := wm.New(opts)
	require.NoError(t, err)
	return NewSession(m, Description{Variant: opts.Variant, Layout: opts.Layout}, nil)
}

func exec(t *testing.T, s *Session, cmd Command) *Result {
	t.Helper()
	res, err := s.Execute(context.Background(), cmd)
	require.NoError(t, err, "op %s", cmd.Op)
	return res
}

func geom(x, y int, w, h uint) *window.Geometry {
	return &window.Geometry{X: x, Y: y, Width: w, Height: h}
}

func uintp(v uint) *uint { return &v }
func intp(v int) *int    { return &v }

func TestExecuteAddAndLayout(t *testing.T) {
	s := newSession(t, wm.Options{Variant: wm.VariantMinimising})

	for _, w := range []window.ID{1, 2, 3, 4} {
		exec(t, s, Command{Op: OpAdd, Window: w, Geometry: geom(0, 0, 10, 10)})
	}
	res := exec(t, s, Command{Op: OpLayout})

	g, ok := res.Layout.Geometry(2)
	require.True(t, ok)
	assert.Equal(t, window.Geometry{X: 400, Y: 0, Width: 400, Height: 200}, g)
	f, ok := res.Layout.FocusedWindow()
	require.True(t, ok)
	assert.Equal(t, window.ID(4), f)

	res = exec(t, s, Command{Op: OpMaster})
	require.NotNil(t, res.Master)
	assert.Equal(t, window.ID(1), *res.Master)
}

func TestExecuteErrorsUnwrap(t *testing.T) {
	s := newSession(t, wm.Options{Variant: wm.VariantMinimising})
	exec(t, s, Command{Op: OpAdd, Window: 1})

	_, err := s.Execute(context.Background(), Command{Op: OpAdd, Window: 1})
	assert.ErrorIs(t, err, window.ErrAlreadyManaged)

	_, err = s.Execute(context.Background(), Command{Op: OpFocus, Window: 9})
	assert.ErrorIs(t, err, window.ErrUnknownWindow)

	_, err = s.Execute(context.Background(), Command{Op: OpSetGeometry, Window: 1, Geometry: geom(1, 1, 1, 1)})
	assert.ErrorIs(t, err, window.ErrNotFloating)

	_, err = s.Execute(context.Background(), Command{Op: OpSetGeometry, Window: 1})
	assert.ErrorIs(t, err, ErrInvalidCommand)

	_, err = s.Execute(context.Background(), Command{Op: "explode"})
	assert.ErrorIs(t, err, ErrInvalidCommand)
}

func TestExecuteUnsupported(t *testing.T) {
	s := newSession(t, wm.Options{Variant: wm.VariantFullscreen})
	exec(t, s, Command{Op: OpAdd, Window: 1})

	for _, cmd := range []Command{
		{Op: OpMaster},
		{Op: OpSwapMaster, Window: 1},
		{Op: OpToggleFloat, Window: 1},
		{Op: OpToggleMinimise, Window: 1},
		{Op: OpSetGap, Gap: uintp(3)},
		{Op: OpWorkspace},
	} {
		_, err := s.Execute(context.Background(), cmd)
		assert.ErrorIs(t, err, wm.ErrUnsupported, "op %s", cmd.Op)
	}
}

func TestExecuteFloatAndMinimise(t *testing.T) {
	s := newSession(t, wm.Options{Variant: wm.VariantMinimising})
	g := geom(20, 30, 200, 100)
	exec(t, s, Command{Op: OpAdd, Window: 1})
	exec(t, s, Command{Op: OpAdd, Window: 2, Mode: window.ModeFloat, Geometry: g})

	res := exec(t, s, Command{Op: OpToggleMinimise, Window: 2})
	_, visible := res.Layout.Geometry(2)
	assert.False(t, visible)
	assert.Nil(t, res.Layout.Focused)

	res = exec(t, s, Command{Op: OpFocus, Window: 2})
	got, visible := res.Layout.Geometry(2)
	require.True(t, visible)
	assert.Equal(t, *g, got)

	res = exec(t, s, Command{Op: OpInfo, Window: 2})
	require.NotNil(t, res.Info)
	assert.Equal(t, window.ModeFloat, res.Info.Mode)

	res = exec(t, s, Command{Op: OpStatus})
	require.NotNil(t, res.Status)
	assert.Equal(t, []window.ID{2}, res.Status.Floating)
	assert.Equal(t, []window.ID{1, 2}, res.Status.Windows)
	assert.Equal(t, wm.VariantMinimising, res.Status.Variant)
}

func TestExecuteGapAndResize(t *testing.T) {
	s := newSession(t, wm.Options{Variant: wm.VariantTiling})
	exec(t, s, Command{Op: OpAdd, Window: 1})

	exec(t, s, Command{Op: OpSetGap, Gap: uintp(5)})
	res := exec(t, s, Command{Op: OpGap})
	require.NotNil(t, res.Gap)
	assert.Equal(t, uint(5), *res.Gap)

	res = exec(t, s, Command{Op: OpResize, Screen: &window.Screen{Width: 100, Height: 50}})
	got, ok := res.Layout.Geometry(1)
	require.True(t, ok)
	assert.Equal(t, window.Geometry{X: 5, Y: 5, Width: 90, Height: 40}, got)
}

func TestExecuteWorkspaces(t *testing.T) {
	s := newSession(t, wm.Options{Variant: wm.VariantTiling, Workspaces: 2})
	exec(t, s, Command{Op: OpAdd, Window: 1})

	exec(t, s, Command{Op: OpSwitchWorkspace, Workspace: intp(1)})
	res := exec(t, s, Command{Op: OpWorkspace})
	require.NotNil(t, res.Workspace)
	assert.Equal(t, 1, *res.Workspace)
	assert.Empty(t, res.Layout.Windows)

	_, err := s.Execute(context.Background(), Command{Op: OpSwitchWorkspace, Workspace: intp(5)})
	assert.ErrorIs(t, err, window.ErrInvalidWorkspace)

	st := s.Status()
	assert.Equal(t, 2, st.Workspaces)
	assert.Equal(t, 1, st.Workspace)
}

func TestSinksSeeMutationsOnly(t *testing.T) {
	s := newSession(t, wm.Options{Variant: wm.VariantTiling})
	sink := &recordingSink{}
	rec := &countingRecorder{}
	s.WithRecorder(rec)
	require.NoError(t, s.AddSink(context.Background(), sink))
	require.Len(t, sink.layouts, 1)

	exec(t, s, Command{Op: OpAdd, Window: 1})
	exec(t, s, Command{Op: OpLayout})
	exec(t, s, Command{Op: OpStatus})
	_, _ = s.Execute(context.Background(), Command{Op: OpFocus, Window: 7})
	exec(t, s, Command{Op: OpAdd, Window: 2})

	require.Len(t, sink.layouts, 3)
	assert.Len(t, sink.layouts[2].Windows, 2)
	assert.Equal(t, 2, rec.commands["add/ok"])
	assert.Equal(t, 1, rec.commands["focus/error"])
	assert.Equal(t, 2, rec.managed)

	sink.fail = true
	exec(t, s, Command{Op: OpRemove, Window: 2})
	assert.Equal(t, 1, rec.sinkErrors)
}

func TestCommandValidate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     Command
		wantErr bool
	}{
		{"add default mode", Command{Op: OpAdd, Window: 1}, false},
		{"add bad mode", Command{Op: OpAdd, Window: 1, Mode: "tabbed"}, true},
		{"cycle default", Command{Op: OpCycle}, false},
		{"cycle bad direction", Command{Op: OpCycle, Direction: "up"}, true},
		{"resize without screen", Command{Op: OpResize}, true},
		{"set_gap without gap", Command{Op: OpSetGap}, true},
		{"switch without index", Command{Op: OpSwitchWorkspace}, true},
		{"status", Command{Op: OpStatus}, false},
		{"empty op", Command{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCommand)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	for _, op := range Ops() {
		assert.NotErrorIs(t, Command{Op: op, Screen: &screen, Geometry: geom(0, 0, 1, 1), Gap: uintp(0), Workspace: intp(0)}.Validate(), ErrInvalidCommand, "op %s", op)
	}
}

func TestErrorCode(t *testing.T) {
	cases := map[string]error{
		CodeUnknownWindow:    window.UnknownWindow(3),
		CodeAlreadyManaged:   window.AlreadyManaged(4),
		CodeNotFloating:      window.ErrNotFloating,
		CodeInvalidWorkspace: window.InvalidWorkspace(5, 2),
		CodeUnsupported:      wm.ErrUnsupported,
		CodeInvalidCommand:   invalid(OpResize, "screen is required"),
		"":                   errors.New("boom"),
	}
	for code, err := range cases {
		assert.Equal(t, code, ErrorCode(err), "error %v", err)
		if code != "" {
			assert.ErrorIs(t, err, CodeError(code))
		}
	}
	assert.Nil(t, CodeError("nope"))
}

// Package engine serialises commands onto a window manager and pushes the
// resulting layouts to sinks. It is the single owner of the window manager
// in the daemon, the replay runner and the tests.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/1broseidon/tilecore/internal/metrics"
	"github.com/1broseidon/tilecore/internal/window"
	"github.com/1broseidon/tilecore/internal/wm"
)

// Executor runs engine commands. Session implements it in-process and the
// IPC client implements it against a running daemon.
type Executor interface {
	Execute(ctx context.Context, cmd Command) (*Result, error)
}

// Sink receives every layout produced by a mutating command, in order.
type Sink interface {
	Name() string
	Apply(ctx context.Context, layout window.Layout) error
}

// Description names the configuration a session was built from.
type Description struct {
	Variant string
	Layout  string
}

// Session owns a window manager and serialises access to it.
type Session struct {
	mu       sync.Mutex
	wm       wm.WindowManager
	desc     Description
	logger   *zap.Logger
	recorder metrics.Recorder
	sinks    []Sink
	started  time.Time
}

var _ Executor = (*Session)(nil)

// NewSession wraps m. A nil logger discards logs.
func NewSession(m wm.WindowManager, desc Description, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		wm:       m,
		desc:     desc,
		logger:   logger,
		recorder: metrics.NoopRecorder{},
		started:  time.Now(),
	}
}

// WithRecorder sets the metrics recorder and returns s.
func (s *Session) WithRecorder(r metrics.Recorder) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	s.recorder = r
	return s
}

// AddSink registers a sink; it first receives the current layout.
func (s *Session) AddSink(ctx context.Context, sink Sink) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sinks = append(s.sinks, sink)
	if err := sink.Apply(ctx, s.wm.WindowLayout()); err != nil {
		s.recorder.IncSinkError(sink.Name())
		return fmt.Errorf("sink %s: %w", sink.Name(), err)
	}
	return nil
}

// Execute runs cmd and returns the result with the layout afterwards.
// Sink failures are logged and do not fail the command.
func (s *Session) Execute(ctx context.Context, cmd Command) (*Result, error) {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.apply(cmd)
	result := metrics.ResultOK
	if err != nil {
		result = metrics.ResultError
	}

	if err == nil && cmd.Op.Mutates() {
		layout := s.wm.WindowLayout()
		for _, sink := range s.sinks {
			if serr := sink.Apply(ctx, layout); serr != nil {
				s.recorder.IncSinkError(sink.Name())
				s.logger.Warn("sink failed", zap.String("sink", sink.Name()), zap.Error(serr))
			}
		}
	}

	s.observe()
	s.recorder.ObserveCommand(string(cmd.Op), result, time.Since(start))

	if err != nil {
		s.logger.Debug("command failed",
			zap.String("op", string(cmd.Op)),
			zap.Uint32("window", uint32(cmd.Window)),
			zap.Error(err))
		return nil, fmt.Errorf("%s: %w", cmd.Op, err)
	}
	s.logger.Debug("command executed",
		zap.String("op", string(cmd.Op)),
		zap.Uint32("window", uint32(cmd.Window)),
		zap.Duration("took", time.Since(start)))

	res.Op = cmd.Op
	res.Layout = s.wm.WindowLayout()
	return res, nil
}

// Status returns the session summary.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status()
}

// Layout returns the current layout.
func (s *Session) Layout() window.Layout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wm.WindowLayout()
}

func (s *Session) apply(cmd Command) (*Result, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	m := s.wm
	res := &Result{}

	switch cmd.Op {
	case OpAdd:
		return res, m.AddWindow(cmd.Info())
	case OpRemove:
		return res, m.RemoveWindow(cmd.Window)
	case OpFocus:
		return res, m.FocusWindow(cmd.Window)
	case OpUnfocus:
		m.UnfocusWindow()
	case OpCycle:
		dir, _ := window.ParseDirection(string(cmd.Direction))
		m.CycleFocus(dir)
	case OpInfo:
		info, err := m.WindowInfo(cmd.Window)
		if err != nil {
			return nil, err
		}
		res.Info = &info
	case OpLayout:
	case OpResize:
		m.ResizeScreen(*cmd.Screen)
	case OpMaster:
		t, ok := wm.As[wm.TilingSupport](m)
		if !ok {
			return nil, wm.ErrUnsupported
		}
		if w, ok := t.MasterWindow(); ok {
			res.Master = &w
		}
	case OpSwapMaster:
		t, ok := wm.As[wm.TilingSupport](m)
		if !ok {
			return nil, wm.ErrUnsupported
		}
		return res, t.SwapWithMaster(cmd.Window)
	case OpSwap:
		t, ok := wm.As[wm.TilingSupport](m)
		if !ok {
			return nil, wm.ErrUnsupported
		}
		dir, _ := window.ParseDirection(string(cmd.Direction))
		t.SwapWindows(dir)
	case OpToggleFloat:
		f, ok := wm.As[wm.FloatSupport](m)
		if !ok {
			return nil, wm.ErrUnsupported
		}
		return res, f.ToggleFloating(cmd.Window)
	case OpSetGeometry:
		f, ok := wm.As[wm.FloatSupport](m)
		if !ok {
			return nil, wm.ErrUnsupported
		}
		return res, f.SetWindowGeometry(cmd.Window, *cmd.Geometry)
	case OpToggleMinimise:
		mm, ok := wm.As[wm.MinimiseSupport](m)
		if !ok {
			return nil, wm.ErrUnsupported
		}
		return res, mm.ToggleMinimised(cmd.Window)
	case OpGap:
		g, ok := wm.As[wm.GapSupport](m)
		if !ok {
			return nil, wm.ErrUnsupported
		}
		size := g.Gap()
		res.Gap = &size
	case OpSetGap:
		g, ok := wm.As[wm.GapSupport](m)
		if !ok {
			return nil, wm.ErrUnsupported
		}
		g.SetGap(*cmd.Gap)
	case OpWorkspace:
		ws, ok := wm.As[wm.MultiWorkspaceSupport](m)
		if !ok {
			return nil, wm.ErrUnsupported
		}
		idx := ws.CurrentWorkspaceIndex()
		res.Workspace = &idx
	case OpSwitchWorkspace:
		ws, ok := wm.As[wm.MultiWorkspaceSupport](m)
		if !ok {
			return nil, wm.ErrUnsupported
		}
		return res, ws.SwitchWorkspace(*cmd.Workspace)
	case OpStatus:
		st := s.status()
		res.Status = &st
	}
	return res, nil
}

func (s *Session) status() Status {
	m := s.wm
	st := Status{
		Variant:       s.desc.Variant,
		Layout:        s.desc.Layout,
		Screen:        m.Screen(),
		Windows:       m.Windows(),
		Workspaces:    1,
		UptimeSeconds: int64(time.Since(s.started).Seconds()),
	}
	if w, ok := m.FocusedWindow(); ok {
		st.Focused = &w
	}
	if t, ok := wm.As[wm.TilingSupport](m); ok {
		if w, ok := t.MasterWindow(); ok {
			st.Master = &w
		}
	}
	if f, ok := wm.As[wm.FloatSupport](m); ok {
		st.Floating = f.FloatingWindows()
	}
	if mm, ok := wm.As[wm.MinimiseSupport](m); ok {
		st.Minimised = mm.MinimisedWindows()
	}
	if g, ok := wm.As[wm.GapSupport](m); ok {
		size := g.Gap()
		st.Gap = &size
	}
	if ws, ok := wm.As[wm.MultiWorkspaceSupport](m); ok {
		st.Workspace = ws.CurrentWorkspaceIndex()
		st.Workspaces = ws.WorkspaceCount()
	}
	return st
}

func (s *Session) observe() {
	minimised := 0
	if mm, ok := wm.As[wm.MinimiseSupport](s.wm); ok {
		minimised = len(mm.MinimisedWindows())
	}
	s.recorder.SetWindows(len(s.wm.Windows()), len(s.wm.WindowLayout().Windows), minimised)
}

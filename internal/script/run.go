package script

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/1broseidon/tilecore/internal/engine"
	"github.com/1broseidon/tilecore/internal/window"
	"github.com/1broseidon/tilecore/internal/wm"
)

// ErrExpectation is wrapped by failures of a step's expect or expect_error.
var ErrExpectation = errors.New("expectation failed")

// RunOptions tune Run.
type RunOptions struct {
	// KeepGoing runs the remaining steps after a failure.
	KeepGoing bool
	// OnStep is called after each step.
	OnStep func(StepResult)
	Logger *zap.Logger
}

// StepResult is the outcome of one step.
type StepResult struct {
	Index   int            `json:"index"`
	Command engine.Command `json:"command"`
	Result  *engine.Result `json:"result,omitempty"`
	// Err is the command's error, expected or not.
	Err error `json:"-"`
	// Failure is set when the step did not meet the script's expectations.
	Failure error `json:"-"`
}

// Passed reports whether the step met its expectations.
func (r StepResult) Passed() bool {
	return r.Failure == nil
}

// Report summarises a run.
type Report struct {
	Name     string       `json:"name,omitempty"`
	Steps    []StepResult `json:"steps"`
	Failures int          `json:"failures"`
	// Layout is the layout after the last step that ran.
	Layout window.Layout `json:"layout"`
}

// NewSession builds an in-process session for s on top of base.
func NewSession(s *Script, base wm.Options, logger *zap.Logger) (*engine.Session, error) {
	opts := s.Options(base)
	m, err := wm.New(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to build window manager: %w", err)
	}
	return engine.NewSession(m, engine.Description{Variant: opts.Variant, Layout: opts.Layout}, logger), nil
}

// Run executes the script's steps on exec. It stops at the first failing
// step unless opts.KeepGoing is set, and returns an error wrapping
// ErrExpectation when any step failed.
func Run(ctx context.Context, exec engine.Executor, s *Script, opts RunOptions) (*Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	report := &Report{Name: s.Name, Layout: window.NewLayout(0, false, nil)}

	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		res, err := exec.Execute(ctx, step.Command)
		sr := StepResult{Index: i, Command: step.Command, Result: res, Err: err}
		sr.Failure = check(step, res, err)
		if res != nil {
			report.Layout = res.Layout
		}
		report.Steps = append(report.Steps, sr)
		if opts.OnStep != nil {
			opts.OnStep(sr)
		}
		if sr.Failure == nil {
			continue
		}

		report.Failures++
		logger.Warn("script step failed",
			zap.Int("step", i),
			zap.String("op", string(step.Op)),
			zap.Error(sr.Failure))
		if !opts.KeepGoing {
			break
		}
	}

	if report.Failures > 0 {
		return report, fmt.Errorf("%w: %d of %d steps failed", ErrExpectation, report.Failures, len(report.Steps))
	}
	return report, nil
}

func check(step Step, res *engine.Result, err error) error {
	if step.ExpectError != "" {
		if err == nil {
			return fmt.Errorf("%w: step %s: expected %s error, got success", ErrExpectation, step.Op, step.ExpectError)
		}
		if code := engine.ErrorCode(err); code != step.ExpectError {
			return fmt.Errorf("%w: step %s: expected %s error, got %v", ErrExpectation, step.Op, step.ExpectError, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("step %s: %w", step.Op, err)
	}
	if step.Expect == nil {
		return nil
	}
	return step.Expect.check(step.Op, res.Layout)
}

func (e *Expect) check(op engine.Op, l window.Layout) error {
	if e.Focused != nil {
		got, ok := l.FocusedWindow()
		want := *e.Focused
		if !ok {
			got = 0
		}
		if got != want {
			return fmt.Errorf("%w: step %s: focused window is %d, want %d", ErrExpectation, op, got, want)
		}
	}
	if e.Visible != nil {
		got := make([]window.ID, 0, len(l.Windows))
		for _, p := range l.Windows {
			got = append(got, p.Window)
		}
		if !slices.Equal(got, e.Visible) {
			return fmt.Errorf("%w: step %s: visible windows are %v, want %v", ErrExpectation, op, got, e.Visible)
		}
	}
	for w, want := range e.Geometry {
		got, ok := l.Geometry(w)
		if !ok {
			return fmt.Errorf("%w: step %s: window %d is not visible", ErrExpectation, op, w)
		}
		if got != want {
			return fmt.Errorf("%w: step %s: window %d is at %s, want %s", ErrExpectation, op, w, got, want)
		}
	}
	return nil
}

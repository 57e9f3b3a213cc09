package daemon

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/1broseidon/tilecore/internal/engine"
	"github.com/1broseidon/tilecore/internal/platform"
	"github.com/1broseidon/tilecore/internal/window"
)

// ReconcilerConfig holds configuration for the reconciler.
type ReconcilerConfig struct {
	Interval time.Duration
	// Adopt adds windows the backend lists but the engine does not manage.
	Adopt  bool
	Logger *zap.Logger
}

// Forgetter drops a window from a sink's applied state.
type Forgetter interface {
	Forget(w window.ID)
}

// Reconciler periodically brings the engine in line with the windows the
// backend actually has. It only touches the current workspace.
type Reconciler struct {
	interval time.Duration
	adopt    bool
	exec     engine.Executor
	backend  platform.Backend
	forget   Forgetter
	logger   *zap.Logger
}

// NewReconciler creates a reconciler. forget may be nil.
func NewReconciler(cfg ReconcilerConfig, exec engine.Executor, backend platform.Backend, forget Forgetter) *Reconciler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Reconciler{
		interval: interval,
		adopt:    cfg.Adopt,
		exec:     exec,
		backend:  backend,
		forget:   forget,
		logger:   logger,
	}
}

// Run starts the reconciliation loop. Blocks until context is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("reconciler started", zap.Duration("interval", r.interval))

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reconciler stopped")
			return
		case <-ticker.C:
			if err := r.ReconcileNow(ctx); err != nil {
				r.logger.Error("reconcile failed", zap.Error(err))
			}
		}
	}
}

// ReconcileNow performs a single pass: resize to the backend screen, remove
// managed windows that no longer exist and, when adopting, add new ones.
func (r *Reconciler) ReconcileNow(ctx context.Context) (err error) {
	// Recover from panics to prevent crashing the daemon
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("reconciler panic: %v", p)
		}
	}()

	screen, err := r.backend.ScreenSize()
	if err != nil {
		return fmt.Errorf("failed to get screen size: %w", err)
	}
	actual, err := r.backend.ListWindows()
	if err != nil {
		return fmt.Errorf("failed to list windows: %w", err)
	}

	res, err := r.exec.Execute(ctx, engine.Command{Op: engine.OpStatus})
	if err != nil {
		return err
	}
	st := res.Status

	if st.Screen != screen && screen.Width > 0 && screen.Height > 0 {
		r.logger.Info("reconciler: screen changed", zap.Any("from", st.Screen), zap.Any("to", screen))
		if _, err := r.exec.Execute(ctx, engine.Command{Op: engine.OpResize, Screen: &screen}); err != nil {
			return err
		}
	}

	present := make(map[window.ID]platform.Window, len(actual))
	for _, w := range actual {
		present[w.ID] = w
	}
	managed := make(map[window.ID]bool, len(st.Windows))
	for _, w := range st.Windows {
		managed[w] = true
		if _, ok := present[w]; ok {
			continue
		}
		r.logger.Info("reconciler: window vanished", zap.Uint32("window_id", uint32(w)))
		if r.forget != nil {
			r.forget.Forget(w)
		}
		if _, err := r.exec.Execute(ctx, engine.Command{Op: engine.OpRemove, Window: w}); err != nil && !errors.Is(err, window.ErrUnknownWindow) {
			return err
		}
	}

	if !r.adopt {
		return nil
	}
	for _, w := range actual {
		if managed[w.ID] || w.Hidden {
			continue
		}
		bounds := w.Bounds
		_, err := r.exec.Execute(ctx, engine.Command{Op: engine.OpAdd, Window: w.ID, Geometry: &bounds})
		switch {
		case err == nil:
			r.logger.Info("reconciler: adopted window", zap.Uint32("window_id", uint32(w.ID)), zap.String("title", w.Title))
		case errors.Is(err, window.ErrAlreadyManaged):
			// Managed on another workspace.
		default:
			return err
		}
	}
	return nil
}

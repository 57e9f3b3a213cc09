// Package daemon runs a long-lived engine session behind the IPC socket,
// pushes its layouts to the display and keeps it in line with the config
// file and the windows that actually exist.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/1broseidon/tilecore/internal/config"
	"github.com/1broseidon/tilecore/internal/engine"
	"github.com/1broseidon/tilecore/internal/ipc"
	"github.com/1broseidon/tilecore/internal/metrics"
	"github.com/1broseidon/tilecore/internal/platform"
	"github.com/1broseidon/tilecore/internal/wm"
)

// Options tune how the daemon is assembled.
type Options struct {
	// ConfigPath is re-read on reload; empty uses the default location.
	ConfigPath string
	// SocketPath is the IPC socket; empty uses the runtime directory.
	SocketPath string
	// Backend replaces the X11 backend the config would open.
	Backend platform.Backend
	// Watch reloads the config when the file changes.
	Watch bool
}

// Daemon owns the session and every component around it.
type Daemon struct {
	opts    Options
	logger  *zap.Logger
	session *engine.Session
	server  *ipc.Server
	backend platform.Backend
	applier *platform.Applier
	prom    *metrics.PrometheusRecorder

	reloadMu sync.Mutex
	mu       sync.Mutex
	cfg      *config.Config
}

// New builds the daemon from cfg. When a backend is in use its screen size
// replaces the configured one.
func New(cfg *config.Config, opts Options, logger *zap.Logger) (*Daemon, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.ConfigPath == "" {
		path, err := config.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		opts.ConfigPath = path
	}

	backend := opts.Backend
	if backend == nil && cfg.X11.Enabled {
		x, err := platform.NewX11Backend()
		if err != nil {
			return nil, err
		}
		backend = x
	}

	wmOpts := cfg.Options()
	if backend != nil {
		screen, err := backend.ScreenSize()
		if err != nil {
			return nil, fmt.Errorf("failed to read screen size: %w", err)
		}
		wmOpts.Screen = screen
	}
	m, err := wm.New(wmOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to build window manager: %w", err)
	}

	d := &Daemon{
		opts:    opts,
		logger:  logger,
		backend: backend,
		cfg:     cfg,
	}
	d.session = engine.NewSession(m, engine.Description{Variant: cfg.Variant, Layout: cfg.Layout}, logger.Named("engine"))
	if cfg.Metrics.Listen != "" {
		d.prom = metrics.NewPrometheusRecorder(nil)
		d.session.WithRecorder(d.prom)
	}
	if backend != nil {
		d.applier = platform.NewApplier(backend, logger.Named("x11"))
	}

	d.server, err = ipc.NewServer(opts.SocketPath, d.session, logger.Named("ipc"))
	if err != nil {
		return nil, err
	}
	d.server.OnReload(d.Reload)
	return d, nil
}

// Session returns the engine session.
func (d *Daemon) Session() *engine.Session {
	return d.session
}

// Config returns the configuration currently applied.
func (d *Daemon) Config() *config.Config {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfg
}

// Run starts every component and blocks until ctx is cancelled.
func (d *Daemon) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	var wg sync.WaitGroup
	defer wg.Wait()

	if d.applier != nil {
		if err := d.session.AddSink(ctx, d.applier); err != nil {
			d.logger.Warn("initial layout push failed", zap.Error(err))
		}
	}

	var rec *Reconciler
	if d.backend != nil {
		rec = NewReconciler(ReconcilerConfig{
			Interval: d.Config().ReconcileInterval,
			Adopt:    true,
			Logger:   d.logger.Named("reconciler"),
		}, d.session, d.backend, d.applier)
		// Adopt existing windows before serving the first request.
		if err := rec.ReconcileNow(ctx); err != nil {
			d.logger.Warn("initial reconcile failed", zap.Error(err))
		}
	}

	if err := d.server.Start(); err != nil {
		return err
	}
	defer d.server.Stop()

	if d.prom != nil {
		srv, err := d.serveMetrics(d.Config().Metrics.Listen)
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
			defer done()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	if rec != nil && d.Config().ReconcileInterval > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec.Run(ctx)
		}()
	}

	if d.opts.Watch {
		watcher, err := NewConfigWatcher(d.opts.ConfigPath, d.Reload, d.logger.Named("config"))
		if err != nil {
			d.logger.Warn("config watching disabled", zap.Error(err))
		} else {
			wg.Add(1)
			go func() {
				defer wg.Done()
				watcher.Run(ctx)
			}()
		}
	}

	d.logger.Info("tilecore daemon started",
		zap.String("variant", d.Config().Variant),
		zap.String("layout", d.Config().Layout),
		zap.String("socket", d.server.SocketPath()))

	<-ctx.Done()
	d.logger.Info("shutting down tilecore daemon")
	return nil
}

// Close releases the display connection, if any.
func (d *Daemon) Close() error {
	if c, ok := d.backend.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

func (d *Daemon) serveMetrics(addr string) (*http.Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen for metrics on %s: %w", addr, err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", d.prom.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			d.logger.Error("metrics server failed", zap.Error(err))
		}
	}()
	d.logger.Info("serving metrics", zap.String("listen", ln.Addr().String()))
	return srv, nil
}

// Reload re-reads the config file and applies what can change at runtime:
// the gap and, without a display backend, the screen size. Other changes
// are logged and take effect on restart.
func (d *Daemon) Reload() error {
	d.reloadMu.Lock()
	defer d.reloadMu.Unlock()

	next, err := config.LoadFromPath(d.opts.ConfigPath)
	if err != nil {
		return err
	}

	d.mu.Lock()
	prev := d.cfg
	d.mu.Unlock()

	ctx := context.Background()
	if next.GapSize != prev.GapSize {
		gap := next.Options().Gap
		if _, err := d.session.Execute(ctx, engine.Command{Op: engine.OpSetGap, Gap: &gap}); err != nil && !errors.Is(err, wm.ErrUnsupported) {
			return err
		}
	}
	if d.backend == nil && next.Screen != prev.Screen {
		screen := next.ScreenSize()
		if _, err := d.session.Execute(ctx, engine.Command{Op: engine.OpResize, Screen: &screen}); err != nil {
			return err
		}
	}
	for _, changed := range restartRequired(prev, next) {
		d.logger.Warn("config change requires a daemon restart", zap.String("key", changed))
	}

	// Config keeps describing what is running, so only applied keys move.
	running := *prev
	running.GapSize = next.GapSize
	if d.backend == nil {
		running.Screen = next.Screen
	}
	d.mu.Lock()
	d.cfg = &running
	d.mu.Unlock()
	return nil
}

func restartRequired(prev, next *config.Config) []string {
	var keys []string
	if prev.Variant != next.Variant {
		keys = append(keys, "variant")
	}
	if prev.Layout != next.Layout {
		keys = append(keys, "layout")
	}
	if prev.Workspaces != next.Workspaces {
		keys = append(keys, "workspaces")
	}
	if prev.Dock != next.Dock {
		keys = append(keys, "dock")
	}
	if prev.Logging != next.Logging {
		keys = append(keys, "logging")
	}
	if prev.Metrics != next.Metrics {
		keys = append(keys, "metrics")
	}
	if prev.X11 != next.X11 {
		keys = append(keys, "x11")
	}
	if prev.ReconcileInterval != next.ReconcileInterval {
		keys = append(keys, "reconcile_interval")
	}
	return keys
}

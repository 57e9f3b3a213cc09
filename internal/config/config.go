package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/tilecore/internal/logging"
	"github.com/1broseidon/tilecore/internal/tiling"
	"github.com/1broseidon/tilecore/internal/window"
	"github.com/1broseidon/tilecore/internal/wm"
)

const (
	DefaultScreenWidth       = 1920
	DefaultScreenHeight      = 1080
	DefaultReconcileInterval = 10 * time.Second
)

// ScreenConfig is the initial screen size. The X11 backend replaces it with
// the real root window size when enabled.
type ScreenConfig struct {
	Width  uint `yaml:"width"`
	Height uint `yaml:"height"`
}

// DockConfig tunes the dock layout.
type DockConfig struct {
	// SizePercent is the share of the screen each dock edge takes (1-49).
	SizePercent uint `yaml:"size_percent"`
}

// LoggingConfig configures the daemon log.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// File is the log file path; empty logs to stderr.
	File      string `yaml:"file,omitempty"`
	MaxSizeMB int    `yaml:"max_size_mb"`
	MaxFiles  int    `yaml:"max_files"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	// Listen is a host:port to serve /metrics on; empty disables it.
	Listen string `yaml:"listen,omitempty"`
}

// X11Config controls pushing layouts to a real X display.
type X11Config struct {
	Enabled bool `yaml:"enabled"`
}

// Config is the effective tilecore configuration.
type Config struct {
	Screen            ScreenConfig  `yaml:"screen"`
	Variant           string        `yaml:"variant"`
	Layout            string        `yaml:"layout"`
	GapSize           int           `yaml:"gap_size"`
	Workspaces        int           `yaml:"workspaces"`
	Dock              DockConfig    `yaml:"dock"`
	Logging           LoggingConfig `yaml:"logging"`
	Metrics           MetricsConfig `yaml:"metrics"`
	X11               X11Config     `yaml:"x11"`
	ReconcileInterval time.Duration `yaml:"reconcile_interval"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Screen:     ScreenConfig{Width: DefaultScreenWidth, Height: DefaultScreenHeight},
		Variant:    wm.VariantMinimising,
		Layout:     tiling.NameVertical,
		GapSize:    0,
		Workspaces: 1,
		Dock:       DockConfig{SizePercent: tiling.DefaultDockPercent},
		Logging: LoggingConfig{
			Level:     "info",
			MaxSizeMB: 10,
			MaxFiles:  3,
		},
		ReconcileInterval: DefaultReconcileInterval,
	}
}

// ValidationError ties a problem to the YAML path it was found at.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate reports every problem in the configuration at once.
func (c *Config) Validate() error {
	var result *multierror.Error
	fail := func(path, format string, args ...any) {
		result = multierror.Append(result, &ValidationError{Path: path, Err: fmt.Errorf(format, args...)})
	}

	if c.Screen.Width == 0 || c.Screen.Height == 0 {
		fail("screen", "width and height must be > 0")
	}
	if !contains(wm.Variants(), c.Variant) {
		fail("variant", "variant must be one of: %v", wm.Variants())
	}
	if !contains(tiling.Names(), c.Layout) {
		fail("layout", "layout must be one of: %v", tiling.Names())
	}
	if c.GapSize < 0 {
		fail("gap_size", "gap_size must be >= 0")
	}
	if c.Workspaces < 1 {
		fail("workspaces", "workspaces must be >= 1")
	}
	if c.Dock.SizePercent == 0 || c.Dock.SizePercent >= 50 {
		fail("dock.size_percent", "size_percent must be between 1 and 49")
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		fail("logging.level", "%v", err)
	}
	if c.Logging.MaxSizeMB < 0 {
		fail("logging.max_size_mb", "max_size_mb must be >= 0")
	}
	if c.Logging.MaxFiles < 0 {
		fail("logging.max_files", "max_files must be >= 0")
	}
	if c.Metrics.Listen != "" {
		if _, _, err := net.SplitHostPort(c.Metrics.Listen); err != nil {
			fail("metrics.listen", "listen must be host:port: %v", err)
		}
	}
	if c.ReconcileInterval < 0 {
		fail("reconcile_interval", "reconcile_interval must be >= 0")
	}

	return result.ErrorOrNil()
}

// Options converts the configuration into window manager options.
func (c *Config) Options() wm.Options {
	gap := c.GapSize
	if gap < 0 {
		gap = 0
	}
	return wm.Options{
		Screen:      c.ScreenSize(),
		Variant:     c.Variant,
		Layout:      c.Layout,
		DockPercent: c.Dock.SizePercent,
		Gap:         uint(gap),
		Workspaces:  c.Workspaces,
	}
}

// ScreenSize returns the configured screen.
func (c *Config) ScreenSize() window.Screen {
	return window.Screen{Width: c.Screen.Width, Height: c.Screen.Height}
}

// LoggingOptions converts the logging section for package logging.
func (c *Config) LoggingOptions() logging.Config {
	return logging.Config{
		Level:     c.Logging.Level,
		File:      expandHome(c.Logging.File),
		MaxSizeMB: c.Logging.MaxSizeMB,
		MaxFiles:  c.Logging.MaxFiles,
	}
}

// Save writes the configuration to the standard location.
func (c *Config) Save() error {
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo validates the configuration and writes it to path.
func (c *Config) SaveTo(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

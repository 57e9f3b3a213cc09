package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/1broseidon/tilecore/internal/window"
	"github.com/1broseidon/tilecore/internal/wm"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.Variant != wm.VariantMinimising {
		t.Fatalf("variant = %q, want %q", cfg.Variant, wm.VariantMinimising)
	}
	if cfg.ReconcileInterval != DefaultReconcileInterval {
		t.Fatalf("reconcile_interval = %v", cfg.ReconcileInterval)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.Screen.Width != DefaultScreenWidth || cfg.Screen.Height != DefaultScreenHeight {
		t.Fatalf("screen = %+v", cfg.Screen)
	}
}

func TestLoadFromPath_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
screen:
  width: 800
  height: 600
variant: tiling
layout: dock
gap_size: 8
workspaces: 3
dock:
  size_percent: 20
reconcile_interval: 2s
`)
	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.ReconcileInterval != 2*time.Second {
		t.Fatalf("reconcile_interval = %v", cfg.ReconcileInterval)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("logging.level should keep its default, got %q", cfg.Logging.Level)
	}

	opts := cfg.Options()
	want := wm.Options{
		Screen:      window.Screen{Width: 800, Height: 600},
		Variant:     wm.VariantTiling,
		Layout:      "dock",
		DockPercent: 20,
		Gap:         8,
		Workspaces:  3,
	}
	if opts != want {
		t.Fatalf("Options() = %+v, want %+v", opts, want)
	}
}

func TestLoadFromPath_RejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "gap: 4\n")
	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "config.yaml") {
		t.Fatalf("error should name the file, got %v", err)
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Variant = "stacking"
	cfg.Layout = "spiral"
	cfg.GapSize = -1
	cfg.Workspaces = 0
	cfg.Metrics.Listen = "nonsense"

	err := cfg.Validate()
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		t.Fatalf("expected aggregated error, got %v", err)
	}
	paths := map[string]bool{}
	for _, e := range merr.Errors {
		var verr *ValidationError
		if !errors.As(e, &verr) {
			t.Fatalf("unexpected error type %T", e)
		}
		paths[verr.Path] = true
	}
	for _, p := range []string{"variant", "layout", "gap_size", "workspaces", "metrics.listen"} {
		if !paths[p] {
			t.Errorf("missing %s in %v", p, err)
		}
	}
	if len(merr.Errors) != 5 {
		t.Errorf("got %d errors, want 5: %v", len(merr.Errors), err)
	}
}

func TestValidate_DockPercentBounds(t *testing.T) {
	for _, pct := range []uint{0, 50, 90} {
		cfg := DefaultConfig()
		cfg.Dock.SizePercent = pct
		if err := cfg.Validate(); err == nil {
			t.Errorf("size_percent %d should be rejected", pct)
		}
	}
}

func TestSaveTo_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Variant = wm.VariantFloating
	cfg.ReconcileInterval = 30 * time.Second
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	got, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if got.Variant != wm.VariantFloating || got.ReconcileInterval != 30*time.Second {
		t.Fatalf("round trip lost values: %+v", got)
	}
}

func TestSaveTo_RefusesInvalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workspaces = 0
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.SaveTo(path); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("invalid config should not be written")
	}
}

func TestLoggingOptionsExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	cfg := DefaultConfig()
	cfg.Logging.File = "~/logs/tilecore.log"
	got := cfg.LoggingOptions().File
	if want := filepath.Join(home, "logs", "tilecore.log"); got != want {
		t.Fatalf("File = %q, want %q", got, want)
	}
}

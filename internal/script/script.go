// Package script loads and replays YAML command scripts against an engine.
//
// A script pins the screen and window manager it expects, then lists engine
// commands to run in order. Steps may assert the error they expect or the
// layout they leave behind, which makes scripts usable as regression tests
// and as reproducible bug reports.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/tilecore/internal/engine"
	"github.com/1broseidon/tilecore/internal/tiling"
	"github.com/1broseidon/tilecore/internal/window"
	"github.com/1broseidon/tilecore/internal/wm"
)

// Script is a parsed replay script.
type Script struct {
	Name   string         `yaml:"name,omitempty"`
	Screen *window.Screen `yaml:"screen,omitempty"`
	Config Overrides      `yaml:"config,omitempty"`
	Steps  []Step         `yaml:"steps"`
}

// Overrides replace fields of the base window manager options. Unset fields
// keep the base value.
type Overrides struct {
	Variant     *string `yaml:"variant,omitempty"`
	Layout      *string `yaml:"layout,omitempty"`
	GapSize     *uint   `yaml:"gap_size,omitempty"`
	Workspaces  *int    `yaml:"workspaces,omitempty"`
	DockPercent *uint   `yaml:"dock_percent,omitempty"`
}

// Step is one command plus what the script expects from it.
type Step struct {
	engine.Command `yaml:",inline"`

	// ExpectError is an engine error code; the step passes only if the
	// command fails with it.
	ExpectError string  `yaml:"expect_error,omitempty"`
	Expect      *Expect `yaml:"expect,omitempty"`
}

// Expect checks the layout after a step.
type Expect struct {
	// Focused is the expected focused window; 0 means none.
	Focused *window.ID `yaml:"focused,omitempty"`
	// Visible lists the visible windows in paint order.
	Visible []window.ID `yaml:"visible,omitempty"`
	// Geometry maps windows to their expected placement.
	Geometry map[window.ID]window.Geometry `yaml:"geometry,omitempty"`
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a script, rejecting unknown keys.
func Parse(data []byte) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("script is empty")
		}
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the overrides and that every expect_error names a known
// code. Commands themselves are not validated since a step may expect
// invalid_command.
func (s *Script) Validate() error {
	var result *multierror.Error
	if len(s.Steps) == 0 {
		result = multierror.Append(result, errors.New("script has no steps"))
	}
	if s.Screen != nil && (s.Screen.Width == 0 || s.Screen.Height == 0) {
		result = multierror.Append(result, fmt.Errorf("screen: must be non-zero, got %dx%d", s.Screen.Width, s.Screen.Height))
	}
	if v := s.Config.Variant; v != nil && !slices.Contains(wm.Variants(), *v) {
		result = multierror.Append(result, fmt.Errorf("config.variant: unknown variant %q", *v))
	}
	if l := s.Config.Layout; l != nil && !slices.Contains(tiling.Names(), *l) {
		result = multierror.Append(result, fmt.Errorf("config.layout: unknown layout %q", *l))
	}
	if n := s.Config.Workspaces; n != nil && *n < 1 {
		result = multierror.Append(result, fmt.Errorf("config.workspaces: must be at least 1, got %d", *n))
	}
	if p := s.Config.DockPercent; p != nil && (*p == 0 || *p >= 50) {
		result = multierror.Append(result, fmt.Errorf("config.dock_percent: must be between 1 and 49, got %d", *p))
	}
	for i, step := range s.Steps {
		if step.ExpectError != "" && engine.CodeError(step.ExpectError) == nil {
			result = multierror.Append(result, fmt.Errorf("steps[%d].expect_error: unknown error code %q", i, step.ExpectError))
		}
		if step.ExpectError != "" && step.Expect != nil {
			result = multierror.Append(result, fmt.Errorf("steps[%d]: expect and expect_error are exclusive", i))
		}
	}
	return result.ErrorOrNil()
}

// Options applies the script's screen and overrides to base.
func (s *Script) Options(base wm.Options) wm.Options {
	opts := base
	if s.Screen != nil {
		opts.Screen = *s.Screen
	}
	if s.Config.Variant != nil {
		opts.Variant = *s.Config.Variant
	}
	if s.Config.Layout != nil {
		opts.Layout = *s.Config.Layout
	}
	if s.Config.GapSize != nil {
		opts.Gap = *s.Config.GapSize
	}
	if s.Config.Workspaces != nil {
		opts.Workspaces = *s.Config.Workspaces
	}
	if s.Config.DockPercent != nil {
		opts.DockPercent = *s.Config.DockPercent
	}
	return opts
}

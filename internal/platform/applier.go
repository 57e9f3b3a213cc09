package platform

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/1broseidon/tilecore/internal/engine"
	"github.com/1broseidon/tilecore/internal/window"
)

// Applier is an engine.Sink that replays layout changes on a Backend. It
// only issues calls for what changed since the previous layout.
type Applier struct {
	backend Backend
	logger  *zap.Logger

	mu      sync.Mutex
	placed  map[window.ID]window.Geometry
	hidden  map[window.ID]struct{}
	focused *window.ID
}

var _ engine.Sink = (*Applier)(nil)

// NewApplier returns an Applier driving backend. A nil logger discards logs.
func NewApplier(backend Backend, logger *zap.Logger) *Applier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Applier{
		backend: backend,
		logger:  logger,
		placed:  make(map[window.ID]window.Geometry),
		hidden:  make(map[window.ID]struct{}),
	}
}

func (a *Applier) Name() string { return "x11" }

// Apply moves windows whose geometry changed in paint order, minimises
// windows that left the layout and activates the focused window. Windows
// it minimised earlier are activated when they come back into view so the
// window manager maps them; the focused window is activated last.
func (a *Applier) Apply(ctx context.Context, layout window.Layout) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var result *multierror.Error
	next := make(map[window.ID]window.Geometry, len(layout.Windows))
	var reappeared []window.ID

	for _, p := range layout.Windows {
		if err := ctx.Err(); err != nil {
			return err
		}
		prev, seen := a.placed[p.Window]
		if seen && prev == p.Geometry {
			next[p.Window] = prev
			continue
		}
		if err := a.backend.MoveResize(p.Window, p.Geometry); err != nil {
			result = multierror.Append(result, fmt.Errorf("move window %d: %w", p.Window, err))
			// Keep the old state so the next layout retries the move.
			if seen {
				next[p.Window] = prev
			}
			continue
		}
		next[p.Window] = p.Geometry
		if _, ok := a.hidden[p.Window]; ok {
			delete(a.hidden, p.Window)
			reappeared = append(reappeared, p.Window)
		}
	}

	for _, w := range reappeared {
		if layout.Focused != nil && *layout.Focused == w {
			continue
		}
		if err := a.backend.Activate(w); err != nil {
			result = multierror.Append(result, fmt.Errorf("activate window %d: %w", w, err))
		}
	}

	for _, w := range slices.Sorted(maps.Keys(a.placed)) {
		if _, ok := next[w]; ok {
			continue
		}
		if err := a.backend.Minimize(w); err != nil {
			result = multierror.Append(result, fmt.Errorf("minimize window %d: %w", w, err))
			continue
		}
		a.hidden[w] = struct{}{}
	}

	focusChanged := !sameFocus(a.focused, layout.Focused)
	if layout.Focused != nil && (focusChanged || len(reappeared) > 0) {
		if err := a.backend.Activate(*layout.Focused); err != nil {
			result = multierror.Append(result, fmt.Errorf("activate window %d: %w", *layout.Focused, err))
		}
	}

	a.placed = next
	a.focused = nil
	if layout.Focused != nil {
		f := *layout.Focused
		a.focused = &f
	}

	if err := result.ErrorOrNil(); err != nil {
		a.logger.Debug("layout applied with errors", zap.Int("windows", len(layout.Windows)), zap.Error(err))
		return err
	}
	return nil
}

// Forget drops w from the applied state so that its disappearance from the
// next layout does not minimise it. Used for windows that no longer exist.
func (a *Applier) Forget(w window.ID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.placed, w)
	delete(a.hidden, w)
	if a.focused != nil && *a.focused == w {
		a.focused = nil
	}
}

func sameFocus(a, b *window.ID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

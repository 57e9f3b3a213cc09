package daemon

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 500 * time.Millisecond

// ConfigWatcher calls a reload function when the config file changes.
type ConfigWatcher struct {
	configPath string
	reload     func() error
	watcher    *fsnotify.Watcher
	debounce   time.Duration
	logger     *zap.Logger
}

// NewConfigWatcher creates a watcher for configPath. The file does not have
// to exist yet; its directory does.
func NewConfigWatcher(configPath string, reload func() error, logger *zap.Logger) (*ConfigWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	absPath, err := filepath.Abs(configPath)
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	// Watch the directory; editors replace the file on save.
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch config directory %s: %w", filepath.Dir(absPath), err)
	}

	return &ConfigWatcher{
		configPath: absPath,
		reload:     reload,
		watcher:    watcher,
		debounce:   DefaultDebounce,
		logger:     logger,
	}, nil
}

// SetDebounce changes the settle delay.
func (cw *ConfigWatcher) SetDebounce(d time.Duration) {
	cw.debounce = d
}

// Run watches until ctx is cancelled, then closes the watcher.
func (cw *ConfigWatcher) Run(ctx context.Context) {
	defer cw.watcher.Close()

	cw.logger.Info("watching configuration", zap.String("config_path", cw.configPath))

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != cw.configPath {
				continue
			}
			if event.Op&fsnotify.Remove == fsnotify.Remove {
				cw.logger.Warn("config file removed", zap.String("file", event.Name))
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			cw.logger.Debug("config file change detected", zap.String("file", event.Name), zap.Stringer("op", event.Op))
			if timer == nil {
				timer = time.NewTimer(cw.debounce)
			} else {
				timer.Reset(cw.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if err := cw.reload(); err != nil {
				cw.logger.Error("failed to reload configuration", zap.Error(err))
			} else {
				cw.logger.Info("configuration reloaded")
			}

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.logger.Error("config watcher error", zap.Error(err))
		}
	}
}

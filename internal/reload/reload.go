// Package reload re-applies the config file to a running matcher when the file changes.
package reload

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/MXASoundNDEv/MxSpotyBrokenEyeTest-sub000/internal/config"
	"github.com/MXASoundNDEv/MxSpotyBrokenEyeTest-sub000/internal/logging"
	"github.com/MXASoundNDEv/MxSpotyBrokenEyeTest-sub000/pkg/songmatch"
)

// ThresholdSetter receives threshold updates.
type ThresholdSetter interface {
	SetThresholds(update songmatch.ThresholdUpdate) error
}

// LogReconfigurer receives logging config changes.
type LogReconfigurer interface {
	Reconfigure(cfg logging.Config)
}

// Watcher watches one config file and applies its thresholds, and optionally
// its logging section, whenever it changes.
type Watcher struct {
	path     string
	env      map[string]string
	matcher  ThresholdSetter
	logs     LogReconfigurer
	logger   *slog.Logger
	debounce time.Duration
	onApply  func(config.Config)
}

// New creates a Watcher for path. logs may be nil.
func New(path string, matcher ThresholdSetter, logs LogReconfigurer, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Watcher{
		path:     filepath.Clean(path),
		matcher:  matcher,
		logs:     logs,
		logger:   logger.With("component", "config-reload"),
		debounce: 250 * time.Millisecond,
	}
}

// SetDebounce overrides the default debounce interval (for testing).
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// SetEnv replaces the environment consulted on reload (for testing).
func (w *Watcher) SetEnv(env map[string]string) {
	w.env = env
}

// OnApply registers a callback run after a config has been applied.
func (w *Watcher) OnApply(fn func(config.Config)) {
	w.onApply = fn
}

// Reload reads the file and applies it. Nothing is applied when the file
// cannot be loaded or its thresholds are rejected.
func (w *Watcher) Reload() error {
	cfg, err := config.Load(config.LoadOptions{Path: w.path, Env: w.env})
	if err != nil {
		return err
	}

	if err := w.matcher.SetThresholds(cfg.Thresholds.Update()); err != nil {
		return fmt.Errorf("applying thresholds: %w", err)
	}
	if w.logs != nil {
		w.logs.Reconfigure(cfg.Logging)
	}
	if w.onApply != nil {
		w.onApply(cfg)
	}

	w.logger.Info("config reloaded", "path", w.path)
	return nil
}

// Run blocks until ctx is canceled, reloading after each burst of writes to
// the file. The parent directory is watched so editors that replace the
// file on save are handled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer fw.Close() //nolint:errcheck

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(w.path), err)
	}
	w.logger.Info("watching config file", "path", w.path)

	debounceTimer := time.NewTimer(0)
	if !debounceTimer.Stop() {
		<-debounceTimer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			debounceTimer.Stop()
			w.logger.Debug("config watcher stopping")
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			if !debounceTimer.Stop() && pending {
				select {
				case <-debounceTimer.C:
				default:
				}
			}
			debounceTimer.Reset(w.debounce)
			pending = true

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("fsnotify error", "error", err)

		case <-debounceTimer.C:
			pending = false
			if err := w.Reload(); err != nil {
				w.logger.Warn("config reload failed, keeping previous settings", "path", w.path, "error", err)
			}
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

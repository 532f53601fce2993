// Package watch re-runs a generation pass whenever a schema file changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Func is called after a debounced change to the watched file.
type Func func(ctx context.Context) error

// Watcher monitors one schema file.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange Func
	logger   *slog.Logger
}

// New creates a Watcher for path. A burst of events within debounce results
// in a single call to onChange.
func New(path string, debounce time.Duration, onChange Func, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		path:     filepath.Clean(path),
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
	}
}

// Run blocks until ctx is cancelled. The schema's directory is watched rather
// than the file itself so that editors which replace the file on save keep
// triggering events. Errors returned by onChange are logged and do not stop
// the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file system watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.logger.Info("Watching schema for changes", "path", w.path, "debounce", w.debounce)

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("Schema watcher stopped", "path", w.path)
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("Schema file event", "event", event.Op.String(), "path", event.Name)
			timer.Reset(w.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("File system watcher error", "error", err)

		case <-timer.C:
			if err := w.onChange(ctx); err != nil {
				w.logger.Error("Regeneration failed", "path", w.path, "error", err)
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

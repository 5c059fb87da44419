// Package uploads watches the upload directory and reports file changes so
// connected clients can refresh their attachment pickers.
package uploads

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// EventCallback is called for each upload change.
// kind is one of "created", "deleted".
type EventCallback func(kind, filename string)

// Watch starts an fsnotify watcher on the upload directory and processes
// file change events until ctx is cancelled. Partial writes show up as a
// Create followed by Writes; only the Create is reported.
func Watch(ctx context.Context, dir string, logger *slog.Logger, cb EventCallback) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return err
	}
	logger.Info("uploads watcher: started", slog.String("dir", dir))

	for {
		select {
		case <-ctx.Done():
			logger.Info("uploads watcher: stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			name := filepath.Base(ev.Name)
			if strings.HasPrefix(name, ".") {
				continue
			}

			switch {
			case ev.Op&fsnotify.Create != 0:
				if info, statErr := os.Stat(ev.Name); statErr != nil || info.IsDir() {
					continue
				}
				logger.Debug("uploads watcher: created", slog.String("file", name))
				if cb != nil {
					cb("created", name)
				}

			case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				logger.Debug("uploads watcher: deleted", slog.String("file", name))
				if cb != nil {
					cb("deleted", name)
				}
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("uploads watcher: error", slog.String("error", err.Error()))
		}
	}
}

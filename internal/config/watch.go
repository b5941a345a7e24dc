package config

import (
	"context"
	"log/slog"

	"github.com/fsnotify/fsnotify"
)

// Watch monitors path and calls onChange with the result of reloading it
// each time the file is written. It runs until ctx is cancelled.
//
// Unlike a hot-reloading server, a standards checker wants to see broken
// files too, so onChange also receives load errors.
func Watch(ctx context.Context, path string, logger *slog.Logger, onChange func(*StandardsFile, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return err
	}

	logger.Info("watching standards file", "path", path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Editors often save via rename, so react to Create as well.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			file, err := Load(path)
			if err != nil {
				logger.Warn("standards file reload failed", "path", path, "err", err)
			} else {
				logger.Info("standards file reloaded", "path", path)
			}
			onChange(file, err)

			// Re-add in case an atomic save replaced the inode.
			_ = watcher.Add(path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "err", err)
		}
	}
}

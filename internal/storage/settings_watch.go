package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"setbeast/internal/core/model"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 500 * time.Millisecond

// WatchSettings reloads the settings file whenever it changes on disk and
// passes the record to onChange. It watches the parent directory because the
// store replaces the file with a rename. The watch ends when ctx is done.
func WatchSettings(ctx context.Context, store *SettingsStore, onChange func(model.Settings)) error {
	dir := filepath.Dir(store.Path())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create settings watcher: %w", err)
	}
	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	go watchLoop(ctx, fsWatcher, store, onChange)
	return nil
}

func watchLoop(ctx context.Context, fsWatcher *fsnotify.Watcher, store *SettingsStore, onChange func(model.Settings)) {
	defer fsWatcher.Close()

	var timer *time.Timer
	reload := func() {
		settings, found, err := store.Load()
		if err != nil {
			slog.Warn("reload settings failed", "path", store.Path(), "error", err)
			return
		}
		if !found {
			return
		}
		onChange(settings)
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(store.Path()) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			// Debounce: reset timer on each event.
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, reload)

		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return
			}
			slog.Warn("settings watcher error", "error", err)
		}
	}
}

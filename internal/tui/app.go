package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/Dicklesworthstone/agentsense"
	"github.com/Dicklesworthstone/agentsense/internal/config"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// reloadDebounce coalesces the event bursts editors produce on save.
const reloadDebounce = 200 * time.Millisecond

// WatchConfig watches the config file at path and calls onReload with a
// freshly built registry after each successful reload. A config file that
// fails to load is logged and skipped; the previous registry stays active.
// The function returns when ctx is cancelled.
func WatchConfig(ctx context.Context, path string, logger *log.Logger, onReload func(*agentsense.Registry)) error {
	if logger == nil {
		logger = log.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors replace files on save, which would
	// drop a watch on the file itself.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	target := filepath.Clean(path)
	var debounce *time.Timer
	var debounceCh <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(reloadDebounce)
			} else {
				debounce.Reset(reloadDebounce)
			}
			debounceCh = debounce.C

		case <-debounceCh:
			debounceCh = nil
			cfg, err := config.LoadFrom(path)
			if err != nil {
				logger.Warn("config reload skipped", "error", err)
				continue
			}
			reg, err := cfg.BuildRegistry()
			if err != nil {
				logger.Warn("config reload skipped", "error", err)
				continue
			}
			logger.Debug("config reloaded", "path", path, "signatures", len(reg.Signatures()))
			onReload(reg)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("config watcher error", "error", err)
		}
	}
}

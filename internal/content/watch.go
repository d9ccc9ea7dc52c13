package content

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// reloadDelay lets an editor finish writing before the file is re-read.
const reloadDelay = 200 * time.Millisecond

// Watch reloads path into h whenever it changes, until ctx is cancelled.
// The directory is watched rather than the file so editors that replace the
// file on save are followed. A file that fails to parse leaves the previous
// content in place.
func Watch(ctx context.Context, path string, h *Holder, logger zerolog.Logger) error {
	logger = logger.With().Str("component", "content-watcher").Logger()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating content watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving content path: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching content directory: %w", err)
	}

	logger.Info().Str("path", abs).Msg("watching site content")

	timer := time.NewTimer(reloadDelay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				timer.Reset(reloadDelay)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error().Err(err).Msg("content watcher error")

		case <-timer.C:
			site, err := LoadFile(abs)
			if err != nil {
				logger.Error().Err(err).Msg("keeping previous site content")
				continue
			}
			h.Set(site)
			logger.Info().Msg("site content reloaded")
		}
	}
}

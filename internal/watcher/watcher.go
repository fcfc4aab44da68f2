package watcher

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"distill/internal/logger"
	"distill/internal/transcribe"
)

// settleDelay gives the writer time to finish before the file is uploaded.
const settleDelay = 2 * time.Second

type implWatcher struct {
	dir     string
	handler Handler
	logger  logger.Logger
	watcher *fsnotify.Watcher
}

// New creates a Watcher over dir. Files are handled one at a time, in the
// order they appear; the pipeline never processes two inputs concurrently.
func New(dir string, handler Handler, log logger.Logger) (Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	return &implWatcher{
		dir:     dir,
		handler: handler,
		logger:  log,
		watcher: w,
	}, nil
}

// Start blocks, dispatching newly created audio files to the handler until
// the context is cancelled.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Watching %s for audio files (%s)",
		w.dir, strings.Join(transcribe.SupportedExtensions(), " "))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !isAudioFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New audio file: %s", event.Name)
			time.Sleep(settleDelay)

			if err := w.handler(ctx, event.Name); err != nil {
				w.logger.Error(ctx, "Failed to process %s: %v", event.Name, err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the underlying file system watcher.
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func isAudioFile(path string) bool {
	_, err := transcribe.FormatFromPath(path)
	return err == nil
}

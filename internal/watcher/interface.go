package watcher

import "context"

// Watcher monitors a directory for new audio files.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// Handler processes one detected audio file.
type Handler func(ctx context.Context, path string) error

package pipeline

import (
	"context"

	"distill/internal/storage"
)

// Pipeline sequences upload, transcription, and summarization for one audio
// file, then dispatches the summary to the selected sink.
type Pipeline interface {
	Run(ctx context.Context, audioPath string) error
}

// Uploader is the slice of the storage gateway the pipeline consumes.
type Uploader interface {
	Upload(ctx context.Context, localPath string) (storage.Reference, error)
}

package pipeline

import (
	"distill/internal/logger"
	"distill/internal/output"
	"distill/internal/summarize"
	"distill/internal/transcribe"
)

type implPipeline struct {
	uploader     Uploader
	transcriber  transcribe.Controller
	summarizer   summarize.Summarizer
	sink         output.Sink
	fallback     output.Sink
	languageCode string
	progress     transcribe.ProgressFunc
	logger       logger.Logger
}

// New creates a Pipeline delivering to sink. fallback (normally the terminal
// sink) receives the summary when delivery to sink fails, so a computed
// summary is never lost.
func New(up Uploader, tc transcribe.Controller, sm summarize.Summarizer, sink, fallback output.Sink,
	languageCode string, progress transcribe.ProgressFunc, log logger.Logger) Pipeline {
	return &implPipeline{
		uploader:     up,
		transcriber:  tc,
		summarizer:   sm,
		sink:         sink,
		fallback:     fallback,
		languageCode: languageCode,
		progress:     progress,
		logger:       log,
	}
}

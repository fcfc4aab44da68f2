package output

import (
	"context"
	"fmt"
	"os"
	"strings"
)

type textSink struct {
	path string
}

// NewTextFile creates a sink writing a plain-text summary and transcript.
func NewTextFile(path string) Sink {
	return &textSink{path: path}
}

func (s *textSink) Name() string { return "text" }

func (s *textSink) Render(ctx context.Context, summary, transcript string, meta Metadata) error {
	content := fmt.Sprintf("%s\n\nTranscription:\n%s\n", summary, transcript)
	if err := os.WriteFile(s.path, []byte(content), 0644); err != nil {
		return &SinkError{Sink: s.Name(), Err: err}
	}
	return nil
}

type markdownSink struct {
	path string
}

// NewMarkdown creates a sink writing a markdown document with the summary
// and the speaker-labelled transcript.
func NewMarkdown(path string) Sink {
	return &markdownSink{path: path}
}

func (s *markdownSink) Name() string { return "markdown" }

func (s *markdownSink) Render(ctx context.Context, summary, transcript string, meta Metadata) error {
	// Put each speaker turn on its own line.
	transcript = strings.ReplaceAll(transcript, "spk_", "\nspk_")

	content := fmt.Sprintf("# Summary\n\n%s\n\n# Transcription\n\n%s\n", summary, transcript)
	if err := os.WriteFile(s.path, []byte(content), 0644); err != nil {
		return &SinkError{Sink: s.Name(), Err: err}
	}
	return nil
}

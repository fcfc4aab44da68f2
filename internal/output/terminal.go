package output

import (
	"context"
	"fmt"
	"io"
)

type terminalSink struct {
	w io.Writer
}

// NewTerminal creates a sink echoing the summary and transcript to w. It is
// also the fallback channel when another sink fails to deliver.
func NewTerminal(w io.Writer) Sink {
	return &terminalSink{w: w}
}

func (s *terminalSink) Name() string { return "terminal" }

func (s *terminalSink) Render(ctx context.Context, summary, transcript string, meta Metadata) error {
	if _, err := fmt.Fprintf(s.w, "\nSummary:\n%s\n\nTranscription:\n%s\n", summary, transcript); err != nil {
		return &SinkError{Sink: s.Name(), Err: err}
	}
	return nil
}

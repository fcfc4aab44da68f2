package output

import (
	"context"
	"fmt"
	"time"
)

// Metadata accompanies every rendered summary.
type Metadata struct {
	SourceFile  string
	GeneratedAt time.Time
}

// Sink renders the final summary for human or downstream consumption.
type Sink interface {
	Name() string
	Render(ctx context.Context, summary, transcript string, meta Metadata) error
}

// SinkError reports a failed delivery to a sink. The pipeline result is
// already computed when this occurs, so it is non-fatal to the run's output.
type SinkError struct {
	Sink string
	Err  error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("deliver to %s sink: %v", e.Sink, e.Err)
}

func (e *SinkError) Unwrap() error { return e.Err }

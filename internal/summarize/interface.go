package summarize

import (
	"context"
	"fmt"
)

// Summarizer turns transcript text into summary text with one blocking
// round trip. Implementations perform no retries; propagation is the
// caller's responsibility.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (string, error)
}

// InvocationError reports a failed remote model call (auth, quota,
// malformed request).
type InvocationError struct {
	Provider string
	Err      error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("invoke %s model: %v", e.Provider, e.Err)
}

func (e *InvocationError) Unwrap() error { return e.Err }

// ParseError reports a response envelope that carried no usable text.
type ParseError struct {
	Provider string
	Msg      string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s response: %s", e.Provider, e.Msg)
}

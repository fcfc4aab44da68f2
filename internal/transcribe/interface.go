package transcribe

import (
	"context"
	"time"

	"distill/internal/storage"
)

// State is the job lifecycle state. Completed and Failed are terminal.
type State int

const (
	StateSubmitted State = iota
	StateInProgress
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateSubmitted:
		return "submitted"
	case StateInProgress:
		return "in-progress"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition can occur from s.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateFailed
}

// SubmitRequest names the storage object to transcribe.
type SubmitRequest struct {
	JobName      string
	MediaURI     string
	MediaFormat  MediaFormat
	LanguageCode string
}

// JobStatus is one observation of a remote job.
type JobStatus struct {
	State         State
	TranscriptURI string
	FailureReason string
}

// Service is the remote transcription API the controller drives.
type Service interface {
	StartJob(ctx context.Context, req SubmitRequest) error
	JobStatus(ctx context.Context, jobName string) (JobStatus, error)
}

// Fetcher retrieves the finished transcript document from its output location.
type Fetcher interface {
	Fetch(ctx context.Context, uri string) ([]byte, error)
}

// ProgressFunc observes each poll for UI feedback. It must not affect the
// poll loop's control flow.
type ProgressFunc func(state State, elapsed time.Duration)

// Controller drives a transcription job from submission to a parsed transcript.
type Controller interface {
	Submit(ctx context.Context, ref storage.Reference, localPath, languageCode string) (*Job, error)
	AwaitCompletion(ctx context.Context, job *Job, progress ProgressFunc) (*Transcript, error)
}

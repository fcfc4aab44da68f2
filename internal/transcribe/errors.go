package transcribe

import (
	"fmt"
	"time"
)

// SubmissionError reports a job rejected at submit time (bad format,
// permissions, quota).
type SubmissionError struct {
	JobName string
	Err     error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submit transcription job %s: %v", e.JobName, e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// JobFailedError reports a job that reached the terminal failed state, with
// the provider's reason. A failed job is never resubmitted.
type JobFailedError struct {
	JobName string
	Reason  string
}

func (e *JobFailedError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("transcription job %s failed", e.JobName)
	}
	return fmt.Sprintf("transcription job %s failed: %s", e.JobName, e.Reason)
}

// TimeoutError reports that the configured poll bound expired before the job
// reached a terminal state. Distinct from JobFailedError: the remote job may
// still be running.
type TimeoutError struct {
	JobName string
	Waited  time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("transcription job %s still not terminal after %s", e.JobName, e.Waited)
}

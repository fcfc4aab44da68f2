package transcribe

import "fmt"

// Job is the in-memory handle to a remote transcription job. Only polling
// mutates it, and only through advance.
type Job struct {
	Name string

	state         State
	transcriptURI string
	failureReason string
}

// State returns the last observed lifecycle state.
func (j *Job) State() State { return j.state }

// advance applies one status observation. Terminal states never change
// again; re-observing the same terminal state is a no-op.
func (j *Job) advance(st JobStatus) error {
	if j.state.Terminal() {
		if st.State == j.state {
			return nil
		}
		return fmt.Errorf("job %s is already %s, cannot become %s", j.Name, j.state, st.State)
	}

	j.state = st.State
	if st.TranscriptURI != "" {
		j.transcriptURI = st.TranscriptURI
	}
	if st.FailureReason != "" {
		j.failureReason = st.FailureReason
	}
	return nil
}

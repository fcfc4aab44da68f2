package transcribe

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"distill/internal/logger"
	"distill/internal/storage"
)

type implController struct {
	svc      Service
	fetcher  Fetcher
	logger   logger.Logger
	interval time.Duration
	maxWait  time.Duration
	sleep    func(ctx context.Context, d time.Duration) error
}

// New creates a Controller polling at the given interval. maxWait bounds the
// total poll duration; zero means no bound.
func New(svc Service, fetcher Fetcher, interval, maxWait time.Duration, log logger.Logger) Controller {
	return &implController{
		svc:      svc,
		fetcher:  fetcher,
		logger:   log,
		interval: interval,
		maxWait:  maxWait,
		sleep:    ctxSleep,
	}
}

func ctxSleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Submit starts a transcription job for the uploaded object and returns a
// handle in the submitted state. The media format is inferred from localPath.
func (c *implController) Submit(ctx context.Context, ref storage.Reference, localPath, languageCode string) (*Job, error) {
	jobName := fmt.Sprintf("transcription-%s", uuid.New())

	format, err := FormatFromPath(localPath)
	if err != nil {
		return nil, &SubmissionError{JobName: jobName, Err: err}
	}

	req := SubmitRequest{
		JobName:      jobName,
		MediaURI:     ref.URI(),
		MediaFormat:  format,
		LanguageCode: languageCode,
	}

	c.logger.Info(ctx, "Submitting transcription job %s for %s (%s, %s)",
		jobName, req.MediaURI, format, languageCode)

	if err := c.svc.StartJob(ctx, req); err != nil {
		return nil, &SubmissionError{JobName: jobName, Err: err}
	}

	return &Job{Name: jobName, state: StateSubmitted}, nil
}

// AwaitCompletion polls the job until it reaches a terminal state, then
// fetches and parses the transcript document. Progress observations are
// emitted on every poll and never influence the outcome.
func (c *implController) AwaitCompletion(ctx context.Context, job *Job, progress ProgressFunc) (*Transcript, error) {
	start := time.Now()

	for {
		st, err := c.svc.JobStatus(ctx, job.Name)
		if err != nil {
			return nil, fmt.Errorf("poll transcription job %s: %w", job.Name, err)
		}
		if err := job.advance(st); err != nil {
			return nil, err
		}

		elapsed := time.Since(start)
		if progress != nil {
			progress(job.State(), elapsed)
		}
		c.logger.Debug(ctx, "Job %s is %s after %s", job.Name, job.State(), elapsed.Round(time.Second))

		switch job.State() {
		case StateCompleted:
			return c.fetchTranscript(ctx, job)
		case StateFailed:
			return nil, &JobFailedError{JobName: job.Name, Reason: job.failureReason}
		}

		if c.maxWait > 0 && elapsed >= c.maxWait {
			return nil, &TimeoutError{JobName: job.Name, Waited: elapsed}
		}

		if err := c.sleep(ctx, c.interval); err != nil {
			return nil, err
		}
	}
}

func (c *implController) fetchTranscript(ctx context.Context, job *Job) (*Transcript, error) {
	if job.transcriptURI == "" {
		return nil, fmt.Errorf("job %s completed without a transcript location", job.Name)
	}

	c.logger.Info(ctx, "Fetching transcript for job %s", job.Name)

	body, err := c.fetcher.Fetch(ctx, job.transcriptURI)
	if err != nil {
		return nil, fmt.Errorf("fetch transcript for job %s: %w", job.Name, err)
	}

	return ParseDocument(body)
}

package pipeline

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"distill/internal/logger"
	"distill/internal/output"
	"distill/internal/storage"
	"distill/internal/transcribe"
)

type fakeUploader struct {
	err   error
	calls int
}

func (f *fakeUploader) Upload(ctx context.Context, localPath string) (storage.Reference, error) {
	f.calls++
	if f.err != nil {
		return storage.Reference{}, f.err
	}
	return storage.Reference{Bucket: "mys3bucket", Key: "meeting.m4a", Region: "us-east-1"}, nil
}

type fakeTranscriber struct {
	submitErr error
	awaitErr  error
	result    *transcribe.Transcript
	submits   int
	awaits    int
}

func (f *fakeTranscriber) Submit(ctx context.Context, ref storage.Reference, localPath, languageCode string) (*transcribe.Job, error) {
	f.submits++
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return &transcribe.Job{Name: "transcription-test"}, nil
}

func (f *fakeTranscriber) AwaitCompletion(ctx context.Context, job *transcribe.Job, progress transcribe.ProgressFunc) (*transcribe.Transcript, error) {
	f.awaits++
	if progress != nil {
		progress(transcribe.StateInProgress, time.Second)
	}
	if f.awaitErr != nil {
		return nil, f.awaitErr
	}
	return f.result, nil
}

type fakeSummarizer struct {
	summary string
	err     error
	calls   int
	lastIn  string
}

func (f *fakeSummarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	f.calls++
	f.lastIn = transcript
	if f.err != nil {
		return "", f.err
	}
	return f.summary, nil
}

type fakeSink struct {
	name       string
	err        error
	deliveries []string
}

func (f *fakeSink) Name() string { return f.name }

func (f *fakeSink) Render(ctx context.Context, summary, transcript string, meta output.Metadata) error {
	if f.err != nil {
		return f.err
	}
	f.deliveries = append(f.deliveries, summary)
	return nil
}

func discard() logger.Logger { return logger.NewWithWriter("error", io.Discard) }

func transcriptFixture() *transcribe.Transcript {
	return &transcribe.Transcript{
		Text:        "Arsenal beat Luton Town.",
		SpeakerText: "spk_0: Arsenal beat Luton Town.\n",
	}
}

func TestRunSuccess(t *testing.T) {
	up := &fakeUploader{}
	tc := &fakeTranscriber{result: transcriptFixture()}
	sm := &fakeSummarizer{summary: "A short match report."}
	sink := &fakeSink{name: "terminal"}

	p := New(up, tc, sm, sink, sink, "en-US", nil, discard())

	if err := p.Run(context.Background(), "/tmp/meeting.m4a"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if up.calls != 1 || tc.submits != 1 || tc.awaits != 1 || sm.calls != 1 {
		t.Errorf("stage calls = upload %d, submit %d, await %d, summarize %d",
			up.calls, tc.submits, tc.awaits, sm.calls)
	}
	if sm.lastIn != "Arsenal beat Luton Town." {
		t.Errorf("summarizer input = %q", sm.lastIn)
	}
	if len(sink.deliveries) != 1 || sink.deliveries[0] != "A short match report." {
		t.Errorf("deliveries = %v, want exactly one", sink.deliveries)
	}
}

func TestRunUploadFailureAbortsPipeline(t *testing.T) {
	up := &fakeUploader{err: &storage.UploadError{Bucket: "mys3bucket", Key: "meeting.m4a", Err: errors.New("denied")}}
	tc := &fakeTranscriber{result: transcriptFixture()}
	sm := &fakeSummarizer{summary: "unused"}
	sink := &fakeSink{name: "terminal"}

	p := New(up, tc, sm, sink, sink, "en-US", nil, discard())

	err := p.Run(context.Background(), "/tmp/meeting.m4a")
	if err == nil {
		t.Fatal("Run() should fail")
	}
	if !strings.Contains(err.Error(), "storage stage") {
		t.Errorf("error should name the storage stage: %v", err)
	}
	var ue *storage.UploadError
	if !errors.As(err, &ue) {
		t.Errorf("error should wrap *storage.UploadError: %v", err)
	}
	if tc.submits != 0 || sm.calls != 0 || len(sink.deliveries) != 0 {
		t.Error("later stages must not run after an upload failure")
	}
}

func TestRunTranscriptionFailureAbortsBeforeModel(t *testing.T) {
	up := &fakeUploader{}
	tc := &fakeTranscriber{awaitErr: &transcribe.JobFailedError{
		JobName: "transcription-test",
		Reason:  "UNSUPPORTED_MEDIA_FORMAT",
	}}
	sm := &fakeSummarizer{summary: "unused"}
	sink := &fakeSink{name: "terminal"}

	p := New(up, tc, sm, sink, sink, "en-US", nil, discard())

	err := p.Run(context.Background(), "/tmp/meeting.m4a")
	if err == nil {
		t.Fatal("Run() should fail")
	}
	if !strings.Contains(err.Error(), "transcription stage") {
		t.Errorf("error should name the transcription stage: %v", err)
	}
	var jf *transcribe.JobFailedError
	if !errors.As(err, &jf) || jf.Reason != "UNSUPPORTED_MEDIA_FORMAT" {
		t.Errorf("error should wrap the provider reason: %v", err)
	}
	if sm.calls != 0 {
		t.Error("model must not be invoked after a transcription failure")
	}
}

func TestRunSummarizationFailure(t *testing.T) {
	up := &fakeUploader{}
	tc := &fakeTranscriber{result: transcriptFixture()}
	sm := &fakeSummarizer{err: errors.New("throttled")}
	sink := &fakeSink{name: "terminal"}

	p := New(up, tc, sm, sink, sink, "en-US", nil, discard())

	err := p.Run(context.Background(), "/tmp/meeting.m4a")
	if err == nil || !strings.Contains(err.Error(), "summarization stage") {
		t.Errorf("error should name the summarization stage: %v", err)
	}
	if len(sink.deliveries) != 0 {
		t.Error("nothing should be delivered after a summarization failure")
	}
}

func TestRunSinkFailureFallsBackToTerminal(t *testing.T) {
	up := &fakeUploader{}
	tc := &fakeTranscriber{result: transcriptFixture()}
	sm := &fakeSummarizer{summary: "the summary"}
	webhook := &fakeSink{name: "webhook", err: &output.SinkError{Sink: "webhook", Err: errors.New("unreachable")}}
	fallback := &fakeSink{name: "terminal"}

	p := New(up, tc, sm, webhook, fallback, "en-US", nil, discard())

	err := p.Run(context.Background(), "/tmp/meeting.m4a")
	if err == nil {
		t.Fatal("Run() should report the delivery failure")
	}
	var se *output.SinkError
	if !errors.As(err, &se) {
		t.Fatalf("error should wrap *output.SinkError: %v", err)
	}

	// The computed summary must not be lost.
	if len(fallback.deliveries) != 1 || fallback.deliveries[0] != "the summary" {
		t.Errorf("fallback deliveries = %v, want the summary", fallback.deliveries)
	}
}

func TestRunProgressObserved(t *testing.T) {
	up := &fakeUploader{}
	tc := &fakeTranscriber{result: transcriptFixture()}
	sm := &fakeSummarizer{summary: "s"}
	sink := &fakeSink{name: "terminal"}

	var ticks int
	p := New(up, tc, sm, sink, sink, "en-US",
		func(transcribe.State, time.Duration) { ticks++ }, discard())

	if err := p.Run(context.Background(), "/tmp/meeting.m4a"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if ticks == 0 {
		t.Error("progress callback never observed a poll")
	}
}

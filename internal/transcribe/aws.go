package transcribe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awstranscribe "github.com/aws/aws-sdk-go-v2/service/transcribe"
	"github.com/aws/aws-sdk-go-v2/service/transcribe/types"
)

const maxSpeakerLabels = 10

// transcribeAPI is the subset of the transcription client the service needs.
type transcribeAPI interface {
	StartTranscriptionJob(ctx context.Context, params *awstranscribe.StartTranscriptionJobInput, optFns ...func(*awstranscribe.Options)) (*awstranscribe.StartTranscriptionJobOutput, error)
	GetTranscriptionJob(ctx context.Context, params *awstranscribe.GetTranscriptionJobInput, optFns ...func(*awstranscribe.Options)) (*awstranscribe.GetTranscriptionJobOutput, error)
}

type implService struct {
	client transcribeAPI
}

// NewService wraps an Amazon Transcribe client as a Service.
func NewService(client transcribeAPI) Service {
	return &implService{client: client}
}

func (s *implService) StartJob(ctx context.Context, req SubmitRequest) error {
	_, err := s.client.StartTranscriptionJob(ctx, &awstranscribe.StartTranscriptionJobInput{
		TranscriptionJobName: aws.String(req.JobName),
		LanguageCode:         types.LanguageCode(req.LanguageCode),
		MediaFormat:          types.MediaFormat(req.MediaFormat),
		Media: &types.Media{
			MediaFileUri: aws.String(req.MediaURI),
		},
		Settings: &types.Settings{
			ShowSpeakerLabels:     aws.Bool(true),
			MaxSpeakerLabels:      aws.Int32(maxSpeakerLabels),
			ChannelIdentification: aws.Bool(false),
		},
	})
	return err
}

func (s *implService) JobStatus(ctx context.Context, jobName string) (JobStatus, error) {
	out, err := s.client.GetTranscriptionJob(ctx, &awstranscribe.GetTranscriptionJobInput{
		TranscriptionJobName: aws.String(jobName),
	})
	if err != nil {
		return JobStatus{}, err
	}

	job := out.TranscriptionJob
	if job == nil {
		return JobStatus{}, fmt.Errorf("status response for %s carries no job", jobName)
	}

	st := JobStatus{State: mapStatus(job.TranscriptionJobStatus)}
	if job.Transcript != nil {
		st.TranscriptURI = aws.ToString(job.Transcript.TranscriptFileUri)
	}
	st.FailureReason = aws.ToString(job.FailureReason)
	return st, nil
}

// mapStatus translates provider statuses onto the lifecycle states. Statuses
// this code does not know keep the job polling rather than failing it.
func mapStatus(s types.TranscriptionJobStatus) State {
	switch s {
	case types.TranscriptionJobStatusQueued:
		return StateSubmitted
	case types.TranscriptionJobStatusInProgress:
		return StateInProgress
	case types.TranscriptionJobStatusCompleted:
		return StateCompleted
	case types.TranscriptionJobStatusFailed:
		return StateFailed
	default:
		return StateInProgress
	}
}

type httpFetcher struct {
	client *http.Client
}

// NewFetcher returns a Fetcher retrieving transcript documents over HTTPS.
// The transcript location is a pre-signed URL, so no credentials are needed.
func NewFetcher() Fetcher {
	return &httpFetcher{client: &http.Client{Timeout: 60 * time.Second}}
}

func (f *httpFetcher) Fetch(ctx context.Context, uri string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("transcript fetch returned %s", resp.Status)
	}

	return io.ReadAll(resp.Body)
}

package output

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type webhookSink struct {
	endpoint string
	client   *http.Client
}

// NewWebhook creates a sink posting the summary to a chat webhook endpoint.
func NewWebhook(endpoint string) Sink {
	return &webhookSink{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *webhookSink) Name() string { return "webhook" }

type webhookPayload struct {
	Text        string `json:"text"`
	Source      string `json:"source"`
	GeneratedAt string `json:"generated_at"`
}

func (s *webhookSink) Render(ctx context.Context, summary, transcript string, meta Metadata) error {
	if s.endpoint == "" {
		return &SinkError{Sink: s.Name(), Err: fmt.Errorf("no webhook endpoint configured")}
	}

	body, err := json.Marshal(webhookPayload{
		Text:        fmt.Sprintf("Summary of %s:\n%s", meta.SourceFile, summary),
		Source:      meta.SourceFile,
		GeneratedAt: meta.GeneratedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return &SinkError{Sink: s.Name(), Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return &SinkError{Sink: s.Name(), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return &SinkError{Sink: s.Name(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &SinkError{Sink: s.Name(), Err: fmt.Errorf("webhook returned %s", resp.Status)}
	}

	return nil
}

package output

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testMeta() Metadata {
	return Metadata{
		SourceFile:  "meeting.m4a",
		GeneratedAt: time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC),
	}
}

func TestTerminalSink(t *testing.T) {
	var buf bytes.Buffer
	s := NewTerminal(&buf)

	err := s.Render(context.Background(), "two-paragraph summary", "spk_0: hello\n", testMeta())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "two-paragraph summary") {
		t.Errorf("terminal output missing summary verbatim:\n%s", out)
	}
	if !strings.Contains(out, "spk_0: hello") {
		t.Errorf("terminal output missing transcript:\n%s", out)
	}
}

func TestTextSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.txt")
	s := NewTextFile(path)

	if err := s.Render(context.Background(), "the summary", "the transcript", testMeta()); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	if !strings.HasPrefix(got, "the summary") {
		t.Errorf("text file content = %q", got)
	}
	if !strings.Contains(got, "Transcription:\nthe transcript") {
		t.Errorf("text file missing transcript section:\n%s", got)
	}
}

func TestTextSinkError(t *testing.T) {
	s := NewTextFile(filepath.Join(t.TempDir(), "missing", "summary.txt"))

	err := s.Render(context.Background(), "x", "y", testMeta())
	var se *SinkError
	if !errors.As(err, &se) {
		t.Fatalf("Render() error = %T, want *SinkError", err)
	}
	if se.Sink != "text" {
		t.Errorf("Sink = %v", se.Sink)
	}
}

func TestMarkdownSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.md")
	s := NewMarkdown(path)

	if err := s.Render(context.Background(), "overview", "spk_0: hi spk_1: hello", testMeta()); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	if !strings.Contains(got, "# Summary\n\noverview") {
		t.Errorf("markdown missing summary section:\n%s", got)
	}
	if !strings.Contains(got, "\nspk_0: hi") || !strings.Contains(got, "\nspk_1: hello") {
		t.Errorf("speaker turns should each start a new line:\n%s", got)
	}
}

func TestWordSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.docx")
	s := NewWord(path)

	if err := s.Render(context.Background(), "summary text", "transcript text", testMeta()); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("document not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("document is empty")
	}
}

func TestWebhookSink(t *testing.T) {
	var received webhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %v", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %v", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewWebhook(srv.URL)
	if err := s.Render(context.Background(), "hook summary", "transcript", testMeta()); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !strings.Contains(received.Text, "hook summary") {
		t.Errorf("payload text = %q", received.Text)
	}
	if received.Source != "meeting.m4a" {
		t.Errorf("payload source = %q", received.Source)
	}
}

func TestWebhookSinkFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	tests := []struct {
		name     string
		endpoint string
	}{
		{"server error", srv.URL},
		{"unreachable", "http://127.0.0.1:1"},
		{"no endpoint", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewWebhook(tt.endpoint)
			err := s.Render(context.Background(), "x", "y", testMeta())
			var se *SinkError
			if !errors.As(err, &se) {
				t.Fatalf("Render() error = %T, want *SinkError", err)
			}
		})
	}
}

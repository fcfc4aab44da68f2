package summarize

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"distill/internal/config"
	"distill/internal/logger"
)

type implGemini struct {
	apiKeys    []string
	currentKey int
	model      string
	template   string
	logger     logger.Logger
}

// NewGemini creates a Summarizer backed by the Gemini API, rotating through
// the configured API keys when one is rate limited.
func NewGemini(cfg *config.Config, log logger.Logger) Summarizer {
	return &implGemini{
		apiKeys:  cfg.Summarizer.GeminiAPIKeys,
		model:    cfg.Summarizer.GeminiModel,
		template: cfg.Prompt.Template,
		logger:   log,
	}
}

func (s *implGemini) Summarize(ctx context.Context, transcript string) (string, error) {
	prompt := s.template + "\n\n" + transcript

	attempts := len(s.apiKeys)
	var lastErr error

	for range attempts {
		key := s.apiKeys[s.currentKey]

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			s.rotateKey()
			continue
		}

		s.logger.Info(ctx, "Invoking model %s", s.model)

		result, err := client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
		if err != nil {
			if isQuotaError(err) {
				s.logger.Warn(ctx, "Gemini key %d rate limited, rotating", s.currentKey+1)
				s.rotateKey()
				lastErr = err
				continue
			}
			return "", &InvocationError{Provider: "gemini", Err: err}
		}

		text := strings.TrimSpace(result.Text())
		if text == "" {
			return "", &ParseError{Provider: "gemini", Msg: "no text content in response"}
		}
		return text, nil
	}

	return "", &InvocationError{Provider: "gemini", Err: fmt.Errorf("all %d API keys exhausted: %w", attempts, lastErr)}
}

func (s *implGemini) rotateKey() {
	s.currentKey = (s.currentKey + 1) % len(s.apiKeys)
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

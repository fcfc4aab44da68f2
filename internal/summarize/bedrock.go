package summarize

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"distill/internal/config"
	"distill/internal/logger"
)

// bedrockAPI is the subset of the model runtime client the summarizer needs.
type bedrockAPI interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// anthropicRequest is the Anthropic messages-API body. Decoding parameters
// come verbatim from configuration, so the encoded body is deterministic for
// a fixed config and transcript.
type anthropicRequest struct {
	AnthropicVersion string             `json:"anthropic_version"`
	MaxTokens        int                `json:"max_tokens"`
	System           string             `json:"system,omitempty"`
	Messages         []anthropicMessage `json:"messages"`
	Temperature      float64            `json:"temperature"`
	TopP             float64            `json:"top_p"`
	TopK             int                `json:"top_k"`
}

type anthropicMessage struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

// contentBlock is one unit of a model request or response envelope. The
// envelope is a tagged-variant list; block kinds other than text are
// preserved by the decoder and skipped by extraction.
type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type anthropicResponse struct {
	Content []contentBlock `json:"content"`
}

type implBedrock struct {
	client bedrockAPI
	cfg    *config.Config
	logger logger.Logger
}

// NewBedrock creates a Summarizer invoking an Anthropic model through the
// Bedrock runtime.
func NewBedrock(client bedrockAPI, cfg *config.Config, log logger.Logger) Summarizer {
	return &implBedrock{client: client, cfg: cfg, logger: log}
}

func (s *implBedrock) Summarize(ctx context.Context, transcript string) (string, error) {
	body, err := buildRequestBody(s.cfg, transcript)
	if err != nil {
		return "", fmt.Errorf("encode model request: %w", err)
	}

	s.logger.Info(ctx, "Invoking model %s", s.cfg.Model.ModelID)

	out, err := s.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		Body:        body,
		ModelId:     aws.String(s.cfg.Model.ModelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
	})
	if err != nil {
		return "", &InvocationError{Provider: "bedrock", Err: err}
	}

	return extractText("bedrock", out.Body)
}

func buildRequestBody(cfg *config.Config, transcript string) ([]byte, error) {
	prompt := cfg.Prompt.Template + "\n\n" + transcript

	req := anthropicRequest{
		AnthropicVersion: cfg.Anthropic.Version,
		MaxTokens:        cfg.Model.MaxTokens,
		System:           cfg.Anthropic.System,
		Messages: []anthropicMessage{
			{
				Role:    "user",
				Content: []contentBlock{{Type: "text", Text: prompt}},
			},
		},
		Temperature: cfg.Model.Temperature,
		TopP:        cfg.Model.TopP,
		TopK:        cfg.Model.TopK,
	}

	return json.Marshal(req)
}

// extractText concatenates every text-bearing content block in order. An
// envelope with zero text blocks is a ParseError, never an empty summary.
func extractText(provider string, body []byte) (string, error) {
	var resp anthropicResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &ParseError{Provider: provider, Msg: fmt.Sprintf("invalid envelope: %v", err)}
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", &ParseError{Provider: provider, Msg: "no text content blocks in response"}
	}
	return text, nil
}

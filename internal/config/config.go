package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	geminiAPIKeysEnv   = "DISTILL_GEMINI_API_KEYS"
	webhookEndpointEnv = "DISTILL_WEBHOOK_ENDPOINT"
)

type Config struct {
	AWS        AWSConfig        `yaml:"aws"`
	Model      ModelConfig      `yaml:"model"`
	Anthropic  AnthropicConfig  `yaml:"anthropic"`
	Prompt     PromptConfig     `yaml:"prompt"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Transcribe TranscribeConfig `yaml:"transcribe"`
	Webhook    WebhookConfig    `yaml:"webhook"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type AWSConfig struct {
	S3BucketName string `yaml:"s3_bucket_name"`
	Region       string `yaml:"region"`
	LanguageCode string `yaml:"language_code"`
}

// ModelConfig carries the decoding parameters sent verbatim with every
// summarization request.
type ModelConfig struct {
	ModelID     string  `yaml:"model_id"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
	TopP        float64 `yaml:"top_p"`
	TopK        int     `yaml:"top_k"`
}

type AnthropicConfig struct {
	Version string `yaml:"anthropic_version"`
	System  string `yaml:"system"`
}

type PromptConfig struct {
	Template string `yaml:"template"`
}

type SummarizerConfig struct {
	Provider      string   `yaml:"provider"`
	GeminiModel   string   `yaml:"gemini_model"`
	GeminiAPIKeys []string `yaml:"gemini_api_keys"`
}

type TranscribeConfig struct {
	PollIntervalSeconds int `yaml:"poll_interval_seconds"`
	MaxWaitMinutes      int `yaml:"max_wait_minutes"`
}

type WebhookConfig struct {
	Endpoint string `yaml:"endpoint"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads the YAML configuration file, applies environment overrides for
// secrets, and validates the result. The returned Config is read-only for
// the lifetime of the run.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(geminiAPIKeysEnv); v != "" {
		c.Summarizer.GeminiAPIKeys = splitKeys(v)
	}
	if v := os.Getenv(webhookEndpointEnv); v != "" {
		c.Webhook.Endpoint = v
	}
}

func splitKeys(v string) []string {
	var keys []string
	for _, k := range strings.Split(v, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

func (c *Config) Validate() error {
	if c.AWS.S3BucketName == "" {
		return fmt.Errorf("aws.s3_bucket_name is required")
	}

	if c.AWS.LanguageCode == "" {
		c.AWS.LanguageCode = "en-US"
	}
	if c.Model.ModelID == "" {
		return fmt.Errorf("model.model_id is required")
	}
	if c.Model.MaxTokens == 0 {
		c.Model.MaxTokens = 2000
	}
	if c.Anthropic.Version == "" {
		c.Anthropic.Version = "bedrock-2023-05-31"
	}
	if c.Prompt.Template == "" {
		c.Prompt.Template = defaultPromptTemplate
	}

	switch c.Summarizer.Provider {
	case "":
		c.Summarizer.Provider = "bedrock"
	case "bedrock":
	case "gemini":
		if len(c.Summarizer.GeminiAPIKeys) == 0 {
			return fmt.Errorf("summarizer.gemini_api_keys is required for the gemini provider")
		}
	default:
		return fmt.Errorf("summarizer.provider must be bedrock or gemini, got %q", c.Summarizer.Provider)
	}
	if c.Summarizer.GeminiModel == "" {
		c.Summarizer.GeminiModel = "gemini-2.5-flash"
	}

	if c.Transcribe.PollIntervalSeconds == 0 {
		c.Transcribe.PollIntervalSeconds = 5
	}
	if c.Transcribe.MaxWaitMinutes < 0 {
		return fmt.Errorf("transcribe.max_wait_minutes must not be negative")
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}

// PollInterval returns the transcription poll interval as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Transcribe.PollIntervalSeconds) * time.Second
}

// MaxWait returns the optional transcription poll bound; zero means no bound.
func (c *Config) MaxWait() time.Duration {
	return time.Duration(c.Transcribe.MaxWaitMinutes) * time.Minute
}

const defaultPromptTemplate = `Summarize the following transcript of a meeting or recording. ` +
	`Start with a short overview of what was discussed, then list the key points, ` +
	`decisions, and action items with their owners where mentioned.`

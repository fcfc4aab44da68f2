package cli

import (
	"context"
	"fmt"
	"os"
	"slices"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	awstranscribe "github.com/aws/aws-sdk-go-v2/service/transcribe"

	"distill/internal/config"
	"distill/internal/logger"
	"distill/internal/output"
	"distill/internal/pipeline"
	"distill/internal/storage"
	"distill/internal/summarize"
	"distill/internal/transcribe"
)

const fallbackRegion = "us-east-1"

// app holds the wired pipeline components for one invocation.
type app struct {
	cfg        *config.Config
	log        logger.Logger
	gateway    storage.Gateway
	controller transcribe.Controller
	summarizer summarize.Summarizer
}

// newApp loads configuration, resolves the bucket's region, and builds every
// pipeline component against that region.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	log := logger.New(cfg.Logging.Level)

	var opts []func(*awsconfig.LoadOptions) error
	if cfg.AWS.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.AWS.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS configuration: %w", err)
	}
	if awsCfg.Region == "" {
		awsCfg.Region = fallbackRegion
	}

	bucket := cfg.AWS.S3BucketName

	// Validate the configured bucket and pin all clients to its region.
	probe := storage.New(s3.NewFromConfig(awsCfg), bucket, awsCfg.Region, log)
	buckets, err := probe.ListBuckets(ctx)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(buckets, bucket) {
		return nil, fmt.Errorf("configured S3 bucket %q was not found", bucket)
	}

	region, err := probe.ResolveRegion(ctx, bucket)
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "Using bucket %s in region %s", bucket, region)

	regional := awsCfg.Copy()
	regional.Region = region

	gateway := storage.New(s3.NewFromConfig(regional), bucket, region, log)
	controller := transcribe.New(
		transcribe.NewService(awstranscribe.NewFromConfig(regional)),
		transcribe.NewFetcher(),
		cfg.PollInterval(),
		cfg.MaxWait(),
		log,
	)

	var summarizer summarize.Summarizer
	switch cfg.Summarizer.Provider {
	case "gemini":
		summarizer = summarize.NewGemini(cfg, log)
	default:
		summarizer = summarize.NewBedrock(bedrockruntime.NewFromConfig(awsCfg), cfg, log)
	}

	return &app{
		cfg:        cfg,
		log:        log,
		gateway:    gateway,
		controller: controller,
		summarizer: summarizer,
	}, nil
}

// pipelineFor builds a Pipeline delivering to sink, with the terminal as the
// fallback channel.
func (a *app) pipelineFor(sink output.Sink) pipeline.Pipeline {
	lang := a.cfg.AWS.LanguageCode
	if languageCode != "" {
		lang = languageCode
	}

	progress := func(state transcribe.State, elapsed time.Duration) {
		a.log.Info(context.Background(), "Transcription %s (%s elapsed)", state, elapsed.Round(time.Second))
	}

	return pipeline.New(a.gateway, a.controller, a.summarizer,
		sink, output.NewTerminal(os.Stdout), lang, progress, a.log)
}

// sinkFor maps the output type to a sink. File sinks write <baseName> with
// the format's extension in the working directory.
func (a *app) sinkFor(outputType, baseName string) (output.Sink, error) {
	switch outputType {
	case "terminal":
		return output.NewTerminal(os.Stdout), nil
	case "text":
		return output.NewTextFile(baseName + ".txt"), nil
	case "word":
		return output.NewWord(baseName + ".docx"), nil
	case "markdown":
		return output.NewMarkdown(baseName + ".md"), nil
	case "webhook":
		if a.cfg.Webhook.Endpoint == "" {
			a.log.Warn(context.Background(), "No webhook endpoint configured, falling back to terminal output")
			return output.NewTerminal(os.Stdout), nil
		}
		return output.NewWebhook(a.cfg.Webhook.Endpoint), nil
	default:
		return nil, fmt.Errorf("unknown output type %q", outputType)
	}
}

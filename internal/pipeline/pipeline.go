package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"distill/internal/output"
)

// Run drives the three stages strictly in order. Each stage must fully
// succeed before the next begins; the first failure aborts the rest and is
// returned wrapped with the failing stage's name. Nothing is retried.
func (p *implPipeline) Run(ctx context.Context, audioPath string) error {
	start := time.Now()
	sourceFile := filepath.Base(audioPath)

	p.logger.Info(ctx, "Processing %s", audioPath)

	ref, err := p.uploader.Upload(ctx, audioPath)
	if err != nil {
		return fmt.Errorf("storage stage: %w", err)
	}
	p.logger.Info(ctx, "Uploaded to %s", ref.URI())

	job, err := p.transcriber.Submit(ctx, ref, audioPath, p.languageCode)
	if err != nil {
		return fmt.Errorf("transcription stage: %w", err)
	}

	transcript, err := p.transcriber.AwaitCompletion(ctx, job, p.progress)
	if err != nil {
		return fmt.Errorf("transcription stage: %w", err)
	}

	summary, err := p.summarizer.Summarize(ctx, transcript.Text)
	if err != nil {
		return fmt.Errorf("summarization stage: %w", err)
	}

	p.logger.Info(ctx, "Pipeline completed in %s", time.Since(start).Round(time.Second))

	meta := output.Metadata{SourceFile: sourceFile, GeneratedAt: time.Now()}
	if err := p.sink.Render(ctx, summary, transcript.SpeakerText, meta); err != nil {
		// The summary is computed; surface it on the fallback channel before
		// reporting the delivery failure.
		p.logger.Warn(ctx, "Delivery to %s sink failed: %v", p.sink.Name(), err)
		if p.fallback != nil && p.fallback.Name() != p.sink.Name() {
			if ferr := p.fallback.Render(ctx, summary, transcript.SpeakerText, meta); ferr != nil {
				p.logger.Error(ctx, "Fallback delivery failed too: %v", ferr)
			}
		}
		return fmt.Errorf("delivery: %w", err)
	}

	p.logger.Info(ctx, "Summary delivered to %s sink", p.sink.Name())
	return nil
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"distill/internal/output"
)

// Exit codes. A delivery failure is distinct from a pipeline failure: the
// summary was computed and echoed to the terminal before exiting.
const (
	exitFailure        = 1
	exitDeliveryFailed = 3
)

var rootCmd = &cobra.Command{
	Use:   "distill",
	Short: "Summarize an audio recording with cloud transcription and an LLM",
	Long: `distill uploads an audio file to S3, transcribes it with Amazon Transcribe,
summarizes the transcript with a foundation model, and delivers the summary
to the selected output.

Examples:
  distill -i meeting.m4a                      # summary on the terminal
  distill -i meeting.m4a -o word              # write summary.docx
  distill -i standup.mp3 -o webhook           # post to the configured webhook`,
	RunE:          runPipeline,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	inputAudioFile string
	outputType     string
	configPath     string
	languageCode   string
)

func init() {
	rootCmd.Flags().StringVarP(&inputAudioFile, "input-audio-file", "i", "", "audio file to summarize")
	rootCmd.MarkFlagRequired("input-audio-file")
	rootCmd.Flags().StringVarP(&outputType, "output-type", "o", "terminal", "terminal, text, word, markdown or webhook")

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to the configuration file")
	rootCmd.PersistentFlags().StringVarP(&languageCode, "language-code", "l", "", "spoken language code (overrides configuration)")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		var se *output.SinkError
		if errors.As(err, &se) {
			os.Exit(exitDeliveryFailed)
		}
		os.Exit(exitFailure)
	}
}

func runPipeline(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if _, err := os.Stat(inputAudioFile); err != nil {
		return fmt.Errorf("input file %s does not exist", inputAudioFile)
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	sink, err := a.sinkFor(outputType, "summary")
	if err != nil {
		return err
	}

	return a.pipelineFor(sink).Run(ctx, inputAudioFile)
}

package cli

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"distill/internal/watcher"
)

var watchDir string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a directory and summarize every new audio file",
	Long: `Watch monitors a directory and runs the full pipeline for each audio file
created in it, one file at a time. Summaries are written next to the source
file names (<name>-summary.<ext>) for file output types.`,
	RunE:          runWatch,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchDir, "dir", "d", "", "directory to watch for audio files")
	watchCmd.MarkFlagRequired("dir")
	watchCmd.Flags().StringVarP(&outputType, "output-type", "o", "terminal", "terminal, text, word, markdown or webhook")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	handle := func(ctx context.Context, audioPath string) error {
		base := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
		sink, err := a.sinkFor(outputType, base+"-summary")
		if err != nil {
			return err
		}
		return a.pipelineFor(sink).Run(ctx, audioPath)
	}

	w, err := watcher.New(watchDir, handle, a.log)
	if err != nil {
		return err
	}
	defer w.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()

	select {
	case <-sigChan:
		a.log.Info(ctx, "Shutdown signal received")
		cancel()
		return nil
	case err := <-errChan:
		return err
	}
}

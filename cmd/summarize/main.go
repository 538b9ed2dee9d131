// Package main provides the summarization CLI.
// Usage: podcast-summarize --folder /path/to/episodes
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"podcast-digest/internal/infra/summarizer"
	"podcast-digest/internal/observability/logging"
	"podcast-digest/internal/pkg/config"
	"podcast-digest/internal/usecase/reduce"
	"podcast-digest/internal/usecase/summarize"
)

func main() {
	var folder string
	flag.StringVar(&folder, "folder", "", "Folder containing .txt transcripts (default: AUDIO_FOLDER env)")
	flag.Parse()

	if folder == "" {
		folder = os.Getenv("AUDIO_FOLDER")
	}
	if folder == "" {
		fmt.Fprintln(os.Stderr, "Error: no folder given")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage: podcast-summarize --folder /path/to/episodes")
		os.Exit(1)
	}

	logger := initLogger()

	oracle, err := summarizer.NewFromEnv()
	if err != nil {
		logger.Error("failed to create summarizer", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	engine := reduce.NewEngine(oracle, config.LoadReduceConfig(), logger)
	svc := &summarize.Service{Engine: engine}

	result, err := svc.ProcessFolder(context.Background(), folder)
	if err != nil {
		logger.Error("summarization run failed", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Summarized %d, skipped %d, failed %d\n",
		result.Processed, result.Skipped, result.Failed)
	if result.Failed > 0 {
		os.Exit(1)
	}
}

// initLogger initializes the process-wide structured logger.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

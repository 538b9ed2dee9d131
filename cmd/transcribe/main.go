// Package main provides the transcription CLI.
// Usage: podcast-transcribe --folder /path/to/episodes
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"podcast-digest/internal/infra/transcriber"
	"podcast-digest/internal/observability/logging"
	"podcast-digest/internal/usecase/transcribe"
)

func main() {
	var folder string
	flag.StringVar(&folder, "folder", "", "Folder containing .mp3 episodes (default: AUDIO_FOLDER env)")
	flag.Parse()

	if folder == "" {
		folder = os.Getenv("AUDIO_FOLDER")
	}
	if folder == "" {
		fmt.Fprintln(os.Stderr, "Error: no folder given")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage: podcast-transcribe --folder /path/to/episodes")
		os.Exit(1)
	}

	logger := initLogger()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		logger.Error("OPENAI_API_KEY is required for transcription")
		fmt.Fprintln(os.Stderr, "Error: OPENAI_API_KEY is not set")
		os.Exit(1)
	}

	svc := &transcribe.Service{Transcriber: transcriber.NewWhisper(apiKey)}

	result, err := svc.ProcessFolder(context.Background(), folder)
	if err != nil {
		logger.Error("transcription run failed", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Transcribed %d, skipped %d, failed %d\n",
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

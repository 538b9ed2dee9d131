// Package main provides the named-entity annotation CLI.
// Usage: podcast-annotate --folder /path/to/episodes
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"podcast-digest/internal/infra/ner"
	"podcast-digest/internal/observability/logging"
	"podcast-digest/internal/usecase/annotate"
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
		fmt.Fprintln(os.Stderr, "Usage: podcast-annotate --folder /path/to/episodes")
		os.Exit(1)
	}

	logger := initLogger()

	extractor, err := createExtractor(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	svc := &annotate.Service{Extractor: extractor}

	result, err := svc.ProcessFolder(context.Background(), folder)
	if err != nil {
		logger.Error("entity extraction run failed", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Annotated %d, skipped %d, failed %d\n",
		result.Processed, result.Skipped, result.Failed)
	if result.Failed > 0 {
		os.Exit(1)
	}
}

// createExtractor selects the entity extractor from the NER_PROVIDER
// environment variable ("openai" default, "noop" for development).
func createExtractor(logger *slog.Logger) (ner.Extractor, error) {
	provider := os.Getenv("NER_PROVIDER")
	if provider == "" {
		provider = "openai"
	}

	switch provider {
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			logger.Error("OPENAI_API_KEY is required when NER_PROVIDER=openai")
			return nil, fmt.Errorf("OPENAI_API_KEY is not set")
		}
		return ner.NewOpenAI(apiKey), nil
	case "noop":
		logger.Info("Using no-op entity extractor")
		return ner.NewNoOp(), nil
	default:
		return nil, fmt.Errorf("invalid NER_PROVIDER %q (expected openai or noop)", provider)
	}
}

// initLogger initializes the process-wide structured logger.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

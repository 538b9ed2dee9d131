// Package main provides the entity search CLI.
// Usage: podcast-search --query "name" [--folder /path/to/episodes]
//
// The folder is remembered in ~/.podcast-digest.yaml after the first run, so
// subsequent searches only need the query.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"podcast-digest/internal/pkg/config"
	"podcast-digest/internal/usecase/search"
)

func main() {
	var (
		query  string
		folder string
	)
	flag.StringVar(&query, "query", "", "The string to search for in the .ner files")
	flag.StringVar(&query, "q", "", "Shorthand for --query")
	flag.StringVar(&folder, "folder", "", "Folder containing .ner files (remembered after first use)")
	flag.Parse()

	if query == "" {
		fmt.Fprintln(os.Stderr, "Error: no query given")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage: podcast-search --query \"name\" [--folder /path/to/episodes]")
		os.Exit(1)
	}

	logger := initLogger()

	folder, err := resolveFolder(folder)
	if err != nil {
		logger.Error("could not resolve search folder", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	svc := &search.Service{}
	matches, err := svc.Query(context.Background(), folder, query)
	if err != nil {
		logger.Error("search failed", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(matches) == 0 {
		fmt.Println("No files matched the query.")
		return
	}
	fmt.Println("Files containing the query:")
	for _, m := range matches {
		fmt.Println(m)
	}
}

// resolveFolder returns the folder to search: the flag value when given
// (persisting it for next time), otherwise the remembered configuration.
func resolveFolder(flagValue string) (string, error) {
	path := config.SearchConfigPath()

	if flagValue != "" {
		if err := config.SaveSearchConfig(path, &config.SearchConfig{Folder: flagValue}); err != nil {
			slog.Warn("could not persist search folder", slog.Any("error", err))
		}
		return flagValue, nil
	}

	cfg, err := config.LoadSearchConfig(path)
	if err != nil {
		return "", err
	}
	if cfg.Folder == "" {
		return "", fmt.Errorf("no folder configured; pass --folder once to remember it")
	}
	return cfg.Folder, nil
}

// initLogger initializes and returns a structured logger based on environment configuration.
func initLogger() *slog.Logger {
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

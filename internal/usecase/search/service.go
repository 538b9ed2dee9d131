// Package search finds which entity files in a folder mention a query
// string, case-insensitive.
package search

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"podcast-digest/internal/usecase/pipeline"
)

// Service answers substring queries against a folder of .ner files.
type Service struct{}

// Query returns the names of the .ner files in folder with at least one
// line containing query, case-insensitive. An unreadable file is logged
// and skipped.
func (s *Service) Query(ctx context.Context, folder, query string) ([]string, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("search: query cannot be empty")
	}

	files, err := pipeline.ListFiles(folder, ".ner")
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	needle := strings.ToLower(query)
	matches := make([]string, 0, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("search: %w", err)
		}

		found, err := fileContains(file, needle)
		if err != nil {
			slog.WarnContext(ctx, "Could not read entity file, skipping",
				slog.String("file", filepath.Base(file)),
				slog.String("error", err.Error()))
			continue
		}
		if found {
			matches = append(matches, filepath.Base(file))
		}
	}
	return matches, nil
}

// fileContains reports whether any line of the file contains needle.
// needle must already be lowercased.
func fileContains(path, needle string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if strings.Contains(strings.ToLower(scanner.Text()), needle) {
			return true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return false, err
	}
	return false, nil
}

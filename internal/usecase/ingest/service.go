// Package ingest parses transcript annotations into timed segments and
// loads them into the transcripts table.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"podcast-digest/internal/repository"
	"podcast-digest/internal/transcript"
	"podcast-digest/internal/usecase/pipeline"
)

// Service runs the database loading stage over a folder of .txt annotations.
type Service struct {
	Repo repository.TranscriptRepository
}

// ProcessFolder parses every .txt in folder and inserts its segments. Each
// episode is one transaction, so a failed file leaves nothing partial and
// the run continues with the next file. Malformed timing records are
// logged and skipped without failing the episode.
func (s *Service) ProcessFolder(ctx context.Context, folder string) (pipeline.Result, error) {
	var result pipeline.Result

	files, err := pipeline.ListFiles(folder, ".txt")
	if err != nil {
		return result, fmt.Errorf("ingest: %w", err)
	}

	slog.InfoContext(ctx, "Starting ingest run",
		slog.String("folder", folder),
		slog.Int("files", len(files)))

	bar := pipeline.NewProgressBar(len(files), "ingesting")
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("ingest: %w", err)
		}

		if err := s.processFile(ctx, file); err != nil {
			slog.WarnContext(ctx, "Ingest failed, continuing",
				slog.String("file", filepath.Base(file)),
				slog.String("error", err.Error()))
			result.Failed++
		} else {
			result.Processed++
		}
		_ = bar.Add(1)
	}

	total, err := s.Repo.CountSegments(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Could not count stored segments",
			slog.String("error", err.Error()))
	} else {
		slog.InfoContext(ctx, "Ingest run finished",
			slog.Int("processed", result.Processed),
			slog.Int("failed", result.Failed),
			slog.Int64("total_segments", total))
	}

	return result, nil
}

func (s *Service) processFile(ctx context.Context, txtPath string) error {
	f, err := os.Open(txtPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", txtPath, err)
	}
	defer func() { _ = f.Close() }()

	episodeID := filepath.Base(txtPath)
	segments, err := transcript.ParseSegments(episodeID, f, func(parseErr error) {
		slog.WarnContext(ctx, "Skipping malformed segment",
			slog.String("episode", episodeID),
			slog.String("error", parseErr.Error()))
	})
	if err != nil {
		return fmt.Errorf("parse %s: %w", txtPath, err)
	}
	if len(segments) == 0 {
		slog.InfoContext(ctx, "No segments parsed",
			slog.String("episode", episodeID))
		return nil
	}

	if err := s.Repo.InsertSegments(ctx, segments); err != nil {
		return fmt.Errorf("insert %s: %w", episodeID, err)
	}
	return nil
}

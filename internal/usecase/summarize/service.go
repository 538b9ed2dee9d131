// Package summarize walks a folder of transcript annotations and writes a
// bounded-length summary next to each one.
package summarize

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"podcast-digest/internal/transcript"
	"podcast-digest/internal/usecase/pipeline"
	"podcast-digest/internal/usecase/reduce"
)

// Service runs the summarization stage over a folder of .txt annotations.
type Service struct {
	Engine *reduce.Engine
}

// ProcessFolder summarizes every .txt in folder that does not yet have a
// .summary. A failed file is logged and counted; the run continues with
// the next file.
func (s *Service) ProcessFolder(ctx context.Context, folder string) (pipeline.Result, error) {
	var result pipeline.Result

	files, err := pipeline.ListFiles(folder, ".txt")
	if err != nil {
		return result, fmt.Errorf("summarize: %w", err)
	}

	slog.InfoContext(ctx, "Starting summarization run",
		slog.String("folder", folder),
		slog.Int("files", len(files)))

	bar := pipeline.NewProgressBar(len(files), "summarizing")
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("summarize: %w", err)
		}

		outPath := pipeline.OutputPath(file, ".txt", ".summary")
		if pipeline.Exists(outPath) {
			slog.DebugContext(ctx, "Skipping, summary already exists",
				slog.String("file", filepath.Base(file)))
			result.Skipped++
			_ = bar.Add(1)
			continue
		}

		if err := s.processFile(ctx, file, outPath); err != nil {
			slog.WarnContext(ctx, "Summarization failed, continuing",
				slog.String("file", filepath.Base(file)),
				slog.String("error", err.Error()))
			result.Failed++
		} else {
			result.Processed++
		}
		_ = bar.Add(1)
	}

	slog.InfoContext(ctx, "Summarization run finished",
		slog.Int("processed", result.Processed),
		slog.Int("skipped", result.Skipped),
		slog.Int("failed", result.Failed))

	return result, nil
}

func (s *Service) processFile(ctx context.Context, txtPath, outPath string) error {
	cleaned, err := transcript.CleanFile(txtPath)
	if err != nil {
		return err
	}

	summary, err := s.Engine.TwoPass(ctx, cleaned)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outPath, []byte(summary), 0o644); err != nil {
		return fmt.Errorf("write summary %s: %w", outPath, err)
	}
	return nil
}

// Package transcribe walks a folder of podcast audio and produces a
// timestamped annotation file next to each episode.
package transcribe

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"podcast-digest/internal/infra/transcriber"
	"podcast-digest/internal/usecase/pipeline"
)

// Service runs the transcription stage over a folder of .mp3 files.
type Service struct {
	Transcriber transcriber.Transcriber
}

// ProcessFolder transcribes every .mp3 in folder that does not yet have a
// .txt annotation. A failed file is logged and counted; the run continues
// with the next file.
func (s *Service) ProcessFolder(ctx context.Context, folder string) (pipeline.Result, error) {
	var result pipeline.Result

	files, err := pipeline.ListFiles(folder, ".mp3")
	if err != nil {
		return result, fmt.Errorf("transcribe: %w", err)
	}

	slog.InfoContext(ctx, "Starting transcription run",
		slog.String("folder", folder),
		slog.Int("files", len(files)))

	bar := pipeline.NewProgressBar(len(files), "transcribing")
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("transcribe: %w", err)
		}

		outPath := pipeline.OutputPath(file, ".mp3", ".txt")
		if pipeline.Exists(outPath) {
			slog.DebugContext(ctx, "Skipping, annotation already exists",
				slog.String("file", filepath.Base(file)))
			result.Skipped++
			_ = bar.Add(1)
			continue
		}

		if err := s.processFile(ctx, file, outPath); err != nil {
			slog.WarnContext(ctx, "Transcription failed, continuing",
				slog.String("file", filepath.Base(file)),
				slog.String("error", err.Error()))
			result.Failed++
		} else {
			result.Processed++
		}
		_ = bar.Add(1)
	}

	slog.InfoContext(ctx, "Transcription run finished",
		slog.Int("processed", result.Processed),
		slog.Int("skipped", result.Skipped),
		slog.Int("failed", result.Failed))

	return result, nil
}

func (s *Service) processFile(ctx context.Context, audioPath, outPath string) error {
	segments, err := s.Transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return err
	}

	annotation := transcriber.FormatAnnotation(segments)
	if err := os.WriteFile(outPath, []byte(annotation), 0o644); err != nil {
		return fmt.Errorf("write annotation %s: %w", outPath, err)
	}
	return nil
}

// Package annotate walks a folder of transcript annotations and writes a
// named-entity file next to each one.
package annotate

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"podcast-digest/internal/infra/ner"
	"podcast-digest/internal/transcript"
	"podcast-digest/internal/usecase/pipeline"
)

// Service runs the entity extraction stage over a folder of .txt annotations.
type Service struct {
	Extractor ner.Extractor
}

// ProcessFolder extracts entities from every .txt in folder that does not
// yet have a .ner file. Files with no content after cleaning are skipped.
// A failed file is logged and counted; the run continues with the next file.
func (s *Service) ProcessFolder(ctx context.Context, folder string) (pipeline.Result, error) {
	var result pipeline.Result

	files, err := pipeline.ListFiles(folder, ".txt")
	if err != nil {
		return result, fmt.Errorf("annotate: %w", err)
	}

	slog.InfoContext(ctx, "Starting entity extraction run",
		slog.String("folder", folder),
		slog.Int("files", len(files)))

	bar := pipeline.NewProgressBar(len(files), "annotating")
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("annotate: %w", err)
		}

		outPath := pipeline.OutputPath(file, ".txt", ".ner")
		if pipeline.Exists(outPath) {
			slog.DebugContext(ctx, "Skipping, entity file already exists",
				slog.String("file", filepath.Base(file)))
			result.Skipped++
			_ = bar.Add(1)
			continue
		}

		if err := s.processFile(ctx, file, outPath); err != nil {
			slog.WarnContext(ctx, "Entity extraction failed, continuing",
				slog.String("file", filepath.Base(file)),
				slog.String("error", err.Error()))
			result.Failed++
		} else {
			result.Processed++
		}
		_ = bar.Add(1)
	}

	slog.InfoContext(ctx, "Entity extraction run finished",
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
	if strings.TrimSpace(cleaned) == "" {
		slog.InfoContext(ctx, "Skipping, no content after cleaning",
			slog.String("file", filepath.Base(txtPath)))
		return nil
	}

	annotations, err := s.Extractor.Extract(ctx, cleaned)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outPath, []byte(ner.FormatAnnotations(annotations)), 0o644); err != nil {
		return fmt.Errorf("write entity file %s: %w", outPath, err)
	}
	return nil
}

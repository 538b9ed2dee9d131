package summarize

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"podcast-digest/internal/usecase/reduce"
)

type echoOracle struct{}

func (echoOracle) Summarize(_ context.Context, input string, maxLength, _ int) (string, error) {
	words := strings.Fields(input)
	if len(words) > maxLength {
		words = words[:maxLength]
	}
	return strings.Join(words, " "), nil
}

func newTestEngine(t *testing.T) *reduce.Engine {
	t.Helper()
	return reduce.NewEngine(echoOracle{}, reduce.DefaultConfig(),
		slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestProcessFolder_WritesSummaries(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ep01.txt"),
		"Start: 0:00:00 - End: 0:00:05\nwe talked about tide pools today\n\n")

	svc := &Service{Engine: newTestEngine(t)}
	result, err := svc.ProcessFolder(context.Background(), dir)
	if err != nil {
		t.Fatalf("ProcessFolder err=%v", err)
	}
	if result.Processed != 1 {
		t.Fatalf("result = %+v, want 1 processed", result)
	}

	data, err := os.ReadFile(filepath.Join(dir, "ep01.summary"))
	if err != nil {
		t.Fatalf("summary not written: %v", err)
	}
	if !strings.Contains(string(data), "tide pools") {
		t.Errorf("summary = %q, want transcript content", data)
	}
}

func TestProcessFolder_EmptyTranscriptGetsSentinel(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ep01.txt"),
		"Start: 0:00:00 - End: 0:00:05\n\n\n")

	svc := &Service{Engine: newTestEngine(t)}
	if _, err := svc.ProcessFolder(context.Background(), dir); err != nil {
		t.Fatalf("ProcessFolder err=%v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "ep01.summary"))
	if err != nil {
		t.Fatalf("summary not written: %v", err)
	}
	if string(data) != reduce.NoContent {
		t.Errorf("summary = %q, want %q", data, reduce.NoContent)
	}
}

func TestProcessFolder_SkipsExistingSummary(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ep01.txt"), "Start: 0:00:00 - End: 0:00:05\nhello\n\n")
	writeFile(t, filepath.Join(dir, "ep01.summary"), "existing summary")

	svc := &Service{Engine: newTestEngine(t)}
	result, err := svc.ProcessFolder(context.Background(), dir)
	if err != nil {
		t.Fatalf("ProcessFolder err=%v", err)
	}
	if result.Skipped != 1 || result.Processed != 0 {
		t.Fatalf("result = %+v, want 1 skipped", result)
	}

	data, _ := os.ReadFile(filepath.Join(dir, "ep01.summary"))
	if string(data) != "existing summary" {
		t.Error("existing summary was overwritten")
	}
}

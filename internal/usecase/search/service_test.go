package search

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestQuery(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ep01.ner"), "PERSON,Grace Hopper,0,12\nORG,NASA,22,26\n")
	writeFile(t, filepath.Join(dir, "ep02.ner"), "GPE,Kyoto,5,10\n")
	writeFile(t, filepath.Join(dir, "ep03.ner"), "ORG,nasa mission control,0,20\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "NASA appears here but not in a .ner file\n")

	svc := &Service{}
	got, err := svc.Query(context.Background(), dir, "NASA")
	if err != nil {
		t.Fatalf("Query err=%v", err)
	}
	want := []string{"ep01.ner", "ep03.ner"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Query mismatch (-want +got):\n%s", diff)
	}
}

func TestQuery_NoMatches(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ep01.ner"), "GPE,Kyoto,5,10\n")

	svc := &Service{}
	got, err := svc.Query(context.Background(), dir, "antarctica")
	if err != nil {
		t.Fatalf("Query err=%v", err)
	}
	if len(got) != 0 {
		t.Errorf("Query = %v, want no matches", got)
	}
}

func TestQuery_EmptyQuery(t *testing.T) {
	t.Parallel()

	svc := &Service{}
	if _, err := svc.Query(context.Background(), t.TempDir(), "   "); err == nil {
		t.Error("expected error for empty query")
	}
}

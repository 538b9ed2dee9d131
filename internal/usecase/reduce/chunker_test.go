package reduce_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"podcast-digest/internal/usecase/reduce"
)

func TestSplitShortTextIsSingleChunk(t *testing.T) {
	got := reduce.Split("already short", 1024)
	want := []string{"already short"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Split() mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitEmptyInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"spaces", "     "},
		{"mixed whitespace", " \t\n "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reduce.Split(tt.input, 8); got != nil {
				t.Errorf("Split(%q) = %v, want nil", tt.input, got)
			}
		})
	}
}

func TestSplitChunkSizes(t *testing.T) {
	// 2000 runes with chunk size 1024 must produce exactly two chunks of
	// 1024 and 976 runes.
	input := strings.Repeat("a", 2000)
	got := reduce.Split(input, 1024)

	if len(got) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(got))
	}
	if len([]rune(got[0])) != 1024 {
		t.Errorf("first chunk has %d runes, want 1024", len([]rune(got[0])))
	}
	if len([]rune(got[1])) != 976 {
		t.Errorf("second chunk has %d runes, want 976", len([]rune(got[1])))
	}
}

func TestSplitPreservesOrderAndCoverage(t *testing.T) {
	// Rebuilding the source from its chunks must lose nothing besides
	// whitespace trimmed at chunk edges.
	input := "the quick brown fox jumps over the lazy dog and keeps running"
	chunks := reduce.Split(input, 10)

	rebuilt := strings.Join(chunks, "")
	wantRebuilt := strings.ReplaceAll(input, " ", "")
	gotCompact := strings.ReplaceAll(rebuilt, " ", "")
	if gotCompact != wantRebuilt {
		t.Errorf("chunk coverage lost content:\n got %q\nwant %q", gotCompact, wantRebuilt)
	}

	// Order check: each chunk's first word must appear in the source after
	// the previous chunk's position.
	pos := 0
	for i, chunk := range chunks {
		idx := strings.Index(input[pos:], strings.Fields(chunk)[0])
		if idx < 0 {
			t.Fatalf("chunk %d (%q) out of order", i, chunk)
		}
		pos += idx
	}
}

func TestSplitDropsWhitespaceOnlyChunks(t *testing.T) {
	// Middle chunk is purely whitespace and must be dropped.
	input := "abcd" + strings.Repeat(" ", 4) + "efgh"
	got := reduce.Split(input, 4)
	want := []string{"abcd", "efgh"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Split() mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitCountsRunesNotBytes(t *testing.T) {
	// 8 Japanese characters are 24 bytes; with chunk size 4 runes the split
	// must fall between characters, never inside a UTF-8 sequence.
	input := strings.Repeat("あ", 8)
	got := reduce.Split(input, 4)
	if len(got) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(got))
	}
	for i, chunk := range got {
		if !strings.HasPrefix(chunk, "あ") || len([]rune(chunk)) != 4 {
			t.Errorf("chunk %d = %q, want 4 intact runes", i, chunk)
		}
	}
}

package text_test

import (
	"testing"

	"podcast-digest/internal/utils/text"
)

func TestCountRunes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"ascii", "hello", 5},
		{"empty", "", 0},
		{"japanese", "こんにちは", 5},
		{"mixed", "hello世界", 7},
		{"emoji", "Hello👋", 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := text.CountRunes(tt.input); got != tt.want {
				t.Errorf("CountRunes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"simple", "one two three", 3},
		{"empty", "", 0},
		{"whitespace only", "   \t\n  ", 0},
		{"leading and trailing", "  padded  ", 1},
		{"multiple separators", "a\tb\nc  d", 4},
		{"no punctuation normalization", "end. start", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := text.CountWords(tt.input); got != tt.want {
				t.Errorf("CountWords(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

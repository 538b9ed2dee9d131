package summarizer

import (
	"context"
	"strings"
)

// NoOp is an oracle that truncates instead of summarizing.
// This is useful for testing and development when no API key is available.
type NoOp struct{}

// NewNoOp creates a new NoOp oracle adapter.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Summarize returns the first maxLength words of the input unchanged.
// Deterministic by construction, so reduction runs over it are reproducible.
func (n *NoOp) Summarize(_ context.Context, input string, maxLength, _ int) (string, error) {
	words := strings.Fields(input)
	if len(words) <= maxLength {
		return strings.Join(words, " "), nil
	}
	return strings.Join(words[:maxLength], " "), nil
}

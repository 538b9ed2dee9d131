package reduce

import (
	"strings"

	"podcast-digest/internal/utils/text"
)

// Split partitions text into chunks of at most chunkSize runes, in original
// left-to-right order. The split point is purely positional; a chunk may end
// mid-word or mid-sentence, which is accepted imprecision rather than a bug.
// Each chunk is trimmed of surrounding whitespace and chunks that are empty
// after trimming are dropped, so the result contains no blank entries.
//
// Text that already fits within chunkSize is returned as a single chunk.
// Empty or whitespace-only text yields a nil slice; callers must short-circuit
// before invoking the oracle in that case.
func Split(input string, chunkSize int) []string {
	runes := []rune(input)
	if len(runes) <= chunkSize {
		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			return nil
		}
		return []string{trimmed}
	}

	chunks := make([]string, 0, (len(runes)+chunkSize-1)/chunkSize)
	for start := 0; start < len(runes); start += chunkSize {
		end := start + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk == "" {
			continue
		}
		chunks = append(chunks, chunk)
	}
	return chunks
}

// fits reports whether the input is small enough for a single oracle call.
func fits(input string, chunkSize int) bool {
	return text.CountRunes(input) <= chunkSize
}

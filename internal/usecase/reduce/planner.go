package reduce

import "podcast-digest/internal/utils/text"

// PlanMaxLength computes the per-call maximum summary length in words for the
// given text: min(defaultMax, max(wordCount, minLength)).
//
// Summarization oracles reject or warn when asked for output longer than
// their input, so the budget shrinks toward the actual word count for short
// texts while never dropping below minLength and never exceeding defaultMax.
// Downstream recursion termination depends on exactly these two bounds
// holding at every call site.
//
// If the text contains no words the result collapses to minLength; callers
// must guarantee non-empty text before planning, matching the chunker's
// drop-empty behavior.
func PlanMaxLength(input string, defaultMax, minLength int) int {
	wordCount := text.CountWords(input)

	maxLength := wordCount
	if maxLength < minLength {
		maxLength = minLength
	}
	if maxLength > defaultMax {
		maxLength = defaultMax
	}
	return maxLength
}

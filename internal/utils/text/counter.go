// Package text provides utilities for text processing and analysis.
// This package includes reusable counting functions shared by the reduction
// engine and the oracle adapters so that length budgets are computed the same
// way everywhere.
package text

import "strings"

// CountRunes counts the number of Unicode characters (runes) in the given text.
// This function correctly handles multi-byte characters including Japanese,
// Chinese, emoji, and other Unicode characters by counting runes instead of
// bytes. All chunk-size comparisons in the reduction engine go through this
// function so that a chunk boundary can never land inside a UTF-8 sequence.
//
// Examples:
//
//	CountRunes("hello")    // returns 5 (ASCII text)
//	CountRunes("こんにちは")  // returns 5 (Japanese text)
//	CountRunes("")         // returns 0 (empty string)
func CountRunes(text string) int {
	return len([]rune(text))
}

// CountWords counts whitespace-delimited word units in the given text.
// Words are separated by runs of Unicode whitespace; no punctuation
// normalization is performed. This is the unit in which summary length
// budgets are expressed.
//
// Examples:
//
//	CountWords("one two three")  // returns 3
//	CountWords("  padded  ")     // returns 1
//	CountWords("")               // returns 0
func CountWords(text string) int {
	return len(strings.Fields(text))
}

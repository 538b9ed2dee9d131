package reduce

import "errors"

// NoContent is returned in place of a summary when the input document is
// empty or whitespace-only. It is an expected result, not an error.
const NoContent = "No content to summarize."

// ErrDidNotConverge indicates that combined chunk summaries failed to shrink
// below the chunk size within the recursion depth bound. This can only happen
// when the oracle keeps producing output close to its input length.
var ErrDidNotConverge = errors.New("reduction did not converge within depth bound")

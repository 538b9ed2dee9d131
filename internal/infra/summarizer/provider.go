package summarizer

import (
	"fmt"
	"os"

	"podcast-digest/internal/usecase/reduce"
)

// NewFromEnv builds the oracle adapter selected by SUMMARIZER_PROVIDER:
// "claude" (default), "openai", or "noop". API keys come from
// ANTHROPIC_API_KEY and OPENAI_API_KEY respectively.
func NewFromEnv() (reduce.Oracle, error) {
	provider := os.Getenv("SUMMARIZER_PROVIDER")
	if provider == "" {
		provider = "claude"
	}

	switch provider {
	case "claude":
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY not set")
		}
		return NewClaude(apiKey), nil
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY not set")
		}
		return NewOpenAI(apiKey)
	case "noop":
		return NewNoOp(), nil
	default:
		return nil, fmt.Errorf("unknown summarizer provider %q (must be claude, openai or noop)", provider)
	}
}

package summarizer

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the shared configuration for summarization oracle adapters.
// Configuration is loaded from environment variables with fallback to defaults.
type Config struct {
	// Model is the provider model identifier to use for summarization.
	Model string

	// MaxTokens is the maximum number of tokens for the API response.
	// Must comfortably cover the largest word budget (500 words).
	MaxTokens int

	// Timeout is the maximum duration for a single summarization API call.
	Timeout time.Duration

	// RequestsPerMinute throttles outbound oracle calls. Loaded from
	// SUMMARIZER_RATE_LIMIT. Zero disables throttling.
	RequestsPerMinute int
}

const (
	defaultMaxTokens = 2048
	defaultTimeout   = 60 * time.Second
	defaultRateLimit = 0
	minRatePerMinute = 1
	maxRatePerMinute = 600
	rateLimitEnvKey  = "SUMMARIZER_RATE_LIMIT"
)

// loadRateLimit reads the per-minute request budget from the environment.
// Invalid or out-of-range values fall back to unthrottled with a warning
// left to the caller's logger.
func loadRateLimit() (int, error) {
	envLimit := os.Getenv(rateLimitEnvKey)
	if envLimit == "" {
		return defaultRateLimit, nil
	}
	parsed, err := strconv.Atoi(envLimit)
	if err != nil {
		return defaultRateLimit, fmt.Errorf("invalid %s format: %q: %w", rateLimitEnvKey, envLimit, err)
	}
	if parsed < minRatePerMinute || parsed > maxRatePerMinute {
		return defaultRateLimit, fmt.Errorf("%s out of range [%d, %d]: %d",
			rateLimitEnvKey, minRatePerMinute, maxRatePerMinute, parsed)
	}
	return parsed, nil
}

// Validate checks the adapter configuration.
func (c *Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("model cannot be empty")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", c.MaxTokens)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.RequestsPerMinute < 0 {
		return fmt.Errorf("rate limit must not be negative, got %d", c.RequestsPerMinute)
	}
	return nil
}

// buildPrompt constructs the summarization prompt for one oracle call.
// The word budget is spelled out so the model's output length tracks the
// planner's computed range.
func buildPrompt(input string, maxLength, minLength int) string {
	return fmt.Sprintf(
		"Summarize the following text in between %d and %d words. "+
			"Respond with the summary only, no preamble.\n\n%s",
		minLength, maxLength, input)
}

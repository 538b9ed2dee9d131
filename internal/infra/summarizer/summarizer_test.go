package summarizer_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"podcast-digest/internal/infra/summarizer"
)

func TestLoadClaudeConfig_Defaults(t *testing.T) {
	_ = os.Unsetenv("SUMMARIZER_RATE_LIMIT")

	config := summarizer.LoadClaudeConfig()

	if config.Model == "" {
		t.Error("expected non-empty default model")
	}
	if config.MaxTokens != 2048 {
		t.Errorf("expected MaxTokens=2048, got %d", config.MaxTokens)
	}
	if config.RequestsPerMinute != 0 {
		t.Errorf("expected unthrottled default, got %d", config.RequestsPerMinute)
	}
}

func TestLoadClaudeConfig_RateLimit(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"valid", "60", 60},
		{"non-numeric falls back", "fast", 0},
		{"zero out of range", "0", 0},
		{"negative out of range", "-5", 0},
		{"above maximum", "10000", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SUMMARIZER_RATE_LIMIT", tt.value)

			config := summarizer.LoadClaudeConfig()

			if config.RequestsPerMinute != tt.want {
				t.Errorf("RequestsPerMinute = %d, want %d", config.RequestsPerMinute, tt.want)
			}
		})
	}
}

func TestLoadOpenAIConfig_InvalidRateLimitFails(t *testing.T) {
	t.Setenv("SUMMARIZER_RATE_LIMIT", "not-a-number")

	if _, err := summarizer.LoadOpenAIConfig(); err == nil {
		t.Error("expected error for malformed rate limit")
	}
}

func TestNoOpTruncatesToBudget(t *testing.T) {
	oracle := summarizer.NewNoOp()

	input := strings.Repeat("word ", 200)
	got, err := oracle.Summarize(context.Background(), input, 50, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if words := len(strings.Fields(got)); words != 50 {
		t.Errorf("expected 50 words, got %d", words)
	}
}

func TestNoOpShortInputUnchanged(t *testing.T) {
	oracle := summarizer.NewNoOp()

	got, err := oracle.Summarize(context.Background(), "three short words", 50, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "three short words" {
		t.Errorf("got %q, want input unchanged", got)
	}
}

func TestNoOpIsDeterministic(t *testing.T) {
	oracle := summarizer.NewNoOp()
	input := strings.Repeat("the same input ", 40)

	first, _ := oracle.Summarize(context.Background(), input, 30, 10)
	second, _ := oracle.Summarize(context.Background(), input, 30, 10)

	if first != second {
		t.Error("identical calls must produce identical output")
	}
}

func TestNewFromEnv_Noop(t *testing.T) {
	t.Setenv("SUMMARIZER_PROVIDER", "noop")

	oracle, err := summarizer.NewFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if oracle == nil {
		t.Fatal("expected oracle, got nil")
	}
}

func TestNewFromEnv_UnknownProvider(t *testing.T) {
	t.Setenv("SUMMARIZER_PROVIDER", "bard")

	if _, err := summarizer.NewFromEnv(); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestNewFromEnv_MissingKey(t *testing.T) {
	t.Setenv("SUMMARIZER_PROVIDER", "claude")
	t.Setenv("ANTHROPIC_API_KEY", "")

	if _, err := summarizer.NewFromEnv(); err == nil {
		t.Error("expected error when API key is missing")
	}
}

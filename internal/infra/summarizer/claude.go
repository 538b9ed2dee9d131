// Package summarizer provides oracle adapters for AI-powered text summarization.
// It includes adapters for Claude (Anthropic) and OpenAI APIs with reliability patterns.
// Each adapter implements the reduction engine's Oracle contract: one call takes a
// text plus a word budget and returns one summary string, with comprehensive
// observability through structured logging and Prometheus metrics.
package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"podcast-digest/internal/resilience/circuitbreaker"
	"podcast-digest/internal/resilience/retry"
	"podcast-digest/internal/utils/text"
)

// LoadClaudeConfig loads Claude adapter configuration from environment variables.
// Invalid rate-limit values fall back to unthrottled with a warning log.
func LoadClaudeConfig() Config {
	rpm, err := loadRateLimit()
	if err != nil {
		slog.Warn("invalid summarizer rate limit, running unthrottled",
			slog.String("error", err.Error()))
	}
	return Config{
		Model:             string(anthropic.ModelClaudeSonnet4_5_20250929),
		MaxTokens:         defaultMaxTokens,
		Timeout:           defaultTimeout,
		RequestsPerMinute: rpm,
	}
}

// Claude implements the reduction engine's Oracle contract using Anthropic's
// Claude API. It includes circuit breaker, retry and rate limiting for
// reliability. Decoding is pinned to temperature zero so repeated calls on
// identical input and budget are reproducible, which the reduction engine's
// idempotence depends on.
type Claude struct {
	client          anthropic.Client
	circuitBreaker  *circuitbreaker.CircuitBreaker
	retryConfig     retry.Config
	limiter         *rate.Limiter
	config          Config
	metricsRecorder OracleMetricsRecorder
}

// NewClaude creates a new Claude oracle adapter with the given API key.
// It automatically configures circuit breaker, retry logic, rate limiting,
// and metrics recording.
func NewClaude(apiKey string) *Claude {
	config := LoadClaudeConfig()

	slog.Info("Initialized Claude oracle adapter",
		slog.String("model", config.Model),
		slog.Int("max_tokens", config.MaxTokens),
		slog.Int("requests_per_minute", config.RequestsPerMinute))

	return &Claude{
		client:          anthropic.NewClient(option.WithAPIKey(apiKey)),
		circuitBreaker:  circuitbreaker.New(circuitbreaker.ClaudeAPIConfig()),
		retryConfig:     retry.AIAPIConfig(),
		limiter:         newLimiter(config.RequestsPerMinute),
		config:          config,
		metricsRecorder: NewPrometheusOracleMetrics(),
	}
}

// Summarize generates a summary of the given text within the word budget.
// Transient API failures are retried through the circuit breaker; any other
// failure propagates to the caller, aborting the reduction in progress.
func (c *Claude) Summarize(ctx context.Context, input string, maxLength, minLength int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	var result string

	retryErr := retry.WithBackoff(ctx, c.retryConfig, func() error {
		cbResult, err := c.circuitBreaker.Execute(func() (interface{}, error) {
			return c.doSummarize(ctx, input, maxLength, minLength)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("claude api circuit breaker open, request rejected",
					slog.String("service", "claude-api"),
					slog.String("state", c.circuitBreaker.State().String()))
				return fmt.Errorf("claude api unavailable: circuit breaker open")
			}
			return err
		}

		result = cbResult.(string)
		return nil
	})

	if retryErr != nil {
		return "", fmt.Errorf("claude summarize failed after retries: %w", retryErr)
	}

	return result, nil
}

// doSummarize performs the actual API call without retry or circuit breaker.
func (c *Claude) doSummarize(ctx context.Context, input string, maxLength, minLength int) (string, error) {
	requestID := uuid.New().String()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter: %w", err)
		}
	}

	prompt := buildPrompt(input, maxLength, minLength)

	slog.InfoContext(ctx, "Starting oracle call",
		slog.String("request_id", requestID),
		slog.Int("input_words", text.CountWords(input)),
		slog.Int("max_length", maxLength),
		slog.Int("min_length", minLength))

	start := time.Now()

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.config.Model),
		MaxTokens:   int64(c.config.MaxTokens),
		Temperature: anthropic.Float(0),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(prompt),
			),
		},
	})

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "Oracle call failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("claude api error: %w", err)
	}

	if len(message.Content) == 0 {
		slog.ErrorContext(ctx, "Claude API returned empty response",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration))
		return "", fmt.Errorf("claude api returned empty response")
	}

	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		slog.ErrorContext(ctx, "Claude API returned unexpected response type",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration))
		return "", fmt.Errorf("claude api returned unexpected response type")
	}

	summary := textBlock.Text
	summaryWords := text.CountWords(summary)
	withinBudget := summaryWords <= maxLength

	slog.InfoContext(ctx, "Oracle call completed",
		slog.String("request_id", requestID),
		slog.Int("summary_words", summaryWords),
		slog.Int("max_length", maxLength),
		slog.Bool("within_budget", withinBudget),
		slog.Duration("duration", duration))

	if !withinBudget {
		slog.WarnContext(ctx, "Summary exceeds word budget",
			slog.String("request_id", requestID),
			slog.Int("summary_words", summaryWords),
			slog.Int("max_length", maxLength),
			slog.Int("excess", summaryWords-maxLength))
	}

	c.metricsRecorder.RecordLength(summaryWords)
	c.metricsRecorder.RecordDuration(duration)
	c.metricsRecorder.RecordCompliance(withinBudget)
	if !withinBudget {
		c.metricsRecorder.RecordBudgetExceeded()
	}

	return summary, nil
}

// newLimiter builds a per-minute rate limiter, or nil when unthrottled.
func newLimiter(requestsPerMinute int) *rate.Limiter {
	if requestsPerMinute <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1)
}

package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"podcast-digest/internal/resilience/circuitbreaker"
	"podcast-digest/internal/resilience/retry"
	"podcast-digest/internal/utils/text"
)

// LoadOpenAIConfig loads OpenAI adapter configuration from environment variables.
// Returns an error for malformed rate-limit values (fail-closed behavior).
func LoadOpenAIConfig() (*Config, error) {
	rpm, err := loadRateLimit()
	if err != nil {
		return nil, err
	}
	config := &Config{
		Model:             openai.GPT4oMini,
		MaxTokens:         defaultMaxTokens,
		Timeout:           defaultTimeout,
		RequestsPerMinute: rpm,
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid openai summarizer config: %w", err)
	}
	return config, nil
}

// OpenAI implements the reduction engine's Oracle contract using OpenAI's
// chat completion API with temperature zero for deterministic decoding.
type OpenAI struct {
	client          *openai.Client
	circuitBreaker  *circuitbreaker.CircuitBreaker
	retryConfig     retry.Config
	limiter         *rate.Limiter
	config          *Config
	metricsRecorder OracleMetricsRecorder
}

// NewOpenAI creates a new OpenAI oracle adapter with the given API key.
func NewOpenAI(apiKey string) (*OpenAI, error) {
	config, err := LoadOpenAIConfig()
	if err != nil {
		return nil, err
	}

	slog.Info("Initialized OpenAI oracle adapter",
		slog.String("model", config.Model),
		slog.Int("max_tokens", config.MaxTokens),
		slog.Int("requests_per_minute", config.RequestsPerMinute))

	return &OpenAI{
		client:          openai.NewClient(apiKey),
		circuitBreaker:  circuitbreaker.New(circuitbreaker.OpenAIAPIConfig()),
		retryConfig:     retry.AIAPIConfig(),
		limiter:         newLimiter(config.RequestsPerMinute),
		config:          config,
		metricsRecorder: NewPrometheusOracleMetrics(),
	}, nil
}

// Summarize generates a summary of the given text within the word budget.
func (o *OpenAI) Summarize(ctx context.Context, input string, maxLength, minLength int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.config.Timeout)
	defer cancel()

	var result string

	retryErr := retry.WithBackoff(ctx, o.retryConfig, func() error {
		cbResult, err := o.circuitBreaker.Execute(func() (interface{}, error) {
			return o.doSummarize(ctx, input, maxLength, minLength)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("openai api circuit breaker open, request rejected",
					slog.String("service", "openai-api"),
					slog.String("state", o.circuitBreaker.State().String()))
				return fmt.Errorf("openai api unavailable: circuit breaker open")
			}
			return err
		}

		result = cbResult.(string)
		return nil
	})

	if retryErr != nil {
		return "", fmt.Errorf("openai summarize failed after retries: %w", retryErr)
	}

	return result, nil
}

// doSummarize performs the actual API call without retry or circuit breaker.
func (o *OpenAI) doSummarize(ctx context.Context, input string, maxLength, minLength int) (string, error) {
	requestID := uuid.New().String()

	if o.limiter != nil {
		if err := o.limiter.Wait(ctx); err != nil {
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

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.config.Model,
		MaxTokens:   o.config.MaxTokens,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "Oracle call failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		slog.ErrorContext(ctx, "OpenAI API returned no choices",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration))
		return "", fmt.Errorf("openai api returned no choices")
	}

	summary := resp.Choices[0].Message.Content
	summaryWords := text.CountWords(summary)
	withinBudget := summaryWords <= maxLength

	slog.InfoContext(ctx, "Oracle call completed",
		slog.String("request_id", requestID),
		slog.Int("summary_words", summaryWords),
		slog.Int("max_length", maxLength),
		slog.Bool("within_budget", withinBudget),
		slog.Duration("duration", duration))

	o.metricsRecorder.RecordLength(summaryWords)
	o.metricsRecorder.RecordDuration(duration)
	o.metricsRecorder.RecordCompliance(withinBudget)
	if !withinBudget {
		o.metricsRecorder.RecordBudgetExceeded()
	}

	return summary, nil
}

package ner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"podcast-digest/internal/domain/entity"
	"podcast-digest/internal/resilience/circuitbreaker"
	"podcast-digest/internal/resilience/retry"
)

const (
	defaultModel   = openai.GPT4oMini
	defaultTimeout = 60 * time.Second

	extractPrompt = `Extract the named entities from the text below. Respond with a JSON array only, no preamble. Each element must have the keys "label" (entity type such as PERSON, ORG, GPE, DATE), "text" (the entity as written), "start" and "end" (character offsets into the input).

%s`
)

// OpenAI implements Extractor using OpenAI's chat completion API with
// temperature zero.
type OpenAI struct {
	client         *openai.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	model          string
	timeout        time.Duration
}

// NewOpenAI creates an OpenAI-backed entity extractor.
func NewOpenAI(apiKey string) *OpenAI {
	slog.Info("Initialized OpenAI entity extractor",
		slog.String("model", defaultModel))

	return &OpenAI{
		client:         openai.NewClient(apiKey),
		circuitBreaker: circuitbreaker.New(circuitbreaker.OpenAIAPIConfig()),
		retryConfig:    retry.AIAPIConfig(),
		model:          defaultModel,
		timeout:        defaultTimeout,
	}
}

// Extract returns the named entities found in input.
func (o *OpenAI) Extract(ctx context.Context, input string) ([]entity.Annotation, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	var result []entity.Annotation

	retryErr := retry.WithBackoff(ctx, o.retryConfig, func() error {
		cbResult, err := o.circuitBreaker.Execute(func() (interface{}, error) {
			return o.doExtract(ctx, input)
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

		result = cbResult.([]entity.Annotation)
		return nil
	})

	if retryErr != nil {
		return nil, fmt.Errorf("entity extraction failed after retries: %w", retryErr)
	}

	return result, nil
}

func (o *OpenAI) doExtract(ctx context.Context, input string) ([]entity.Annotation, error) {
	requestID := uuid.New().String()

	slog.InfoContext(ctx, "Starting entity extraction",
		slog.String("request_id", requestID),
		slog.Int("input_runes", len([]rune(input))))

	start := time.Now()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(extractPrompt, input)},
		},
	})

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "Entity extraction failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai api returned no choices")
	}

	annotations, err := parseAnnotations(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("parse entity response: %w", err)
	}

	slog.InfoContext(ctx, "Entity extraction completed",
		slog.String("request_id", requestID),
		slog.Int("entities", len(annotations)),
		slog.Duration("duration", duration))

	return annotations, nil
}

// parseAnnotations decodes the model's JSON array, tolerating a markdown
// code fence around it.
func parseAnnotations(content string) ([]entity.Annotation, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var raw []struct {
		Label string `json:"label"`
		Text  string `json:"text"`
		Start int    `json:"start"`
		End   int    `json:"end"`
	}
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, err
	}

	annotations := make([]entity.Annotation, 0, len(raw))
	for _, r := range raw {
		if r.Label == "" || r.Text == "" {
			continue
		}
		annotations = append(annotations, entity.Annotation{
			Label: r.Label,
			Text:  r.Text,
			Start: r.Start,
			End:   r.End,
		})
	}
	return annotations, nil
}

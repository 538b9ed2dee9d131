package transcriber

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"podcast-digest/internal/resilience/circuitbreaker"
	"podcast-digest/internal/resilience/retry"
)

// Whisper uploads audio to OpenAI's Whisper API and returns the verbose
// response's timestamped segments.
type Whisper struct {
	client         *openai.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	timeout        time.Duration
}

// NewWhisper creates a Whisper API transcriber. The timeout covers the
// whole upload and transcription of one file.
func NewWhisper(apiKey string) *Whisper {
	slog.Info("Initialized Whisper transcriber",
		slog.String("model", openai.Whisper1))

	return &Whisper{
		client:         openai.NewClient(apiKey),
		circuitBreaker: circuitbreaker.New(circuitbreaker.WhisperAPIConfig()),
		retryConfig:    retry.TranscriptionConfig(),
		timeout:        10 * time.Minute,
	}
}

// Transcribe converts one audio file into timestamped segments.
func (w *Whisper) Transcribe(ctx context.Context, audioPath string) ([]Segment, error) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	var result []Segment

	retryErr := retry.WithBackoff(ctx, w.retryConfig, func() error {
		cbResult, err := w.circuitBreaker.Execute(func() (interface{}, error) {
			return w.doTranscribe(ctx, audioPath)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("whisper api circuit breaker open, request rejected",
					slog.String("service", "whisper-api"),
					slog.String("state", w.circuitBreaker.State().String()))
				return fmt.Errorf("whisper api unavailable: circuit breaker open")
			}
			return err
		}

		result = cbResult.([]Segment)
		return nil
	})

	if retryErr != nil {
		return nil, fmt.Errorf("transcription failed after retries: %w", retryErr)
	}

	return result, nil
}

func (w *Whisper) doTranscribe(ctx context.Context, audioPath string) ([]Segment, error) {
	requestID := uuid.New().String()

	slog.InfoContext(ctx, "Starting transcription",
		slog.String("request_id", requestID),
		slog.String("file", audioPath))

	start := time.Now()

	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: audioPath,
		Format:   openai.AudioResponseFormatVerboseJSON,
	})

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "Transcription failed",
			slog.String("request_id", requestID),
			slog.String("file", audioPath),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("whisper api error: %w", err)
	}

	segments := make([]Segment, 0, len(resp.Segments))
	for _, s := range resp.Segments {
		segments = append(segments, Segment{Start: s.Start, End: s.End, Text: s.Text})
	}

	slog.InfoContext(ctx, "Transcription completed",
		slog.String("request_id", requestID),
		slog.String("file", audioPath),
		slog.Int("segments", len(segments)),
		slog.Float64("audio_seconds", resp.Duration),
		slog.Duration("duration", duration))

	return segments, nil
}

// Package reduce implements hierarchical, length-adaptive text reduction.
// Arbitrarily long documents are partitioned into bounded chunks, each chunk
// is summarized through an injected oracle under a computed word budget, and
// the combined intermediate summaries are reduced again until they fit within
// a single oracle call.
package reduce

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"podcast-digest/internal/observability/tracing"
	"podcast-digest/internal/utils/text"
)

// Oracle is the external summarization collaborator. Given a text and a
// length budget in words it returns one summary string.
//
// Implementations must use deterministic decoding so that repeated calls on
// identical input and identical budgets are reproducible; the engine relies
// on this for idempotent pipeline reruns but does not enforce it. The engine
// never calls Summarize with empty or whitespace-only text.
type Oracle interface {
	Summarize(ctx context.Context, input string, maxLength, minLength int) (string, error)
}

// Config holds the size knobs for a reduction. All lengths follow the
// conventions of the original pipeline: ChunkSize is measured in runes,
// every other field in whitespace-delimited words.
type Config struct {
	// ChunkSize is the maximum chunk length in runes. Default 1024.
	ChunkSize int

	// DefaultMaxLength caps the word budget of recursive reduction calls.
	// Default 500.
	DefaultMaxLength int

	// IntermediateMaxLength caps the word budget of the unconditional first
	// pass performed by TwoPass. Default 500.
	IntermediateMaxLength int

	// FinalMaxLength caps the word budget of the convergence phase that
	// TwoPass delegates to. Default 500.
	FinalMaxLength int

	// MinLength is the word budget floor for every oracle call. Default 50.
	MinLength int

	// MaxDepth bounds the recursion. Zero derives a bound from the initial
	// document length (see depthBound).
	MaxDepth int

	// Workers bounds concurrent per-chunk oracle calls within one level.
	// Values below 1 mean sequential, which matches the original pipeline.
	Workers int
}

// DefaultConfig returns the knob values of the original pipeline.
func DefaultConfig() Config {
	return Config{
		ChunkSize:             1024,
		DefaultMaxLength:      500,
		IntermediateMaxLength: 500,
		FinalMaxLength:        500,
		MinLength:             50,
		Workers:               1,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.ChunkSize <= 0 {
		c.ChunkSize = d.ChunkSize
	}
	if c.DefaultMaxLength <= 0 {
		c.DefaultMaxLength = d.DefaultMaxLength
	}
	if c.IntermediateMaxLength <= 0 {
		c.IntermediateMaxLength = d.IntermediateMaxLength
	}
	if c.FinalMaxLength <= 0 {
		c.FinalMaxLength = d.FinalMaxLength
	}
	if c.MinLength <= 0 {
		c.MinLength = d.MinLength
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	return c
}

// Engine reduces documents to bounded-length summaries. One long-lived oracle
// instance is injected at construction; the engine itself holds no mutable
// state across calls and is safe for concurrent use.
type Engine struct {
	oracle Oracle
	cfg    Config
	logger *slog.Logger
}

// NewEngine creates a reduction engine around the given oracle.
// Zero-valued config fields fall back to DefaultConfig values.
func NewEngine(oracle Oracle, cfg Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		oracle: oracle,
		cfg:    cfg.withDefaults(),
		logger: logger,
	}
}

// Reduce shrinks a document to a single summary, recursing until the combined
// intermediate summaries fit within one chunk. Empty or whitespace-only input
// yields the NoContent sentinel without an oracle call.
//
// Recursion terminates because oracle outputs are bounded above by
// DefaultMaxLength words per chunk; should output ever fail to shrink below
// the chunk size, the depth bound trips and ErrDidNotConverge is returned.
func (e *Engine) Reduce(ctx context.Context, document string) (string, error) {
	input := strings.TrimSpace(document)
	if input == "" {
		return NoContent, nil
	}

	maxDepth := e.cfg.MaxDepth
	if maxDepth <= 0 {
		maxDepth = depthBound(text.CountRunes(input), e.cfg.ChunkSize)
	}
	return e.reduce(ctx, input, e.cfg.DefaultMaxLength, 0, maxDepth)
}

// TwoPass is the top-level driver: one unconditional chunk-and-summarize pass
// with the intermediate budget, then a delegation to Reduce's recursion for
// final convergence under the final budget.
//
// Unlike Reduce, short input is not special-cased: text that already fits in
// one chunk is still summarized twice. The double pass is deliberate and
// matches the original pipeline.
func (e *Engine) TwoPass(ctx context.Context, document string) (string, error) {
	input := strings.TrimSpace(document)
	if input == "" {
		return NoContent, nil
	}

	ctx, span := tracing.GetTracer().Start(ctx, "reduce.two_pass")
	defer span.End()

	chunks := Split(input, e.cfg.ChunkSize)
	summaries, err := e.summarizeChunks(ctx, chunks, e.cfg.IntermediateMaxLength)
	if err != nil {
		return "", err
	}
	if len(summaries) == 0 {
		return NoContent, nil
	}
	combined := strings.Join(summaries, " ")

	e.logger.Debug("intermediate pass complete",
		slog.Int("chunks", len(chunks)),
		slog.Int("combined_runes", text.CountRunes(combined)))

	maxDepth := e.cfg.MaxDepth
	if maxDepth <= 0 {
		maxDepth = depthBound(text.CountRunes(combined), e.cfg.ChunkSize)
	}
	return e.reduce(ctx, combined, e.cfg.FinalMaxLength, 0, maxDepth)
}

// reduce is the recursive core. defaultMax is the word budget ceiling for
// this and all deeper levels; depth is threaded explicitly so the bound check
// does not depend on call-stack inspection.
func (e *Engine) reduce(ctx context.Context, input string, defaultMax, depth, maxDepth int) (string, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "reduce.level")
	defer span.End()
	span.SetAttributes(
		attribute.Int("reduce.depth", depth),
		attribute.Int("reduce.input_runes", text.CountRunes(input)),
	)

	input = strings.TrimSpace(input)
	if input == "" {
		return NoContent, nil
	}

	maxLength := PlanMaxLength(input, defaultMax, e.cfg.MinLength)

	// Base case: one oracle call on the unmodified text.
	if fits(input, e.cfg.ChunkSize) {
		return e.oracle.Summarize(ctx, input, maxLength, e.cfg.MinLength)
	}

	chunks := Split(input, e.cfg.ChunkSize)
	span.SetAttributes(attribute.Int("reduce.chunks", len(chunks)))

	summaries, err := e.summarizeChunks(ctx, chunks, defaultMax)
	if err != nil {
		return "", err
	}
	combined := strings.Join(summaries, " ")

	e.logger.Debug("reduction level complete",
		slog.Int("depth", depth),
		slog.Int("chunks", len(chunks)),
		slog.Int("combined_runes", text.CountRunes(combined)))

	if !fits(combined, e.cfg.ChunkSize) {
		if depth+1 > maxDepth {
			return "", fmt.Errorf("depth %d exceeds bound %d: %w", depth+1, maxDepth, ErrDidNotConverge)
		}
		return e.reduce(ctx, combined, defaultMax, depth+1, maxDepth)
	}

	// Final pass on the combined summaries.
	finalMax := PlanMaxLength(combined, defaultMax, e.cfg.MinLength)
	return e.oracle.Summarize(ctx, combined, finalMax, e.cfg.MinLength)
}

// summarizeChunks summarizes every chunk under its own planned budget and
// returns the summaries in chunk order. Chunks are independent, so calls fan
// out through a bounded errgroup; with Workers=1 the behavior is strictly
// sequential. The first oracle error cancels outstanding calls and aborts the
// whole reduction.
func (e *Engine) summarizeChunks(ctx context.Context, chunks []string, defaultMax int) ([]string, error) {
	if len(chunks) == 0 {
		return nil, nil
	}

	summaries := make([]string, len(chunks))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(e.cfg.Workers)

	for i, chunk := range chunks {
		eg.Go(func() error {
			maxLength := PlanMaxLength(chunk, defaultMax, e.cfg.MinLength)
			summary, err := e.oracle.Summarize(egCtx, chunk, maxLength, e.cfg.MinLength)
			if err != nil {
				return fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
			}
			summaries[i] = summary
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

// depthBound derives the recursion limit from the initial document size:
// proportional to ceil(log2(runes/chunkSize)) with a fixed floor, which is
// generous for any oracle that actually compresses its input.
func depthBound(runes, chunkSize int) int {
	const floor = 4
	if runes <= chunkSize {
		return floor
	}
	levels := int(math.Ceil(math.Log2(float64(runes) / float64(chunkSize))))
	return levels + floor
}

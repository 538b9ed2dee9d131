package config

import (
	"log/slog"

	"podcast-digest/internal/usecase/reduce"
)

// LoadReduceConfig builds the reduction engine configuration from
// environment variables, starting from the engine defaults. Out-of-range
// values fall back with a warning.
//
// Environment variables:
//   - REDUCE_CHUNK_SIZE: chunk size in runes (64-65536)
//   - REDUCE_MAX_LENGTH: default/intermediate/final word budget (10-10000)
//   - REDUCE_MIN_LENGTH: minimum summary length in words (1-1000)
//   - REDUCE_WORKERS: concurrent oracle calls per level (1-64)
func LoadReduceConfig() reduce.Config {
	cfg := reduce.DefaultConfig()

	chunk := LoadEnvInt("REDUCE_CHUNK_SIZE", cfg.ChunkSize, func(v int) error {
		return ValidateIntRange(v, 64, 65536)
	})
	logWarnings("REDUCE_CHUNK_SIZE", chunk)
	cfg.ChunkSize = chunk.Value.(int)

	maxLen := LoadEnvInt("REDUCE_MAX_LENGTH", cfg.DefaultMaxLength, func(v int) error {
		return ValidateIntRange(v, 10, 10000)
	})
	logWarnings("REDUCE_MAX_LENGTH", maxLen)
	cfg.DefaultMaxLength = maxLen.Value.(int)
	cfg.IntermediateMaxLength = maxLen.Value.(int)
	cfg.FinalMaxLength = maxLen.Value.(int)

	minLen := LoadEnvInt("REDUCE_MIN_LENGTH", cfg.MinLength, func(v int) error {
		return ValidateIntRange(v, 1, 1000)
	})
	logWarnings("REDUCE_MIN_LENGTH", minLen)
	cfg.MinLength = minLen.Value.(int)

	workers := LoadEnvInt("REDUCE_WORKERS", cfg.Workers, func(v int) error {
		return ValidateIntRange(v, 1, 64)
	})
	logWarnings("REDUCE_WORKERS", workers)
	cfg.Workers = workers.Value.(int)

	return cfg
}

func logWarnings(envKey string, result ConfigLoadResult) {
	for _, warning := range result.Warnings {
		slog.Warn("Configuration fallback",
			slog.String("key", envKey),
			slog.String("warning", warning))
	}
}

// Package worker holds the pieces of the scheduled pipeline runner: its
// configuration, health endpoints, Prometheus metrics and the folder watcher
// that triggers runs when new audio lands.
package worker

import (
	"fmt"
	"log/slog"
	"time"

	"podcast-digest/internal/pkg/config"
)

// Config holds the configuration for the pipeline worker.
type Config struct {
	// CronSchedule is the cron expression for scheduled pipeline runs.
	// Default: "30 5 * * *" (every day at 5:30).
	CronSchedule string

	// Timezone is the IANA timezone name for cron scheduling.
	// Default: "UTC".
	Timezone string

	// AudioFolder is the folder the pipeline processes and the watcher
	// observes for new .mp3 files.
	AudioFolder string

	// RunTimeout is the maximum duration of one full pipeline run.
	// Default: 2 hours; a long backlog of episodes takes a while.
	RunTimeout time.Duration

	// DebounceDelay is how long the watcher waits after the last filesystem
	// event before triggering a run, so a file still being copied is not
	// picked up half-written. Default: 30 seconds.
	DebounceDelay time.Duration

	// HealthPort is the port for the health check HTTP server.
	// Default: 9091.
	HealthPort int

	// MetricsPort is the port for the Prometheus metrics HTTP server.
	// Default: 9090.
	MetricsPort int
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() Config {
	return Config{
		CronSchedule:  "30 5 * * *",
		Timezone:      "UTC",
		AudioFolder:   "episodes",
		RunTimeout:    2 * time.Hour,
		DebounceDelay: 30 * time.Second,
		HealthPort:    9091,
		MetricsPort:   9090,
	}
}

// Validate checks the configuration, collecting every failure rather than
// stopping at the first.
func (c *Config) Validate() error {
	var errs []error

	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		errs = append(errs, fmt.Errorf("cron schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if c.AudioFolder == "" {
		errs = append(errs, fmt.Errorf("audio folder: cannot be empty"))
	}
	if err := config.ValidatePositiveDuration(c.RunTimeout); err != nil {
		errs = append(errs, fmt.Errorf("run timeout: %w", err))
	}
	if err := config.ValidatePositiveDuration(c.DebounceDelay); err != nil {
		errs = append(errs, fmt.Errorf("debounce delay: %w", err))
	}
	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}
	if err := config.ValidateIntRange(c.MetricsPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("metrics port: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}
	return nil
}

// LoadConfigFromEnv loads worker configuration from environment variables
// with validation and fallback to defaults on failure (fail-open: a bad
// value never prevents the worker from starting).
//
// Environment variables:
//   - PIPELINE_CRON: cron expression (default "30 5 * * *")
//   - PIPELINE_TZ: IANA timezone name (default "UTC")
//   - AUDIO_FOLDER: folder to process (default "episodes")
//   - PIPELINE_RUN_TIMEOUT: duration string (default "2h")
//   - PIPELINE_DEBOUNCE: duration string (default "30s")
//   - HEALTH_PORT: integer 1024-65535 (default 9091)
//   - METRICS_PORT: integer 1024-65535 (default 9090)
func LoadConfigFromEnv(logger *slog.Logger, metrics *Metrics) (*Config, error) {
	cfg := DefaultConfig()
	fallbackApplied := false

	apply := func(field string, result config.ConfigLoadResult) {
		if !result.FallbackApplied {
			return
		}
		fallbackApplied = true
		metrics.RecordValidationError(field)
		metrics.RecordFallback(field)
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", field),
				slog.String("warning", warning))
		}
	}

	result := config.LoadEnvWithFallback("PIPELINE_CRON", cfg.CronSchedule, config.ValidateCronSchedule)
	cfg.CronSchedule = result.Value.(string)
	apply("cron_schedule", result)

	result = config.LoadEnvWithFallback("PIPELINE_TZ", cfg.Timezone, config.ValidateTimezone)
	cfg.Timezone = result.Value.(string)
	apply("timezone", result)

	cfg.AudioFolder = config.LoadEnvString("AUDIO_FOLDER", cfg.AudioFolder)

	result = config.LoadEnvDuration("PIPELINE_RUN_TIMEOUT", cfg.RunTimeout, config.ValidatePositiveDuration)
	cfg.RunTimeout = result.Value.(time.Duration)
	apply("run_timeout", result)

	result = config.LoadEnvDuration("PIPELINE_DEBOUNCE", cfg.DebounceDelay, config.ValidatePositiveDuration)
	cfg.DebounceDelay = result.Value.(time.Duration)
	apply("debounce_delay", result)

	result = config.LoadEnvInt("HEALTH_PORT", cfg.HealthPort, func(v int) error {
		return config.ValidateIntRange(v, 1024, 65535)
	})
	cfg.HealthPort = result.Value.(int)
	apply("health_port", result)

	result = config.LoadEnvInt("METRICS_PORT", cfg.MetricsPort, func(v int) error {
		return config.ValidateIntRange(v, 1024, 65535)
	})
	cfg.MetricsPort = result.Value.(int)
	apply("metrics_port", result)

	metrics.SetFallbackActive(fallbackApplied)
	metrics.RecordLoadTimestamp()

	return &cfg, nil
}

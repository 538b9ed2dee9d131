// Package main provides the scheduled pipeline worker. It runs the
// transcribe, summarize, annotate and ingest stages over the audio folder on
// a cron schedule, and additionally whenever new audio files appear.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	pgRepo "podcast-digest/internal/infra/adapter/persistence/postgres"
	sqliteRepo "podcast-digest/internal/infra/adapter/persistence/sqlite"
	"podcast-digest/internal/infra/db"
	"podcast-digest/internal/infra/ner"
	"podcast-digest/internal/infra/summarizer"
	"podcast-digest/internal/infra/transcriber"
	workerPkg "podcast-digest/internal/infra/worker"
	"podcast-digest/internal/observability/logging"
	"podcast-digest/internal/observability/tracing"
	"podcast-digest/internal/pkg/config"
	"podcast-digest/internal/repository"
	"podcast-digest/internal/usecase/annotate"
	"podcast-digest/internal/usecase/ingest"
	stage "podcast-digest/internal/usecase/pipeline"
	"podcast-digest/internal/usecase/reduce"
	"podcast-digest/internal/usecase/summarize"
	"podcast-digest/internal/usecase/transcribe"
)

// pipeline bundles the four folder stages the worker runs in order.
type pipeline struct {
	transcribe *transcribe.Service
	summarize  *summarize.Service
	annotate   *annotate.Service
	ingest     *ingest.Service

	folder  string
	timeout time.Duration
	metrics *workerPkg.Metrics
	logger  *slog.Logger
	running atomic.Bool
}

func main() {
	logger := initLogger()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	metrics := workerPkg.NewMetrics()
	workerConfig, err := workerPkg.LoadConfigFromEnv(logger, metrics)
	if err != nil {
		logger.Error("failed to load worker configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", workerConfig.CronSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.String("audio_folder", workerConfig.AudioFolder),
		slog.Duration("run_timeout", workerConfig.RunTimeout),
		slog.Int("health_port", workerConfig.HealthPort),
		slog.Int("metrics_port", workerConfig.MetricsPort))

	shutdownTracing, err := tracing.Setup(ctx, "podcast-digest-worker")
	if err != nil {
		logger.Error("failed to set up tracing", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("tracing shutdown failed", slog.Any("error", err))
		}
	}()

	database, repo, err := openRepository()
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()
	if err := db.Migrate(ctx, database); err != nil {
		logger.Error("migration failed", slog.Any("error", err))
		os.Exit(1)
	}

	pipe, err := setupPipeline(logger, repo, workerConfig, metrics)
	if err != nil {
		logger.Error("failed to set up pipeline", slog.Any("error", err))
		os.Exit(1)
	}

	startMetricsServer(ctx, logger, workerConfig.MetricsPort)

	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()

	watcher, err := workerPkg.NewWatcher(workerConfig.AudioFolder, workerConfig.DebounceDelay,
		func() { pipe.run("watch") }, logger)
	if err != nil {
		logger.Error("failed to create folder watcher", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() { _ = watcher.Stop() }()
	go func() {
		if err := watcher.Start(ctx); err != nil && ctx.Err() == nil {
			logger.Error("folder watcher failed", slog.Any("error", err))
		}
	}()

	startCron(ctx, logger, pipe, workerConfig, healthServer)
}

// setupPipeline builds the stage services with their external adapters.
func setupPipeline(logger *slog.Logger, repo repository.TranscriptRepository, cfg *workerPkg.Config, metrics *workerPkg.Metrics) (*pipeline, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required for transcription and entity extraction")
	}

	oracle, err := summarizer.NewFromEnv()
	if err != nil {
		return nil, fmt.Errorf("create summarizer: %w", err)
	}
	logger = logging.WithComponent(logger, "pipeline")
	engine := reduce.NewEngine(oracle, config.LoadReduceConfig(), logger)

	return &pipeline{
		transcribe: &transcribe.Service{Transcriber: transcriber.NewWhisper(apiKey)},
		summarize:  &summarize.Service{Engine: engine},
		annotate:   &annotate.Service{Extractor: ner.NewOpenAI(apiKey)},
		ingest:     &ingest.Service{Repo: repo},
		folder:     cfg.AudioFolder,
		timeout:    cfg.RunTimeout,
		metrics:    metrics,
		logger:     logger,
	}, nil
}

// run executes one full pipeline pass. Overlapping triggers are dropped: if
// a run is already in progress, the new trigger is logged and ignored.
func (p *pipeline) run(trigger string) {
	if !p.running.CompareAndSwap(false, true) {
		p.logger.Info("pipeline run already in progress, skipping trigger",
			slog.String("trigger", trigger))
		return
	}
	defer p.running.Store(false)

	startTime := time.Now()
	p.metrics.RecordRun(trigger, "started")
	p.logger.Info("pipeline run started", slog.String("trigger", trigger))

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	failed := 0
	stages := []struct {
		name string
		run  func(context.Context, string) (stage.Result, error)
	}{
		{"transcribe", p.transcribe.ProcessFolder},
		{"summarize", p.summarize.ProcessFolder},
		{"annotate", p.annotate.ProcessFolder},
		{"ingest", p.ingest.ProcessFolder},
	}
	for _, s := range stages {
		result, err := s.run(ctx, p.folder)
		if err != nil {
			p.logger.Error("pipeline stage failed",
				slog.String("stage", s.name),
				slog.Any("error", err))
			failed++
			continue
		}
		p.metrics.RecordFilesProcessed(s.name, result.Processed)
		failed += result.Failed
	}

	duration := time.Since(startTime)
	p.metrics.RecordRunDuration(duration.Seconds())
	if failed > 0 {
		p.metrics.RecordRun(trigger, "failure")
	} else {
		p.metrics.RecordRun(trigger, "success")
		p.metrics.RecordLastSuccess()
	}

	p.logger.Info("pipeline run finished",
		slog.String("trigger", trigger),
		slog.Int("failures", failed),
		slog.Duration("duration", duration))
}

// openRepository opens postgres when DATABASE_URL is set, sqlite otherwise.
func openRepository() (*sql.DB, repository.TranscriptRepository, error) {
	if os.Getenv("DATABASE_URL") != "" {
		database, err := db.OpenPostgres()
		if err != nil {
			return nil, nil, err
		}
		return database, pgRepo.NewTranscriptRepo(database), nil
	}

	path := os.Getenv("SQLITE_PATH")
	if path == "" {
		path = "podcast_data.db"
	}
	database, err := db.OpenSQLite(path)
	if err != nil {
		return nil, nil, err
	}
	return database, sqliteRepo.NewTranscriptRepo(database), nil
}

// startCron schedules the pipeline and blocks until shutdown.
func startCron(ctx context.Context, logger *slog.Logger, pipe *pipeline, cfg *workerPkg.Config, healthServer *workerPkg.HealthServer) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.CronSchedule, func() { pipe.run("cron") })
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	healthServer.SetReady(true)
	logger.Info("worker started",
		slog.String("schedule", cfg.CronSchedule),
		slog.String("timezone", cfg.Timezone))

	<-ctx.Done()
	logger.Info("shutdown signal received")
	cronCtx := c.Stop()
	<-cronCtx.Done()
	logger.Info("worker stopped")
}

// initLogger initializes the process-wide structured logger.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

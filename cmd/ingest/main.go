// Package main provides the database ingestion CLI.
// Usage: podcast-ingest --folder /path/to/episodes [--list]
//
// Segments go to postgres when DATABASE_URL is set, otherwise to the sqlite
// database at SQLITE_PATH (default podcast_data.db).
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"

	pgRepo "podcast-digest/internal/infra/adapter/persistence/postgres"
	sqliteRepo "podcast-digest/internal/infra/adapter/persistence/sqlite"
	"podcast-digest/internal/infra/db"
	"podcast-digest/internal/observability/logging"
	"podcast-digest/internal/repository"
	"podcast-digest/internal/usecase/ingest"
)

func main() {
	var (
		folder       string
		listEpisodes bool
	)
	flag.StringVar(&folder, "folder", "", "Folder containing .txt transcripts (default: AUDIO_FOLDER env)")
	flag.BoolVar(&listEpisodes, "list", false, "List stored episodes instead of ingesting")
	flag.Parse()

	logger := initLogger()

	database, repo, err := openRepository()
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	ctx := context.Background()
	if err := db.Migrate(ctx, database); err != nil {
		logger.Error("migration failed", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if listEpisodes {
		printEpisodes(ctx, repo)
		return
	}

	if folder == "" {
		folder = os.Getenv("AUDIO_FOLDER")
	}
	if folder == "" {
		fmt.Fprintln(os.Stderr, "Error: no folder given")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage: podcast-ingest --folder /path/to/episodes")
		os.Exit(1)
	}

	svc := &ingest.Service{Repo: repo}
	result, err := svc.ProcessFolder(ctx, folder)
	if err != nil {
		logger.Error("ingest run failed", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Ingested %d, failed %d\n", result.Processed, result.Failed)
	if result.Failed > 0 {
		os.Exit(1)
	}
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

func printEpisodes(ctx context.Context, repo repository.TranscriptRepository) {
	stats, err := repo.ListEpisodes(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(stats) == 0 {
		fmt.Println("No episodes stored.")
		return
	}
	for _, s := range stats {
		fmt.Printf("%s\t%d segments\t%.1fs spoken\n", s.EpisodeID, s.Segments, s.Duration)
	}
}

// initLogger initializes the process-wide structured logger.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

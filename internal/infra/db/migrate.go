package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrate creates the transcripts table if it does not exist. The statement is
// portable between sqlite and postgres, so both backends share it.
func Migrate(ctx context.Context, database *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS transcripts (
    episode_id TEXT NOT NULL,
    start_time REAL NOT NULL,
    end_time   REAL NOT NULL,
    text       TEXT NOT NULL,
    themes     TEXT NOT NULL DEFAULT ''
)
`
	if _, err := database.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create transcripts table: %w", err)
	}
	return nil
}

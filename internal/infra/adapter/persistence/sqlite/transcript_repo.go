// Package sqlite provides the sqlite implementation of the transcript
// repository, suitable for single-machine pipeline runs.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"podcast-digest/internal/domain/entity"
	"podcast-digest/internal/repository"
)

// TranscriptRepo implements repository.TranscriptRepository using sqlite.
type TranscriptRepo struct{ db *sql.DB }

// NewTranscriptRepo creates a new sqlite-backed transcript repository.
func NewTranscriptRepo(db *sql.DB) repository.TranscriptRepository {
	return &TranscriptRepo{db: db}
}

// InsertSegments stores all segments in one transaction so a failed ingest
// leaves no partial episode behind.
func (repo *TranscriptRepo) InsertSegments(ctx context.Context, segments []*entity.Segment) error {
	const query = `
INSERT INTO transcripts (episode_id, start_time, end_time, text, themes)
VALUES (?, ?, ?, ?, ?)
`

	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("InsertSegments: BeginTx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("InsertSegments: PrepareContext: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, segment := range segments {
		if err := segment.Validate(); err != nil {
			return fmt.Errorf("InsertSegments: %w", err)
		}
		if _, err := stmt.ExecContext(ctx,
			segment.EpisodeID, segment.Start, segment.End, segment.Text, segment.Themes); err != nil {
			return fmt.Errorf("InsertSegments: ExecContext: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("InsertSegments: Commit: %w", err)
	}
	return nil
}

// ListEpisodes returns per-episode segment counts and total spoken duration.
func (repo *TranscriptRepo) ListEpisodes(ctx context.Context) ([]repository.EpisodeStats, error) {
	const query = `
SELECT episode_id, COUNT(*), COALESCE(SUM(end_time - start_time), 0)
FROM transcripts
GROUP BY episode_id
ORDER BY episode_id
`

	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ListEpisodes: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	stats := make([]repository.EpisodeStats, 0, 16)
	for rows.Next() {
		var s repository.EpisodeStats
		if err := rows.Scan(&s.EpisodeID, &s.Segments, &s.Duration); err != nil {
			return nil, fmt.Errorf("ListEpisodes: Scan: %w", err)
		}
		stats = append(stats, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListEpisodes: rows.Err: %w", err)
	}
	return stats, nil
}

// SearchText finds segments containing the keyword, case-insensitive,
// ordered by episode and time.
func (repo *TranscriptRepo) SearchText(ctx context.Context, keyword string) ([]*entity.Segment, error) {
	const query = `
SELECT episode_id, start_time, end_time, text, themes
FROM transcripts
WHERE text LIKE '%' || ? || '%' COLLATE NOCASE
ORDER BY episode_id, start_time
`

	rows, err := repo.db.QueryContext(ctx, query, keyword)
	if err != nil {
		return nil, fmt.Errorf("SearchText: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	segments := make([]*entity.Segment, 0, 32)
	for rows.Next() {
		var segment entity.Segment
		if err := rows.Scan(&segment.EpisodeID, &segment.Start, &segment.End,
			&segment.Text, &segment.Themes); err != nil {
			return nil, fmt.Errorf("SearchText: Scan: %w", err)
		}
		segments = append(segments, &segment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("SearchText: rows.Err: %w", err)
	}
	return segments, nil
}

// CountSegments returns the total number of stored segments.
func (repo *TranscriptRepo) CountSegments(ctx context.Context) (int64, error) {
	var count int64
	err := repo.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transcripts`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("CountSegments: QueryRowContext: %w", err)
	}
	return count, nil
}

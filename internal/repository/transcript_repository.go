package repository

import (
	"context"

	"podcast-digest/internal/domain/entity"
)

// EpisodeStats summarizes the stored segments of one episode.
type EpisodeStats struct {
	EpisodeID string
	Segments  int64
	Duration  float64
}

// TranscriptRepository stores and queries timestamped transcript segments.
type TranscriptRepository interface {
	// InsertSegments stores a batch of segments in one transaction.
	InsertSegments(ctx context.Context, segments []*entity.Segment) error
	// ListEpisodes returns per-episode segment counts and total spoken duration.
	ListEpisodes(ctx context.Context) ([]EpisodeStats, error)
	// SearchText finds segments whose text contains the keyword, case-insensitive.
	SearchText(ctx context.Context, keyword string) ([]*entity.Segment, error)
	// CountSegments returns the total number of stored segments.
	CountSegments(ctx context.Context) (int64, error)
}

// Package entity defines the core domain entities and validation logic for the
// application. It contains the fundamental business objects such as Segment and
// Annotation, along with their validation rules and domain-specific errors.
package entity

// Segment represents one timestamped piece of a transcribed episode.
// Start and End are offsets from the beginning of the episode in seconds.
type Segment struct {
	EpisodeID string
	Start     float64
	End       float64
	Text      string
	// Themes is free-form classification text attached after ingestion.
	// Empty at insert time.
	Themes string
}

// Validate checks the segment for structural problems before persistence.
func (s *Segment) Validate() error {
	if s.EpisodeID == "" {
		return &ValidationError{Field: "episode_id", Message: "must not be empty"}
	}
	if s.Start < 0 {
		return &ValidationError{Field: "start_time", Message: "must not be negative"}
	}
	if s.End < s.Start {
		return &ValidationError{Field: "end_time", Message: "must not precede start_time"}
	}
	return nil
}

// Annotation represents one named entity found in a cleaned transcript.
// Start and End are rune offsets into the cleaned text.
type Annotation struct {
	Label string
	Text  string
	Start int
	End   int
}

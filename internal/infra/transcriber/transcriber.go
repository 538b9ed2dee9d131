// Package transcriber converts podcast audio into timestamped transcript
// segments and renders them in the annotation file format the rest of the
// pipeline consumes.
package transcriber

import (
	"context"
	"fmt"
	"strings"
)

// Segment is one stretch of transcribed speech with its timing in seconds.
type Segment struct {
	Start float64
	End   float64
	Text  string
}

// Transcriber turns an audio file into timestamped segments.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) ([]Segment, error)
}

// FormatAnnotation renders segments as two-line records separated by blank
// lines:
//
//	Start: 0:00:00 - End: 0:00:12
//	spoken text
func FormatAnnotation(segments []Segment) string {
	var b strings.Builder
	for _, s := range segments {
		fmt.Fprintf(&b, "Start: %s - End: %s\n%s\n\n",
			formatClock(s.Start), formatClock(s.End), strings.TrimSpace(s.Text))
	}
	return b.String()
}

// formatClock renders seconds as H:MM:SS, truncating fractions.
func formatClock(seconds float64) string {
	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

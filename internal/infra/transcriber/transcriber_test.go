package transcriber

import "testing"

func TestFormatAnnotation(t *testing.T) {
	t.Parallel()

	segments := []Segment{
		{Start: 0, End: 12.8, Text: " Welcome back to the show. "},
		{Start: 12.8, End: 3725.5, Text: "Today we talk about tide pools."},
	}

	got := FormatAnnotation(segments)
	want := "Start: 0:00:00 - End: 0:00:12\nWelcome back to the show.\n\n" +
		"Start: 0:00:12 - End: 1:02:05\nToday we talk about tide pools.\n\n"
	if got != want {
		t.Errorf("FormatAnnotation = %q, want %q", got, want)
	}
}

func TestFormatAnnotation_Empty(t *testing.T) {
	t.Parallel()

	if got := FormatAnnotation(nil); got != "" {
		t.Errorf("FormatAnnotation(nil) = %q, want empty", got)
	}
}

func TestFormatClock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00:00"},
		{59.9, "0:00:59"},
		{60, "0:01:00"},
		{3600, "1:00:00"},
		{7325, "2:02:05"},
	}
	for _, tt := range tests {
		if got := formatClock(tt.seconds); got != tt.want {
			t.Errorf("formatClock(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

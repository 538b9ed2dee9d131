package reduce_test

import (
	"strings"
	"testing"

	"podcast-digest/internal/usecase/reduce"
)

func TestPlanMaxLength(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		defaultMax int
		minLength  int
		want       int
	}{
		{
			// Word count below the floor collapses to minLength.
			name:       "short text floors at min length",
			input:      "one two three",
			defaultMax: 500,
			minLength:  50,
			want:       50,
		},
		{
			name:       "word count between bounds wins",
			input:      strings.Repeat("word ", 120),
			defaultMax: 500,
			minLength:  50,
			want:       120,
		},
		{
			name:       "long text caps at default max",
			input:      strings.Repeat("word ", 800),
			defaultMax: 500,
			minLength:  50,
			want:       500,
		},
		{
			name:       "exactly min length",
			input:      strings.Repeat("w ", 50),
			defaultMax: 500,
			minLength:  50,
			want:       50,
		},
		{
			name:       "degenerate empty text collapses to min length",
			input:      "",
			defaultMax: 500,
			minLength:  50,
			want:       50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reduce.PlanMaxLength(tt.input, tt.defaultMax, tt.minLength)
			if got != tt.want {
				t.Errorf("PlanMaxLength() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPlanMaxLengthBoundsAlwaysHold(t *testing.T) {
	inputs := []string{"", "a", "a b c", strings.Repeat("x ", 49), strings.Repeat("x ", 51), strings.Repeat("x ", 10000)}
	for _, input := range inputs {
		got := reduce.PlanMaxLength(input, 500, 50)
		if got < 50 || got > 500 {
			t.Errorf("PlanMaxLength(%d words) = %d, outside [50, 500]", len(strings.Fields(input)), got)
		}
	}
}

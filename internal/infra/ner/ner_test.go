package ner

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"podcast-digest/internal/domain/entity"
)

func TestFormatAnnotations(t *testing.T) {
	t.Parallel()

	annotations := []entity.Annotation{
		{Label: "PERSON", Text: "Ada Lovelace", Start: 10, End: 22},
		{Label: "ORG", Text: "Acme, Inc.", Start: 40, End: 50},
	}

	got := FormatAnnotations(annotations)
	want := "PERSON,Ada Lovelace,10,22\nORG,Acme  Inc.,40,50\n"
	if got != want {
		t.Errorf("FormatAnnotations = %q, want %q", got, want)
	}
}

func TestFormatAnnotations_Empty(t *testing.T) {
	t.Parallel()

	if got := FormatAnnotations(nil); got != "" {
		t.Errorf("FormatAnnotations(nil) = %q, want empty", got)
	}
}

func TestParseAnnotations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    []entity.Annotation
		wantErr bool
	}{
		{
			name:    "plain array",
			content: `[{"label":"PERSON","text":"Grace Hopper","start":0,"end":12}]`,
			want:    []entity.Annotation{{Label: "PERSON", Text: "Grace Hopper", Start: 0, End: 12}},
		},
		{
			name: "fenced array",
			content: "```json\n" +
				`[{"label":"GPE","text":"Kyoto","start":5,"end":10}]` +
				"\n```",
			want: []entity.Annotation{{Label: "GPE", Text: "Kyoto", Start: 5, End: 10}},
		},
		{
			name:    "drops incomplete entries",
			content: `[{"label":"","text":"x","start":0,"end":1},{"label":"ORG","text":"NASA","start":2,"end":6}]`,
			want:    []entity.Annotation{{Label: "ORG", Text: "NASA", Start: 2, End: 6}},
		},
		{
			name:    "not json",
			content: "I could not find any entities.",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseAnnotations(tt.content)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseAnnotations err=%v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("parseAnnotations mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNoOpExtract(t *testing.T) {
	t.Parallel()

	got, err := NewNoOp().Extract(context.Background(), "anything at all")
	if err != nil {
		t.Fatalf("Extract err=%v", err)
	}
	if len(got) != 0 {
		t.Errorf("NoOp returned %d annotations, want 0", len(got))
	}
}

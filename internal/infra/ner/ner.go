// Package ner extracts named entities from transcript text through an
// external model and renders them in the annotation file format.
package ner

import (
	"context"
	"fmt"
	"strings"

	"podcast-digest/internal/domain/entity"
)

// Extractor finds named entities in a block of text.
type Extractor interface {
	Extract(ctx context.Context, input string) ([]entity.Annotation, error)
}

// FormatAnnotations renders annotations one per line as
// "LABEL,text,start,end". Commas inside the entity text are replaced with
// spaces so the line stays four fields.
func FormatAnnotations(annotations []entity.Annotation) string {
	var b strings.Builder
	for _, a := range annotations {
		text := strings.ReplaceAll(a.Text, ",", " ")
		fmt.Fprintf(&b, "%s,%s,%d,%d\n", a.Label, text, a.Start, a.End)
	}
	return b.String()
}

package ner

import (
	"context"

	"podcast-digest/internal/domain/entity"
)

// NoOp is an Extractor that finds nothing. Useful for development runs
// without API credentials.
type NoOp struct{}

// NewNoOp creates a no-op entity extractor.
func NewNoOp() *NoOp { return &NoOp{} }

// Extract always returns an empty annotation list.
func (n *NoOp) Extract(_ context.Context, _ string) ([]entity.Annotation, error) {
	return []entity.Annotation{}, nil
}

package service

import (
	"context"

	"github.com/askcse/deptbot-be/types"
)

// Generator produces an answer grounded in the supplied context passages.
// Implementations are opaque collaborators; the pipeline never inspects the
// generated text for grounding.
type Generator interface {
	Generate(ctx context.Context, query string, contextDocs []types.ScoredResult, includeSources bool) (*types.GenerateResult, error)
	Model() string
}

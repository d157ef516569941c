package database

import (
	"context"

	"github.com/askcse/deptbot-be/types"
)

// SearchHit is one nearest-neighbor result from the vector index,
// ordered by ascending distance.
type SearchHit struct {
	Content  string
	Metadata types.Metadata
	Distance float64
}

// VectorIndex is the nearest-neighbor provider behind retrieval. The index
// is append-mostly: queries run concurrently, ingestion is an administrative
// operation serialized by the implementation.
type VectorIndex interface {
	Upsert(ctx context.Context, doc *types.Document, embedding []float32) error
	BatchUpsert(ctx context.Context, docs []types.Document, embeddings [][]float32) error
	Query(ctx context.Context, embedding []float32, limit int) ([]SearchHit, error)
	Count(ctx context.Context) (int, error)
	Clear(ctx context.Context) error
}

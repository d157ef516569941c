package database

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/askcse/deptbot-be/types"
)

// MemoryStore is an in-memory VectorIndex using cosine distance. It backs
// tests and local development without a running Weaviate.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []memoryEntry
}

type memoryEntry struct {
	doc       types.Document
	embedding []float32
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Upsert(ctx context.Context, doc *types.Document, embedding []float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, memoryEntry{doc: *doc, embedding: embedding})
	return nil
}

func (s *MemoryStore) BatchUpsert(ctx context.Context, docs []types.Document, embeddings [][]float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range docs {
		var embedding []float32
		if embeddings != nil && i < len(embeddings) {
			embedding = embeddings[i]
		}
		s.entries = append(s.entries, memoryEntry{doc: docs[i], embedding: embedding})
	}
	return nil
}

func (s *MemoryStore) Query(ctx context.Context, embedding []float32, limit int) ([]SearchHit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hits := make([]SearchHit, 0, len(s.entries))
	for _, e := range s.entries {
		hits = append(hits, SearchHit{
			Content:  e.doc.Content,
			Metadata: e.doc.Metadata,
			Distance: 1 - cosineSimilarity(embedding, e.embedding),
		})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries), nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	return nil
}

// cosineSimilarity returns 0 when either vector has zero magnitude.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}
	return dot / denom
}

package service

import (
	"context"

	"github.com/askcse/deptbot-be/database"
	"github.com/askcse/deptbot-be/types"
)

// stubEmbedder returns a fixed vector unless overridden.
type stubEmbedder struct {
	embedFn      func(ctx context.Context, texts []string) ([][]float32, error)
	embedQueryFn func(ctx context.Context, query string, expand bool) (*types.EmbedQueryResult, error)
}

func (s *stubEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if s.embedFn != nil {
		return s.embedFn(ctx, texts)
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0, 0}
	}
	return out, nil
}

func (s *stubEmbedder) EmbedQuery(ctx context.Context, query string, expand bool) (*types.EmbedQueryResult, error) {
	if s.embedQueryFn != nil {
		return s.embedQueryFn(ctx, query, expand)
	}
	result := &types.EmbedQueryResult{
		Embedding:     []float32{1, 0, 0},
		OriginalQuery: query,
	}
	if expand {
		if expanded := ExpandQuery(query); expanded != query {
			result.ExpandedQuery = expanded
		}
	}
	return result, nil
}

// stubIndex records the last query limit and serves canned hits.
type stubIndex struct {
	hits      []database.SearchHit
	queryErr  error
	lastLimit int
	count     int
}

func (s *stubIndex) Upsert(ctx context.Context, doc *types.Document, embedding []float32) error {
	return nil
}

func (s *stubIndex) BatchUpsert(ctx context.Context, docs []types.Document, embeddings [][]float32) error {
	return nil
}

func (s *stubIndex) Query(ctx context.Context, embedding []float32, limit int) ([]database.SearchHit, error) {
	s.lastLimit = limit
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	if limit > 0 && len(s.hits) > limit {
		return s.hits[:limit], nil
	}
	return s.hits, nil
}

func (s *stubIndex) Count(ctx context.Context) (int, error) {
	return s.count, nil
}

func (s *stubIndex) Clear(ctx context.Context) error {
	s.hits = nil
	return nil
}

// stubGenerator counts calls so tests can assert it was never reached.
type stubGenerator struct {
	result *types.GenerateResult
	err    error
	calls  int
}

func (s *stubGenerator) Generate(ctx context.Context, query string, contextDocs []types.ScoredResult, includeSources bool) (*types.GenerateResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if s.result != nil {
		r := *s.result
		r.ContextChunks = len(contextDocs)
		return &r, nil
	}
	return &types.GenerateResult{
		Response:      "stub answer",
		ModelUsed:     "stub-model",
		ContextChunks: len(contextDocs),
	}, nil
}

func (s *stubGenerator) Model() string { return "stub-model" }

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askcse/deptbot-be/config"
	"github.com/askcse/deptbot-be/database"
	"github.com/askcse/deptbot-be/types"
)

func newTestRetriever(embedder Embedder, index database.VectorIndex) *Retriever {
	return NewRetriever(embedder, index, config.TimeoutConfig{})
}

func TestRetrieveOverFetchesForReranking(t *testing.T) {
	index := &stubIndex{hits: manyHits(20)}
	retriever := newTestRetriever(&stubEmbedder{}, index)

	_, _, err := retriever.Retrieve(context.Background(), "query", types.QueryAnalysis{SuggestedTopK: 5})
	require.NoError(t, err)
	assert.Equal(t, 10, index.lastLimit)

	// Over-fetch is capped regardless of topK.
	_, _, err = retriever.Retrieve(context.Background(), "query", types.QueryAnalysis{SuggestedTopK: 10})
	require.NoError(t, err)
	assert.Equal(t, maxCandidates, index.lastLimit)
}

func TestRetrieveEmptyIndexIsNotAnError(t *testing.T) {
	retriever := newTestRetriever(&stubEmbedder{}, &stubIndex{})

	candidates, expanded, err := retriever.Retrieve(context.Background(), "faculty members", types.QueryAnalysis{
		SuggestedTopK: 5,
		ExpandQuery:   true,
	})

	require.NoError(t, err)
	assert.Empty(t, candidates)
	// The expanded query is still reported so callers can surface it.
	assert.Contains(t, expanded, "faculty members")
	assert.Contains(t, expanded, "professor")
}

func TestRetrieveAssignsPositionsAndSimilarity(t *testing.T) {
	index := &stubIndex{hits: []database.SearchHit{
		{Content: "first", Distance: 0.1},
		{Content: "second", Distance: 0.4},
		{Content: "third", Distance: 1.8},
	}}
	retriever := newTestRetriever(&stubEmbedder{}, index)

	candidates, _, err := retriever.Retrieve(context.Background(), "query", types.QueryAnalysis{SuggestedTopK: 5})

	require.NoError(t, err)
	require.Len(t, candidates, 3)
	for i, c := range candidates {
		assert.Equal(t, i, c.Position)
	}
	assert.InDelta(t, 0.9, candidates[0].VectorScore, 1e-9)
	assert.InDelta(t, 0.6, candidates[1].VectorScore, 1e-9)
	// Distances beyond 1 clamp to zero similarity.
	assert.Equal(t, 0.0, candidates[2].VectorScore)
}

func TestRetrieveSkipsExpansionWhenDisabled(t *testing.T) {
	retriever := newTestRetriever(&stubEmbedder{}, &stubIndex{hits: manyHits(2)})

	_, expanded, err := retriever.Retrieve(context.Background(), "faculty members", types.QueryAnalysis{
		SuggestedTopK: 5,
		ExpandQuery:   false,
	})

	require.NoError(t, err)
	assert.Empty(t, expanded)
}

func TestRetrieveWrapsEmbedderFailure(t *testing.T) {
	embedder := &stubEmbedder{
		embedQueryFn: func(ctx context.Context, query string, expand bool) (*types.EmbedQueryResult, error) {
			return nil, errors.New("embedding backend down")
		},
	}
	retriever := newTestRetriever(embedder, &stubIndex{})

	_, _, err := retriever.Retrieve(context.Background(), "query", types.QueryAnalysis{SuggestedTopK: 5})

	var pe *PipelineError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, StageEmbed, pe.Stage)
	assert.Equal(t, ErrKindCollaborator, pe.Kind)
}

func TestRetrieveClassifiesSearchTimeout(t *testing.T) {
	index := &stubIndex{queryErr: context.DeadlineExceeded}
	retriever := newTestRetriever(&stubEmbedder{}, index)

	_, _, err := retriever.Retrieve(context.Background(), "query", types.QueryAnalysis{SuggestedTopK: 5})

	var pe *PipelineError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, StageSearch, pe.Stage)
	assert.Equal(t, ErrKindTimeout, pe.Kind)
	assert.True(t, IsTimeout(err))
}

func manyHits(n int) []database.SearchHit {
	hits := make([]database.SearchHit, n)
	for i := range hits {
		hits[i] = database.SearchHit{Content: "passage", Distance: 0.2}
	}
	return hits
}

package service

import (
	"context"
	"fmt"

	"github.com/askcse/deptbot-be/config"
	"github.com/askcse/deptbot-be/database"
	"github.com/askcse/deptbot-be/types"
)

// maxCandidates caps the over-fetch so a large topK cannot flood the
// re-ranker.
const maxCandidates = 15

// Retriever turns a query into an over-fetched candidate set: embed the
// (possibly expanded) query, then ask the vector index for roughly twice the
// passages the caller wants, giving the re-ranker room to promote passages
// that score well on non-vector signals.
type Retriever struct {
	embedder Embedder
	index    database.VectorIndex
	timeouts config.TimeoutConfig
}

func NewRetriever(embedder Embedder, index database.VectorIndex, timeouts config.TimeoutConfig) *Retriever {
	return &Retriever{
		embedder: embedder,
		index:    index,
		timeouts: timeouts,
	}
}

// Retrieve returns candidates with their original rank positions, plus the
// expanded query text when expansion was applied. An empty candidate set is
// a valid "no knowledge" result, not an error. Each external call runs
// under its own deadline; overruns surface as pipeline timeouts.
func (r *Retriever) Retrieve(ctx context.Context, query string, analysis types.QueryAnalysis) ([]types.SearchCandidate, string, error) {
	embedCtx, cancelEmbed := context.WithTimeout(ctx, r.timeouts.Embed())
	embedded, err := r.embedder.EmbedQuery(embedCtx, query, analysis.ExpandQuery)
	cancelEmbed()
	if err != nil {
		return nil, "", wrapStageError(StageEmbed, fmt.Errorf("embedding query: %w", err))
	}

	fetchCount := analysis.SuggestedTopK * 2
	if fetchCount > maxCandidates {
		fetchCount = maxCandidates
	}

	searchCtx, cancelSearch := context.WithTimeout(ctx, r.timeouts.Search())
	hits, err := r.index.Query(searchCtx, embedded.Embedding, fetchCount)
	cancelSearch()
	if err != nil {
		return nil, "", wrapStageError(StageSearch, fmt.Errorf("querying vector index: %w", err))
	}
	if len(hits) == 0 {
		return nil, embedded.ExpandedQuery, nil
	}

	candidates := make([]types.SearchCandidate, len(hits))
	for i, hit := range hits {
		candidates[i] = types.SearchCandidate{
			Content:     hit.Content,
			Metadata:    hit.Metadata,
			VectorScore: distanceToSimilarity(hit.Distance),
			Position:    i,
		}
	}
	return candidates, embedded.ExpandedQuery, nil
}

// distanceToSimilarity converts cosine distance into a similarity in [0,1].
func distanceToSimilarity(distance float64) float64 {
	sim := 1 - distance
	if sim < 0 {
		return 0
	}
	if sim > 1 {
		return 1
	}
	return sim
}

package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askcse/deptbot-be/types"
)

func seedStore(t *testing.T) *MemoryStore {
	t.Helper()
	store := NewMemoryStore()
	docs := []types.Document{
		{Content: "networking lab schedule", Metadata: types.Metadata{Source: "labs.txt"}},
		{Content: "faculty office directory", Metadata: types.Metadata{Source: "faculty.txt"}},
		{Content: "annual fest announcements", Metadata: types.Metadata{Source: "events.txt"}},
	}
	embeddings := [][]float32{
		{1, 0, 0},
		{0, 1, 0},
		{0.9, 0.1, 0},
	}
	require.NoError(t, store.BatchUpsert(context.Background(), docs, embeddings))
	return store
}

func TestMemoryStoreQueryOrdersByDistance(t *testing.T) {
	store := seedStore(t)

	hits, err := store.Query(context.Background(), []float32{1, 0, 0}, 10)

	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, "networking lab schedule", hits[0].Content)
	assert.Equal(t, "annual fest announcements", hits[1].Content)
	assert.Equal(t, "faculty office directory", hits[2].Content)
	for i := 1; i < len(hits); i++ {
		assert.LessOrEqual(t, hits[i-1].Distance, hits[i].Distance)
	}
	assert.InDelta(t, 0, hits[0].Distance, 1e-6)
}

func TestMemoryStoreQueryRespectsLimit(t *testing.T) {
	store := seedStore(t)

	hits, err := store.Query(context.Background(), []float32{1, 0, 0}, 2)

	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestMemoryStoreQueryEmpty(t *testing.T) {
	store := NewMemoryStore()

	hits, err := store.Query(context.Background(), []float32{1, 0, 0}, 5)

	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestMemoryStoreCountAndClear(t *testing.T) {
	store := seedStore(t)
	ctx := context.Background()

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	require.NoError(t, store.Upsert(ctx, &types.Document{Content: "one more"}, []float32{0, 0, 1}))
	count, err = store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	require.NoError(t, store.Clear(ctx))
	count, err = store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 2, 3}, []float32{1, 2, 3}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, cosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-9)

	// Degenerate inputs report zero similarity instead of NaN.
	assert.Equal(t, 0.0, cosineSimilarity([]float32{0, 0}, []float32{1, 2}))
	assert.Equal(t, 0.0, cosineSimilarity([]float32{1}, []float32{1, 2}))
	assert.Equal(t, 0.0, cosineSimilarity(nil, nil))
}

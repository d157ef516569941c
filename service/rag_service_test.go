package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askcse/deptbot-be/config"
	"github.com/askcse/deptbot-be/database"
	"github.com/askcse/deptbot-be/types"
)

func newTestRAGService(index database.VectorIndex, generator Generator) *RAGService {
	timeouts := config.TimeoutConfig{}
	embedder := &stubEmbedder{}
	return NewRAGService(
		NewQueryAnalyzer(),
		NewRetriever(embedder, index, timeouts),
		NewHybridReranker(DefaultRerankConfig),
		generator,
		index,
		timeouts,
		nil,
	)
}

func facultyHits() []database.SearchHit {
	return []database.SearchHit{
		{Content: "Dr. Rao teaches Machine Learning and Pattern Recognition", Metadata: types.Metadata{Source: "faculty.txt"}, Distance: 0.1},
		{Content: "The Machine Learning course runs in the sixth semester", Metadata: types.Metadata{Source: "courses.txt"}, Distance: 0.2},
		{Content: "Dr. Iyer heads the computer vision laboratory", Metadata: types.Metadata{Source: "faculty.txt"}, Distance: 0.3},
		{Content: "Library hours are 9am to 11pm on weekdays", Metadata: types.Metadata{Source: "general.txt"}, Distance: 0.6},
		{Content: "Hostel allocation happens before the fall semester", Metadata: types.Metadata{Source: "general.txt"}, Distance: 0.7},
		{Content: "The annual tech fest is held in March", Metadata: types.Metadata{Source: "general.txt"}, Distance: 0.8},
	}
}

func TestHandleQueryFullPipeline(t *testing.T) {
	index := &stubIndex{hits: facultyHits()}
	generator := &stubGenerator{result: &types.GenerateResult{
		Response:  "Dr. Rao teaches Machine Learning.",
		ModelUsed: "stub-model",
	}}
	rag := newTestRAGService(index, generator)

	response, err := rag.HandleQuery(context.Background(), "Who teaches Machine Learning?")

	require.NoError(t, err)
	assert.Equal(t, "Dr. Rao teaches Machine Learning.", response.Answer)
	assert.Equal(t, types.QueryTypePersonSearch, response.Metadata.QueryType)
	assert.Equal(t, "stub-model", response.Metadata.ModelUsed)

	// Person search retrieves top 3 after re-ranking, all of which are shown.
	assert.Equal(t, 3, response.Metadata.ContextChunks)
	require.Len(t, response.Sources, 3)
	assert.Equal(t, "Dr. Rao teaches Machine Learning and Pattern Recognition", response.Sources[0].Text)
	assert.Equal(t, 1, generator.calls)
}

func TestHandleQueryEmptyKnowledgeBase(t *testing.T) {
	generator := &stubGenerator{}
	rag := newTestRAGService(&stubIndex{}, generator)

	response, err := rag.HandleQuery(context.Background(), "Who teaches Machine Learning?")

	require.NoError(t, err)
	assert.Equal(t, NoKnowledgeAnswer, response.Answer)
	assert.Empty(t, response.Sources)
	assert.Equal(t, 0, response.Metadata.ContextChunks)
	// The generator must never run without retrieved context.
	assert.Equal(t, 0, generator.calls)
}

func TestHandleQueryGeneratorTimeout(t *testing.T) {
	generator := &stubGenerator{err: context.DeadlineExceeded}
	rag := newTestRAGService(&stubIndex{hits: facultyHits()}, generator)

	response, err := rag.HandleQuery(context.Background(), "Who teaches Machine Learning?")

	require.Nil(t, response)
	var pe *PipelineError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, StageGenerate, pe.Stage)
	assert.Equal(t, ErrKindTimeout, pe.Kind)
	assert.True(t, IsTimeout(err))
}

func TestHandleQueryPropagatesRetrievalFailure(t *testing.T) {
	index := &stubIndex{queryErr: context.DeadlineExceeded}
	generator := &stubGenerator{}
	rag := newTestRAGService(index, generator)

	_, err := rag.HandleQuery(context.Background(), "Who teaches Machine Learning?")

	var pe *PipelineError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, StageSearch, pe.Stage)
	assert.Equal(t, 0, generator.calls)
}

func TestHandleQueryTruncatesLongSources(t *testing.T) {
	long := words(300)
	index := &stubIndex{hits: []database.SearchHit{
		{Content: long, Distance: 0.1},
	}}
	rag := newTestRAGService(index, &stubGenerator{})

	response, err := rag.HandleQuery(context.Background(), "anything at all")

	require.NoError(t, err)
	require.Len(t, response.Sources, 1)
	assert.Len(t, response.Sources[0].Text, sourcePreviewLength+len("..."))
}

func TestSearchClampsLimit(t *testing.T) {
	index := &stubIndex{hits: manyHits(20)}
	rag := newTestRAGService(index, &stubGenerator{})

	_, err := rag.Search(context.Background(), "some query", 50)

	require.NoError(t, err)
	// Limit is clamped before over-fetch, which is itself capped.
	assert.Equal(t, maxCandidates, index.lastLimit)
}

func TestGetStats(t *testing.T) {
	rag := newTestRAGService(&stubIndex{count: 42}, &stubGenerator{})

	stats, err := rag.GetStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 42, stats.DocumentCount)
}

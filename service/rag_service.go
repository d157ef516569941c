package service

import (
	"context"
	"log"
	"time"

	"github.com/askcse/deptbot-be/config"
	"github.com/askcse/deptbot-be/database"
	"github.com/askcse/deptbot-be/repository"
	"github.com/askcse/deptbot-be/types"
)

// NoKnowledgeAnswer is returned when retrieval finds nothing. This is a
// designated empty-result path, not an error, and the generator is never
// called for it.
const NoKnowledgeAnswer = "I don't have any information in my knowledge base yet. Please upload some documents first."

const (
	// maxVisibleSources caps how many passages are surfaced to the user.
	maxVisibleSources = 3
	// sourcePreviewLength truncates source text for display.
	sourcePreviewLength = 200
)

// RAGService runs the full query pipeline: analyze, retrieve, re-rank,
// generate. Every query runs its own sequential pipeline instance; the only
// shared state is the read path into the vector index.
type RAGService struct {
	analyzer  *QueryAnalyzer
	retriever *Retriever
	reranker  *HybridReranker
	generator Generator
	index     database.VectorIndex
	timeouts  config.TimeoutConfig
	queryLog  repository.QueryLogRepo // nil when history is disabled
}

func NewRAGService(
	analyzer *QueryAnalyzer,
	retriever *Retriever,
	reranker *HybridReranker,
	generator Generator,
	index database.VectorIndex,
	timeouts config.TimeoutConfig,
	queryLog repository.QueryLogRepo,
) *RAGService {
	return &RAGService{
		analyzer:  analyzer,
		retriever: retriever,
		reranker:  reranker,
		generator: generator,
		index:     index,
		timeouts:  timeouts,
		queryLog:  queryLog,
	}
}

// HandleQuery answers a natural-language query from the knowledge base.
// Stage failures surface as *PipelineError; there are no partial answers.
func (s *RAGService) HandleQuery(ctx context.Context, query string) (*types.QueryResponse, error) {
	start := time.Now()

	analysis := s.analyzer.Analyze(query)

	candidates, expandedQuery, err := s.retriever.Retrieve(ctx, query, analysis)
	if err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		response := &types.QueryResponse{
			Answer:           NoKnowledgeAnswer,
			Sources:          []types.Source{},
			ProcessingTimeMs: time.Since(start).Milliseconds(),
			Metadata: types.QueryResponseMetadata{
				QueryType:     analysis.QueryType,
				ContextChunks: 0,
				ExpandedQuery: expandedQuery,
			},
		}
		s.recordQuery(query, response)
		return response, nil
	}

	reranked := s.reranker.Rerank(query, candidates, analysis.SuggestedTopK)

	genCtx, cancel := context.WithTimeout(ctx, s.timeouts.Generate())
	result, err := s.generator.Generate(genCtx, query, reranked, true)
	cancel()
	if err != nil {
		return nil, wrapStageError(StageGenerate, err)
	}

	response := &types.QueryResponse{
		Answer:           result.Response,
		Sources:          buildSources(reranked),
		ProcessingTimeMs: time.Since(start).Milliseconds(),
		Metadata: types.QueryResponseMetadata{
			QueryType:     analysis.QueryType,
			ContextChunks: result.ContextChunks,
			ExpandedQuery: expandedQuery,
			ModelUsed:     result.ModelUsed,
		},
	}
	s.recordQuery(query, response)
	return response, nil
}

// Search exposes raw retrieval output without generation. It exists as a
// debug and comparison endpoint; /query is the canonical path.
func (s *RAGService) Search(ctx context.Context, query string, limit int) ([]types.SearchCandidate, error) {
	analysis := s.analyzer.Analyze(query)
	if limit > 0 {
		analysis.SuggestedTopK = clampTopK(limit)
	}
	candidates, _, err := s.retriever.Retrieve(ctx, query, analysis)
	if err != nil {
		return nil, err
	}
	return candidates, nil
}

// GetStats reports the document count, passed through from the index.
func (s *RAGService) GetStats(ctx context.Context) (*types.StatsResponse, error) {
	count, err := s.index.Count(ctx)
	if err != nil {
		return nil, wrapStageError(StageSearch, err)
	}
	return &types.StatsResponse{DocumentCount: count}, nil
}

// buildSources reports which passages were actually supplied as context.
// Only the top results are user-visible; text is truncated for display.
func buildSources(reranked []types.ScoredResult) []types.Source {
	n := len(reranked)
	if n > maxVisibleSources {
		n = maxVisibleSources
	}
	sources := make([]types.Source, n)
	for i := 0; i < n; i++ {
		sources[i] = types.Source{
			Text:     truncateText(reranked[i].Content, sourcePreviewLength),
			Metadata: reranked[i].Metadata,
			Score:    reranked[i].FinalScore,
		}
	}
	return sources
}

func truncateText(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	return s[:maxLength] + "..."
}

// recordQuery persists the answered query when history is enabled. Logging
// failures never fail the request.
func (s *RAGService) recordQuery(query string, response *types.QueryResponse) {
	if s.queryLog == nil {
		return
	}
	entry := &types.QueryLog{
		Query:            query,
		Answer:           response.Answer,
		QueryType:        response.Metadata.QueryType,
		ContextChunks:    response.Metadata.ContextChunks,
		ProcessingTimeMs: response.ProcessingTimeMs,
		CreatedAt:        time.Now().Unix(),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.queryLog.Insert(ctx, entry); err != nil {
		log.Printf("failed to record query log: %v", err)
	}
}

package service

import (
	"log"
	"strings"

	"github.com/askcse/deptbot-be/types"
)

const (
	minTopK = 3
	maxTopK = 10
)

// QueryAnalyzer classifies queries and derives retrieval parameters.
// Analysis is deterministic and never fails hard: any internal panic is
// absorbed and replaced with a safe default.
type QueryAnalyzer struct{}

func NewQueryAnalyzer() *QueryAnalyzer {
	return &QueryAnalyzer{}
}

// Analyze derives the query type, suggested candidate count, expansion flag
// and complexity for a query string.
func (a *QueryAnalyzer) Analyze(query string) (analysis types.QueryAnalysis) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("query analysis recovered: %v", r)
			analysis = defaultAnalysis(query)
		}
	}()
	return a.classify(query)
}

func defaultAnalysis(query string) types.QueryAnalysis {
	return types.QueryAnalysis{
		QueryType:     types.QueryTypeGeneral,
		SuggestedTopK: 5,
		ExpandQuery:   true,
		QueryLength:   len(strings.Fields(query)),
		Complexity:    types.ComplexityMedium,
	}
}

func (a *QueryAnalyzer) classify(query string) types.QueryAnalysis {
	queryLower := strings.ToLower(query)
	queryLength := len(strings.Fields(query))

	queryType := types.QueryTypeGeneral
	switch {
	case containsAny(queryLower, "who", "name", "faculty", "professor"):
		queryType = types.QueryTypePersonSearch
	case containsAny(queryLower, "what", "which", "course", "subject"):
		queryType = types.QueryTypeInfoSearch
	case containsAny(queryLower, "how", "explain", "describe"):
		queryType = types.QueryTypeExplanation
	case containsAny(queryLower, "list", "all", "every"):
		queryType = types.QueryTypeListQuery
	}

	topK, expand := suggestedParams(queryType)

	complexity := types.ComplexityLow
	if queryLength > 10 {
		complexity = types.ComplexityHigh
	} else if queryLength > 5 {
		complexity = types.ComplexityMedium
	}

	return types.QueryAnalysis{
		QueryType:     queryType,
		SuggestedTopK: clampTopK(topK),
		ExpandQuery:   expand,
		QueryLength:   queryLength,
		Complexity:    complexity,
	}
}

func suggestedParams(queryType string) (topK int, expand bool) {
	switch queryType {
	case types.QueryTypePersonSearch:
		return 3, true
	case types.QueryTypeInfoSearch:
		return 5, true
	case types.QueryTypeExplanation:
		return 5, false
	case types.QueryTypeListQuery:
		return 10, true
	default:
		return 5, true
	}
}

// clampTopK bounds the candidate count to protect downstream cost.
func clampTopK(k int) int {
	if k < minTopK {
		return minTopK
	}
	if k > maxTopK {
		return maxTopK
	}
	return k
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

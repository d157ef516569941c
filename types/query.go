package types

// Query types produced by the analyzer.
const (
	QueryTypePersonSearch = "person_search"
	QueryTypeInfoSearch   = "info_search"
	QueryTypeExplanation  = "explanation"
	QueryTypeListQuery    = "list_query"
	QueryTypeGeneral      = "general"
)

// Query complexity buckets, by token count.
const (
	ComplexityLow    = "low"
	ComplexityMedium = "medium"
	ComplexityHigh   = "high"
)

// QueryAnalysis holds the retrieval parameters derived from a query string.
// It is computed once per request and carries no side effects.
type QueryAnalysis struct {
	QueryType     string `json:"query_type"`
	SuggestedTopK int    `json:"suggested_top_k"`
	ExpandQuery   bool   `json:"expand_query"`
	QueryLength   int    `json:"query_length"`
	Complexity    string `json:"complexity"`
}

// SearchCandidate is one passage returned by the vector index for a query.
// Position is the candidate's 0-based rank in the nearest-neighbor response;
// the re-ranker uses it as a tie-break and trust signal.
type SearchCandidate struct {
	Content     string   `json:"content"`
	Metadata    Metadata `json:"metadata"`
	VectorScore float64  `json:"vector_score"`
	Position    int      `json:"position"`
}

// ScoreBreakdown exposes each component of a re-ranked score. Every field
// is normalized to [0,1] before weighting so they are comparable.
type ScoreBreakdown struct {
	Vector     float64 `json:"vector"`
	Keyword    float64 `json:"keyword"`
	ExactMatch float64 `json:"exact_match"`
	Length     float64 `json:"length"`
	Position   float64 `json:"position"`
}

// ScoredResult is a SearchCandidate after hybrid re-ranking. FinalScore is a
// deterministic weighted combination of the breakdown components.
type ScoredResult struct {
	SearchCandidate
	FinalScore     float64        `json:"final_score"`
	ScoreBreakdown ScoreBreakdown `json:"score_breakdown"`
}

// EmbedQueryResult reports the embedding for a query along with the text that
// was actually embedded, so expansion stays traceable downstream.
type EmbedQueryResult struct {
	Embedding     []float32
	OriginalQuery string
	ExpandedQuery string // empty when no expansion was applied
}

// GenerateResult is the generator collaborator's answer.
type GenerateResult struct {
	Response      string `json:"response"`
	ModelUsed     string `json:"model_used"`
	ContextChunks int    `json:"context_chunks"`
}

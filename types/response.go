package types

type DataResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Source is one passage surfaced to the caller as answer provenance.
// Text is truncated for display; Score is the re-ranked final score.
type Source struct {
	Text     string   `json:"text"`
	Metadata Metadata `json:"metadata"`
	Score    float64  `json:"score"`
}

// QueryResponseMetadata describes how an answer was produced.
type QueryResponseMetadata struct {
	QueryType     string `json:"query_type"`
	ContextChunks int    `json:"context_chunks"`
	ExpandedQuery string `json:"expanded_query,omitempty"`
	ModelUsed     string `json:"model_used,omitempty"`
}

// QueryResponse is the full answer for one query.
type QueryResponse struct {
	Answer           string                `json:"answer"`
	Sources          []Source              `json:"sources"`
	ProcessingTimeMs int64                 `json:"processing_time_ms"`
	Metadata         QueryResponseMetadata `json:"metadata"`
}

type StatsResponse struct {
	DocumentCount int `json:"document_count"`
}

type HealthResponse struct {
	Status         string `json:"status"`
	GeneratorModel string `json:"generator_model"`
	EmbeddingModel string `json:"embedding_model"`
	Service        string `json:"service"`
}

type ProcessingDocumentStatus struct {
	Status          string  `json:"status"`
	Message         string  `json:"message"`
	Progress        float64 `json:"progress"`
	TotalChunks     int     `json:"total_chunks"`
	ProcessedChunks int     `json:"processed_chunks"`
}

package types

type QueryRequest struct {
	Query string `json:"query"`
}

type UploadRequest struct {
	Source   string `json:"source"`
	Category string `json:"category"`
	Type     string `json:"type"`
}

// SearchRequest drives the debug /documents/search endpoint, which exposes
// raw retrieval output without generation.
type SearchRequest struct {
	Query string `json:"query" form:"query"`
	Limit int    `json:"limit,omitempty" form:"limit"`
}

type HistoryRequest struct {
	Page  int64 `json:"page" form:"page"`
	Limit int64 `json:"limit" form:"limit"`
}

package types

// QueryLog is a persisted record of an answered query, kept for diagnostics.
type QueryLog struct {
	ID               string `bson:"_id,omitempty" json:"id"`
	Query            string `bson:"query" json:"query"`
	Answer           string `bson:"answer" json:"answer"`
	QueryType        string `bson:"query_type" json:"query_type"`
	ContextChunks    int    `bson:"context_chunks" json:"context_chunks"`
	ProcessingTimeMs int64  `bson:"processing_time_ms" json:"processing_time_ms"`
	CreatedAt        int64  `bson:"created_at" json:"created_at"`
}

package types

// Document is an immutable knowledge base passage. Documents are created at
// ingestion time and replaced, never patched, when their source changes.
type Document struct {
	ID        string   `bson:"_id" json:"id"`
	Content   string   `bson:"content" json:"content"`
	Metadata  Metadata `bson:"metadata" json:"metadata"`
	CreatedAt int64    `bson:"created_at" json:"created_at"`
}

// Metadata carries document provenance information.
type Metadata struct {
	Source     string `bson:"source" json:"source"`
	Category   string `bson:"category" json:"category"`
	Type       string `bson:"type" json:"type"`
	Page       int    `bson:"page,omitempty" json:"page,omitempty"`
	ChunkIndex int    `bson:"chunk_index" json:"chunk_index"`
	UploadedAt int64  `bson:"uploaded_at,omitempty" json:"uploaded_at,omitempty"`
}

// DocumentChunk is a piece of an ingested file on its way into the index.
type DocumentChunk struct {
	Content  string
	Index    int
	Page     int
	Metadata Metadata
}

// DocumentServiceConfig controls how files are split into chunks.
type DocumentServiceConfig struct {
	MaxChunkSize int // Maximum size for text chunks
	OverlapSize  int // Size of overlap between chunks
}

package database

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"

	"github.com/askcse/deptbot-be/config"
	"github.com/askcse/deptbot-be/types"
)

const BATCH_SIZE = 200

var (
	PASSAGE_CLASS        = "Passage"
	PASSAGE_CLASS_OBJECT = &models.Class{
		Class: PASSAGE_CLASS,
		Properties: []*models.Property{
			{Name: "content", DataType: []string{"text"}},
			{Name: "source", DataType: []string{"text"}},
			{Name: "category", DataType: []string{"text"}},
			{Name: "docType", DataType: []string{"text"}},
			{Name: "page", DataType: []string{"int"}},
			{Name: "chunkIndex", DataType: []string{"int"}},
			{Name: "uploadedAt", DataType: []string{"int"}},
			{Name: "createdAt", DataType: []string{"int"}},
		},
		// Embeddings are produced by our own embedder and passed in
		// explicitly, so no server-side vectorizer is configured.
		Vectorizer:      "none",
		VectorIndexType: "hnsw",
	}
)

// WeaviateStore implements VectorIndex on a single long-lived Weaviate
// client. Schema initialization is lazy and idempotent: the Passage class is
// ensured once, on first use, guarded against concurrent first callers.
type WeaviateStore struct {
	client    *weaviate.Client
	ensure    sync.Once
	ensureErr error
	writeMu   sync.Mutex
}

func NewWeaviateStore(config config.WeaviateStoreConfig) (*WeaviateStore, error) {
	var scheme string
	if strings.Contains(config.Host, "https") {
		scheme = "https"
	} else {
		scheme = "http"
	}
	host := strings.TrimPrefix(config.Host, scheme+"://")
	cfg := weaviate.Config{
		Host:   host,
		Scheme: scheme,
	}
	if config.APIKey != "" {
		cfg.AuthConfig = auth.ApiKey{
			Value: config.APIKey,
		}
		cfg.Headers = map[string]string{
			"X-Weaviate-Api-Key":     config.APIKey,
			"X-Weaviate-Cluster-Url": fmt.Sprintf("%s://%s", scheme, host),
		}
	}
	client, err := weaviate.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create weaviate client: %v", err)
	}
	return &WeaviateStore{client: client}, nil
}

// ensureClass creates the Passage class if it does not exist. Called lazily
// before the first operation; safe under concurrent first use.
func (s *WeaviateStore) ensureClass(ctx context.Context) error {
	s.ensure.Do(func() {
		s.ensureErr = s.createClassIfMissing(ctx)
	})
	return s.ensureErr
}

func (s *WeaviateStore) createClassIfMissing(ctx context.Context) error {
	schema, err := s.client.Schema().Getter().Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to get schema: %v", err)
	}
	for _, class := range schema.Classes {
		if class.Class == PASSAGE_CLASS {
			return nil
		}
	}
	err = s.client.Schema().ClassCreator().WithClass(PASSAGE_CLASS_OBJECT).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create Passage class: %v", err)
	}
	return nil
}

func passageProperties(doc *types.Document) map[string]interface{} {
	return map[string]interface{}{
		"content":    doc.Content,
		"source":     doc.Metadata.Source,
		"category":   doc.Metadata.Category,
		"docType":    doc.Metadata.Type,
		"page":       doc.Metadata.Page,
		"chunkIndex": doc.Metadata.ChunkIndex,
		"uploadedAt": doc.Metadata.UploadedAt,
		"createdAt":  doc.CreatedAt,
	}
}

func (s *WeaviateStore) Upsert(ctx context.Context, doc *types.Document, embedding []float32) error {
	if err := s.ensureClass(ctx); err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	creator := s.client.Data().Creator().
		WithClassName(PASSAGE_CLASS).
		WithProperties(passageProperties(doc))
	if embedding != nil {
		creator = creator.WithVector(embedding)
	}
	result, err := creator.Do(ctx)
	if err != nil {
		return err
	}
	log.Println("Upsert result:", result.Object.ID)
	return nil
}

// BatchUpsert inserts documents in batches of BATCH_SIZE. The write lock
// keeps concurrent queries from observing a half-written batch.
func (s *WeaviateStore) BatchUpsert(ctx context.Context, docs []types.Document, embeddings [][]float32) error {
	if err := s.ensureClass(ctx); err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	total := len(docs)
	for i := 0; i < total; i += BATCH_SIZE {
		end := i + BATCH_SIZE
		if end > total {
			end = total
		}

		batcher := s.client.Batch().ObjectsBatcher()
		for j := i; j < end; j++ {
			obj := &models.Object{
				Class:      PASSAGE_CLASS,
				Properties: passageProperties(&docs[j]),
			}
			if embeddings != nil && j < len(embeddings) {
				obj.Vector = embeddings[j]
			}
			batcher = batcher.WithObjects(obj)
		}

		if _, err := batcher.Do(ctx); err != nil {
			return fmt.Errorf("failed to insert batch %d-%d: %v", i, end, err)
		}
		log.Printf("Inserted batch %d-%d of %d documents", i, end, total)
	}
	return nil
}

// Query returns the nearest neighbors of the embedding, ordered by ascending
// distance as Weaviate ranks them.
func (s *WeaviateStore) Query(ctx context.Context, embedding []float32, limit int) ([]SearchHit, error) {
	if err := s.ensureClass(ctx); err != nil {
		return nil, err
	}

	fields := []graphql.Field{
		{Name: "content"},
		{Name: "source"},
		{Name: "category"},
		{Name: "docType"},
		{Name: "page"},
		{Name: "chunkIndex"},
		{Name: "uploadedAt"},
		{Name: "_additional", Fields: []graphql.Field{{Name: "distance"}, {Name: "id"}}},
	}
	nearVector := s.client.GraphQL().NearVectorArgBuilder().WithVector(embedding)

	result, err := s.client.GraphQL().Get().
		WithClassName(PASSAGE_CLASS).
		WithFields(fields...).
		WithNearVector(nearVector).
		WithLimit(limit).
		Do(ctx)
	if err != nil {
		return nil, err
	}
	if result.Errors != nil {
		return nil, fmt.Errorf("search failed: %v", result.Errors[0].Message)
	}

	var hits []SearchHit
	if data, ok := result.Data["Get"].(map[string]interface{})[PASSAGE_CLASS].([]interface{}); ok {
		for _, item := range data {
			obj, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			hit := SearchHit{
				Content: asString(obj["content"]),
				Metadata: types.Metadata{
					Source:     asString(obj["source"]),
					Category:   asString(obj["category"]),
					Type:       asString(obj["docType"]),
					Page:       int(asFloat(obj["page"])),
					ChunkIndex: int(asFloat(obj["chunkIndex"])),
					UploadedAt: int64(asFloat(obj["uploadedAt"])),
				},
			}
			if additional, ok := obj["_additional"].(map[string]interface{}); ok {
				hit.Distance = asFloat(additional["distance"])
			}
			hits = append(hits, hit)
		}
	}
	return hits, nil
}

// Count returns the number of stored passages via an aggregate meta query.
func (s *WeaviateStore) Count(ctx context.Context) (int, error) {
	if err := s.ensureClass(ctx); err != nil {
		return 0, err
	}

	result, err := s.client.GraphQL().Aggregate().
		WithClassName(PASSAGE_CLASS).
		WithFields(graphql.Field{Name: "meta", Fields: []graphql.Field{{Name: "count"}}}).
		Do(ctx)
	if err != nil {
		return 0, err
	}
	if result.Errors != nil {
		return 0, fmt.Errorf("count failed: %v", result.Errors[0].Message)
	}

	if data, ok := result.Data["Aggregate"].(map[string]interface{})[PASSAGE_CLASS].([]interface{}); ok && len(data) > 0 {
		if obj, ok := data[0].(map[string]interface{}); ok {
			if meta, ok := obj["meta"].(map[string]interface{}); ok {
				return int(asFloat(meta["count"])), nil
			}
		}
	}
	return 0, nil
}

// Clear drops and recreates the Passage class.
func (s *WeaviateStore) Clear(ctx context.Context) error {
	if err := s.ensureClass(ctx); err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	err := s.client.Schema().ClassDeleter().WithClassName(PASSAGE_CLASS).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete Passage class: %v", err)
	}
	err = s.client.Schema().ClassCreator().WithClass(PASSAGE_CLASS_OBJECT).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create Passage class: %v", err)
	}
	return nil
}

// Helper functions
func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asFloat(v interface{}) float64 {
	f, _ := v.(float64)
	return f
}

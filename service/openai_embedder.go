package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/askcse/deptbot-be/types"
)

// OpenAIEmbedder produces embeddings through an OpenAI-compatible endpoint.
// The base URL is configurable, so the same adapter covers the OpenAI API,
// LM Studio and Ollama's compatibility server.
type OpenAIEmbedder struct {
	client *openai.Client
	model  string
}

func NewOpenAIEmbedder(baseURL, apiKey, model string) *OpenAIEmbedder {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIEmbedder{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

func (e *OpenAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, errors.New("no texts provided")
	}

	processed := make([]string, len(texts))
	for i, text := range texts {
		processed[i] = PreprocessText(text)
	}

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: processed,
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
	}

	embeddings := make([][]float32, len(resp.Data))
	for i, d := range resp.Data {
		embeddings[i] = d.Embedding
	}
	return embeddings, nil
}

func (e *OpenAIEmbedder) EmbedQuery(ctx context.Context, query string, expand bool) (*types.EmbedQueryResult, error) {
	if query == "" {
		return nil, errors.New("no query provided")
	}

	text := query
	expandedQuery := ""
	if expand {
		expanded := ExpandQuery(query)
		if expanded != query {
			expandedQuery = expanded
			text = expanded
		}
	}

	embeddings, err := e.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}

	return &types.EmbedQueryResult{
		Embedding:     embeddings[0],
		OriginalQuery: query,
		ExpandedQuery: expandedQuery,
	}, nil
}

package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/askcse/deptbot-be/types"
)

// GeminiGenerator answers queries through the Gemini API. It rotates to the
// next API key when a request fails, the way free-tier quota exhaustion
// usually surfaces.
type GeminiGenerator struct {
	apiKeys    []string
	currentKey int
	client     *genai.Client
	model      *genai.GenerativeModel
	modelName  string
	department string
	mu         sync.Mutex
}

func NewGeminiGenerator(apiKeys []string, modelName, department string) (*GeminiGenerator, error) {
	if len(apiKeys) == 0 {
		return nil, errors.New("no API keys provided")
	}

	g := &GeminiGenerator{
		apiKeys:    apiKeys,
		currentKey: 0,
		modelName:  modelName,
		department: department,
	}
	if err := g.initClient(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *GeminiGenerator) initClient() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(g.apiKeys[g.currentKey]))
	if err != nil {
		return err
	}
	g.client = client
	g.model = client.GenerativeModel(g.modelName)
	g.model.SetTemperature(0.1)
	g.model.SetTopP(0.85)
	g.model.SetMaxOutputTokens(512)
	return nil
}

func (g *GeminiGenerator) rotateAPIKey() error {
	g.mu.Lock()
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
	if err := g.client.Close(); err != nil {
		g.mu.Unlock()
		return err
	}
	g.mu.Unlock()
	return g.initClient()
}

func (g *GeminiGenerator) Model() string {
	return g.modelName
}

func (g *GeminiGenerator) Generate(ctx context.Context, query string, contextDocs []types.ScoredResult, includeSources bool) (*types.GenerateResult, error) {
	prompt := BuildRAGPrompt(g.department, query, contextDocs)

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		// Try the next API key before giving up.
		if rerr := g.rotateAPIKey(); rerr != nil {
			return nil, rerr
		}
		resp, err = g.model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			return nil, err
		}
	}
	if len(resp.Candidates) == 0 {
		return nil, errors.New("no response generated")
	}

	var content strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				content.WriteString(string(text))
			}
		}
	}

	return &types.GenerateResult{
		Response:      strings.TrimSpace(content.String()),
		ModelUsed:     g.modelName,
		ContextChunks: len(contextDocs),
	}, nil
}

package service

import (
	"context"
	"errors"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/askcse/deptbot-be/types"
)

// OpenAIGenerator answers queries through an OpenAI-compatible chat
// completion endpoint. Temperature is kept very low for factual accuracy.
type OpenAIGenerator struct {
	client     *openai.Client
	model      string
	department string
}

func NewOpenAIGenerator(baseURL, apiKey, model, department string) *OpenAIGenerator {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIGenerator{
		client:     openai.NewClientWithConfig(config),
		model:      model,
		department: department,
	}
}

func (g *OpenAIGenerator) Model() string {
	return g.model
}

func (g *OpenAIGenerator) Generate(ctx context.Context, query string, contextDocs []types.ScoredResult, includeSources bool) (*types.GenerateResult, error) {
	prompt := BuildRAGPrompt(g.department, query, contextDocs)

	resp, err := g.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: g.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.1,
			TopP:        0.85,
			MaxTokens:   512,
		},
	)
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("no response generated")
	}

	return &types.GenerateResult{
		Response:      strings.TrimSpace(resp.Choices[0].Message.Content),
		ModelUsed:     g.model,
		ContextChunks: len(contextDocs),
	}, nil
}

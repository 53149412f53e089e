package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

const (
	// Short, factual answers only; the prompt asks for 1-3 sentences.
	generationMaxTokens = 96
	// Analog of a repetition penalty for API-served models.
	generationFrequencyPenalty = 0.3
)

// OpenAIGenerator produces answers through an OpenAI-compatible completion
// endpoint, typically a local inference server hosting the generation model.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

func NewOpenAIGenerator(baseURL, apiKey, model string) *OpenAIGenerator {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIGenerator{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

// Generate decodes greedily: temperature zero, top-p one, bounded new-token
// budget. The raw continuation is returned; answer extraction happens in
// CleanGeneratedAnswer.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateCompletion(ctx, openai.CompletionRequest{
		Model:            g.model,
		Prompt:           prompt,
		MaxTokens:        generationMaxTokens,
		Temperature:      0,
		TopP:             1,
		FrequencyPenalty: generationFrequencyPenalty,
	})
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response generated")
	}
	return resp.Choices[0].Text, nil
}

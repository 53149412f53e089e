package service

import (
	"context"

	"github.com/aguhub/rag-chatbot-be/types"
)

// Generator produces a continuation for a grounding prompt. Implementations
// must decode greedily so a fixed prompt and model version yield a fixed
// answer.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ChatService is the query-side surface the HTTP and websocket handlers
// depend on.
type ChatService interface {
	Chat(ctx context.Context, query string) (string, []types.SourceInfo, error)
}

// RetrieveService exposes raw retrieval for the search endpoint.
type RetrieveService interface {
	Retrieve(ctx context.Context, query string, k int) ([]string, []types.SourceInfo, error)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/aguhub/rag-chatbot-be/database"
	"github.com/aguhub/rag-chatbot-be/types"
)

const defaultTopK = 5

// RAGService orchestrates one question-answering request: retrieve evidence,
// resolve the language mismatch between question and evidence, assemble the
// grounding prompt, generate and extract the answer.
//
// The service is constructed once at startup and never mutated afterwards;
// requests share no per-request state, so it is safe for concurrent use.
// Collaborators that failed to load at startup are nil and trip
// ErrNotInitialized only when a request actually needs them.
type RAGService struct {
	store      database.VectorStore
	embedder   Embedder
	generator  Generator
	translator *TranslateService
	topK       int
	genTimeout time.Duration
}

func NewRAGService(
	store database.VectorStore,
	embedder Embedder,
	generator Generator,
	translator *TranslateService,
	topK int,
	genTimeout time.Duration,
) *RAGService {
	if topK <= 0 {
		topK = defaultTopK
	}
	if translator == nil {
		translator = NewTranslateService(nil, nil)
	}
	return &RAGService{
		store:      store,
		embedder:   embedder,
		generator:  generator,
		translator: translator,
		topK:       topK,
		genTimeout: genTimeout,
	}
}

// Retrieve embeds the query, asks the store for the k nearest chunks and
// deduplicates their provenance into a source list. Chunk texts come back in
// descending similarity order; sources keep first-seen relevance order, with
// records suppressed once their full field tuple has been emitted.
//
// An empty result means "no knowledge available", not an error.
func (s *RAGService) Retrieve(ctx context.Context, query string, k int) ([]string, []types.SourceInfo, error) {
	if s.store == nil || s.embedder == nil {
		return nil, nil, types.ErrNotInitialized
	}
	if k <= 0 {
		k = defaultTopK
	}

	embeddings, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to embed query: %w", err)
	}

	results, err := s.store.QueryNearest(ctx, embeddings[0], k)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query vector store: %w", err)
	}

	chunks := make([]string, 0, len(results))
	sources := make([]types.SourceInfo, 0, len(results))
	seen := make(map[string]struct{})
	for _, r := range results {
		chunks = append(chunks, r.Text)

		info := sourceInfoFromMetadata(r.Metadata)
		key := info.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		sources = append(sources, info)
	}
	return chunks, sources, nil
}

// Chat runs the full query pipeline. Stages execute strictly sequentially:
// each stage's output is the next stage's required input.
func (s *RAGService) Chat(ctx context.Context, query string) (string, []types.SourceInfo, error) {
	chunks, sources, err := s.Retrieve(ctx, query, s.topK)
	if err != nil {
		return "", nil, err
	}

	if len(chunks) == 0 {
		log.Println("No context retrieved; returning fallback directly")
		return FallbackMessage, []types.SourceInfo{}, nil
	}

	questionLang := DetectLang(query)
	log.Printf("Detected question language: %s", questionLang)

	translated := s.translator.ResolveChunks(ctx, questionLang, chunks)

	prompt := BuildPrompt(query, translated)

	answer, err := s.generate(ctx, prompt)
	if err != nil {
		return "", nil, err
	}
	return answer, sources, nil
}

func (s *RAGService) generate(ctx context.Context, prompt string) (string, error) {
	if s.generator == nil {
		return "", types.ErrNotInitialized
	}

	if s.genTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.genTimeout)
		defer cancel()
	}

	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", types.ErrGenerationTimeout
		}
		return "", fmt.Errorf("failed to generate answer: %w", err)
	}
	return CleanGeneratedAnswer(raw), nil
}

func sourceInfoFromMetadata(meta types.ChunkMetadata) types.SourceInfo {
	source := meta.Source
	if source == "" {
		source = "Unknown"
	}
	return types.SourceInfo{
		Source:    source,
		Page:      meta.Page,
		Paragraph: meta.Paragraph,
		Type:      meta.Type,
		Lang:      meta.Lang,
	}
}

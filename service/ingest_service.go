package service

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aguhub/rag-chatbot-be/database"
	"github.com/aguhub/rag-chatbot-be/types"
	"github.com/aguhub/rag-chatbot-be/utils"
)

// IngestService is the offline store builder: it loads the scraped and
// parsed document files, chunks them, embeds the chunks and writes them to
// the vector store. It never runs concurrently with query traffic.
type IngestService struct {
	chunker   *ChunkService
	embedder  Embedder
	store     database.VectorStore
	batchSize int
}

func NewIngestService(chunker *ChunkService, embedder Embedder, store database.VectorStore, batchSize int) *IngestService {
	if batchSize <= 0 {
		batchSize = 32
	}
	return &IngestService{
		chunker:   chunker,
		embedder:  embedder,
		store:     store,
		batchSize: batchSize,
	}
}

// LoadDocuments reads JSON arrays of document records from the given paths.
// Missing files are skipped with a log line; a present but malformed file is
// an error.
func (s *IngestService) LoadDocuments(paths ...string) ([]types.Document, error) {
	var all []types.Document
	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			log.Printf("Document file %s not found, skipping", path)
			continue
		}
		var docs []types.Document
		if err := utils.ReadJSONFile(path, &docs); err != nil {
			return nil, err
		}
		log.Printf("Loaded %d documents from %s", len(docs), path)
		all = append(all, docs...)
	}
	log.Printf("Total documents to process: %d", len(all))
	return all, nil
}

// Ingest chunks the documents, embeds every chunk text with the same
// normalization convention the retriever uses, and writes the results to the
// store in batches. Returns the number of chunks written.
//
// Re-running with the same document set produces new IDs because of the
// run-global counter; duplicate detection is deliberately not provided.
func (s *IngestService) Ingest(ctx context.Context, docs []types.Document) (int, error) {
	chunks := s.chunker.ChunkDocuments(docs)
	if len(chunks) == 0 {
		log.Println("No chunks to process")
		return 0, nil
	}
	log.Printf("Total chunks created after splitting: %d (skipped %d empty documents)", len(chunks), s.chunker.Skipped())

	vectors := make([]database.StoredVector, 0, len(chunks))
	for start := 0; start < len(chunks); start += s.batchSize {
		end := start + s.batchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		texts := make([]string, 0, end-start)
		for _, chunk := range chunks[start:end] {
			texts = append(texts, chunk.Text)
		}

		embeddings, err := s.embedder.Embed(ctx, texts)
		if err != nil {
			return 0, fmt.Errorf("failed to embed batch %d-%d: %w", start, end, err)
		}

		for i, chunk := range chunks[start:end] {
			vectors = append(vectors, database.StoredVector{
				ID:        chunk.ID,
				Embedding: embeddings[i],
				Text:      chunk.Text,
				Metadata:  chunk.Metadata,
			})
		}
	}

	if err := s.store.BatchInsert(ctx, vectors); err != nil {
		return 0, fmt.Errorf("failed to store chunks: %w", err)
	}
	return len(vectors), nil
}

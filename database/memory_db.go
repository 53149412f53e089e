package database

import (
	"context"
	"sort"
	"sync"

	"github.com/aguhub/rag-chatbot-be/utils"
)

// MemoryStore is a brute-force in-memory vector store. It backs tests and
// local runs without a Weaviate instance; similarity is the dot product,
// which equals cosine similarity because stored vectors are L2-normalized.
type MemoryStore struct {
	mu      sync.RWMutex
	vectors []StoredVector
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) BatchInsert(ctx context.Context, vectors []StoredVector) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vectors = append(s.vectors, vectors...)
	return nil
}

func (s *MemoryStore) QueryNearest(ctx context.Context, embedding []float32, limit int) ([]QueryResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 5
	}

	scored := make([]QueryResult, 0, len(s.vectors))
	for _, v := range s.vectors {
		sim := utils.Dot(v.Embedding, embedding)
		scored = append(scored, QueryResult{
			Text:     v.Text,
			Metadata: v.Metadata,
			Distance: 1 - sim,
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Distance < scored[j].Distance
	})
	if limit > len(scored) {
		limit = len(scored)
	}
	return scored[:limit], nil
}

func (s *MemoryStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vectors = nil
	return nil
}

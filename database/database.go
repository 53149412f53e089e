package database

import (
	"context"

	"github.com/aguhub/rag-chatbot-be/types"
)

// StoredVector is the persisted unit: one chunk plus its L2-normalized
// embedding. Built 1:1 from a chunk during ingestion.
type StoredVector struct {
	ID        string
	Embedding []float32
	Text      string
	Metadata  types.ChunkMetadata
}

// QueryResult is one nearest-neighbor hit, in descending similarity order.
type QueryResult struct {
	Text     string
	Metadata types.ChunkMetadata
	Distance float32
}

// VectorStore persists chunk vectors and answers nearest-neighbor queries.
// The store is written only by the offline ingestion job and is read-only
// at query time, so no locking discipline is required by callers.
type VectorStore interface {
	BatchInsert(ctx context.Context, vectors []StoredVector) error
	QueryNearest(ctx context.Context, embedding []float32, limit int) ([]QueryResult, error)
	Reset(ctx context.Context) error
}

package database

import (
	"context"
	"testing"

	"github.com/aguhub/rag-chatbot-be/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreQueryNearestOrdersBySimilarity(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.BatchInsert(ctx, []StoredVector{
		{ID: "orthogonal", Embedding: []float32{0, 1}, Text: "orthogonal", Metadata: types.ChunkMetadata{Source: "a"}},
		{ID: "aligned", Embedding: []float32{1, 0}, Text: "aligned", Metadata: types.ChunkMetadata{Source: "b"}},
		{ID: "opposite", Embedding: []float32{-1, 0}, Text: "opposite", Metadata: types.ChunkMetadata{Source: "c"}},
	}))

	results, err := store.QueryNearest(ctx, []float32{1, 0}, 3)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "aligned", results[0].Text)
	assert.Equal(t, "orthogonal", results[1].Text)
	assert.Equal(t, "opposite", results[2].Text)
	assert.InDelta(t, 0.0, results[0].Distance, 1e-6)
	assert.InDelta(t, 1.0, results[1].Distance, 1e-6)
	assert.InDelta(t, 2.0, results[2].Distance, 1e-6)
}

func TestMemoryStoreQueryNearestRespectsLimit(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.BatchInsert(ctx, []StoredVector{
		{ID: "1", Embedding: []float32{1, 0}, Text: "one"},
		{ID: "2", Embedding: []float32{1, 0}, Text: "two"},
		{ID: "3", Embedding: []float32{1, 0}, Text: "three"},
	}))

	results, err := store.QueryNearest(ctx, []float32{1, 0}, 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestMemoryStoreEmptyQuery(t *testing.T) {
	store := NewMemoryStore()

	results, err := store.QueryNearest(context.Background(), []float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestMemoryStoreReset(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.BatchInsert(ctx, []StoredVector{
		{ID: "1", Embedding: []float32{1, 0}, Text: "one"},
	}))
	require.NoError(t, store.Reset(ctx))

	results, err := store.QueryNearest(ctx, []float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

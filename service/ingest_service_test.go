package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/aguhub/rag-chatbot-be/database"
	"github.com/aguhub/rag-chatbot-be/types"
	"github.com/aguhub/rag-chatbot-be/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingEmbedder returns a unit vector per text and tracks batch sizes.
type countingEmbedder struct {
	batches []int
	err     error
}

func (c *countingEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	c.batches = append(c.batches, len(texts))
	if c.err != nil {
		return nil, c.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0, 0}
	}
	return out, nil
}

func TestIngestStoresEveryChunkInBatches(t *testing.T) {
	store := database.NewMemoryStore()
	embedder := &countingEmbedder{}
	ingest := NewIngestService(NewChunkService(1000, 200), embedder, store, 2)

	docs := []types.Document{
		{Content: "First policy block.", Source: "a"},
		{Content: "Second policy block.", Source: "b"},
		{Content: "Third policy block.", Source: "c"},
	}
	written, err := ingest.Ingest(context.Background(), docs)
	require.NoError(t, err)
	assert.Equal(t, 3, written)
	assert.Equal(t, []int{2, 1}, embedder.batches)

	results, err := store.QueryNearest(context.Background(), []float32{1, 0, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestIngestNoDocumentsIsNotAnError(t *testing.T) {
	ingest := NewIngestService(NewChunkService(1000, 200), &countingEmbedder{}, database.NewMemoryStore(), 32)

	written, err := ingest.Ingest(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, written)
}

func TestIngestPropagatesEmbedderFailure(t *testing.T) {
	embedder := &countingEmbedder{err: errors.New("endpoint down")}
	ingest := NewIngestService(NewChunkService(1000, 200), embedder, database.NewMemoryStore(), 32)

	_, err := ingest.Ingest(context.Background(), []types.Document{{Content: "text", Source: "a"}})
	assert.Error(t, err)
}

func TestLoadDocumentsSkipsMissingFiles(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "scraped_content.json")
	require.NoError(t, utils.WriteJSONFile(present, []types.Document{
		{Content: "hello", Source: "site"},
	}))

	ingest := NewIngestService(NewChunkService(1000, 200), &countingEmbedder{}, database.NewMemoryStore(), 32)
	docs, err := ingest.LoadDocuments(present, filepath.Join(dir, "parsed_faqs.json"))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "site", docs[0].Source)
}

func TestLoadDocumentsMalformedFileIsAnError(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "scraped_content.json")
	require.NoError(t, utils.WriteJSONFile(bad, map[string]string{"not": "an array"}))

	ingest := NewIngestService(NewChunkService(1000, 200), &countingEmbedder{}, database.NewMemoryStore(), 32)
	_, err := ingest.LoadDocuments(bad)
	assert.Error(t, err)
}

package database

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aguhub/rag-chatbot-be/config"
	"github.com/aguhub/rag-chatbot-be/types"
	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"
)

const BATCH_SIZE = 200

var (
	POLICY_CHUNK_CLASS        = "PolicyChunk"
	POLICY_CHUNK_CLASS_OBJECT = &models.Class{
		Class: POLICY_CHUNK_CLASS,
		Properties: []*models.Property{
			{Name: "chunkId", DataType: []string{"text"}},
			{Name: "content", DataType: []string{"text"}},
			{Name: "source", DataType: []string{"text"}},
			{Name: "page", DataType: []string{"int"}},
			{Name: "paragraph", DataType: []string{"int"}},
			{Name: "sectionType", DataType: []string{"text"}},
			{Name: "lang", DataType: []string{"text"}},
		},
		// Embeddings are computed by our own embedder and supplied per object.
		Vectorizer:      "none",
		VectorIndexType: "hnsw",
	}
)

// WeaviateStore persists policy chunks in a Weaviate collection and serves
// nearest-neighbor queries over the supplied vectors.
type WeaviateStore struct {
	client *weaviate.Client
}

func NewWeaviateStore(cfg config.WeaviateStoreConfig) (*WeaviateStore, error) {
	var scheme string
	if strings.Contains(cfg.Host, "https") {
		scheme = "https"
	} else {
		scheme = "http"
	}
	host := strings.TrimPrefix(cfg.Host, scheme+"://")
	clientCfg := weaviate.Config{
		Host:   host,
		Scheme: scheme,
	}
	if cfg.APIKey != "" {
		clientCfg.AuthConfig = auth.ApiKey{
			Value: cfg.APIKey,
		}
	}
	client, err := weaviate.NewClient(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create weaviate client: %v", err)
	}

	store := &WeaviateStore{client: client}
	if err := store.ensureClass(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *WeaviateStore) ensureClass(ctx context.Context) error {
	schema, err := s.client.Schema().Getter().Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to get schema: %v", err)
	}
	for _, class := range schema.Classes {
		if class.Class == POLICY_CHUNK_CLASS {
			return nil
		}
	}
	if err := s.client.Schema().ClassCreator().WithClass(POLICY_CHUNK_CLASS_OBJECT).Do(ctx); err != nil {
		return fmt.Errorf("failed to create %s class: %v", POLICY_CHUNK_CLASS, err)
	}
	return nil
}

// Reset drops and recreates the chunk collection. Used by the ingestion job
// when rebuilding the store from scratch.
func (s *WeaviateStore) Reset(ctx context.Context) error {
	err := s.client.Schema().ClassDeleter().WithClassName(POLICY_CHUNK_CLASS).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete %s class: %v", POLICY_CHUNK_CLASS, err)
	}
	return s.ensureClass(ctx)
}

// BatchInsert writes stored vectors in fixed-size batches to bound peak
// memory. Batch boundaries have no semantic meaning.
func (s *WeaviateStore) BatchInsert(ctx context.Context, vectors []StoredVector) error {
	total := len(vectors)
	for i := 0; i < total; i += BATCH_SIZE {
		end := i + BATCH_SIZE
		if end > total {
			end = total
		}

		batcher := s.client.Batch().ObjectsBatcher()
		for j := i; j < end; j++ {
			batcher = batcher.WithObjects(&models.Object{
				Class:      POLICY_CHUNK_CLASS,
				Properties: chunkProperties(vectors[j]),
				Vector:     vectors[j].Embedding,
			})
		}

		if _, err := batcher.Do(ctx); err != nil {
			return fmt.Errorf("failed to insert batch %d-%d: %v", i, end, err)
		}
		log.Printf("Inserted batch %d-%d of %d chunks", i, end, total)
	}
	return nil
}

// chunkProperties builds the property map for one chunk. Absent metadata
// fields are left out of the map entirely; the store treats a missing key
// differently from a key with a null value when filtering.
func chunkProperties(v StoredVector) map[string]interface{} {
	properties := map[string]interface{}{
		"chunkId": v.ID,
		"content": v.Text,
		"source":  v.Metadata.Source,
	}
	if v.Metadata.Page != nil {
		properties["page"] = *v.Metadata.Page
	}
	if v.Metadata.Paragraph != nil {
		properties["paragraph"] = *v.Metadata.Paragraph
	}
	if v.Metadata.Type != "" {
		properties["sectionType"] = v.Metadata.Type
	}
	if v.Metadata.Lang != "" {
		properties["lang"] = v.Metadata.Lang
	}
	return properties
}

// QueryNearest returns the limit stored chunks closest to the given vector,
// most similar first. An empty result is not an error.
func (s *WeaviateStore) QueryNearest(ctx context.Context, embedding []float32, limit int) ([]QueryResult, error) {
	fields := []graphql.Field{
		{Name: "chunkId"},
		{Name: "content"},
		{Name: "source"},
		{Name: "page"},
		{Name: "paragraph"},
		{Name: "sectionType"},
		{Name: "lang"},
		{Name: "_additional", Fields: []graphql.Field{{Name: "distance"}}},
	}

	nearVector := s.client.GraphQL().NearVectorArgBuilder().
		WithVector(embedding)

	result, err := s.client.GraphQL().Get().
		WithClassName(POLICY_CHUNK_CLASS).
		WithFields(fields...).
		WithNearVector(nearVector).
		WithLimit(limit).
		Do(ctx)
	if err != nil {
		return nil, err
	}
	if result.Errors != nil {
		return nil, fmt.Errorf("query failed: %v", result.Errors[0].Message)
	}

	var results []QueryResult
	if data, ok := result.Data["Get"].(map[string]interface{})[POLICY_CHUNK_CLASS].([]interface{}); ok {
		for _, item := range data {
			obj, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			qr := QueryResult{
				Text:     stringProp(obj, "content"),
				Metadata: metadataFromProperties(obj),
			}
			if additional, ok := obj["_additional"].(map[string]interface{}); ok {
				if d, ok := additional["distance"].(float64); ok {
					qr.Distance = float32(d)
				}
			}
			results = append(results, qr)
		}
	}
	return results, nil
}

func metadataFromProperties(obj map[string]interface{}) types.ChunkMetadata {
	meta := types.ChunkMetadata{
		Source: stringProp(obj, "source"),
		Type:   stringProp(obj, "sectionType"),
		Lang:   stringProp(obj, "lang"),
	}
	meta.Page = intProp(obj, "page")
	meta.Paragraph = intProp(obj, "paragraph")
	return meta
}

func stringProp(obj map[string]interface{}, name string) string {
	if v, ok := obj[name].(string); ok {
		return v
	}
	return ""
}

func intProp(obj map[string]interface{}, name string) *int {
	if v, ok := obj[name].(float64); ok {
		n := int(v)
		return &n
	}
	return nil
}

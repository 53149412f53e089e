package service

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/aguhub/rag-chatbot-be/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkDocumentsShortDocumentIsOneChunk(t *testing.T) {
	chunker := NewChunkService(1000, 200)

	page := 3
	docs := []types.Document{
		{
			Content: "AGU is a public university in Kayseri.",
			Source:  "about.pdf",
			Page:    &page,
			Type:    types.SectionParagraph,
			Lang:    types.LangEnglish,
		},
	}

	chunks := chunker.ChunkDocuments(docs)
	require.Len(t, chunks, 1)
	assert.Equal(t, "doc0_chunk0_global0", chunks[0].ID)
	assert.Equal(t, docs[0].Content, chunks[0].Text)
	assert.Equal(t, "about.pdf", chunks[0].Metadata.Source)
	require.NotNil(t, chunks[0].Metadata.Page)
	assert.Equal(t, 3, *chunks[0].Metadata.Page)
	assert.Nil(t, chunks[0].Metadata.Paragraph)
	assert.Equal(t, types.SectionParagraph, chunks[0].Metadata.Type)
}

func TestChunkDocumentsIDsUniqueAcrossIdenticalDocuments(t *testing.T) {
	chunker := NewChunkService(50, 10)

	content := strings.Repeat("The exchange program accepts applications every spring. ", 10)
	docs := []types.Document{
		{Content: content, Source: "a"},
		{Content: content, Source: "b"},
	}

	chunks := chunker.ChunkDocuments(docs)
	require.Greater(t, len(chunks), 2)

	seen := make(map[string]struct{}, len(chunks))
	for _, c := range chunks {
		_, dup := seen[c.ID]
		assert.False(t, dup, "duplicate chunk ID %s", c.ID)
		seen[c.ID] = struct{}{}
	}
}

func TestChunkDocumentsSkipsEmptyContent(t *testing.T) {
	chunker := NewChunkService(1000, 200)

	docs := []types.Document{
		{Content: "", Source: "empty"},
		{Content: "   \n\t ", Source: "whitespace"},
		{Content: "Real content.", Source: "real"},
	}

	chunks := chunker.ChunkDocuments(docs)
	require.Len(t, chunks, 1)
	assert.Equal(t, "real", chunks[0].Metadata.Source)
	assert.Equal(t, 2, chunker.Skipped())
}

func TestChunkDocumentsDefaultsMissingSource(t *testing.T) {
	chunker := NewChunkService(1000, 200)

	chunks := chunker.ChunkDocuments([]types.Document{{Content: "no source set"}})
	require.Len(t, chunks, 1)
	assert.Equal(t, "Unknown", chunks[0].Metadata.Source)
}

func TestSplitTextRespectsSizeAndOverlaps(t *testing.T) {
	chunker := NewChunkService(80, 20)

	var b strings.Builder
	for i := 0; i < 30; i++ {
		b.WriteString("Students submit transcripts before enrolling. ")
	}
	parts := chunker.splitText(b.String())

	require.Greater(t, len(parts), 1)
	for _, p := range parts {
		assert.LessOrEqual(t, len(p), 80)
		assert.NotEmpty(t, p)
	}
}

func TestSplitTextPrefersParagraphBreak(t *testing.T) {
	chunker := NewChunkService(60, 10)

	text := "First paragraph about admissions here\n\nSecond paragraph continues with more policy details afterwards"
	parts := chunker.splitText(text)

	require.GreaterOrEqual(t, len(parts), 2)
	assert.Equal(t, "First paragraph about admissions here", parts[0])
}

func TestSplitTextPrefersSentenceEnd(t *testing.T) {
	chunker := NewChunkService(60, 10)

	text := "The first sentence ends right here. The second sentence keeps going well past the window size limit."
	parts := chunker.splitText(text)

	require.GreaterOrEqual(t, len(parts), 2)
	assert.Equal(t, "The first sentence ends right here.", parts[0])
}

func TestSplitTextHardCutsUnbrokenText(t *testing.T) {
	chunker := NewChunkService(40, 5)

	text := strings.Repeat("x", 100)
	parts := chunker.splitText(text)

	require.Greater(t, len(parts), 1)
	assert.Equal(t, strings.Repeat("x", 40), parts[0])
}

func TestSplitTextHardCutKeepsRunesIntact(t *testing.T) {
	// Odd window and overlap sizes so byte positions land mid-rune in
	// unbroken two-byte Turkish text.
	chunker := NewChunkService(41, 7)

	text := strings.Repeat("ş", 60)
	parts := chunker.splitText(text)

	require.Greater(t, len(parts), 1)
	for _, p := range parts {
		assert.True(t, utf8.ValidString(p), "chunk holds a split rune: %q", p)
		assert.LessOrEqual(t, len(p), 41)
	}
	assert.Equal(t, strings.Repeat("ş", 20), parts[0])
}

func TestGlobalCounterPersistsAcrossCalls(t *testing.T) {
	chunker := NewChunkService(1000, 200)

	first := chunker.ChunkDocuments([]types.Document{{Content: "one", Source: "a"}})
	second := chunker.ChunkDocuments([]types.Document{{Content: "two", Source: "b"}})

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, "doc0_chunk0_global0", first[0].ID)
	assert.Equal(t, "doc0_chunk0_global1", second[0].ID)
}

package service

import (
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/aguhub/rag-chatbot-be/types"
)

// ChunkService splits source documents into overlapping text windows for
// storage. Windows break preferentially at paragraph, sentence and word
// boundaries so facts are not severed mid-sentence, which would corrupt the
// grounding context at query time.
type ChunkService struct {
	chunkSize int
	overlap   int

	globalIdx int
	skipped   int
}

func NewChunkService(chunkSize, overlap int) *ChunkService {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = chunkSize / 5
	}
	return &ChunkService{
		chunkSize: chunkSize,
		overlap:   overlap,
	}
}

// ChunkDocuments splits every document into chunks with stable, run-unique
// IDs. Documents with no content are skipped and counted, not failed.
//
// The ID combines the document ordinal, the chunk ordinal within the
// document, and a run-global counter. The counter keeps IDs unique even when
// the first two components collide across re-runs with different document
// ordering; content hashing is deliberately not used because the sources are
// never deduplicated by content.
func (s *ChunkService) ChunkDocuments(docs []types.Document) []types.Chunk {
	var chunks []types.Chunk
	for docIdx, doc := range docs {
		if strings.TrimSpace(doc.Content) == "" {
			s.skipped++
			log.Printf("Skipping document with no content (source: %s)", doc.Source)
			continue
		}

		source := doc.Source
		if source == "" {
			source = "Unknown"
		}

		for chunkIdx, text := range s.splitText(doc.Content) {
			chunks = append(chunks, types.Chunk{
				ID:   fmt.Sprintf("doc%d_chunk%d_global%d", docIdx, chunkIdx, s.globalIdx),
				Text: text,
				Metadata: types.ChunkMetadata{
					Source:    source,
					Page:      doc.Page,
					Paragraph: doc.Paragraph,
					Type:      doc.Type,
					Lang:      doc.Lang,
				},
			})
			s.globalIdx++
		}
	}
	return chunks
}

// Skipped reports how many documents were dropped for having no content.
func (s *ChunkService) Skipped() int {
	return s.skipped
}

// splitText cuts text into windows of at most chunkSize characters with
// overlap characters repeated between consecutive windows. Text that fits in
// a single window is returned untouched.
func (s *ChunkService) splitText(text string) []string {
	if len(text) <= s.chunkSize {
		return []string{text}
	}

	var parts []string
	pos := 0
	for pos < len(text) {
		end := pos + s.chunkSize
		if end >= len(text) {
			if part := strings.TrimSpace(text[pos:]); part != "" {
				parts = append(parts, part)
			}
			break
		}

		cut := s.findBreak(text, pos, end)
		if part := strings.TrimSpace(text[pos:cut]); part != "" {
			parts = append(parts, part)
		}

		next := cut - s.overlap
		if next <= pos {
			// Overlap would stall the scan; give it up for this window.
			next = cut
		}
		for next < len(text) && !utf8.RuneStart(text[next]) {
			next++
		}
		pos = next
	}
	return parts
}

// findBreak picks a cut position in (start, limit], preferring a paragraph
// break, then a sentence end, then a word boundary, before a hard cut.
func (s *ChunkService) findBreak(text string, start, limit int) int {
	window := text[start:limit]

	if i := strings.LastIndex(window, "\n\n"); i > 0 {
		return start + i
	}
	for i := limit - 1; i > start; i-- {
		if text[i] == '.' || text[i] == '?' || text[i] == '!' {
			return i + 1
		}
	}
	if i := strings.LastIndexByte(window, ' '); i > 0 {
		return start + i
	}
	// Hard cut, backed off so a multibyte rune is never split.
	cut := limit
	for cut > start && !utf8.RuneStart(text[cut]) {
		cut--
	}
	if cut == start {
		return limit
	}
	return cut
}

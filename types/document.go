package types

import "strconv"

// Section types attached by the web scraper.
const (
	SectionHeading   = "heading"
	SectionParagraph = "paragraph"
	SectionListItem  = "list_item"
)

// Supported language codes.
const (
	LangEnglish = "en"
	LangTurkish = "tr"
)

// Document is a single block of source text produced by the scraping and
// parsing collaborators. Page and Paragraph are pointers so that "absent"
// survives the JSON round trip; downstream code must never invent values
// for fields the source did not provide.
type Document struct {
	Content   string `json:"content"`
	Source    string `json:"source"`
	Page      *int   `json:"page,omitempty"`
	Paragraph *int   `json:"paragraph,omitempty"`
	Type      string `json:"type,omitempty"`
	Lang      string `json:"lang,omitempty"`
}

// Chunk is the unit of retrieval: a bounded slice of a document's text plus
// its provenance. Chunks are created once during ingestion and never mutated.
type Chunk struct {
	ID       string
	Text     string
	Metadata ChunkMetadata
}

// ChunkMetadata carries only the provenance fields that were present on the
// source document. A nil pointer or empty string means the field was absent
// and must not be persisted as a key in the store.
type ChunkMetadata struct {
	Source    string
	Page      *int
	Paragraph *int
	Type      string
	Lang      string
}

// SourceInfo is the provenance record returned with a chat answer. Within one
// response, entries are unique by the full field tuple.
type SourceInfo struct {
	Source    string `json:"source"`
	Page      *int   `json:"page,omitempty"`
	Paragraph *int   `json:"paragraph,omitempty"`
	Type      string `json:"type,omitempty"`
	Lang      string `json:"lang,omitempty"`
}

// Key returns the full field tuple as a string, used to deduplicate sources
// while preserving first-seen order.
func (s SourceInfo) Key() string {
	return s.Source + "|" + formatOptionalInt(s.Page) + "|" + formatOptionalInt(s.Paragraph) + "|" + s.Type + "|" + s.Lang
}

func formatOptionalInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

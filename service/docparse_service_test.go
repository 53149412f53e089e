package service

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const docxDocumentXML = `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p>
      <w:r><w:t>Frequently asked questions about </w:t></w:r>
      <w:r><w:t>student housing.</w:t></w:r>
    </w:p>
    <w:p>
      <w:r><w:t>Rooms are assigned in August.</w:t></w:r>
    </w:p>
    <w:p>
      <w:r><w:t>tiny</w:t></w:r>
    </w:p>
  </w:body>
</w:document>`

func writeTestDocx(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	entry, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = entry.Write([]byte(docxDocumentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return path
}

func TestExtractDocxParagraphsJoinsRuns(t *testing.T) {
	paragraphs, err := extractDocxParagraphs(strings.NewReader(docxDocumentXML))
	require.NoError(t, err)
	require.Len(t, paragraphs, 3)
	assert.Equal(t, "Frequently asked questions about student housing.", paragraphs[0])
	assert.Equal(t, "Rooms are assigned in August.", paragraphs[1])
	assert.Equal(t, "tiny", paragraphs[2])
}

func TestPageRecordsCarryPageNumbers(t *testing.T) {
	text := "Housing applications open in July.\n\nshort\n\nRooms are assigned in August."

	records := pageRecords("housing.pdf", 4, text)
	require.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, "housing.pdf", r.Source)
		require.NotNil(t, r.Page)
		assert.Equal(t, 4, *r.Page)
	}
	assert.Equal(t, "Housing applications open in July.", records[0].Content)
	assert.Equal(t, "Rooms are assigned in August.", records[1].Content)
}

func TestParseDOCXDropsTinyParagraphs(t *testing.T) {
	dir := t.TempDir()
	path := writeTestDocx(t, dir, "faq.docx")

	parser := NewDocParseService()
	records, err := parser.ParseDOCX(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "faq.docx", records[0].Source)
	assert.Equal(t, "Frequently asked questions about student housing.", records[0].Content)
	assert.Nil(t, records[0].Page)
}

func TestParseDOCXWithoutDocumentXML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	_, err = zw.Create("unrelated.txt")
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	parser := NewDocParseService()
	_, err = parser.ParseDOCX(path)
	assert.Error(t, err)
}

func TestParseDirSkipsUnsupportedAndBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	writeTestDocx(t, dir, "faq.docx")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "corrupt.docx"), []byte("not a zip"), 0o644))

	parser := NewDocParseService()
	records, err := parser.ParseDir(dir)
	require.NoError(t, err)
	assert.Len(t, records, 2, "only the valid DOCX contributes records")
}

func TestParseDirMissingDirectory(t *testing.T) {
	parser := NewDocParseService()
	_, err := parser.ParseDir(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)
}

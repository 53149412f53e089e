package service

import (
	"archive/zip"
	"bufio"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/aguhub/rag-chatbot-be/types"
)

// DocParseService turns office documents (PDF, DOCX) into plain-text
// document records for ingestion. PDF extraction shells out to the poppler
// pdftotext utility page by page.
type DocParseService struct{}

func NewDocParseService() *DocParseService {
	return &DocParseService{}
}

// ParseDir parses every supported file in dir. Per-file failures are logged
// and skipped so one broken document cannot abort a batch.
func (s *DocParseService) ParseDir(dir string) ([]types.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var all []types.Document
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		var records []types.Document
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".pdf":
			records, err = s.ParsePDF(path)
		case ".docx":
			records, err = s.ParseDOCX(path)
		default:
			continue
		}
		if err != nil {
			log.Printf("Error parsing %s: %v", path, err)
			continue
		}
		all = append(all, records...)
	}
	return all, nil
}

// ParsePDF extracts text blocks from a PDF. Each paragraph-sized block
// becomes one document record with the filename as its source.
func (s *DocParseService) ParsePDF(path string) ([]types.Document, error) {
	log.Printf("Parsing PDF: %s", filepath.Base(path))

	totalPages, err := getNumPages(path)
	if err != nil {
		return nil, err
	}

	var records []types.Document
	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		text, err := extractPageText(path, pageNum)
		if err != nil {
			log.Printf("Warning: failed to extract text from page %d: %v", pageNum, err)
			continue
		}
		records = append(records, pageRecords(filepath.Base(path), pageNum, text)...)
	}
	return records, nil
}

// pageRecords splits one page's text into paragraph blocks and tags each
// record with its page number.
func pageRecords(source string, pageNum int, text string) []types.Document {
	var records []types.Document
	for _, block := range strings.Split(text, "\n\n") {
		cleaned := strings.Join(strings.Fields(block), " ")
		if len(cleaned) <= minContentLength {
			continue
		}
		page := pageNum
		records = append(records, types.Document{
			Source:  source,
			Content: cleaned,
			Page:    &page,
		})
	}
	return records
}

// extractPageText runs pdftotext for a single page.
func extractPageText(path string, pageNumber int) (string, error) {
	cmd := exec.Command("pdftotext",
		"-f", strconv.Itoa(pageNumber),
		"-l", strconv.Itoa(pageNumber),
		"-enc", "UTF-8", "-nopgbrk",
		path, "-")
	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("pdftotext failed for page %d: %w", pageNumber, err)
	}
	if trimmed := strings.TrimSpace(out.String()); trimmed != "" {
		return trimmed, nil
	}
	return "", fmt.Errorf("got nothing at page %d", pageNumber)
}

// getNumPages reads the page count from pdfinfo output.
func getNumPages(path string) (int, error) {
	cmd := exec.Command("pdfinfo", path)
	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("error running pdfinfo: %v", err)
	}

	re := regexp.MustCompile(`Pages:\s+(\d+)`)
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		if matches := re.FindStringSubmatch(scanner.Text()); len(matches) == 2 {
			return strconv.Atoi(matches[1])
		}
	}
	return 0, fmt.Errorf("unable to determine page count from pdfinfo")
}

// ParseDOCX extracts paragraphs from a DOCX file. The format is a zip
// archive whose word/document.xml holds text runs (w:t) grouped into
// paragraphs (w:p); no external tooling is needed.
func (s *DocParseService) ParseDOCX(path string) ([]types.Document, error) {
	log.Printf("Parsing DOCX: %s", filepath.Base(path))

	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer archive.Close()

	var docXML io.ReadCloser
	for _, f := range archive.File {
		if f.Name == "word/document.xml" {
			docXML, err = f.Open()
			if err != nil {
				return nil, fmt.Errorf("failed to open document.xml in %s: %w", path, err)
			}
			break
		}
	}
	if docXML == nil {
		return nil, fmt.Errorf("%s has no word/document.xml", path)
	}
	defer docXML.Close()

	paragraphs, err := extractDocxParagraphs(docXML)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document.xml in %s: %w", path, err)
	}

	var records []types.Document
	for _, para := range paragraphs {
		cleaned := strings.Join(strings.Fields(para), " ")
		if len(cleaned) <= minContentLength {
			continue
		}
		records = append(records, types.Document{
			Source:  filepath.Base(path),
			Content: cleaned,
		})
	}
	return records, nil
}

func extractDocxParagraphs(r io.Reader) ([]string, error) {
	decoder := xml.NewDecoder(r)

	var paragraphs []string
	var current strings.Builder
	inParagraph := false
	inText := false

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inParagraph = true
				current.Reset()
			case "t":
				inText = inParagraph
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				if inParagraph {
					paragraphs = append(paragraphs, current.String())
				}
				inParagraph = false
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}
	return paragraphs, nil
}

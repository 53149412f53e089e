package service

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/aguhub/rag-chatbot-be/config"
	"github.com/aguhub/rag-chatbot-be/types"
)

const (
	// Some university pages serve stale certificates; scraping tolerates them.
	scrapeTimeout    = 10 * time.Second
	scrapeDelay      = 1 * time.Second
	minContentLength = 10

	scrapeUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/91.0.4472.124 Safari/537.36"
)

// ScrapeService fetches configured university pages and extracts their main
// content block into document records for ingestion.
type ScrapeService struct {
	client *http.Client
}

func NewScrapeService() *ScrapeService {
	return &ScrapeService{
		client: &http.Client{
			Timeout: scrapeTimeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
	}
}

// ScrapeSite extracts headings, paragraphs and list items from the content
// block located by the site's CSS selector. Tiny fragments are dropped; each
// surviving element becomes one document record tagged with its section type
// and, when known, the site language.
func (s *ScrapeService) ScrapeSite(ctx context.Context, site config.ScrapeSite) ([]types.Document, error) {
	log.Printf("Scraping: %s", site.URL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, site.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", site.URL, err)
	}
	req.Header.Set("User-Agent", scrapeUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", site.URL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s returned status %d", site.URL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", site.URL, err)
	}

	block := doc.Find(site.Selector).First()
	if block.Length() == 0 {
		log.Printf("Warning: no content block matching %q at %s", site.Selector, site.URL)
		return nil, nil
	}

	var records []types.Document
	block.Find("p, li, h1, h2, h3, h4, h5, h6").Each(func(_ int, sel *goquery.Selection) {
		text := strings.Join(strings.Fields(sel.Text()), " ")
		if len(text) <= minContentLength {
			return
		}

		sectionType := types.SectionParagraph
		switch name := goquery.NodeName(sel); {
		case name == "li":
			sectionType = types.SectionListItem
		case strings.HasPrefix(name, "h"):
			sectionType = types.SectionHeading
		}

		records = append(records, types.Document{
			Source:  site.URL,
			Content: text,
			Type:    sectionType,
			Lang:    site.Lang,
		})
	})

	if len(records) == 0 {
		log.Printf("Warning: content block found at %s but it held no usable elements", site.URL)
	}
	return records, nil
}

// ScrapeAll scrapes every configured site with a politeness delay between
// requests. Per-site failures are logged and skipped.
func (s *ScrapeService) ScrapeAll(ctx context.Context, sites []config.ScrapeSite) []types.Document {
	var all []types.Document
	for i, site := range sites {
		if i > 0 {
			select {
			case <-time.After(scrapeDelay):
			case <-ctx.Done():
				return all
			}
		}
		records, err := s.ScrapeSite(ctx, site)
		if err != nil {
			log.Printf("Error scraping %s: %v", site.URL, err)
			continue
		}
		all = append(all, records...)
	}
	return all
}

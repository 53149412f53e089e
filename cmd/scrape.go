package cmd

import (
	"context"
	"log"
	"path/filepath"

	"github.com/aguhub/rag-chatbot-be/config"
	"github.com/aguhub/rag-chatbot-be/service"
	"github.com/aguhub/rag-chatbot-be/utils"
	"github.com/spf13/cobra"
)

// scrapeCmd represents the scrape command
var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape the configured university web pages",
	Long: `Fetches every page listed under scrape_sites in the config, extracts the
headings, paragraphs and list items of its main content block, and writes
the records to scraped_content.json in the data directory.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		if len(cfg.ScrapeSites) == 0 {
			log.Fatal("No scrape_sites configured")
		}

		log.Printf("Starting web scraping for %d site(s)...", len(cfg.ScrapeSites))
		scraper := service.NewScrapeService()
		records := scraper.ScrapeAll(context.Background(), cfg.ScrapeSites)

		outPath := filepath.Join(cfg.DataDir, "scraped_content.json")
		if err := utils.WriteJSONFile(outPath, records); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		log.Printf("Successfully scraped %d content block(s). Data saved to %s", len(records), outPath)
	},
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
}

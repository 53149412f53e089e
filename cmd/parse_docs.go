package cmd

import (
	"log"
	"path/filepath"

	"github.com/aguhub/rag-chatbot-be/config"
	"github.com/aguhub/rag-chatbot-be/service"
	"github.com/aguhub/rag-chatbot-be/types"
	"github.com/aguhub/rag-chatbot-be/utils"
	"github.com/spf13/cobra"
)

// parseDocsCmd represents the parse-docs command
var parseDocsCmd = &cobra.Command{
	Use:   "parse-docs",
	Short: "Parse FAQ documents (PDF, DOCX) into ingestable records",
	Long: `Walks the configured docs directory, extracts text blocks from every PDF
and DOCX file, and writes the records to parsed_faqs.json in the data
directory. PDF extraction requires the poppler pdftotext and pdfinfo
utilities on PATH.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		parser := service.NewDocParseService()
		records, err := parser.ParseDir(cfg.DocsDir)
		if err != nil {
			log.Fatalf("Failed to parse documents: %v", err)
		}
		if records == nil {
			// Keep an empty array on disk so ingest does not trip over a
			// missing file.
			records = []types.Document{}
		}

		outPath := filepath.Join(cfg.DataDir, "parsed_faqs.json")
		if err := utils.WriteJSONFile(outPath, records); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		log.Printf("Successfully parsed %d content block(s). Data saved to %s", len(records), outPath)
	},
}

func init() {
	rootCmd.AddCommand(parseDocsCmd)
}

package cmd

import (
	"context"
	"log"
	"path/filepath"

	"github.com/aguhub/rag-chatbot-be/config"
	"github.com/aguhub/rag-chatbot-be/database"
	"github.com/aguhub/rag-chatbot-be/service"
	"github.com/spf13/cobra"
)

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Chunk, embed and store the scraped and parsed documents",
	Long: `Reads the document files produced by the scrape and parse-docs commands,
splits them into overlapping chunks, embeds every chunk and writes the
results to the vector store. Run this as an offline batch job, never
concurrently with query traffic.

Re-running produces new chunk IDs for unchanged content; pass --reinit to
rebuild the store from scratch instead of appending.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		reinit, _ := cmd.Flags().GetBool("reinit")

		ctx := context.Background()

		store, err := database.NewWeaviateStore(cfg.Weaviate)
		if err != nil {
			log.Fatalf("Failed to connect to vector store: %v", err)
		}
		if reinit {
			if err := store.Reset(ctx); err != nil {
				log.Fatalf("Failed to reset vector store: %v", err)
			}
			log.Println("Vector store reset")
		}

		chunker := service.NewChunkService(cfg.ChunkSize, cfg.ChunkOverlap)
		embedder := service.NewOpenAIEmbedder(cfg.AIEndpoint, cfg.OpenAIAPIKey, cfg.EmbeddingModel)
		ingestService := service.NewIngestService(chunker, embedder, store, cfg.EmbedBatchSize)

		docs, err := ingestService.LoadDocuments(
			filepath.Join(cfg.DataDir, "scraped_content.json"),
			filepath.Join(cfg.DataDir, "parsed_faqs.json"),
		)
		if err != nil {
			log.Fatalf("Failed to load documents: %v", err)
		}
		if len(docs) == 0 {
			log.Fatalf("No documents found in %s. Run the scrape and parse-docs commands first.", cfg.DataDir)
		}

		written, err := ingestService.Ingest(ctx, docs)
		if err != nil {
			log.Fatalf("Ingestion failed: %v", err)
		}

		log.Printf("Done. %d documents -> %d chunks stored.", len(docs), written)
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().BoolP("reinit", "r", false, "Rebuild the vector store before ingesting")
}

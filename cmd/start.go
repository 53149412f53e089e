package cmd

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/aguhub/rag-chatbot-be/config"
	"github.com/aguhub/rag-chatbot-be/database"
	"github.com/aguhub/rag-chatbot-be/handler"
	"github.com/aguhub/rag-chatbot-be/service"
	"github.com/spf13/cobra"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the chat API server",
	Long: `Starts the HTTP server for the policy chatbot. Model collaborators are
loaded once at startup; a collaborator that fails to load leaves the server
in a degraded state where only the requests that need it fail.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		log.Println("--- Initializing RAG components ---")
		startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Each collaborator is optional at startup: a load failure is logged
		// and the matching requests fail with a clear "not initialized"
		// signal instead of the process crash-looping.
		var store database.VectorStore
		if weaviateDb, err := database.NewWeaviateStore(cfg.Weaviate); err != nil {
			log.Printf("CRITICAL: failed to connect to vector store at %s: %v", cfg.Weaviate.Host, err)
			log.Println("Run the ingest command first and ensure Weaviate is reachable.")
		} else {
			store = weaviateDb
			log.Printf("Connected to vector store at %s", cfg.Weaviate.Host)
		}

		embedder := service.NewOpenAIEmbedder(cfg.AIEndpoint, cfg.OpenAIAPIKey, cfg.EmbeddingModel)
		log.Printf("Embedding model: %s", cfg.EmbeddingModel)

		var generator service.Generator
		switch cfg.AIBackend {
		case "gemini":
			gemini, err := service.NewGeminiGenerator(startupCtx, cfg.GeminiAPIKey, cfg.GenerationModel)
			if err != nil {
				log.Printf("CRITICAL: failed to load Gemini generator: %v", err)
			} else {
				generator = gemini
			}
		default:
			generator = service.NewOpenAIGenerator(cfg.AIEndpoint, cfg.OpenAIAPIKey, cfg.GenerationModel)
		}
		log.Printf("Generator backend: %s (%s)", cfg.AIBackend, cfg.GenerationModel)

		log.Println("Loading translation models...")
		trEn := service.NewOpenAITranslator(startupCtx, cfg.Translator.Endpoint, cfg.OpenAIAPIKey, cfg.Translator.TrEnModel)
		enTr := service.NewOpenAITranslator(startupCtx, cfg.Translator.Endpoint, cfg.OpenAIAPIKey, cfg.Translator.EnTrModel)
		translator := service.NewTranslateService(trEn, enTr)

		ragService := service.NewRAGService(
			store,
			embedder,
			generator,
			translator,
			cfg.TopK,
			time.Duration(cfg.GenerationTimeoutSeconds)*time.Second,
		)

		corsHandler := handler.NewCorsHandler()
		healthHandler := handler.NewHealthHandler()
		chatHandler := handler.NewChatHandler(ragService)
		searchHandler := handler.NewSearchHandler(ragService)
		wsService := service.NewWebSocketService(ragService)

		mux := http.NewServeMux()
		mux.HandleFunc("/", healthHandler.HandleRoot())
		mux.HandleFunc("/chat", chatHandler.HandleChat())
		mux.HandleFunc("/search", searchHandler.HandleSearch())
		mux.HandleFunc("/ws", wsService.HandleChat)

		log.Println("--- All components initialized ---")
		log.Printf("Starting server on port %s...", cfg.Port)
		if err := http.ListenAndServe(":"+cfg.Port, corsHandler.Middleware(mux)); err != nil {
			log.Fatal("Server error:", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}

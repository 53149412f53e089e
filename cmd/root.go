package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rag-chatbot-be",
	Short: "Bilingual RAG chatbot for university policy questions",
	Long: `rag-chatbot-be answers natural-language questions about university
policies by retrieving relevant snippets from a vector store and grounding a
generation model on them. Questions and source material may be in English or
Turkish; retrieved context is machine-translated into the question's language
before generation.

Typical workflow:
  rag-chatbot-be scrape        # fetch configured web pages into data/
  rag-chatbot-be parse-docs    # parse PDF/DOCX FAQ documents into data/
  rag-chatbot-be ingest        # chunk, embed and store all documents
  rag-chatbot-be start         # serve the chat API`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config/config.yaml", "config file")
}

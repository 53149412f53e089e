package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Port      string `mapstructure:"port"`
	AIBackend string `mapstructure:"ai_backend"`

	// OpenAI-compatible inference server used for embeddings, generation and
	// translation. Point it at a local server for self-hosted models.
	AIEndpoint      string `mapstructure:"ai_endpoint"`
	GenerationModel string `mapstructure:"generation_model"`
	EmbeddingModel  string `mapstructure:"embedding_model"`
	OpenAIAPIKey    string `mapstructure:"OPENAI_API_KEY"`
	GeminiAPIKey    string `mapstructure:"GEMINI_API_KEY"`

	TopK                     int `mapstructure:"top_k"`
	ChunkSize                int `mapstructure:"chunk_size"`
	ChunkOverlap             int `mapstructure:"chunk_overlap"`
	EmbedBatchSize           int `mapstructure:"embed_batch_size"`
	GenerationTimeoutSeconds int `mapstructure:"generation_timeout_seconds"`

	DataDir string `mapstructure:"data_dir"`
	DocsDir string `mapstructure:"docs_dir"`

	Weaviate    WeaviateStoreConfig `mapstructure:"weaviate"`
	Translator  TranslatorConfig    `mapstructure:"translator"`
	ScrapeSites []ScrapeSite        `mapstructure:"scrape_sites"`
}

type WeaviateStoreConfig struct {
	Host   string `mapstructure:"host"`
	APIKey string `mapstructure:"WEAVIATE_APIKEY"`
}

// TranslatorConfig names the two directional translation models served from
// an OpenAI-compatible endpoint. Either model may be left empty; the matching
// direction then degrades to identity translation.
type TranslatorConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	TrEnModel string `mapstructure:"tr_en_model"`
	EnTrModel string `mapstructure:"en_tr_model"`
}

// ScrapeSite describes one web page to scrape: the CSS selector locates the
// main content block, lang tags every extracted record when known.
type ScrapeSite struct {
	URL      string `mapstructure:"url"`
	Selector string `mapstructure:"selector"`
	Lang     string `mapstructure:"lang"`
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	v.SetDefault("port", "8000")
	v.SetDefault("ai_backend", "openai")
	v.SetDefault("top_k", 5)
	v.SetDefault("chunk_size", 1000)
	v.SetDefault("chunk_overlap", 200)
	v.SetDefault("embed_batch_size", 32)
	v.SetDefault("generation_timeout_seconds", 60)
	v.SetDefault("data_dir", "data")
	v.SetDefault("docs_dir", "data/faq_docs")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.BindEnv("OPENAI_API_KEY")
	v.BindEnv("GEMINI_API_KEY")
	v.BindEnv("weaviate.WEAVIATE_APIKEY", "WEAVIATE_APIKEY")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

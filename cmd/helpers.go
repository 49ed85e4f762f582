package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mezotravel/backend/internal/chunker"
	"github.com/mezotravel/backend/internal/config"
	"github.com/mezotravel/backend/internal/db"
	"github.com/mezotravel/backend/internal/embeddings"
	"github.com/mezotravel/backend/internal/llm"
	"github.com/mezotravel/backend/internal/rag"
	"github.com/mezotravel/backend/internal/vectordb"
)

// loadConfig loads and validates the config with a friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `mezotravel init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newEmbedder creates an embeddings.Embedder from config.
func newEmbedder(cfg *config.Config) (embeddings.Embedder, error) {
	switch cfg.Embedding.Provider {
	case config.ProviderOllama:
		return embeddings.NewOllamaEmbedder(cfg.Embedding.Model, cfg.Embedding.Dimensions, cfg.OllamaHost), nil
	case config.ProviderOpenAI:
		apiKey := os.Getenv(config.APIKeyEnvVar(config.ProviderOpenAI))
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required for OpenAI embeddings")
		}
		return embeddings.NewOpenAIEmbedder(apiKey, cfg.Embedding.Model, cfg.Embedding.Dimensions), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Embedding.Provider)
	}
}

// newProvider creates the generation llm.Provider from config, wrapped
// with a rate limiter when one is configured.
func newProvider(cfg *config.Config) (llm.Provider, error) {
	timeout := time.Duration(cfg.Generation.TimeoutSeconds) * time.Second
	provider, err := llm.New(string(cfg.Generation.Provider), cfg.Generation.Model, cfg.OllamaHost, timeout)
	if err != nil {
		return nil, err
	}
	if rpm := cfg.Generation.RequestsPerMinute; rpm > 0 {
		provider = llm.NewRateLimitedProvider(provider, rpm)
	}
	return provider, nil
}

// openStores opens the SQLite database and the vector index under the
// configured data directory.
func openStores(cfg *config.Config) (*db.DB, *vectordb.Index, error) {
	database, err := db.Open(filepath.Join(cfg.DataDir, "mezotravel.db"))
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}

	index, err := vectordb.NewIndex(filepath.Join(cfg.DataDir, "vectordb"), cfg.Collection, cfg.Embedding.Dimensions)
	if err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("opening vector index: %w", err)
	}
	if err := index.EnsureCollection(cfg.Embedding.Dimensions); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("preparing collection: %w", err)
	}
	return database, index, nil
}

// newRAGService assembles the full answering pipeline from config.
func newRAGService(cfg *config.Config, embedder embeddings.Embedder, index *vectordb.Index) (*rag.Service, *rag.Ingestor, error) {
	provider, err := newProvider(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("creating LLM provider: %w", err)
	}

	c, err := chunker.New(cfg.Chunking.Size, cfg.Chunking.Overlap)
	if err != nil {
		return nil, nil, fmt.Errorf("creating chunker: %w", err)
	}

	generator := rag.NewGenerator(
		&rag.ProviderStrategy{
			Provider: provider,
			Model:    cfg.Generation.Model,
			Timeout:  time.Duration(cfg.Generation.TimeoutSeconds) * time.Second,
		},
		&rag.RuleStrategy{},
		&rag.DefaultStrategy{},
	)

	svc := rag.NewService(
		rag.NewRetriever(embedder, index),
		&rag.PromptAssembler{DefaultLanguage: cfg.DefaultLanguage},
		generator,
		5,
	)
	return svc, rag.NewIngestor(c, embedder, index), nil
}

package config

// Default returns a Config with sensible defaults: a local Ollama for both
// embeddings and generation, matching the all-minilm 384-dimension output.
func Default() *Config {
	return &Config{
		Port:            8000,
		DataDir:         "data",
		Collection:      "mezotravel_documents",
		DefaultLanguage: "tr",
		OllamaHost:      "http://localhost:11434",
		Chunking: ChunkingConfig{
			Size:    512,
			Overlap: 50,
		},
		Embedding: EmbeddingConfig{
			Provider:   ProviderOllama,
			Model:      "all-minilm",
			Dimensions: 384,
		},
		Generation: GenerationConfig{
			Provider:          ProviderOllama,
			Model:             "llama3",
			TimeoutSeconds:    60,
			RequestsPerMinute: 0,
		},
	}
}

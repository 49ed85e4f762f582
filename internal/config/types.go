package config

// ProviderType identifies an upstream model provider.
type ProviderType string

const (
	ProviderOllama ProviderType = "ollama"
	ProviderOpenAI ProviderType = "openai"
)

// ChunkingConfig controls how document text is split before embedding.
type ChunkingConfig struct {
	Size    int `yaml:"size" koanf:"size"`
	Overlap int `yaml:"overlap" koanf:"overlap"`
}

// EmbeddingConfig selects the embedding capability and its dimensionality.
// Dimensions is fixed at collection-creation time; changing it afterwards
// requires a full reindex.
type EmbeddingConfig struct {
	Provider   ProviderType `yaml:"provider" koanf:"provider"`
	Model      string       `yaml:"model" koanf:"model"`
	Dimensions int          `yaml:"dimensions" koanf:"dimensions"`
}

// GenerationConfig selects the text-generation capability.
// RequestsPerMinute caps outbound completion calls; zero disables the cap.
type GenerationConfig struct {
	Provider          ProviderType `yaml:"provider" koanf:"provider"`
	Model             string       `yaml:"model" koanf:"model"`
	TimeoutSeconds    int          `yaml:"timeout_seconds" koanf:"timeout_seconds"`
	RequestsPerMinute int          `yaml:"requests_per_minute" koanf:"requests_per_minute"`
}

// Config is the top-level mezotravel configuration, corresponding to
// .mezotravel.yml with MEZOTRAVEL_* environment overrides.
type Config struct {
	Port            int              `yaml:"port" koanf:"port"`
	DataDir         string           `yaml:"data_dir" koanf:"data_dir"`
	Collection      string           `yaml:"collection" koanf:"collection"`
	DefaultLanguage string           `yaml:"default_language" koanf:"default_language"`
	OllamaHost      string           `yaml:"ollama_host" koanf:"ollama_host"`
	Chunking        ChunkingConfig   `yaml:"chunking" koanf:"chunking"`
	Embedding       EmbeddingConfig  `yaml:"embedding" koanf:"embedding"`
	Generation      GenerationConfig `yaml:"generation" koanf:"generation"`
}

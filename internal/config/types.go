package config

// ProviderType identifies a generation or embedding backend.
type ProviderType string

const (
	ProviderOpenAI      ProviderType = "openai"
	ProviderOllama      ProviderType = "ollama"
	ProviderHuggingFace ProviderType = "huggingface"
)

// Config is the top-level docchat configuration, corresponding to .docchat.yml.
type Config struct {
	Provider           ProviderType `yaml:"provider" koanf:"provider"`
	Model              string       `yaml:"model" koanf:"model"`
	GenerationEndpoint string       `yaml:"generation_endpoint" koanf:"generation_endpoint"`
	EmbeddingProvider  ProviderType `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel     string       `yaml:"embedding_model" koanf:"embedding_model"`

	ChunkSize    int `yaml:"chunk_size" koanf:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap" koanf:"chunk_overlap"`

	TopK                int     `yaml:"top_k" koanf:"top_k"`
	SimilarityThreshold float64 `yaml:"similarity_threshold" koanf:"similarity_threshold"`

	MaxTokens   int     `yaml:"max_tokens" koanf:"max_tokens"`
	Temperature float64 `yaml:"temperature" koanf:"temperature"`
	TopP        float64 `yaml:"top_p" koanf:"top_p"`

	// FailOpen controls whether the relevance check lets a question through
	// when the generation backend cannot be reached.
	FailOpen bool `yaml:"fail_open" koanf:"fail_open"`

	DataDir  string   `yaml:"data_dir" koanf:"data_dir"`
	DocsDirs []string `yaml:"docs_dirs" koanf:"docs_dirs"`

	Scrape ScrapeConfig `yaml:"scrape" koanf:"scrape"`
	Server ServerConfig `yaml:"server" koanf:"server"`
}

// ScrapeConfig bounds the web crawler used as a document source.
type ScrapeConfig struct {
	MaxDepth int `yaml:"max_depth" koanf:"max_depth"`
	MaxPages int `yaml:"max_pages" koanf:"max_pages"`
	DelayMS  int `yaml:"delay_ms" koanf:"delay_ms"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

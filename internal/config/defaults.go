package config

// DefaultConfig returns a Config with sensible defaults. They mirror the
// values the service was tuned with: 1000-character chunks with 200-character
// overlap, three candidates per query, and a permissive relevance check.
func DefaultConfig() *Config {
	return &Config{
		Provider:           ProviderHuggingFace,
		Model:              "mistralai/Mistral-7B-Instruct-v0.2",
		GenerationEndpoint: "https://api-inference.huggingface.co/models/",
		EmbeddingProvider:  ProviderOpenAI,
		EmbeddingModel:     "text-embedding-3-small",

		ChunkSize:    1000,
		ChunkOverlap: 200,

		TopK:                3,
		SimilarityThreshold: 0.35,

		MaxTokens:   500,
		Temperature: 0.7,
		TopP:        0.95,

		FailOpen: true,

		DataDir:  "data",
		DocsDirs: []string{"docs"},

		Scrape: ScrapeConfig{
			MaxDepth: 3,
			MaxPages: 200,
			DelayMS:  1000,
		},
		Server: ServerConfig{
			Port: 8000,
		},
	}
}

// APIKeyEnvVar returns the conventional environment variable name for
// the API key of the given provider. Ollama needs no key.
func APIKeyEnvVar(provider ProviderType) string {
	switch provider {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderHuggingFace:
		return "HF_API_KEY"
	default:
		return ""
	}
}

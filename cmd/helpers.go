package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"docchat/internal/config"
	"docchat/internal/embeddings"
	"docchat/internal/llm"
	"docchat/internal/rag"
	"docchat/internal/vectordb"
)

// loadConfig loads and validates the config; validation failures are
// configuration errors and abort the command.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `docchat init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ollamaDimensions maps known Ollama embedding models to their output width.
var ollamaDimensions = map[string]int{
	"all-minilm":        384,
	"nomic-embed-text":  768,
	"mxbai-embed-large": 1024,
}

// createEmbedder builds the configured embedder, wrapped in the in-process
// memoization layer, and probes it once. All downstream components depend on
// embeddings, so an unloadable model is fatal at startup.
func createEmbedder(ctx context.Context, cfg *config.Config) (embeddings.Embedder, error) {
	var inner embeddings.Embedder

	switch provider := cfg.EffectiveEmbeddingProvider(); provider {
	case config.ProviderOpenAI:
		apiKey := os.Getenv(config.APIKeyEnvVar(config.ProviderOpenAI))
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required for OpenAI embeddings")
		}
		inner = embeddings.NewOpenAIEmbedder(apiKey, embeddings.OpenAIModel(cfg.EmbeddingModel))
	case config.ProviderOllama:
		dims, ok := ollamaDimensions[cfg.EmbeddingModel]
		if !ok {
			dims = 768
		}
		inner = embeddings.NewOllamaEmbedder(cfg.EmbeddingModel, dims, "")
	default:
		return nil, fmt.Errorf("provider %s does not support embeddings", provider)
	}

	embedder := embeddings.NewCached(inner)

	if _, err := embeddings.EmbedOne(ctx, embedder, "ready"); err != nil {
		return nil, fmt.Errorf("embedding model %s is not available: %w", embedder.Name(), err)
	}
	return embedder, nil
}

// createProvider builds the configured generation backend.
func createProvider(cfg *config.Config) (llm.Provider, error) {
	return llm.NewProvider(string(cfg.Provider), cfg.Model, cfg.GenerationEndpoint)
}

// vectorDir returns the directory holding the persisted index.
func vectorDir(cfg *config.Config) string {
	return filepath.Join(cfg.DataDir, "vectordb")
}

// openIndex creates the vector store and, when a persisted snapshot exists,
// loads it. mustExist makes a missing snapshot an error (query paths need a
// populated index; ingestion does not).
func openIndex(ctx context.Context, cfg *config.Config, mustExist bool) (vectordb.Index, error) {
	store, err := vectordb.NewChromemStore()
	if err != nil {
		return nil, fmt.Errorf("creating vector store: %w", err)
	}

	dir := vectorDir(cfg)
	if _, err := os.Stat(filepath.Join(dir, "chromem.gob.gz")); err != nil {
		if os.IsNotExist(err) {
			if mustExist {
				return nil, fmt.Errorf("no index found in %s\nRun `docchat ingest` first to build the index", dir)
			}
			return store, nil
		}
		return nil, fmt.Errorf("accessing index in %s: %w", dir, err)
	}

	if err := store.Load(ctx, dir); err != nil {
		return nil, fmt.Errorf("loading vector store from %s: %w", dir, err)
	}
	return store, nil
}

// buildEngine constructs the full query-time pipeline from config: embedder,
// loaded index, generation backend, and the three rag stages. Missing
// credentials for either backend abort before any component is built.
func buildEngine(ctx context.Context, cfg *config.Config) (*rag.Engine, error) {
	if err := cfg.RequireAPIKeys(); err != nil {
		return nil, err
	}

	embedder, err := createEmbedder(ctx, cfg)
	if err != nil {
		return nil, err
	}

	index, err := openIndex(ctx, cfg, true)
	if err != nil {
		return nil, err
	}

	provider, err := createProvider(cfg)
	if err != nil {
		return nil, err
	}

	retriever := rag.NewRetriever(embedder, index, cfg.TopK, cfg.SimilarityThreshold)
	checker := rag.NewRelevanceChecker(provider, cfg.Model, cfg.FailOpen)
	synth := rag.NewSynthesizer(provider, cfg.Model, cfg.MaxTokens, cfg.Temperature, cfg.TopP)

	return rag.NewEngine(retriever, checker, synth), nil
}

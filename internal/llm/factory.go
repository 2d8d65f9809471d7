package llm

import (
	"fmt"
	"os"
)

// NewProvider creates a generation provider based on the given provider type
// and model. Supported provider types: "openai", "ollama", "huggingface".
// endpoint is the backend base URL where one is needed (huggingface inference
// base, ollama host); it may be empty for openai.
func NewProvider(providerType, model, endpoint string) (Provider, error) {
	switch providerType {
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
		}
		return NewOpenAIProvider(apiKey, model), nil

	case "ollama":
		if endpoint == "" {
			endpoint = os.Getenv("OLLAMA_HOST")
		}
		if endpoint == "" {
			endpoint = "http://localhost:11434"
		}
		return NewOllamaProvider(endpoint, model), nil

	case "huggingface":
		apiKey := os.Getenv("HF_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("HF_API_KEY environment variable is not set")
		}
		if endpoint == "" {
			return nil, fmt.Errorf("generation_endpoint is required for the huggingface provider")
		}
		return NewHuggingFaceProvider(endpoint, apiKey, model), nil

	default:
		return nil, fmt.Errorf("unsupported provider type: %s", providerType)
	}
}

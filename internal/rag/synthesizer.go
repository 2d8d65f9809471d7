package rag

import (
	"context"
	"strings"

	"docchat/internal/llm"
)

// Synthesizer builds a grounded prompt from retrieved context and the
// question, invokes the generation backend, and cleans the raw output.
type Synthesizer struct {
	provider llm.Provider
	model    string

	maxTokens   int
	temperature float64
	topP        float64
}

// NewSynthesizer creates a Synthesizer with the given sampling parameters.
func NewSynthesizer(p llm.Provider, model string, maxTokens int, temperature, topP float64) *Synthesizer {
	return &Synthesizer{
		provider:    p,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		topP:        topP,
	}
}

// Synthesize answers the question from the given context. Backend failures
// surface as *llm.GenerationError; there is no automatic retry.
func (s *Synthesizer) Synthesize(ctx context.Context, contextText, question string) (string, error) {
	prompt := answerPrompt(contextText, question)

	resp, err := s.provider.Complete(ctx, llm.CompletionRequest{
		Model: s.model,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: prompt},
		},
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
		TopP:        s.topP,
	})
	if err != nil {
		return "", err
	}

	return stripPromptEcho(resp.Content, prompt), nil
}

// stripPromptEcho removes the prompt prefix some text-generation backends
// echo back before the completion. Applied on every response, not
// heuristically: either the output starts with the literal prompt and the
// prefix is dropped, or it is returned trimmed as-is.
func stripPromptEcho(output, prompt string) string {
	if strings.HasPrefix(output, prompt) {
		output = output[len(prompt):]
	}
	return strings.TrimSpace(output)
}

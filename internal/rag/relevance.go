package rag

import (
	"context"
	"log"
	"strings"

	"docchat/internal/llm"
)

// RelevanceChecker asks the generation backend whether retrieved context is
// topically relevant to a question before an answer is attempted.
type RelevanceChecker struct {
	provider llm.Provider
	model    string

	// failOpen lets questions through when the backend itself cannot be
	// reached, trading precision for availability. A backend that answers
	// "no" still rejects; only transport failures are forgiven.
	failOpen bool
}

// NewRelevanceChecker creates a RelevanceChecker.
func NewRelevanceChecker(p llm.Provider, model string, failOpen bool) *RelevanceChecker {
	return &RelevanceChecker{provider: p, model: model, failOpen: failOpen}
}

// IsRelevant returns true iff the backend's verdict contains "yes",
// case-insensitively. The lenient substring match absorbs backends that
// answer "Yes.", "YES, it is", and similar.
func (c *RelevanceChecker) IsRelevant(ctx context.Context, contextText, question string) (bool, error) {
	resp, err := c.provider.Complete(ctx, llm.CompletionRequest{
		Model: c.model,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: relevancePrompt(contextText, question)},
		},
		MaxTokens:   10,
		Temperature: 0,
	})
	if err != nil {
		if c.failOpen {
			log.Printf("rag: relevance check failed, allowing question through: %v", err)
			return true, nil
		}
		return false, err
	}

	verdict := strings.ToLower(strings.TrimSpace(resp.Content))
	return strings.Contains(verdict, "yes"), nil
}

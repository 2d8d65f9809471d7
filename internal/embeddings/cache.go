package embeddings

import (
	"context"
	"sync"
)

// Cached wraps an Embedder and memoizes vectors per text for the process
// lifetime. Embedding is deterministic for a pinned model, so repeated
// identical inputs (re-ingested chunks, repeated queries) can skip the
// backend call without changing results.
type Cached struct {
	inner Embedder

	mu   sync.RWMutex
	byID map[string][]float32
}

// NewCached wraps e with an in-process memoization layer.
func NewCached(e Embedder) *Cached {
	return &Cached{
		inner: e,
		byID:  make(map[string][]float32),
	}
}

func (c *Cached) Name() string    { return c.inner.Name() }
func (c *Cached) Dimensions() int { return c.inner.Dimensions() }

func (c *Cached) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	results := make([][]float32, len(texts))

	// Collect texts that still need a backend call, preserving order.
	var missing []string
	var missingIdx []int
	c.mu.RLock()
	for i, t := range texts {
		if vec, ok := c.byID[t]; ok {
			results[i] = vec
		} else {
			missing = append(missing, t)
			missingIdx = append(missingIdx, i)
		}
	}
	c.mu.RUnlock()

	if len(missing) == 0 {
		return results, nil
	}

	vecs, err := c.inner.Embed(ctx, missing)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	for j, vec := range vecs {
		c.byID[missing[j]] = vec
		results[missingIdx[j]] = vec
	}
	c.mu.Unlock()

	return results, nil
}

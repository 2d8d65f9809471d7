package rag

import (
	"context"
	"fmt"

	"docchat/internal/embeddings"
	"docchat/internal/vectordb"
)

// Retriever fetches top-k candidates for a query and gates them on a
// similarity threshold.
type Retriever struct {
	embedder  embeddings.Embedder
	index     vectordb.Index
	topK      int
	threshold float32
}

// NewRetriever creates a Retriever. topK is the default candidate count used
// when a request does not specify one; threshold is the minimum similarity
// score in [0,1] a candidate must reach to be kept.
func NewRetriever(e embeddings.Embedder, idx vectordb.Index, topK int, threshold float64) *Retriever {
	return &Retriever{
		embedder:  e,
		index:     idx,
		topK:      topK,
		threshold: float32(threshold),
	}
}

// Retrieve embeds the query, fetches the k nearest chunks, and drops any
// whose score falls below the threshold (>= kept). An empty result is the
// expected "no relevant information" signal, not an error; index failures
// propagate so callers never mistake an outage for an empty corpus.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) ([]vectordb.Result, error) {
	if k <= 0 {
		k = r.topK
	}

	vec, err := embeddings.EmbedOne(ctx, r.embedder, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	candidates, err := r.index.Query(ctx, vec, k)
	if err != nil {
		return nil, err
	}

	var results []vectordb.Result
	for _, c := range candidates {
		if c.Score >= r.threshold {
			results = append(results, c)
		}
	}
	return results, nil
}

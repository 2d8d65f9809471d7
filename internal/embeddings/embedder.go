package embeddings

import (
	"context"
	"errors"
)

// ErrEmptyText is returned when an empty string is submitted for embedding.
var ErrEmptyText = errors.New("embeddings: empty text")

// Embedder defines the interface for generating text embeddings.
type Embedder interface {
	// Embed generates embeddings for one or more texts, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the number of dimensions in the embedding vectors.
	Dimensions() int

	// Name returns the name/identifier of the embedding model.
	Name() string
}

// EmbedOne embeds a single text and returns its vector.
func EmbedOne(ctx context.Context, e Embedder, text string) ([]float32, error) {
	vecs, err := e.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vecs) == 0 {
		return nil, errors.New("embeddings: backend returned no vector")
	}
	return vecs[0], nil
}

// checkInputs rejects empty texts before they reach a backend.
func checkInputs(texts []string) error {
	for _, t := range texts {
		if t == "" {
			return ErrEmptyText
		}
	}
	return nil
}

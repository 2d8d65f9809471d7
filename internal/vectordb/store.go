package vectordb

import (
	"context"
	"errors"
)

// ErrUnavailable indicates the backing store could not be reached or loaded.
// Callers must not treat it as an empty result set.
var ErrUnavailable = errors.New("vector index unavailable")

// Metadata is the persisted per-entry metadata. The index is the only
// persisted copy of chunk content, so the verbatim chunk text travels with
// the entry.
type Metadata struct {
	Source     string
	ChunkIndex int
	ChunkText  string
	Page       int // 0 when unknown
}

// Entry is the persisted unit: a unique id, its embedding, and metadata.
// Ids are derived deterministically from source + chunk index, so
// re-ingesting the same chunk overwrites rather than duplicates.
type Entry struct {
	ID       string
	Vector   []float32
	Metadata Metadata
}

// Result pairs an entry id with its similarity score for a query vector.
// Scores are cosine similarity; higher means more relevant.
type Result struct {
	ID       string
	Score    float32
	Metadata Metadata
}

// Index defines the interface for storing and querying embedded chunks.
type Index interface {
	// Upsert stores entries, overwriting any existing entry with the same id.
	// Idempotent for identical inputs.
	Upsert(ctx context.Context, entries []Entry) error

	// Query returns up to k entries sorted by similarity descending.
	Query(ctx context.Context, vector []float32, k int) ([]Result, error)

	// Delete removes the entries with the given ids.
	Delete(ctx context.Context, ids []string) error

	// Count returns the number of live entries.
	Count() int

	// Persist saves the index to the given directory.
	Persist(ctx context.Context, dir string) error

	// Load restores the index from the given directory.
	Load(ctx context.Context, dir string) error
}

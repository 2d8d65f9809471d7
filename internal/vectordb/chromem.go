package vectordb

import (
	"context"
	"fmt"
	"os"
	"strconv"

	chromem "github.com/philippgille/chromem-go"
)

const collectionName = "documents"

// ChromemStore implements Index using chromem-go. Embeddings are computed
// upstream and stored verbatim; the store never calls an embedding backend
// itself. chromem-go handles its own locking, so the store is safe for
// concurrent queries and upserts.
type ChromemStore struct {
	db         *chromem.DB
	collection *chromem.Collection
}

// NewChromemStore creates a new in-memory ChromemStore.
func NewChromemStore() (*ChromemStore, error) {
	db := chromem.NewDB()

	col, err := db.GetOrCreateCollection(collectionName, nil, noEmbed)
	if err != nil {
		return nil, fmt.Errorf("%w: create collection: %v", ErrUnavailable, err)
	}

	return &ChromemStore{
		db:         db,
		collection: col,
	}, nil
}

// noEmbed rejects any attempt to embed inside the store; every code path
// here supplies precomputed vectors.
func noEmbed(_ context.Context, text string) ([]float32, error) {
	return nil, fmt.Errorf("vectordb: no embedder attached (attempted to embed %q)", text)
}

func (s *ChromemStore) Upsert(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	docs := make([]chromem.Document, len(entries))
	for i, e := range entries {
		docs[i] = chromem.Document{
			ID:        e.ID,
			Content:   e.Metadata.ChunkText,
			Embedding: e.Vector,
			Metadata:  metadataToMap(e.Metadata),
		}
	}

	if err := s.collection.AddDocuments(ctx, docs, 1); err != nil {
		return fmt.Errorf("%w: upsert: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *ChromemStore) Query(ctx context.Context, vector []float32, k int) ([]Result, error) {
	if k <= 0 {
		k = 3
	}

	// chromem-go requires nResults <= collection size.
	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	results, err := s.collection.QueryEmbedding(ctx, vector, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: query: %v", ErrUnavailable, err)
	}

	out := make([]Result, len(results))
	for i, r := range results {
		md := mapToMetadata(r.Metadata)
		md.ChunkText = r.Content
		out[i] = Result{
			ID:       r.ID,
			Score:    r.Similarity,
			Metadata: md,
		}
	}
	return out, nil
}

func (s *ChromemStore) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := s.collection.Delete(ctx, nil, nil, ids...); err != nil {
		return fmt.Errorf("%w: delete: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *ChromemStore) Count() int {
	return s.collection.Count()
}

func (s *ChromemStore) Persist(ctx context.Context, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: persist: %v", ErrUnavailable, err)
	}
	if err := s.db.ExportToFile(dir+"/chromem.gob.gz", true, ""); err != nil {
		return fmt.Errorf("%w: persist: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *ChromemStore) Load(ctx context.Context, dir string) error {
	if err := s.db.ImportFromFile(dir+"/chromem.gob.gz", ""); err != nil {
		return fmt.Errorf("%w: load: %v", ErrUnavailable, err)
	}

	// Re-acquire collection reference after import.
	col := s.db.GetCollection(collectionName, noEmbed)
	if col == nil {
		return fmt.Errorf("%w: collection %q not found after import", ErrUnavailable, collectionName)
	}
	s.collection = col
	return nil
}

// metadataToMap flattens Metadata for chromem. Chunk text is carried in the
// document content, not duplicated here.
func metadataToMap(m Metadata) map[string]string {
	md := map[string]string{
		"source":      m.Source,
		"chunk_index": strconv.Itoa(m.ChunkIndex),
	}
	if m.Page > 0 {
		md["page"] = strconv.Itoa(m.Page)
	}
	return md
}

func mapToMetadata(m map[string]string) Metadata {
	chunkIndex, _ := strconv.Atoi(m["chunk_index"])
	page, _ := strconv.Atoi(m["page"])
	return Metadata{
		Source:     m["source"],
		ChunkIndex: chunkIndex,
		Page:       page,
	}
}

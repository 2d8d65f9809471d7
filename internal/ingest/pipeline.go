// Package ingest populates the vector index from document roots. Ingestion
// is an offline, sequential batch: per-document and per-chunk failures are
// logged and counted but never abort the run, while an unusable index aborts
// immediately.
package ingest

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"sort"
	"strconv"

	"docchat/internal/chunker"
	"docchat/internal/embeddings"
	"docchat/internal/extract"
	"docchat/internal/progress"
	"docchat/internal/vectordb"
)

// Report summarizes an ingestion run.
type Report struct {
	DocumentsProcessed int
	DocumentsSkipped   int
	ChunksStored       int
	ChunkFailures      int
}

func (r *Report) String() string {
	return fmt.Sprintf("processed %d documents (%d skipped), stored %d chunks (%d failures)",
		r.DocumentsProcessed, r.DocumentsSkipped, r.ChunksStored, r.ChunkFailures)
}

// Pipeline orchestrates extraction -> chunking -> embedding -> upsert.
type Pipeline struct {
	chunker  *chunker.Chunker
	embedder embeddings.Embedder
	index    vectordb.Index
	reporter progress.Reporter
}

// NewPipeline creates a Pipeline with injected dependencies.
func NewPipeline(c *chunker.Chunker, e embeddings.Embedder, idx vectordb.Index) *Pipeline {
	return &Pipeline{
		chunker:  c,
		embedder: e,
		index:    idx,
		reporter: progress.NullReporter{},
	}
}

// SetReporter sets the progress reporter.
func (p *Pipeline) SetReporter(r progress.Reporter) {
	p.reporter = r
}

// Run ingests every supported document under the given roots.
func (p *Pipeline) Run(ctx context.Context, roots []string) (*Report, error) {
	paths, err := collectDocuments(roots)
	if err != nil {
		return nil, err
	}
	log.Printf("ingest: found %d documents under %d roots", len(paths), len(roots))

	report := &Report{}
	p.reporter.Start(len(paths))
	defer p.reporter.Finish()

	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		p.reporter.Update(i+1, filepath.Base(path))

		if err := p.ingestDocument(ctx, path, report); err != nil {
			return report, err
		}
	}

	return report, nil
}

// ingestDocument processes one document. It returns an error only for
// failures that must abort the run (context cancellation, index loss);
// everything else is recorded in the report.
func (p *Pipeline) ingestDocument(ctx context.Context, path string, report *Report) error {
	doc, err := extract.Extract(path)
	if err != nil {
		log.Printf("ingest: skipping %s: %v", path, err)
		report.DocumentsSkipped++
		return nil
	}

	chunks := p.chunker.Split(doc.Text)
	if len(chunks) == 0 {
		log.Printf("ingest: no text extracted from %s, skipping", path)
		report.DocumentsSkipped++
		return nil
	}

	stored := 0
	for i, chunk := range chunks {
		vec, err := embeddings.EmbedOne(ctx, p.embedder, chunk)
		if err != nil {
			log.Printf("ingest: embedding chunk %d of %s: %v", i, path, err)
			report.ChunkFailures++
			continue
		}

		entry := vectordb.Entry{
			ID:     EntryID(path, i),
			Vector: vec,
			Metadata: vectordb.Metadata{
				Source:     path,
				ChunkIndex: i,
				ChunkText:  chunk,
			},
		}
		if err := p.index.Upsert(ctx, []vectordb.Entry{entry}); err != nil {
			log.Printf("ingest: storing chunk %d of %s: %v", i, path, err)
			report.ChunkFailures++
			continue
		}
		stored++
	}

	report.ChunksStored += stored
	report.DocumentsProcessed++
	return nil
}

// EntryID derives the deterministic index id for a chunk. Stable across
// re-runs so re-ingesting the same chunk overwrites instead of duplicating.
func EntryID(source string, chunkIndex int) string {
	return filepath.Base(source) + "_" + strconv.Itoa(chunkIndex)
}

// collectDocuments walks the roots and returns all supported document paths
// in deterministic order. A root may also name a single file.
func collectDocuments(roots []string) ([]string, error) {
	var paths []string
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				// Unreadable entries are skipped, not fatal.
				log.Printf("ingest: cannot read %s: %v", path, walkErr)
				return nil
			}
			if d.IsDir() {
				return nil
			}
			if _, ok := extract.TypeFor(path); ok {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("ingest: walking %s: %w", root, err)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

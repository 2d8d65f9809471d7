// Package chunker splits extracted document text into fixed-size overlapping
// windows. Windows are the retrieval unit: no sentence or word boundary
// awareness, a chunk may split mid-word. That trade-off buys determinism and
// makes re-ingestion produce identical chunk ids.
package chunker

import "fmt"

// Chunker produces overlapping fixed-size windows over text.
type Chunker struct {
	size    int
	overlap int
}

// New validates the window geometry and returns a Chunker.
// Requires 0 <= overlap < size; violations are configuration errors.
func New(size, overlap int) (*Chunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunker: size must be positive, got %d", size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("chunker: overlap must satisfy 0 <= overlap < size, got overlap=%d size=%d", overlap, size)
	}
	return &Chunker{size: size, overlap: overlap}, nil
}

// Size returns the configured window size.
func (c *Chunker) Size() int { return c.size }

// Overlap returns the configured window overlap.
func (c *Chunker) Overlap() int { return c.overlap }

// Split returns the ordered chunks of text. Consecutive chunks overlap by
// the configured number of bytes and together cover the whole input with no
// gaps; the final chunk may be shorter than the window size. Empty text
// yields nil.
func (c *Chunker) Split(text string) []string {
	if text == "" {
		return nil
	}

	step := c.size - c.overlap
	var chunks []string
	for start := 0; start < len(text); start += step {
		end := start + c.size
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, text[start:end])
	}
	return chunks
}

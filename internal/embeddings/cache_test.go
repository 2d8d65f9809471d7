package embeddings

import (
	"context"
	"testing"
)

// countingEmbedder records every text it is asked to embed.
type countingEmbedder struct {
	calls [][]string
}

func (c *countingEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	if err := checkInputs(texts); err != nil {
		return nil, err
	}
	c.calls = append(c.calls, texts)
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = []float32{float32(len(t)), float32(t[0])}
	}
	return out, nil
}

func (c *countingEmbedder) Dimensions() int { return 2 }
func (c *countingEmbedder) Name() string    { return "counting" }

func TestCachedMemoizes(t *testing.T) {
	ctx := context.Background()
	inner := &countingEmbedder{}
	cached := NewCached(inner)

	first, err := cached.Embed(ctx, []string{"alpha", "beta"})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(inner.calls) != 1 {
		t.Fatalf("expected 1 backend call, got %d", len(inner.calls))
	}

	second, err := cached.Embed(ctx, []string{"alpha", "beta"})
	if err != nil {
		t.Fatalf("Embed (cached): %v", err)
	}
	if len(inner.calls) != 1 {
		t.Errorf("repeat embed hit the backend: %d calls", len(inner.calls))
	}

	for i := range first {
		for j := range first[i] {
			if first[i][j] != second[i][j] {
				t.Errorf("vector %d differs between calls", i)
			}
		}
	}
}

func TestCachedPartialHit(t *testing.T) {
	ctx := context.Background()
	inner := &countingEmbedder{}
	cached := NewCached(inner)

	if _, err := cached.Embed(ctx, []string{"alpha"}); err != nil {
		t.Fatalf("Embed: %v", err)
	}

	vecs, err := cached.Embed(ctx, []string{"beta", "alpha", "gamma"})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(vecs) != 3 {
		t.Fatalf("got %d vectors, want 3", len(vecs))
	}

	// Only the two misses reach the backend, in input order.
	last := inner.calls[len(inner.calls)-1]
	if len(last) != 2 || last[0] != "beta" || last[1] != "gamma" {
		t.Errorf("backend saw %v, want [beta gamma]", last)
	}

	// Results line up with the requested order.
	if vecs[0][0] != float32(len("beta")) {
		t.Errorf("vecs[0] is not beta's vector")
	}
	if vecs[1][0] != float32(len("alpha")) {
		t.Errorf("vecs[1] is not alpha's vector")
	}
	if vecs[2][0] != float32(len("gamma")) {
		t.Errorf("vecs[2] is not gamma's vector")
	}
}

func TestEmbedOneRejectsEmptyText(t *testing.T) {
	ctx := context.Background()
	cached := NewCached(&countingEmbedder{})

	if _, err := EmbedOne(ctx, cached, ""); err == nil {
		t.Error("EmbedOne with empty text succeeded, want error")
	}
}

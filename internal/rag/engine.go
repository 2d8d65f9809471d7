// Package rag implements the query-time pipeline: retrieve candidate chunks,
// gate them on similarity, check topical relevance, and synthesize a
// grounded answer. Retrieval-empty and relevance-rejected both produce fixed
// clarifying responses rather than errors; only real failures (index
// unavailable, generation failure) surface as errors.
package rag

import (
	"context"
	"strings"

	"docchat/internal/vectordb"
)

// Canned responses for the two non-answer terminal states.
const (
	ResponseNoInfo  = "I couldn't find relevant information. Please clarify your question."
	ResponseClarify = "Your question doesn't seem related to the document content. Please clarify your question."
)

// AnswerKind tags the terminal state a question reached.
type AnswerKind string

const (
	KindAnswered    AnswerKind = "answered"
	KindNoResults   AnswerKind = "no_results"
	KindNotRelevant AnswerKind = "not_relevant"
)

// Source identifies a document that contributed context to an answer.
type Source struct {
	Source string `json:"source"`
	Page   int    `json:"page,omitempty"`
}

// Answer is the result of one question.
type Answer struct {
	Kind     AnswerKind
	Response string
	Sources  []Source
}

// Engine wires the retriever, relevance checker, and synthesizer into the
// per-question state machine. Engines hold no per-request state: each call
// is independent and cancellable through its context.
type Engine struct {
	retriever *Retriever
	checker   *RelevanceChecker
	synth     *Synthesizer
}

// NewEngine creates an Engine from its three injected stages.
func NewEngine(r *Retriever, c *RelevanceChecker, s *Synthesizer) *Engine {
	return &Engine{retriever: r, checker: c, synth: s}
}

// Answer runs one question through retrieval, relevance gating, and
// synthesis. k <= 0 uses the configured default candidate count.
func (e *Engine) Answer(ctx context.Context, question string, k int) (*Answer, error) {
	results, err := e.retriever.Retrieve(ctx, question, k)
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return &Answer{Kind: KindNoResults, Response: ResponseNoInfo}, nil
	}

	contextText := joinChunks(results)

	relevant, err := e.checker.IsRelevant(ctx, contextText, question)
	if err != nil {
		return nil, err
	}
	if !relevant {
		return &Answer{Kind: KindNotRelevant, Response: ResponseClarify}, nil
	}

	response, err := e.synth.Synthesize(ctx, contextText, question)
	if err != nil {
		return nil, err
	}

	return &Answer{
		Kind:     KindAnswered,
		Response: response,
		Sources:  collectSources(results),
	}, nil
}

// joinChunks concatenates chunk texts with blank-line separators, preserving
// the ranked order from retrieval.
func joinChunks(results []vectordb.Result) string {
	texts := make([]string, len(results))
	for i, r := range results {
		texts[i] = r.Metadata.ChunkText
	}
	return strings.Join(texts, "\n\n")
}

// collectSources deduplicates contributing documents, keeping rank order.
func collectSources(results []vectordb.Result) []Source {
	seen := make(map[string]bool, len(results))
	var sources []Source
	for _, r := range results {
		if seen[r.Metadata.Source] {
			continue
		}
		seen[r.Metadata.Source] = true
		sources = append(sources, Source{
			Source: r.Metadata.Source,
			Page:   r.Metadata.Page,
		})
	}
	return sources
}

// Package relevance scores utterances against a reference document using an
// injected embedding service. The pipeline only depends on the two-operation
// contract here: embed text to a vector, compare two vectors.
package relevance

import (
	"context"
	"fmt"
	"math"
)

// Embedder defines the interface for embedding providers
type Embedder interface {
	// Name returns the provider name
	Name() string

	// Model returns the embedding model identifier
	Model() string

	// Embed converts text into an embedding vector
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Cosine computes the cosine similarity of two vectors. Negative
// similarities, where the embedding space permits them, are passed through
// unmodified rather than clamped. Mismatched or empty vectors score 0.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Scorer holds the reference-document embedding, computed exactly once per
// run, and scores each utterance against it. The reference is invariant
// across the run; per-utterance text varies, so those are embedded per call.
type Scorer struct {
	embedder  Embedder
	reference []float32
}

// NewScorer embeds the reference document once and returns a scorer bound to
// that vector. An embedding failure here fails the run: a partially-annotated
// timeline would silently misrepresent completeness.
func NewScorer(ctx context.Context, embedder Embedder, referenceText string) (*Scorer, error) {
	reference, err := embedder.Embed(ctx, referenceText)
	if err != nil {
		return nil, fmt.Errorf("embed reference document: %w", err)
	}

	return &Scorer{embedder: embedder, reference: reference}, nil
}

// Score embeds text and returns its cosine similarity to the reference.
func (s *Scorer) Score(ctx context.Context, text string) (float64, error) {
	vector, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return 0, fmt.Errorf("embed utterance: %w", err)
	}

	return Cosine(vector, s.reference), nil
}

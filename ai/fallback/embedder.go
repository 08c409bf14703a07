package fallback

import (
	"context"
	"math"
	"math/rand"

	"github.com/sentinelkb/sentinel/ai"
	"github.com/sentinelkb/sentinel/core"
)

// Embedder generates deterministic pseudo-random embeddings.
// The vector is seeded from a content hash of the input text, so the same
// text always produces the same vector across calls and processes. This is
// a testability property, not a cryptographic one; the vectors carry no
// semantic meaning beyond identity.
type Embedder struct{}

var _ ai.Embedder = (*Embedder)(nil)

// NewEmbedder creates a deterministic fallback embedder.
func NewEmbedder() *Embedder {
	return &Embedder{}
}

// EmbedText generates a deterministic unit vector of core.EmbeddingDim
// components for the given text. It never fails.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	return deterministicVector(text), nil
}

// EmbedTexts generates deterministic vectors for multiple texts.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = deterministicVector(text)
	}
	return vectors, nil
}

// deterministicVector builds the seeded pseudo-random vector and scales it
// to unit L2 norm.
func deterministicVector(text string) []float32 {
	seed := int64(core.IDFromContent(text))
	rng := rand.New(rand.NewSource(seed))

	vector := make([]float32, core.EmbeddingDim)
	for i := range vector {
		vector[i] = float32(rng.Float64()*2 - 1)
	}
	return normalizeVector(vector)
}

// normalizeVector normalizes a vector to unit length.
// Returns a new vector. If the input is a zero vector, returns a zero vector.
func normalizeVector(v []float32) []float32 {
	if len(v) == 0 {
		return v
	}

	var magnitude float32
	for _, val := range v {
		magnitude += val * val
	}
	magnitude = float32(math.Sqrt(float64(magnitude)))

	// Can't normalize zero vector
	if magnitude == 0 {
		result := make([]float32, len(v))
		return result
	}

	result := make([]float32, len(v))
	for i, val := range v {
		result[i] = val / magnitude
	}
	return result
}

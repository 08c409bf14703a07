package ai

import (
	"context"

	"github.com/sentinelkb/sentinel/core"
)

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text and
	// has exactly core.EmbeddingDim components.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// InsightExtractor turns cleaned capture text into a structured insight.
// Implementations must be thread-safe for concurrent use.
type InsightExtractor interface {
	// ExtractInsights distills text into a title, summary, key points,
	// action items, source attribution and suggested tags. The content
	// type steers what the extractor looks for (a tweet is read
	// differently than a code snippet).
	// Empty input must not fail; it yields an explicit "no content" result.
	ExtractInsights(ctx context.Context, text string, contentType core.ContentType) (*Extraction, error)
}

// Extraction is the structured result of insight extraction.
// All fields except Title and Summary may be empty.
type Extraction struct {
	// Title is a concise headline for the content, at most 100 runes.
	Title string

	// Summary condenses the content, at most 500 runes.
	Summary string

	// KeyPoints are the main takeaways, at most 5.
	KeyPoints []string

	// ActionItems are concrete follow-ups suggested by the content, at most 3.
	ActionItems []string

	// SourceTitle is the title of the originating page or document, if known.
	SourceTitle string

	// Author is the content author, if known.
	Author string

	// Tags are suggested labels for the content, pre-normalization.
	Tags []string
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages Embedder and InsightExtractor instances,
// ensuring they share configuration and resources appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// InsightExtractor returns the insight extraction service.
	// The returned InsightExtractor is safe for concurrent use.
	InsightExtractor() InsightExtractor

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}

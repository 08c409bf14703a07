package reembed

import (
	"context"
	"fmt"
	"time"

	"github.com/sentinelkb/sentinel/ai"
	"github.com/sentinelkb/sentinel/core"
	"github.com/sentinelkb/sentinel/storage"
)

// BatchProcessor regenerates embeddings for batches of insights.
type BatchProcessor struct {
	repo           storage.InsightRepository
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of retry attempts for embedding API calls
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(repo storage.InsightRepository, embedder ai.Embedder, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		repo:           repo,
		embedder:       embedder,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process embeds the canonical text of each insight in the batch and
// stores the resulting vectors. Vectors are normalized after embedding
// to keep them compatible with cosine similarity.
func (bp *BatchProcessor) Process(ctx context.Context, insights []*core.Insight) error {
	if len(insights) == 0 {
		return nil
	}

	texts := make([]string, len(insights))
	for i, insight := range insights {
		texts[i] = core.CanonicalText(insight.Summary, insight.KeyPoints)
	}

	var embeddings [][]float32
	err := ai.RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = bp.embedder.EmbedTexts(ctx, texts)
		return err
	}, bp.maxRetries, bp.retryBaseDelay)
	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.maxRetries, err)
	}

	if len(embeddings) != len(insights) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(insights), len(embeddings))
	}

	for i := range insights {
		insights[i].Vector = NormalizeVector(embeddings[i])
	}

	if err := bp.repo.UpdateInsightVectors(ctx, insights...); err != nil {
		return fmt.Errorf("failed to update insights: %w", err)
	}

	return nil
}

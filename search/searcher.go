package search

import (
	"context"
	"log/slog"

	"github.com/sentinelkb/sentinel/ai"
	"github.com/sentinelkb/sentinel/core"
	"github.com/sentinelkb/sentinel/storage"
)

// DefaultThreshold is the minimum similarity used when the caller does
// not supply one.
const DefaultThreshold = 0.60

// Searcher provides semantic and tag-based search over insights.
type Searcher struct {
	insightRepository storage.InsightRepository
	embedder          ai.Embedder
	logger            *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(
	insightRepository storage.InsightRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Searcher, error) {
	if insightRepository == nil {
		return nil, ErrInsightRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	s := &Searcher{
		insightRepository: insightRepository,
		embedder:          provider.Embedder(),
		logger:            slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// SearchSemantic searches for insights similar to the query text.
// Returns up to topK results, every one scoring at least threshold,
// ranked by similarity. Negative similarities are valid scores and are
// excluded only by the threshold.
func (s *Searcher) SearchSemantic(ctx context.Context, query string, topK int, threshold float32) ([]*core.SearchResult, error) {
	return s.SearchSemanticWithMonitor(ctx, query, topK, threshold, nil)
}

// SearchSemanticWithMonitor is SearchSemantic with stage callbacks.
func (s *Searcher) SearchSemanticWithMonitor(ctx context.Context, query string, topK int, threshold float32, monitor SearchMonitor) ([]*core.SearchResult, error) {
	if topK <= 0 {
		return nil, ErrInvalidTopK
	}
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	embedding, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, err
	}
	monitor.AfterQueryEmbedding(embedding)

	results, err := s.insightRepository.FindSimilar(ctx, embedding, threshold, topK)
	if err != nil {
		s.logger.Error("error querying for similar insights", "err", err)
		return nil, err
	}
	monitor.AfterSimilarityScan(results)

	monitor.Finish(results)
	return results, nil
}

// SearchByTags searches for insights by their resolved tag sets.
// Tags are normalized first; an empty effective set returns no results
// rather than matching everything. matchAll true requires every tag to
// be present, false requires at least one. Results are ordered most
// recently processed first.
func (s *Searcher) SearchByTags(ctx context.Context, tags []string, matchAll bool) ([]*core.Insight, error) {
	normalized := core.NormalizeTags(tags)
	if len(normalized) == 0 {
		return []*core.Insight{}, nil
	}

	insights, err := s.insightRepository.FindByTags(ctx, normalized, matchAll)
	if err != nil {
		s.logger.Error("error querying insights by tags", "tags", normalized, "err", err)
		return nil, err
	}
	return insights, nil
}

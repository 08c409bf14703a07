package ai

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sentinelkb/sentinel/core"
)

// failoverBaseDelay is the base backoff delay between primary attempts.
const failoverBaseDelay = 500 * time.Millisecond

// FailoverProvider wraps a primary AI provider with a deterministic
// fallback. Transient backend failures (timeouts, network errors, malformed
// responses) are absorbed here: each call gives the primary a bounded
// per-call timeout and a bounded number of attempts, then serves the
// fallback result instead of surfacing an error. The pipeline above never
// needs backend-specific error handling.
//
// Caller cancellation is the one failure that propagates: if the caller's
// own context is done, the context error is returned and the fallback is
// not consulted.
type FailoverProvider struct {
	primary     AIProvider
	fallback    AIProvider
	embedder    Embedder
	extractor   InsightExtractor
	logger      *slog.Logger
	callTimeout time.Duration
	maxAttempts int
}

var _ AIProvider = (*FailoverProvider)(nil)

// FailoverOption configures a FailoverProvider.
type FailoverOption func(*FailoverProvider)

// WithFailoverLogger sets a custom logger.
// Default is slog.Default().
func WithFailoverLogger(logger *slog.Logger) FailoverOption {
	return func(p *FailoverProvider) {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
	}
}

// NewFailoverProvider combines a primary provider with a deterministic
// fallback provider. callTimeout and maxAttempts typically come from
// Config.CallTimeout and Config.MaxAttempts.
func NewFailoverProvider(primary, fallback AIProvider, callTimeout time.Duration, maxAttempts int, opts ...FailoverOption) (*FailoverProvider, error) {
	if primary == nil {
		return nil, ErrPrimaryProviderRequired
	}
	if fallback == nil {
		return nil, ErrFallbackProviderRequired
	}
	if callTimeout <= 0 {
		callTimeout = 30 * time.Second
	}
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	p := &FailoverProvider{
		primary:     primary,
		fallback:    fallback,
		logger:      slog.Default().With("component", "failover-provider"),
		callTimeout: callTimeout,
		maxAttempts: maxAttempts,
	}
	for _, opt := range opts {
		opt(p)
	}

	p.embedder = &failoverEmbedder{provider: p}
	p.extractor = &failoverExtractor{provider: p}
	return p, nil
}

// Embedder returns the failover-protected embedding service.
func (p *FailoverProvider) Embedder() Embedder {
	return p.embedder
}

// InsightExtractor returns the failover-protected extraction service.
func (p *FailoverProvider) InsightExtractor() InsightExtractor {
	return p.extractor
}

// Close releases both wrapped providers.
func (p *FailoverProvider) Close() error {
	err := p.primary.Close()
	if ferr := p.fallback.Close(); err == nil {
		err = ferr
	}
	return err
}

// tryPrimary runs a primary backend call with the per-call timeout and
// bounded retries. It returns nil if the call eventually succeeded, the
// caller's context error if the caller was cancelled, and the last backend
// error otherwise.
func (p *FailoverProvider) tryPrimary(ctx context.Context, call func(ctx context.Context) error) error {
	err := RetryWithBackoff(ctx, func() error {
		callCtx, cancel := context.WithTimeout(ctx, p.callTimeout)
		defer cancel()
		return call(callCtx)
	}, p.maxAttempts, failoverBaseDelay)

	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

type failoverEmbedder struct {
	provider *FailoverProvider
}

var _ Embedder = (*failoverEmbedder)(nil)

// EmbedText embeds via the primary backend, falling back to the
// deterministic embedder on failure. Primary vectors with a dimension other
// than core.EmbeddingDim are rejected the same way: the corpus and every
// query must share one embedding space.
func (e *failoverEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	p := e.provider

	var vector []float32
	err := p.tryPrimary(ctx, func(ctx context.Context) error {
		v, err := p.primary.Embedder().EmbedText(ctx, text)
		if err != nil {
			return err
		}
		if len(v) != core.EmbeddingDim {
			return fmt.Errorf("%w: got %d, want %d", core.ErrWrongVectorDim, len(v), core.EmbeddingDim)
		}
		vector = v
		return nil
	})
	if err == nil {
		return vector, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}

	p.logger.Warn("embedding backend failed, using deterministic fallback", "err", err)
	return p.fallback.Embedder().EmbedText(ctx, text)
}

// EmbedTexts embeds a batch via the primary backend, falling back to the
// deterministic embedder on failure.
func (e *failoverEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	p := e.provider

	var vectors [][]float32
	err := p.tryPrimary(ctx, func(ctx context.Context) error {
		vs, err := p.primary.Embedder().EmbedTexts(ctx, texts)
		if err != nil {
			return err
		}
		if len(vs) != len(texts) {
			return fmt.Errorf("embedding result mismatch. expected %d, received %d", len(texts), len(vs))
		}
		for _, v := range vs {
			if len(v) != core.EmbeddingDim {
				return fmt.Errorf("%w: got %d, want %d", core.ErrWrongVectorDim, len(v), core.EmbeddingDim)
			}
		}
		vectors = vs
		return nil
	})
	if err == nil {
		return vectors, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}

	p.logger.Warn("embedding backend failed, using deterministic fallback", "count", len(texts), "err", err)
	return p.fallback.Embedder().EmbedTexts(ctx, texts)
}

type failoverExtractor struct {
	provider *FailoverProvider
}

var _ InsightExtractor = (*failoverExtractor)(nil)

// ExtractInsights extracts via the primary backend, falling back to the
// deterministic heuristic extractor on failure.
func (x *failoverExtractor) ExtractInsights(ctx context.Context, text string, contentType core.ContentType) (*Extraction, error) {
	p := x.provider

	var extraction *Extraction
	err := p.tryPrimary(ctx, func(ctx context.Context) error {
		result, err := p.primary.InsightExtractor().ExtractInsights(ctx, text, contentType)
		if err != nil {
			return err
		}
		extraction = result
		return nil
	})
	if err == nil {
		return extraction, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}

	p.logger.Warn("extraction backend failed, using deterministic fallback", "contentType", contentType, "err", err)
	return p.fallback.InsightExtractor().ExtractInsights(ctx, text, contentType)
}

package fallback

import (
	"github.com/sentinelkb/sentinel/ai"
)

// Provider implements ai.AIProvider with the deterministic services.
// It is used standalone when no backend is configured, and as the
// degraded-mode half of a FailoverProvider.
type Provider struct {
	embedder  *Embedder
	extractor *Extractor
}

var _ ai.AIProvider = (*Provider)(nil)

// NewProvider creates a deterministic fallback provider.
func NewProvider() *Provider {
	return &Provider{
		embedder:  NewEmbedder(),
		extractor: NewExtractor(),
	}
}

// Embedder returns the deterministic embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// InsightExtractor returns the deterministic extraction service.
func (p *Provider) InsightExtractor() ai.InsightExtractor {
	return p.extractor
}

// Close is a no-op; the fallback services hold no resources.
func (p *Provider) Close() error {
	return nil
}

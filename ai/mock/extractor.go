package mock

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/sentinelkb/sentinel/ai"
	"github.com/sentinelkb/sentinel/core"
)

// MockInsightExtractor is a test double for ai.InsightExtractor.
// It allows custom behavior injection via a function field.
type MockInsightExtractor struct {
	// ExtractFunc is called by ExtractInsights if set.
	// If nil, uses default deterministic behavior.
	ExtractFunc func(ctx context.Context, text string, contentType core.ContentType) (*ai.Extraction, error)

	callCount atomic.Int64
}

// NewMockInsightExtractor creates a mock extractor with default deterministic behavior.
func NewMockInsightExtractor() *MockInsightExtractor {
	return &MockInsightExtractor{}
}

// ExtractInsights returns a simple deterministic extraction derived from the text.
func (m *MockInsightExtractor) ExtractInsights(ctx context.Context, text string, contentType core.ContentType) (*ai.Extraction, error) {
	m.callCount.Add(1)

	if m.ExtractFunc != nil {
		return m.ExtractFunc(ctx, text, contentType)
	}

	// Default: first line as title, whole text as summary
	trimmed := strings.TrimSpace(text)
	title := trimmed
	if idx := strings.IndexByte(title, '\n'); idx >= 0 {
		title = title[:idx]
	}
	if title == "" {
		title = "mock title"
	}
	summary := trimmed
	if summary == "" {
		summary = "mock summary"
	}

	return &ai.Extraction{
		Title:   title,
		Summary: summary,
		Tags:    []string{"mock"},
	}, nil
}

// CallCount returns the number of times ExtractInsights was called.
func (m *MockInsightExtractor) CallCount() int {
	return int(m.callCount.Load())
}

// Reset clears the call count and injected behavior.
func (m *MockInsightExtractor) Reset() {
	m.callCount.Store(0)
	m.ExtractFunc = nil
}

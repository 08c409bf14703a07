package search

import "github.com/sentinelkb/sentinel/core"

// SearchMonitor provides hooks to observe a semantic search.
// Implement this interface to track intermediate steps and results.
type SearchMonitor interface {
	Start(query string)
	AfterQueryEmbedding(vector []float32)
	AfterSimilarityScan(matches []*core.SearchResult)
	Finish(results []*core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                            {}
func (n *noopMonitor) AfterQueryEmbedding(_ []float32)           {}
func (n *noopMonitor) AfterSimilarityScan(_ []*core.SearchResult) {}
func (n *noopMonitor) Finish(_ []*core.SearchResult)             {}

package reembed

import "errors"

var (
	// ErrInsightRepositoryRequired is returned when no insight repository is provided.
	ErrInsightRepositoryRequired = errors.New("insight repository is required")

	// ErrCheckpointRepositoryRequired is returned when no checkpoint repository is provided.
	ErrCheckpointRepositoryRequired = errors.New("checkpoint repository is required")

	// ErrEmbedderRequired is returned when no embedder is provided.
	ErrEmbedderRequired = errors.New("embedder is required")
)

package ingestion

import "errors"

var (
	// ErrCaptureRepositoryRequired is returned when a capture repository is not provided.
	ErrCaptureRepositoryRequired = errors.New("capture repository required")

	// ErrInsightRepositoryRequired is returned when an insight repository is not provided.
	ErrInsightRepositoryRequired = errors.New("insight repository required")

	// ErrTagRepositoryRequired is returned when a tag repository is not provided.
	ErrTagRepositoryRequired = errors.New("tag repository required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrQueueRequired is returned when a queue is not provided.
	ErrQueueRequired = errors.New("queue required")

	// ErrPipelineRequired is returned when a pipeline is not provided.
	ErrPipelineRequired = errors.New("pipeline required")

	// ErrNotTerminal is returned when reprocessing is requested for a
	// capture that is still pending or processing.
	ErrNotTerminal = errors.New("capture not in a terminal state")
)

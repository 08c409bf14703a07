package queue

import "errors"

var (
	// ErrAlreadyQueued is returned when a capture is already waiting or in flight.
	ErrAlreadyQueued = errors.New("capture already queued")

	// ErrQueueShutdown is returned when the queue has been shut down.
	ErrQueueShutdown = errors.New("queue shut down")

	// ErrHandlerRequired is returned when a worker handler is not provided.
	ErrHandlerRequired = errors.New("handler required")

	// ErrQueueRequired is returned when a queue is not provided.
	ErrQueueRequired = errors.New("queue required")
)

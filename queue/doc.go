// Package queue provides the in-process work queue feeding the
// processing pipeline.
//
// The Queue type holds capture IDs awaiting processing and deduplicates
// them: a capture already waiting or in flight cannot be enqueued again
// until its worker calls Done. The Workers type drains the queue with a
// bounded worker pool, isolating panics and applying a per-item timeout
// so one stuck capture never stalls the rest.
package queue

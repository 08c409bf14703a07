// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package queue

import (
	"context"
	"sync"

	"github.com/sentinelkb/sentinel/core"
)

// Queue is a FIFO queue of capture IDs with in-flight deduplication.
// An ID stays tracked from Enqueue until the consumer calls Done, so
// the same capture can never be processed twice concurrently.
type Queue struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	notFull  *sync.Cond
	items    []core.ID
	tracked  map[core.ID]bool // waiting or in flight
	capacity int              // 0 means unbounded
	shutdown bool
}

// Option configures a Queue.
type Option func(*Queue) error

// WithCapacity bounds the queue. Enqueue blocks while the queue holds
// capacity waiting items. Zero or negative means unbounded.
func WithCapacity(capacity int) Option {
	return func(q *Queue) error {
		if capacity < 0 {
			capacity = 0
		}
		q.capacity = capacity
		return nil
	}
}

// New creates a new Queue.
func New(opts ...Option) (*Queue, error) {
	q := &Queue{
		tracked: make(map[core.ID]bool),
	}
	q.notEmpty = sync.NewCond(&q.mu)
	q.notFull = sync.NewCond(&q.mu)

	for _, opt := range opts {
		if err := opt(q); err != nil {
			return nil, err
		}
	}
	return q, nil
}

// Enqueue adds a capture ID to the queue. Returns ErrAlreadyQueued if
// the ID is waiting or in flight, and ErrQueueShutdown after Shutdown.
// With a bounded queue, blocks until space is available.
func (q *Queue) Enqueue(id core.ID) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.shutdown {
		return ErrQueueShutdown
	}
	if q.tracked[id] {
		return ErrAlreadyQueued
	}

	for q.capacity > 0 && len(q.items) >= q.capacity {
		q.notFull.Wait()
		if q.shutdown {
			return ErrQueueShutdown
		}
		// Another enqueuer may have raced the same ID in while we waited
		if q.tracked[id] {
			return ErrAlreadyQueued
		}
	}

	q.tracked[id] = true
	q.items = append(q.items, id)
	q.notEmpty.Signal()
	return nil
}

// Dequeue removes and returns the oldest queued ID, blocking until an
// item arrives, the context is cancelled, or the queue shuts down. The
// ID stays tracked until Done is called for it.
func (q *Queue) Dequeue(ctx context.Context) (core.ID, error) {
	// Wake the waiting Dequeue if the context dies first
	stop := context.AfterFunc(ctx, func() {
		q.mu.Lock()
		q.notEmpty.Broadcast()
		q.mu.Unlock()
	})
	defer stop()

	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 {
		if q.shutdown {
			return 0, ErrQueueShutdown
		}
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		q.notEmpty.Wait()
	}

	id := q.items[0]
	q.items = q.items[1:]
	q.notFull.Signal()
	return id, nil
}

// Done marks a capture as no longer in flight, allowing it to be
// enqueued again. Safe to call for IDs that were never tracked.
func (q *Queue) Done(id core.ID) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.tracked, id)
}

// Len returns the number of waiting items. In-flight items are not
// counted.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Shutdown stops the queue. Pending items are discarded and blocked
// Enqueue and Dequeue calls return ErrQueueShutdown. Idempotent.
func (q *Queue) Shutdown() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.shutdown {
		return
	}
	q.shutdown = true
	q.items = nil
	q.notEmpty.Broadcast()
	q.notFull.Broadcast()
}

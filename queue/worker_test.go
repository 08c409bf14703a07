package queue

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sentinelkb/sentinel/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorkers_Validation(t *testing.T) {
	q, err := New()
	require.NoError(t, err)
	defer q.Shutdown()

	handler := func(ctx context.Context, id core.ID) error { return nil }

	_, err = NewWorkers(nil, handler)
	assert.ErrorIs(t, err, ErrQueueRequired)

	_, err = NewWorkers(q, nil)
	assert.ErrorIs(t, err, ErrHandlerRequired)
}

func TestWorkersProcessItems(t *testing.T) {
	q, err := New()
	require.NoError(t, err)
	defer q.Shutdown()

	var mu sync.Mutex
	processed := make(map[core.ID]int)
	done := make(chan struct{}, 10)

	handler := func(ctx context.Context, id core.ID) error {
		mu.Lock()
		processed[id]++
		mu.Unlock()
		done <- struct{}{}
		return nil
	}

	workers, err := NewWorkers(q, handler, WithPoolSize(2))
	require.NoError(t, err)
	workers.Start()
	defer workers.Stop()

	for i := 1; i <= 5; i++ {
		require.NoError(t, q.Enqueue(core.ID(i)))
	}

	for i := 0; i < 5; i++ {
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("workers did not drain the queue")
		}
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, processed, 5)
	for id, count := range processed {
		assert.Equal(t, 1, count, "capture %d processed more than once", id)
	}
}

func TestWorkersReleaseQueueSlot(t *testing.T) {
	q, err := New()
	require.NoError(t, err)
	defer q.Shutdown()

	done := make(chan struct{}, 2)
	handler := func(ctx context.Context, id core.ID) error {
		done <- struct{}{}
		return nil
	}

	workers, err := NewWorkers(q, handler, WithPoolSize(1))
	require.NoError(t, err)
	workers.Start()
	defer workers.Stop()

	require.NoError(t, q.Enqueue(core.ID(1)))
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("first run did not complete")
	}

	// Slot released after processing; re-enqueue must succeed eventually
	require.Eventually(t, func() bool {
		return q.Enqueue(core.ID(1)) == nil
	}, 5*time.Second, 10*time.Millisecond)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("second run did not complete")
	}
}

func TestWorkersSurvivePanic(t *testing.T) {
	q, err := New()
	require.NoError(t, err)
	defer q.Shutdown()

	done := make(chan core.ID, 2)
	handler := func(ctx context.Context, id core.ID) error {
		if id == 1 {
			panic("boom")
		}
		done <- id
		return nil
	}

	workers, err := NewWorkers(q, handler, WithPoolSize(1))
	require.NoError(t, err)
	workers.Start()
	defer workers.Stop()

	require.NoError(t, q.Enqueue(core.ID(1)))
	require.NoError(t, q.Enqueue(core.ID(2)))

	// The panic on capture 1 must not take down the pool
	select {
	case id := <-done:
		assert.Equal(t, core.ID(2), id)
	case <-time.After(5 * time.Second):
		t.Fatal("worker pool did not survive the panic")
	}
}

func TestWorkersItemTimeout(t *testing.T) {
	q, err := New()
	require.NoError(t, err)
	defer q.Shutdown()

	timedOut := make(chan bool, 1)
	handler := func(ctx context.Context, id core.ID) error {
		<-ctx.Done()
		timedOut <- ctx.Err() == context.DeadlineExceeded
		return ctx.Err()
	}

	workers, err := NewWorkers(q, handler, WithItemTimeout(50*time.Millisecond))
	require.NoError(t, err)
	workers.Start()
	defer workers.Stop()

	require.NoError(t, q.Enqueue(core.ID(1)))

	select {
	case wasDeadline := <-timedOut:
		assert.True(t, wasDeadline)
	case <-time.After(5 * time.Second):
		t.Fatal("per-item timeout did not fire")
	}
}

func TestWorkersStop(t *testing.T) {
	q, err := New()
	require.NoError(t, err)
	defer q.Shutdown()

	handler := func(ctx context.Context, id core.ID) error { return nil }

	workers, err := NewWorkers(q, handler)
	require.NoError(t, err)
	workers.Start()

	// Stop is idempotent and returns once the dispatcher exits
	workers.Stop()
	workers.Stop()
}

func TestWorkersStopDrainsInFlight(t *testing.T) {
	q, err := New()
	require.NoError(t, err)
	defer q.Shutdown()

	started := make(chan struct{})
	release := make(chan struct{})
	var finished, sawCancel atomic.Bool

	handler := func(ctx context.Context, id core.ID) error {
		close(started)
		<-release
		sawCancel.Store(ctx.Err() != nil)
		finished.Store(true)
		return nil
	}

	workers, err := NewWorkers(q, handler, WithPoolSize(1))
	require.NoError(t, err)
	workers.Start()

	require.NoError(t, q.Enqueue(core.ID(1)))
	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("handler did not start")
	}

	stopped := make(chan struct{})
	go func() {
		workers.Stop()
		close(stopped)
	}()

	// Stop must block on the in-flight item, not abandon it
	select {
	case <-stopped:
		t.Fatal("Stop returned while the in-flight handler was still running")
	case <-time.After(100 * time.Millisecond):
	}

	close(release)
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not return after the handler finished")
	}

	assert.True(t, finished.Load())
	assert.False(t, sawCancel.Load(), "in-flight handler context was cancelled during Stop")
}

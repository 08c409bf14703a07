package queue

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sentinelkb/sentinel/core"
)

const defaultItemTimeout = 2 * time.Minute

// Handler processes a single dequeued capture. Errors are the handler's
// business to record; the workers only log them.
type Handler func(ctx context.Context, id core.ID) error

// Workers drains a Queue with a bounded ants pool. Each item runs with
// a per-item timeout behind a panic boundary, and its queue slot is
// released when the handler returns.
type Workers struct {
	queue       *Queue
	handler     Handler
	pool        *ants.Pool
	itemTimeout time.Duration
	logger      *slog.Logger

	cancel context.CancelFunc
	// wg counts the dispatcher plus every in-flight item
	wg sync.WaitGroup

	startOnce sync.Once
	stopOnce  sync.Once
}

// WorkersOption configures Workers.
type WorkersOption func(*Workers) error

// WithPoolSize sets the worker pool size.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) WorkersOption {
	return func(w *Workers) error {
		if size < 1 {
			size = 1
		}
		if w.pool != nil {
			w.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		w.pool = pool
		return nil
	}
}

// WithItemTimeout sets the per-item processing timeout.
// Default is 2 minutes.
func WithItemTimeout(timeout time.Duration) WorkersOption {
	return func(w *Workers) error {
		if timeout > 0 {
			w.itemTimeout = timeout
		}
		return nil
	}
}

// WithWorkersLogger sets a custom logger.
// Default is slog.Default().
func WithWorkersLogger(logger *slog.Logger) WorkersOption {
	return func(w *Workers) error {
		if logger == nil {
			logger = slog.Default()
		}
		w.logger = logger
		return nil
	}
}

// NewWorkers creates workers for the given queue and handler.
func NewWorkers(queue *Queue, handler Handler, opts ...WorkersOption) (*Workers, error) {
	if queue == nil {
		return nil, ErrQueueRequired
	}
	if handler == nil {
		return nil, ErrHandlerRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	w := &Workers{
		queue:       queue,
		handler:     handler,
		pool:        pool,
		itemTimeout: defaultItemTimeout,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(w); optErr != nil {
			w.pool.Release()
			return nil, optErr
		}
	}

	return w, nil
}

// Start launches the dispatcher goroutine. Subsequent calls are no-ops.
func (w *Workers) Start() {
	w.startOnce.Do(func() {
		ctx, cancel := context.WithCancel(context.Background())
		w.cancel = cancel

		w.wg.Add(1)
		go w.dispatch(ctx)
	})
}

// dispatch pulls items off the queue and hands them to the pool. The
// context only governs Dequeue; items already handed to the pool run
// to completion regardless.
func (w *Workers) dispatch(ctx context.Context) {
	defer w.wg.Done()

	for {
		id, err := w.queue.Dequeue(ctx)
		if err != nil {
			return
		}

		w.wg.Add(1)
		submitErr := w.pool.Submit(func() {
			defer w.wg.Done()
			defer w.queue.Done(id)
			w.run(id)
		})
		if submitErr != nil {
			// Pool released under us; put the slot back and stop
			w.wg.Done()
			w.queue.Done(id)
			w.logger.Error("error submitting capture to pool", "id", id, "err", submitErr)
			return
		}
	}
}

// run executes the handler for one item behind a panic boundary. The
// item context is independent of the dispatcher's, so a shutdown does
// not abort a handler mid-flight; only the per-item timeout does.
func (w *Workers) run(id core.ID) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("panic processing capture", "id", id, "panic", r)
		}
	}()

	itemCtx, cancel := context.WithTimeout(context.Background(), w.itemTimeout)
	defer cancel()

	if err := w.handler(itemCtx, id); err != nil {
		w.logger.Error("error processing capture", "id", id, "err", err)
	}
}

// Stop shuts down the dispatcher and waits for in-flight items to
// finish. In-flight handlers keep their contexts and run to completion
// (bounded by the per-item timeout); only then is the pool released.
// The queue itself is not shut down.
func (w *Workers) Stop() {
	w.stopOnce.Do(func() {
		if w.cancel != nil {
			w.cancel()
		}
		w.wg.Wait()
		w.pool.Release()
	})
}

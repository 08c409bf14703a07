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


// Package sentinel wires storage, the AI layer, the background workers
// and the search engine into one capture-to-insight system.
package sentinel

import (
	"context"
	"log/slog"
	"time"

	"github.com/sentinelkb/sentinel/ai"
	"github.com/sentinelkb/sentinel/ai/fallback"
	"github.com/sentinelkb/sentinel/ai/openai"
	"github.com/sentinelkb/sentinel/core"
	"github.com/sentinelkb/sentinel/ingestion"
	"github.com/sentinelkb/sentinel/queue"
	"github.com/sentinelkb/sentinel/search"
	"github.com/sentinelkb/sentinel/storage"
	"github.com/sentinelkb/sentinel/storage/badger"
)

// Engine owns the full capture pipeline: repositories, AI provider,
// background workers and searcher. Open starts the workers; Close
// drains them and releases every resource.
type Engine struct {
	backend        *badger.Backend
	captureRepo    storage.CaptureRepository
	insightRepo    storage.InsightRepository
	tagRepo        storage.TagRepository
	checkpointRepo storage.CheckpointRepository
	provider       ai.AIProvider
	queue          *queue.Queue
	workers        *queue.Workers
	service        *ingestion.Service
	searcher       *search.Searcher
	logger         *slog.Logger
}

// Option configures an Engine.
type Option func(*engineOptions)

type engineOptions struct {
	aiConfig       *ai.Config
	fallbackOnly   bool
	poolSize       int
	queueCapacity  int
	processTimeout time.Duration
	logger         *slog.Logger
}

// WithAIConfig sets the backend AI configuration.
func WithAIConfig(config *ai.Config) Option {
	return func(o *engineOptions) {
		o.aiConfig = config
	}
}

// WithFallbackOnly runs the engine on the deterministic fallback
// provider alone, with no AI backend.
func WithFallbackOnly() Option {
	return func(o *engineOptions) {
		o.fallbackOnly = true
	}
}

// WithPoolSize sets the number of concurrent pipeline workers.
func WithPoolSize(size int) Option {
	return func(o *engineOptions) {
		o.poolSize = size
	}
}

// WithQueueCapacity bounds the work queue. Submit blocks while the
// queue is full. Zero means unbounded.
func WithQueueCapacity(capacity int) Option {
	return func(o *engineOptions) {
		o.queueCapacity = capacity
	}
}

// WithProcessTimeout bounds each pipeline run.
func WithProcessTimeout(timeout time.Duration) Option {
	return func(o *engineOptions) {
		o.processTimeout = timeout
	}
}

// WithLogger sets the logger used by the engine and its components.
func WithLogger(logger *slog.Logger) Option {
	return func(o *engineOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Open opens an engine backed by a badger database at filePath and
// starts the background workers.
func Open(filePath string, opts ...Option) (*Engine, error) {
	return open(filePath, false, opts)
}

// OpenInMemory opens an engine backed by an in-memory badger database,
// mainly for tests and ephemeral use.
func OpenInMemory(opts ...Option) (*Engine, error) {
	return open("", true, opts)
}

func open(filePath string, inMemory bool, opts []Option) (*Engine, error) {
	options := &engineOptions{
		aiConfig: ai.DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, inMemory)
	if err != nil {
		return nil, err
	}

	captureRepo, err := badger.NewCaptureRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	insightRepo, err := badger.NewInsightRepository(backend)
	if err != nil {
		captureRepo.Close()
		backend.Close()
		return nil, err
	}

	tagRepo, err := badger.NewTagRepository(backend)
	if err != nil {
		insightRepo.Close()
		captureRepo.Close()
		backend.Close()
		return nil, err
	}

	checkpointRepo := badger.NewCheckpointRepository(backend)

	provider, err := newProvider(options)
	if err != nil {
		tagRepo.Close()
		insightRepo.Close()
		captureRepo.Close()
		backend.Close()
		return nil, err
	}

	engine, err := assemble(backend, captureRepo, insightRepo, tagRepo, checkpointRepo, provider, options)
	if err != nil {
		provider.Close()
		tagRepo.Close()
		insightRepo.Close()
		captureRepo.Close()
		backend.Close()
		return nil, err
	}

	engine.workers.Start()
	return engine, nil
}

// newProvider builds the AI provider: the deterministic fallback alone,
// or a configured backend wrapped in failover protection.
func newProvider(options *engineOptions) (ai.AIProvider, error) {
	if options.fallbackOnly {
		return fallback.NewProvider(), nil
	}

	config := options.aiConfig
	if config == nil {
		config = ai.DefaultConfig()
	}

	primary, err := openai.NewProvider(config)
	if err != nil {
		return nil, err
	}

	provider, err := ai.NewFailoverProvider(primary, fallback.NewProvider(), config.CallTimeout, config.MaxAttempts,
		ai.WithFailoverLogger(options.logger))
	if err != nil {
		primary.Close()
		return nil, err
	}
	return provider, nil
}

func assemble(
	backend *badger.Backend,
	captureRepo storage.CaptureRepository,
	insightRepo storage.InsightRepository,
	tagRepo storage.TagRepository,
	checkpointRepo storage.CheckpointRepository,
	provider ai.AIProvider,
	options *engineOptions,
) (*Engine, error) {
	pipeline, err := ingestion.NewPipeline(captureRepo, insightRepo, tagRepo, provider,
		ingestion.WithPipelineLogger(options.logger))
	if err != nil {
		return nil, err
	}

	var queueOpts []queue.Option
	if options.queueCapacity > 0 {
		queueOpts = append(queueOpts, queue.WithCapacity(options.queueCapacity))
	}
	q, err := queue.New(queueOpts...)
	if err != nil {
		return nil, err
	}

	workerOpts := []queue.WorkersOption{queue.WithWorkersLogger(options.logger)}
	if options.poolSize > 0 {
		workerOpts = append(workerOpts, queue.WithPoolSize(options.poolSize))
	}
	if options.processTimeout > 0 {
		workerOpts = append(workerOpts, queue.WithItemTimeout(options.processTimeout))
	}
	workers, err := queue.NewWorkers(q, pipeline.Process, workerOpts...)
	if err != nil {
		return nil, err
	}

	service, err := ingestion.NewService(captureRepo, insightRepo, q,
		ingestion.WithServiceLogger(options.logger))
	if err != nil {
		workers.Stop()
		return nil, err
	}

	searcher, err := search.NewSearcher(insightRepo, provider,
		search.WithLogger(options.logger))
	if err != nil {
		workers.Stop()
		return nil, err
	}

	return &Engine{
		backend:        backend,
		captureRepo:    captureRepo,
		insightRepo:    insightRepo,
		tagRepo:        tagRepo,
		checkpointRepo: checkpointRepo,
		provider:       provider,
		queue:          q,
		workers:        workers,
		service:        service,
		searcher:       searcher,
		logger:         options.logger,
	}, nil
}

// Submit accepts new content for capture. The capture is stored as
// Pending and processed in the background.
func (e *Engine) Submit(ctx context.Context, req ingestion.SubmitRequest) (*core.Capture, error) {
	return e.service.Submit(ctx, req)
}

// Get returns a capture and, once processing has completed, its insight.
func (e *Engine) Get(ctx context.Context, id core.ID) (*core.Capture, *core.Insight, error) {
	return e.service.Get(ctx, id)
}

// Reprocess resets a terminal capture to Pending and queues it again.
func (e *Engine) Reprocess(ctx context.Context, id core.ID) error {
	return e.service.Reprocess(ctx, id)
}

// SearchSemantic finds insights similar to the query text.
func (e *Engine) SearchSemantic(ctx context.Context, query string, topK int, threshold float32) ([]*core.SearchResult, error) {
	return e.searcher.SearchSemantic(ctx, query, topK, threshold)
}

// SearchByTags finds insights by tag names.
func (e *Engine) SearchByTags(ctx context.Context, tags []string, matchAll bool) ([]*core.Insight, error) {
	return e.searcher.SearchByTags(ctx, tags, matchAll)
}

// QueueDepth returns the number of captures waiting for processing.
func (e *Engine) QueueDepth() int {
	return e.service.QueueDepth()
}

// Searcher exposes the underlying search engine, e.g. for monitored
// searches.
func (e *Engine) Searcher() *search.Searcher {
	return e.searcher
}

func (e *Engine) CaptureRepository() storage.CaptureRepository {
	return e.captureRepo
}

func (e *Engine) InsightRepository() storage.InsightRepository {
	return e.insightRepo
}

func (e *Engine) TagRepository() storage.TagRepository {
	return e.tagRepo
}

func (e *Engine) CheckpointRepository() storage.CheckpointRepository {
	return e.checkpointRepo
}

// Close stops the workers, waits for in-flight pipeline runs and
// releases every resource. Pending queue items are dropped.
func (e *Engine) Close() error {
	e.workers.Stop()
	e.queue.Shutdown()

	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
	}

	if err := e.tagRepo.Close(); err != nil {
		e.logger.Error("error closing tag repository", "err", err)
		return err
	}
	if err := e.insightRepo.Close(); err != nil {
		e.logger.Error("error closing insight repository", "err", err)
		return err
	}
	if err := e.captureRepo.Close(); err != nil {
		e.logger.Error("error closing capture repository", "err", err)
		return err
	}

	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

package ingestion

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sentinelkb/sentinel/ai"
	"github.com/sentinelkb/sentinel/core"
	"github.com/sentinelkb/sentinel/storage"
)

// Pipeline drives a single capture through its processing lifecycle:
// clean, extract, embed, resolve tags, commit. Each run ends in exactly
// one terminal state; failures record their cause on the capture and
// are never retried automatically.
type Pipeline struct {
	captureRepository storage.CaptureRepository
	insightRepository storage.InsightRepository
	tagRepository     storage.TagRepository
	embedder          ai.Embedder
	extractor         ai.InsightExtractor
	logger            *slog.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline) error

// WithPipelineLogger sets a custom logger.
// Default is slog.Default().
func WithPipelineLogger(logger *slog.Logger) PipelineOption {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new processing pipeline.
func NewPipeline(
	captureRepository storage.CaptureRepository,
	insightRepository storage.InsightRepository,
	tagRepository storage.TagRepository,
	provider ai.AIProvider,
	opts ...PipelineOption,
) (*Pipeline, error) {
	if captureRepository == nil {
		return nil, ErrCaptureRepositoryRequired
	}
	if insightRepository == nil {
		return nil, ErrInsightRepositoryRequired
	}
	if tagRepository == nil {
		return nil, ErrTagRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	p := &Pipeline{
		captureRepository: captureRepository,
		insightRepository: insightRepository,
		tagRepository:     tagRepository,
		embedder:          provider.Embedder(),
		extractor:         provider.InsightExtractor(),
		logger:            slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			return nil, optErr
		}
	}
	p.logger = p.logger.With("component", "pipeline")

	return p, nil
}

// Process runs one capture to a terminal state. A missing capture is a
// logged no-op: the queue may hold IDs whose captures were deleted.
func (p *Pipeline) Process(ctx context.Context, id core.ID) error {
	capture, err := p.captureRepository.GetCapture(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			p.logger.Warn("skipping missing capture", "id", id)
			return nil
		}
		return err
	}

	if capture.Status != core.StatusPending {
		// A stale queue item; the capture already ran or is running
		p.logger.Warn("skipping capture not in pending state",
			"id", id, "status", capture.Status.String())
		return nil
	}

	// Claim the capture before doing any work
	capture.Status = core.StatusProcessing
	if _, err := p.captureRepository.UpdateCaptures(ctx, capture); err != nil {
		return err
	}

	insight, err := p.buildInsight(ctx, capture)
	if err != nil {
		return p.fail(ctx, capture, err)
	}

	capture.Status = core.StatusCompleted
	capture.ErrorMessage = ""
	capture.ProcessedAt = insight.ProcessedAt
	if err := p.insightRepository.CommitInsight(ctx, insight, capture); err != nil {
		return p.fail(ctx, capture, err)
	}

	p.logger.Info("capture processed", "id", id, "tags", len(insight.Tags))
	return nil
}

// buildInsight produces the insight for a capture: clean, extract,
// embed, resolve tags. Nothing is persisted here.
func (p *Pipeline) buildInsight(ctx context.Context, capture *core.Capture) (*core.Insight, error) {
	cleaned := CleanContent(capture.RawContent)

	extraction, err := p.extractor.ExtractInsights(ctx, cleaned, capture.ContentType)
	if err != nil {
		return nil, err
	}

	canonical := core.CanonicalText(extraction.Summary, extraction.KeyPoints)
	vector, err := p.embedder.EmbedText(ctx, canonical)
	if err != nil {
		return nil, err
	}

	// Resolved tags are the union of what the caller asked for and what
	// extraction suggested
	names := make([]string, 0, len(capture.RequestedTags)+len(extraction.Tags))
	names = append(names, capture.RequestedTags...)
	names = append(names, extraction.Tags...)
	tags, err := p.tagRepository.GetOrCreateTags(ctx, names)
	if err != nil {
		return nil, err
	}
	resolved := make([]string, len(tags))
	for i, tag := range tags {
		resolved[i] = tag.Name
	}

	return &core.Insight{
		CaptureId:   capture.Id,
		Title:       extraction.Title,
		Summary:     extraction.Summary,
		KeyPoints:   extraction.KeyPoints,
		ActionItems: extraction.ActionItems,
		SourceTitle: extraction.SourceTitle,
		Author:      extraction.Author,
		Tags:        resolved,
		Vector:      vector,
		ProcessedAt: time.Now().UTC(),
	}, nil
}

// fail moves a capture to the failed state, recording the cause.
func (p *Pipeline) fail(ctx context.Context, capture *core.Capture, cause error) error {
	p.logger.Error("capture processing failed", "id", capture.Id, "err", cause)

	capture.Status = core.StatusFailed
	capture.ErrorMessage = cause.Error()
	capture.ProcessedAt = time.Now().UTC()
	if _, err := p.captureRepository.UpdateCaptures(ctx, capture); err != nil {
		p.logger.Error("error recording capture failure", "id", capture.Id, "err", err)
	}
	return cause
}

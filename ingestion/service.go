package ingestion

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sentinelkb/sentinel/core"
	"github.com/sentinelkb/sentinel/queue"
	"github.com/sentinelkb/sentinel/storage"
)

// Service accepts captures and hands them to the background queue.
// Submission is accept-now, process-later: the capture is stored as
// pending and the call returns before any processing happens.
type Service struct {
	captureRepository storage.CaptureRepository
	insightRepository storage.InsightRepository
	queue             *queue.Queue
	logger            *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service) error

// WithServiceLogger sets a custom logger.
// Default is slog.Default().
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewService creates a new capture service.
func NewService(
	captureRepository storage.CaptureRepository,
	insightRepository storage.InsightRepository,
	q *queue.Queue,
	opts ...ServiceOption,
) (*Service, error) {
	if captureRepository == nil {
		return nil, ErrCaptureRepositoryRequired
	}
	if insightRepository == nil {
		return nil, ErrInsightRepositoryRequired
	}
	if q == nil {
		return nil, ErrQueueRequired
	}

	s := &Service{
		captureRepository: captureRepository,
		insightRepository: insightRepository,
		queue:             q,
		logger:            slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(s); optErr != nil {
			return nil, optErr
		}
	}
	s.logger = s.logger.With("component", "ingestion")

	return s, nil
}

// SubmitRequest holds the submission parameters for one capture.
type SubmitRequest struct {
	SourceURL   string
	ContentType core.ContentType
	RawContent  string            // Stored verbatim, may be empty
	Metadata    map[string]string // Optional
	Tags        []string          // Requested tags, normalized during processing
	CapturedAt  time.Time         // Optional; defaults to submission time
}

// Submit stores the request as a pending capture and enqueues it for
// processing. The returned capture carries its assigned ID.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*core.Capture, error) {
	capturedAt := req.CapturedAt
	if capturedAt.IsZero() {
		capturedAt = time.Now().UTC()
	}

	capture := &core.Capture{
		SourceURL:     req.SourceURL,
		ContentType:   req.ContentType,
		RawContent:    req.RawContent,
		Metadata:      req.Metadata,
		RequestedTags: req.Tags,
		Status:        core.StatusPending,
		CapturedAt:    capturedAt,
	}
	if err := core.ValidateCapture(capture); err != nil {
		return nil, err
	}

	added, err := s.captureRepository.AddCaptures(ctx, capture)
	if err != nil {
		return nil, err
	}
	capture = added[0]

	if err := s.queue.Enqueue(capture.Id); err != nil {
		// The capture is stored either way; it can be reprocessed later
		s.logger.Error("error enqueueing capture", "id", capture.Id, "err", err)
		return capture, err
	}

	s.logger.Info("capture submitted", "id", capture.Id,
		"type", capture.ContentType.String(), "source", capture.SourceURL)
	return capture, nil
}

// Get returns a capture and, when processing has completed, its insight.
// The insight is nil for captures in any other state.
func (s *Service) Get(ctx context.Context, id core.ID) (*core.Capture, *core.Insight, error) {
	capture, err := s.captureRepository.GetCapture(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if capture.Status != core.StatusCompleted {
		return capture, nil, nil
	}

	insight, err := s.insightRepository.GetInsight(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Completed without an insight should be impossible
			s.logger.Error("completed capture has no insight", "id", id)
			return capture, nil, nil
		}
		return nil, nil, err
	}
	return capture, insight, nil
}

// Reprocess resets a terminal capture to pending and re-enqueues it,
// starting a fresh processing cycle. Non-terminal captures are rejected;
// a capture already queued surfaces queue.ErrAlreadyQueued.
func (s *Service) Reprocess(ctx context.Context, id core.ID) error {
	capture, err := s.captureRepository.GetCapture(ctx, id)
	if err != nil {
		return err
	}

	if !capture.Status.Terminal() {
		return ErrNotTerminal
	}

	capture.Status = core.StatusPending
	capture.ErrorMessage = ""
	if _, err := s.captureRepository.UpdateCaptures(ctx, capture); err != nil {
		return err
	}

	if err := s.queue.Enqueue(id); err != nil {
		return err
	}

	s.logger.Info("capture queued for reprocessing", "id", id)
	return nil
}

// QueueDepth returns the number of captures waiting to be processed.
func (s *Service) QueueDepth() int {
	return s.queue.Len()
}

package storage

import (
	"context"

	"github.com/sentinelkb/sentinel/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// CaptureRepository provides operations for managing raw captures.
type CaptureRepository interface {
	Repository
	// AddCaptures adds one or more captures to storage.
	// Generates new IDs from sequence and sets InsertedAt timestamps.
	// Returns the captures with generated IDs and timestamps populated.
	AddCaptures(ctx context.Context, captures ...*core.Capture) ([]*core.Capture, error)

	// UpdateCaptures updates existing captures.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any capture doesn't exist.
	UpdateCaptures(ctx context.Context, captures ...*core.Capture) ([]*core.Capture, error)

	// DeleteCaptures removes captures by their IDs, together with any
	// insight and index entries derived from them.
	// Returns ErrNotFound if any capture doesn't exist.
	DeleteCaptures(ctx context.Context, ids ...core.ID) error

	// GetCapture retrieves a single capture by ID.
	// Returns ErrNotFound if the capture doesn't exist.
	GetCapture(ctx context.Context, id core.ID) (*core.Capture, error)

	// GetCaptures retrieves multiple captures by their IDs.
	// Returns only the captures that exist (no error for missing captures).
	GetCaptures(ctx context.Context, ids ...core.ID) ([]*core.Capture, error)

	// GetCapturesByStatus retrieves captures currently in the given status,
	// ordered by capture id. Used to find stuck or failed captures.
	GetCapturesByStatus(ctx context.Context, status core.CaptureStatus) ([]*core.Capture, error)

	// GetRecentCaptures retrieves the N most recently captured records,
	// most recent first. Returns up to limit captures.
	GetRecentCaptures(ctx context.Context, limit int) ([]*core.Capture, error)
}

// InsightRepository provides operations for managing processed insights.
type InsightRepository interface {
	Repository
	// CommitInsight atomically persists the insight, its tag index entries
	// and the owning capture's terminal state in one transaction. A reader
	// can never observe a completed capture without its insight. Any
	// previous insight for the capture is replaced wholesale.
	CommitInsight(ctx context.Context, insight *core.Insight, capture *core.Capture) error

	// GetInsight retrieves the insight for a capture.
	// Returns ErrNotFound if no insight exists for the capture.
	GetInsight(ctx context.Context, captureID core.ID) (*core.Insight, error)

	// ScanInsights returns every stored insight that carries an embedding,
	// in capture id order starting after afterID. Returns up to limit
	// insights; limit <= 0 means no limit.
	ScanInsights(ctx context.Context, afterID core.ID, limit int) ([]*core.Insight, error)

	// UpdateInsightVectors replaces the embedding vectors of existing
	// insights. Used by batch re-embedding; everything else about the
	// insight stays untouched.
	UpdateInsightVectors(ctx context.Context, insights ...*core.Insight) error

	// FindSimilar finds insights similar to the given vector by exact-scan
	// cosine similarity. Returns insights with similarity >= threshold, up
	// to limit results, ordered by similarity (highest first) with ties
	// broken by most recent ProcessedAt.
	FindSimilar(ctx context.Context, vector []float32, threshold float32, limit int) ([]*core.SearchResult, error)

	// FindByTags finds insights by their resolved tag sets. Names must
	// already be normalized. matchAll true requires every tag to be
	// present; false requires at least one. Results are ordered by most
	// recent ProcessedAt first. An empty name set returns no results.
	FindByTags(ctx context.Context, names []string, matchAll bool) ([]*core.Insight, error)

	// DeleteInsight removes the insight for a capture together with its
	// tag index entries. Returns ErrNotFound if no insight exists.
	DeleteInsight(ctx context.Context, captureID core.ID) error
}

// TagRepository provides operations for managing tags.
type TagRepository interface {
	Repository
	// GetOrCreateTags finds or creates a tag for each name. Names are
	// normalized before use; empties are dropped. Tag IDs derive from the
	// normalized name, so concurrent creation attempts converge on the
	// same tag.
	GetOrCreateTags(ctx context.Context, names []string) ([]*core.Tag, error)

	// GetTag retrieves a single tag by ID.
	// Returns ErrNotFound if the tag doesn't exist.
	GetTag(ctx context.Context, id core.ID) (*core.Tag, error)

	// ListTags retrieves all tags, ordered by name.
	ListTags(ctx context.Context) ([]*core.Tag, error)
}

// CheckpointRepository provides operations for persisting processor checkpoints.
type CheckpointRepository interface {
	// SaveCheckpoint persists a checkpoint for a processor type.
	SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint) error

	// LoadCheckpoint retrieves the checkpoint for a processor type.
	// Returns nil, nil if no checkpoint has been saved.
	LoadCheckpoint(ctx context.Context, processorType string) (*core.Checkpoint, error)
}

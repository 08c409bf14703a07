package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// EmbeddingDim is the fixed dimension of every embedding vector in the
// system. Query vectors and stored insight vectors must all have exactly
// this many components.
const EmbeddingDim = 1536

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// CaptureStatus tracks a capture through its processing lifecycle.
// Transitions only move forward: Pending -> Processing -> Completed or
// Failed. Completed and Failed are terminal; a reprocess starts a fresh
// cycle by resetting to Pending.
type CaptureStatus int

const (
	// StatusPending means the capture is stored but not yet processed.
	StatusPending CaptureStatus = iota + 1
	// StatusProcessing means a pipeline run has claimed the capture.
	StatusProcessing
	// StatusCompleted means processing succeeded and an insight exists.
	StatusCompleted
	// StatusFailed means processing failed; ErrorMessage holds the cause.
	StatusFailed
)

// String returns the status name used in logs and CLI output.
func (s CaptureStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusProcessing:
		return "processing"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the status admits no further pipeline-driven
// transitions.
func (s CaptureStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// ParseCaptureStatus maps a status name back to its value.
func ParseCaptureStatus(name string) (CaptureStatus, error) {
	switch NormalizeTag(name) {
	case "pending":
		return StatusPending, nil
	case "processing":
		return StatusProcessing, nil
	case "completed":
		return StatusCompleted, nil
	case "failed":
		return StatusFailed, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidStatus, name)
	}
}

// ContentType declares what kind of content a capture holds.
// It steers insight extraction; it never affects storage.
type ContentType int

const (
	ContentTypeTweet ContentType = iota + 1
	ContentTypeArticle
	ContentTypeCode
	ContentTypeNote
	ContentTypeOther
)

// String returns the content type name used in logs and CLI output.
func (t ContentType) String() string {
	switch t {
	case ContentTypeTweet:
		return "tweet"
	case ContentTypeArticle:
		return "article"
	case ContentTypeCode:
		return "code"
	case ContentTypeNote:
		return "note"
	case ContentTypeOther:
		return "other"
	default:
		return "unknown"
	}
}

// ParseContentType converts a content type name to its ContentType value.
// Unknown names map to ContentTypeOther.
func ParseContentType(name string) ContentType {
	switch NormalizeTag(name) {
	case "tweet":
		return ContentTypeTweet
	case "article":
		return ContentTypeArticle
	case "code":
		return ContentTypeCode
	case "note":
		return ContentTypeNote
	default:
		return ContentTypeOther
	}
}

// Capture represents a single raw piece of ingested content.
// It is created by ingestion with StatusPending and mutated only by the
// processing pipeline.
type Capture struct {
	Id            ID
	SourceURL     string // URL or platform identifier the content came from
	ContentType   ContentType
	RawContent    string            // Stored verbatim; length caps apply only to derived fields
	Metadata      map[string]string // Optional free-form metadata
	RequestedTags []string          // Tags as submitted, pre-normalization
	Status        CaptureStatus
	ErrorMessage  string    // Set iff Status == StatusFailed
	CapturedAt    time.Time // When the content was captured by the client
	ProcessedAt   time.Time // When processing reached a terminal state
	InsertedAt    time.Time // When the record was inserted into the database
	UpdatedAt     time.Time // When the record was last updated
}

// Insight is the distilled, searchable representation of one capture.
// Exactly one insight exists per completed capture; reprocessing replaces
// it wholesale.
type Insight struct {
	CaptureId   ID // Owning capture (1:1)
	Title       string
	Summary     string
	KeyPoints   []string
	ActionItems []string
	SourceTitle string
	Author      string
	Tags        []string  // Resolved tag names: normalized, deduplicated, sorted
	Vector      []float32 // Embedding vector, len == EmbeddingDim when set
	ProcessedAt time.Time
	InsertedAt  time.Time
	UpdatedAt   time.Time
}

// Tag is a normalized label shared across captures and insights.
// Identity is the normalized name; the ID is derived from it so that
// get-or-create never races on a name.
type Tag struct {
	Id         ID
	Name       string // Normalized form, see NormalizeTag
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// TagID returns the deterministic ID for a normalized tag name.
func TagID(normalizedName string) ID {
	return IDFromContent("tag:" + normalizedName)
}

// CanonicalText builds the text an insight's embedding is computed
// from: the summary followed by the key points, one per line. Embedding
// and re-embedding must agree on this or stored vectors drift.
func CanonicalText(summary string, keyPoints []string) string {
	if len(keyPoints) == 0 {
		return summary
	}
	parts := make([]string, 0, len(keyPoints)+1)
	parts = append(parts, summary)
	parts = append(parts, keyPoints...)
	return strings.Join(parts, "\n")
}

// Checkpoint records batch-processor progress so long-running jobs can
// resume after interruption.
type Checkpoint struct {
	ProcessorType string
	LastId        ID
	UpdatedAt     time.Time
}

// SimilarityMatch represents an insight match from vector similarity search.
type SimilarityMatch struct {
	CaptureId ID
	Score     float32
}

// SearchResult represents a search result with the full insight and its
// similarity score. Score is zero for tag searches.
type SearchResult struct {
	Insight *Insight
	Score   float32
}

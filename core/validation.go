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


package core

import (
	"fmt"
	"time"
)

// ValidateCapture validates a Capture according to domain rules.
//
// Validation rules:
//   - ContentType must be valid
//   - Status must be valid
//   - CapturedAt must not be in the future
//
// NOT validated:
//   - RawContent (empty content is allowed; the pipeline's fallback
//     extractor handles it)
//   - RequestedTags (normalized and filtered during processing)
//   - ID (0 is valid before a database sequence assigns one)
func ValidateCapture(capture *Capture) error {
	if capture == nil {
		return fmt.Errorf("%w: capture is nil", ErrInvalidCapture)
	}

	if err := ValidateContentType(capture.ContentType); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCapture, err)
	}

	if err := ValidateCaptureStatus(capture.Status); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCapture, err)
	}

	if !IsValidTimestamp(capture.CapturedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidCapture, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateInsight validates an Insight according to domain rules.
//
// Validation rules:
//   - CaptureId must be set
//   - Title and Summary must not be empty (the fallback extractor produces
//     explicit "no content" strings for empty input, never blanks)
//   - Vector, when present, must have exactly EmbeddingDim components
func ValidateInsight(insight *Insight) error {
	if insight == nil {
		return fmt.Errorf("%w: insight is nil", ErrInvalidInsight)
	}

	if insight.CaptureId == 0 {
		return fmt.Errorf("%w: capture id is required", ErrInvalidInsight)
	}

	if insight.Title == "" || insight.Summary == "" {
		return fmt.Errorf("%w: %w", ErrInvalidInsight, ErrEmptyTitle)
	}

	if len(insight.Vector) != 0 && len(insight.Vector) != EmbeddingDim {
		return fmt.Errorf("%w: %w: got %d, want %d",
			ErrInvalidInsight, ErrWrongVectorDim, len(insight.Vector), EmbeddingDim)
	}

	return nil
}

// ValidateTag validates a Tag according to domain rules.
func ValidateTag(tag *Tag) error {
	if tag == nil {
		return fmt.Errorf("%w: tag is nil", ErrInvalidTag)
	}

	if NormalizeTag(tag.Name) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTag, ErrEmptyTagName)
	}

	return nil
}

// ValidateCaptureStatus validates that a CaptureStatus has a valid value.
func ValidateCaptureStatus(status CaptureStatus) error {
	switch status {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return nil
	default:
		return fmt.Errorf("%w: value %d", ErrInvalidStatus, status)
	}
}

// ValidateContentType validates that a ContentType has a valid value.
func ValidateContentType(contentType ContentType) error {
	switch contentType {
	case ContentTypeTweet, ContentTypeArticle, ContentTypeCode, ContentTypeNote, ContentTypeOther:
		return nil
	default:
		return fmt.Errorf("%w: value %d", ErrInvalidContentType, contentType)
	}
}

// ValidateTransition checks that a capture status change only moves
// forward through the lifecycle. Reprocessing is the one sanctioned
// exception: a terminal status may reset to StatusPending.
func ValidateTransition(from, to CaptureStatus) error {
	if err := ValidateCaptureStatus(from); err != nil {
		return err
	}
	if err := ValidateCaptureStatus(to); err != nil {
		return err
	}

	switch {
	case from == StatusPending && to == StatusProcessing:
		return nil
	case from == StatusProcessing && to.Terminal():
		return nil
	case from.Terminal() && to == StatusPending: // reprocess
		return nil
	default:
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}

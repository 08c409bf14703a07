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

import "errors"

// Domain validation errors
var (
	// ErrInvalidCapture indicates a Capture failed validation.
	ErrInvalidCapture = errors.New("invalid capture")

	// ErrInvalidInsight indicates an Insight failed validation.
	ErrInvalidInsight = errors.New("invalid insight")

	// ErrInvalidTag indicates a Tag failed validation.
	ErrInvalidTag = errors.New("invalid tag")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")

	// ErrInvalidStatus indicates an invalid CaptureStatus value.
	ErrInvalidStatus = errors.New("invalid capture status")

	// ErrInvalidContentType indicates an invalid ContentType value.
	ErrInvalidContentType = errors.New("invalid content type")

	// ErrInvalidTransition indicates a backwards capture status transition.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrEmptyTagName indicates the tag Name field is empty after normalization.
	ErrEmptyTagName = errors.New("tag name cannot be empty")

	// ErrEmptyTitle indicates the insight Title field is empty.
	ErrEmptyTitle = errors.New("insight title cannot be empty")

	// ErrWrongVectorDim indicates a vector with a length other than EmbeddingDim.
	ErrWrongVectorDim = errors.New("embedding vector has wrong dimension")
)

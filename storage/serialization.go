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


package storage

import (
	"fmt"

	"github.com/sentinelkb/sentinel/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	var id core.ID
	id, _, err := core.IDMUS.Unmarshal(data)
	if err != nil {
		return id, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return id, nil
}

// MarshalCapture serializes a Capture to bytes.
func MarshalCapture(capture *core.Capture) []byte {
	buf := make([]byte, core.CaptureMUS.Size(*capture))
	core.CaptureMUS.Marshal(*capture, buf)
	return buf
}

// UnmarshalCapture deserializes a Capture from bytes.
func UnmarshalCapture(data []byte) (*core.Capture, error) {
	capture, _, err := core.CaptureMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return &capture, nil
}

// MarshalInsight serializes an Insight to bytes.
func MarshalInsight(insight *core.Insight) []byte {
	buf := make([]byte, core.InsightMUS.Size(*insight))
	core.InsightMUS.Marshal(*insight, buf)
	return buf
}

// UnmarshalInsight deserializes an Insight from bytes.
func UnmarshalInsight(data []byte) (*core.Insight, error) {
	insight, _, err := core.InsightMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return &insight, nil
}

// MarshalTag serializes a Tag to bytes.
func MarshalTag(tag *core.Tag) []byte {
	buf := make([]byte, core.TagMUS.Size(*tag))
	core.TagMUS.Marshal(*tag, buf)
	return buf
}

// UnmarshalTag deserializes a Tag from bytes.
func UnmarshalTag(data []byte) (*core.Tag, error) {
	tag, _, err := core.TagMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return &tag, nil
}

// MarshalCheckpoint serializes a Checkpoint to bytes.
func MarshalCheckpoint(checkpoint *core.Checkpoint) []byte {
	buf := make([]byte, core.CheckpointMUS.Size(*checkpoint))
	core.CheckpointMUS.Marshal(*checkpoint, buf)
	return buf
}

// UnmarshalCheckpoint deserializes a Checkpoint from bytes.
func UnmarshalCheckpoint(data []byte) (*core.Checkpoint, error) {
	checkpoint, _, err := core.CheckpointMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return &checkpoint, nil
}

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


package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/sentinelkb/sentinel/core"
	"github.com/sentinelkb/sentinel/storage"
)

// CheckpointRepository stores batch-processor checkpoints, one per
// processor type, so interrupted jobs can resume.
type CheckpointRepository struct {
	backend *Backend
}

var _ storage.CheckpointRepository = (*CheckpointRepository)(nil)

// NewCheckpointRepository creates a new CheckpointRepository.
func NewCheckpointRepository(backend *Backend) *CheckpointRepository {
	return &CheckpointRepository{backend: backend}
}

// SaveCheckpoint writes the checkpoint for its processor type,
// replacing any previous one and stamping UpdatedAt.
func (r *CheckpointRepository) SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint) error {
	checkpoint.UpdatedAt = storageNow()
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeCheckpointKey(checkpoint.ProcessorType)
		if err := tx.Set(key, storage.MarshalCheckpoint(checkpoint)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// LoadCheckpoint retrieves the checkpoint for a processor type.
// Returns nil, nil if no checkpoint exists.
func (r *CheckpointRepository) LoadCheckpoint(ctx context.Context, processorType string) (*core.Checkpoint, error) {
	var checkpoint *core.Checkpoint
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeCheckpointKey(processorType))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var unmarshalErr error
			checkpoint, unmarshalErr = storage.UnmarshalCheckpoint(val)
			return unmarshalErr
		})
	}, false)

	return checkpoint, err
}

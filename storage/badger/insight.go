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
	"bytes"
	"context"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/sentinelkb/sentinel/core"
	"github.com/sentinelkb/sentinel/storage"
)

// InsightRepository implements storage.InsightRepository for BadgerDB.
type InsightRepository struct {
	backend *Backend
}

var _ storage.InsightRepository = (*InsightRepository)(nil)

// NewInsightRepository creates a new InsightRepository.
func NewInsightRepository(backend *Backend) (*InsightRepository, error) {
	return &InsightRepository{
		backend: backend,
	}, nil
}

// Close releases resources. InsightRepository has no resources to release.
func (r *InsightRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *InsightRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// FindSimilar delegates to the backend.
func (r *InsightRepository) FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SearchResult, error) {
	return r.backend.FindSimilar(ctx, vector, minSimilarity, limit)
}

// CommitInsight atomically persists the insight, its tag index entries
// and the owning capture's terminal state in a single transaction. A
// reader never observes a completed capture without its insight.
func (r *InsightRepository) CommitInsight(ctx context.Context, insight *core.Insight, capture *core.Capture) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		now := storageNow()

		// Read the stored capture to maintain the status index
		captureKey := makeCaptureKey(capture.Id)
		old, err := readCapture(tx, captureKey)
		if err != nil {
			return err
		}
		if old == nil {
			return storage.ErrNotFound
		}

		// Replace any previous insight wholesale, tag index included
		existing, err := readInsight(tx, makeInsightKey(insight.CaptureId))
		if err != nil {
			return err
		}
		if existing != nil {
			if err := deleteTagIndex(tx, existing); err != nil {
				return err
			}
			insight.InsertedAt = existing.InsertedAt
		} else {
			insight.InsertedAt = now
		}
		insight.UpdatedAt = now

		// Store the insight
		key := makeInsightKey(insight.CaptureId)
		value := storage.MarshalInsight(insight)
		if err := tx.Set(key, value); err != nil {
			return err
		}

		// Store tag index entries
		if err := updateTagIndex(tx, insight); err != nil {
			return err
		}

		// Store the capture in its terminal state
		capture.UpdatedAt = now
		captureValue := storage.MarshalCapture(capture)
		if err := tx.Set(captureKey, captureValue); err != nil {
			return err
		}
		if old.Status != capture.Status {
			if err := moveStatusIndex(tx, old.Status, capture.Status, capture.Id); err != nil {
				return err
			}
		}

		return tx.Commit()
	}, true)
}

// GetInsight retrieves the insight for a capture.
func (r *InsightRepository) GetInsight(ctx context.Context, captureID core.ID) (*core.Insight, error) {
	var result *core.Insight
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeInsightKey(captureID)
		var err error
		result, err = readInsight(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// ScanInsights returns stored insights carrying an embedding, in capture
// ID order starting after afterID. limit <= 0 means no limit.
func (r *InsightRepository) ScanInsights(ctx context.Context, afterID core.ID, limit int) ([]*core.Insight, error) {
	var results []*core.Insight
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(insightRecordPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()
			key := item.Key()

			// Skip tag index keys, which share the insight prefix
			if bytes.HasPrefix(key, []byte(insightTagPrefix)) {
				continue
			}

			var insight *core.Insight
			err := item.Value(func(val []byte) error {
				var err error
				insight, err = storage.UnmarshalInsight(val)
				return err
			})
			if err != nil {
				return err
			}
			if insight == nil || insight.CaptureId <= afterID {
				continue
			}
			if len(insight.Vector) == 0 {
				continue
			}
			results = append(results, insight)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// Record keys sort lexicographically, not numerically
	slices.SortFunc(results, func(a, b *core.Insight) int {
		if a.CaptureId < b.CaptureId {
			return -1
		}
		if a.CaptureId > b.CaptureId {
			return 1
		}
		return 0
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// UpdateInsightVectors replaces the embedding vectors of existing insights.
func (r *InsightRepository) UpdateInsightVectors(ctx context.Context, insights ...*core.Insight) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, insight := range insights {
			key := makeInsightKey(insight.CaptureId)
			stored, err := readInsight(tx, key)
			if err != nil {
				return err
			}
			if stored == nil {
				return storage.ErrNotFound
			}

			stored.Vector = insight.Vector
			stored.UpdatedAt = storageNow()

			value := storage.MarshalInsight(stored)
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// FindByTags finds insights by their resolved tag sets. Names must
// already be normalized. matchAll true requires every tag; false
// requires at least one. Results are ordered most recently processed
// first.
func (r *InsightRepository) FindByTags(ctx context.Context, names []string, matchAll bool) ([]*core.Insight, error) {
	if len(names) == 0 {
		return nil, nil
	}

	var results []*core.Insight
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Collect the capture ID set for each tag
		sets := make([]map[core.ID]bool, 0, len(names))
		for _, name := range names {
			ids, err := captureIDsForTag(tx, core.TagID(name))
			if err != nil {
				return err
			}
			set := make(map[core.ID]bool, len(ids))
			for _, id := range ids {
				set[id] = true
			}
			sets = append(sets, set)
		}

		// Combine: intersection for matchAll, union for matchAny
		combined := sets[0]
		for _, set := range sets[1:] {
			if matchAll {
				for id := range combined {
					if !set[id] {
						delete(combined, id)
					}
				}
			} else {
				for id := range set {
					combined[id] = true
				}
			}
		}

		for id := range combined {
			insight, err := readInsight(tx, makeInsightKey(id))
			if err != nil {
				return err
			}
			if insight != nil {
				results = append(results, insight)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// Most recently processed first
	slices.SortFunc(results, func(a, b *core.Insight) int {
		return b.ProcessedAt.Compare(a.ProcessedAt)
	})

	return results, nil
}

// DeleteInsight removes the insight for a capture together with its tag
// index entries.
func (r *InsightRepository) DeleteInsight(ctx context.Context, captureID core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := deleteInsightInTx(tx, captureID, true); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Helper methods

// readInsight reads an insight from the transaction.
func readInsight(tx *badger.Txn, key []byte) (*core.Insight, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var insight *core.Insight
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		insight, unmarshalErr = storage.UnmarshalInsight(val)
		return unmarshalErr
	})
	return insight, err
}

// deleteInsightInTx removes an insight and its tag index entries.
// When required is true a missing insight is an error.
func deleteInsightInTx(tx *badger.Txn, captureID core.ID, required bool) error {
	key := makeInsightKey(captureID)
	insight, err := readInsight(tx, key)
	if err != nil {
		return err
	}
	if insight == nil {
		if required {
			return storage.ErrNotFound
		}
		return nil
	}

	if err := deleteTagIndex(tx, insight); err != nil {
		return err
	}
	return tx.Delete(key)
}

// updateTagIndex adds tag index entries for an insight.
func updateTagIndex(tx *badger.Txn, insight *core.Insight) error {
	for _, name := range insight.Tags {
		key := makeInsightTagKey(core.TagID(name), insight.CaptureId)
		value := storage.MarshalID(insight.CaptureId)
		if err := tx.Set(key, value); err != nil {
			return err
		}
	}
	return nil
}

// deleteTagIndex removes tag index entries for an insight.
func deleteTagIndex(tx *badger.Txn, insight *core.Insight) error {
	for _, name := range insight.Tags {
		key := makeInsightTagKey(core.TagID(name), insight.CaptureId)
		if err := tx.Delete(key); err != nil {
			return err
		}
	}
	return nil
}

// captureIDsForTag collects the capture IDs indexed under a tag.
func captureIDsForTag(tx *badger.Txn, tagID core.ID) ([]core.ID, error) {
	var ids []core.ID
	startKey := makePartialInsightTagKey(tagID)
	iter := tx.NewIterator(badger.DefaultIteratorOptions)
	defer iter.Close()

	for iter.Seek(startKey); iter.Valid(); iter.Next() {
		key := iter.Item().Key()
		if len(key) < len(startKey) {
			break
		}
		if slices.Compare(key[:len(startKey)], startKey) != 0 {
			break
		}

		var captureID core.ID
		err := iter.Item().Value(func(val []byte) error {
			var err error
			captureID, err = storage.UnmarshalID(val)
			return err
		})
		if err != nil {
			return nil, err
		}
		ids = append(ids, captureID)
	}
	return ids, nil
}

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


package reembed

import (
	"context"

	"github.com/sentinelkb/sentinel/core"
	"github.com/sentinelkb/sentinel/storage"
)

const (
	// DefaultBatchSize is the default number of insights fetched per batch
	DefaultBatchSize = 100
)

// InsightIterator walks stored insights in ascending capture-id order,
// one batch at a time.
type InsightIterator struct {
	repo      storage.InsightRepository
	batchSize int
}

// NewInsightIterator creates an iterator over stored insights.
// batchSize: number of insights to fetch in each batch (must be > 0)
func NewInsightIterator(repo storage.InsightRepository, batchSize int) *InsightIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &InsightIterator{
		repo:      repo,
		batchSize: batchSize,
	}
}

// Count returns the number of insights with a capture id strictly
// greater than afterID.
func (it *InsightIterator) Count(ctx context.Context, afterID core.ID) (int, error) {
	insights, err := it.repo.ScanInsights(ctx, afterID, 0)
	if err != nil {
		return 0, err
	}
	return len(insights), nil
}

// ForEach calls fn for each batch of insights, starting after afterID.
// Iteration stops on the first error from fn or when no insights
// remain. Context cancellation is checked between batches.
func (it *InsightIterator) ForEach(ctx context.Context, afterID core.ID, fn func([]*core.Insight) error) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		batch, err := it.repo.ScanInsights(ctx, afterID, it.batchSize)
		if err != nil {
			return err
		}
		if len(batch) == 0 {
			return nil
		}

		if err := fn(batch); err != nil {
			return err
		}

		afterID = batch[len(batch)-1].CaptureId
	}
}

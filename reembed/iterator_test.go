package reembed

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinelkb/sentinel/core"
)

func TestInsightIterator_WalksAllBatches(t *testing.T) {
	captureRepo, insightRepo, _ := setupReembedStore(t)
	ctx := context.Background()

	seeded := seedInsights(t, captureRepo, insightRepo, 5)

	iterator := NewInsightIterator(insightRepo, 2)

	var batchSizes []int
	var seen []core.ID
	err := iterator.ForEach(ctx, 0, func(batch []*core.Insight) error {
		batchSizes = append(batchSizes, len(batch))
		for _, insight := range batch {
			seen = append(seen, insight.CaptureId)
		}
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []int{2, 2, 1}, batchSizes)
	require.Len(t, seen, 5)
	for i, insight := range seeded {
		assert.Equal(t, insight.CaptureId, seen[i], "capture-id order")
	}
}

func TestInsightIterator_ResumesAfterID(t *testing.T) {
	captureRepo, insightRepo, _ := setupReembedStore(t)
	ctx := context.Background()

	seeded := seedInsights(t, captureRepo, insightRepo, 4)

	iterator := NewInsightIterator(insightRepo, 10)

	var seen []core.ID
	err := iterator.ForEach(ctx, seeded[1].CaptureId, func(batch []*core.Insight) error {
		for _, insight := range batch {
			seen = append(seen, insight.CaptureId)
		}
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []core.ID{seeded[2].CaptureId, seeded[3].CaptureId}, seen)
}

func TestInsightIterator_Count(t *testing.T) {
	captureRepo, insightRepo, _ := setupReembedStore(t)
	ctx := context.Background()

	seeded := seedInsights(t, captureRepo, insightRepo, 3)

	iterator := NewInsightIterator(insightRepo, 10)

	count, err := iterator.Count(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	count, err = iterator.Count(ctx, seeded[1].CaptureId)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestInsightIterator_EmptyDatabase(t *testing.T) {
	_, insightRepo, _ := setupReembedStore(t)

	iterator := NewInsightIterator(insightRepo, 10)

	calls := 0
	err := iterator.ForEach(context.Background(), 0, func(batch []*core.Insight) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Zero(t, calls)
}

func TestInsightIterator_StopsOnError(t *testing.T) {
	captureRepo, insightRepo, _ := setupReembedStore(t)

	seedInsights(t, captureRepo, insightRepo, 5)

	iterator := NewInsightIterator(insightRepo, 2)

	wantErr := errors.New("batch failed")
	calls := 0
	err := iterator.ForEach(context.Background(), 0, func(batch []*core.Insight) error {
		calls++
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 1, calls)
}

func TestInsightIterator_ContextCancellation(t *testing.T) {
	captureRepo, insightRepo, _ := setupReembedStore(t)

	seedInsights(t, captureRepo, insightRepo, 4)

	ctx, cancel := context.WithCancel(context.Background())
	iterator := NewInsightIterator(insightRepo, 2)

	calls := 0
	err := iterator.ForEach(ctx, 0, func(batch []*core.Insight) error {
		calls++
		cancel()
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestNewInsightIterator_InvalidBatchSize(t *testing.T) {
	_, insightRepo, _ := setupReembedStore(t)

	iterator := NewInsightIterator(insightRepo, 0)
	assert.Equal(t, DefaultBatchSize, iterator.batchSize)

	iterator = NewInsightIterator(insightRepo, -5)
	assert.Equal(t, DefaultBatchSize, iterator.batchSize)
}

package reembed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinelkb/sentinel/ai/mock"
	"github.com/sentinelkb/sentinel/core"
	"github.com/sentinelkb/sentinel/storage"
	"github.com/sentinelkb/sentinel/storage/badger"
)

// setupReembedStore builds in-memory repositories for reembedding tests.
func setupReembedStore(t *testing.T) (storage.CaptureRepository, storage.InsightRepository, storage.CheckpointRepository) {
	t.Helper()

	captureRepo, insightRepo, tagRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		tagRepo.Close()
		insightRepo.Close()
		captureRepo.Close()
		backend.Close()
	})

	return captureRepo, insightRepo, badger.NewCheckpointRepository(backend)
}

// seedInsights commits count insights with placeholder vectors and
// returns them in capture-id order.
func seedInsights(t *testing.T, captureRepo storage.CaptureRepository, insightRepo storage.InsightRepository, count int) []*core.Insight {
	t.Helper()
	ctx := context.Background()

	insights := make([]*core.Insight, 0, count)
	for i := 0; i < count; i++ {
		capture := &core.Capture{
			RawContent: fmt.Sprintf("raw content %d", i),
			Status:     core.StatusPending,
			CapturedAt: time.Now().UTC(),
		}
		added, err := captureRepo.AddCaptures(ctx, capture)
		require.NoError(t, err)

		capture = added[0]
		capture.Status = core.StatusCompleted
		capture.ProcessedAt = time.Now().UTC()

		insight := &core.Insight{
			CaptureId:   capture.Id,
			Title:       fmt.Sprintf("title %d", i),
			Summary:     fmt.Sprintf("summary %d", i),
			KeyPoints:   []string{fmt.Sprintf("point %d", i)},
			Vector:      []float32{1.0, 0.0},
			ProcessedAt: capture.ProcessedAt,
		}
		require.NoError(t, insightRepo.CommitInsight(ctx, insight, capture))
		insights = append(insights, insight)
	}
	return insights
}

func TestNewReembedder_Validation(t *testing.T) {
	_, insightRepo, checkpointRepo := setupReembedStore(t)
	embedder := mock.NewMockEmbedder()

	_, err := NewReembedder(nil, checkpointRepo, embedder, nil, &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrInsightRepositoryRequired)

	_, err = NewReembedder(insightRepo, nil, embedder, nil, &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrCheckpointRepositoryRequired)

	_, err = NewReembedder(insightRepo, checkpointRepo, nil, nil, &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrEmbedderRequired)
}

func TestReembedder_Run(t *testing.T) {
	captureRepo, insightRepo, checkpointRepo := setupReembedStore(t)
	ctx := context.Background()

	seeded := seedInsights(t, captureRepo, insightRepo, 5)

	embedder := mock.NewMockEmbedder()
	var buf bytes.Buffer
	config := &Config{BatchSize: 2, ReportInterval: 1, MaxRetries: 1, RetryDelay: time.Millisecond}

	reembedder, err := NewReembedder(insightRepo, checkpointRepo, embedder, config, &buf)
	require.NoError(t, err)
	require.NoError(t, reembedder.Run(ctx))

	out := buf.String()
	assert.Contains(t, out, "Starting reembedding of 5 insights (batch size: 2)")
	assert.Contains(t, out, "Reembedding complete. Processed 5 insights")

	// Every vector was replaced with the embedder's output
	for _, seed := range seeded {
		stored, err := insightRepo.GetInsight(ctx, seed.CaptureId)
		require.NoError(t, err)
		assert.Len(t, stored.Vector, core.EmbeddingDim)
		assert.NotEqual(t, []float32{1.0, 0.0}, stored.Vector)
	}
}

func TestReembedder_EmptyDatabase(t *testing.T) {
	_, insightRepo, checkpointRepo := setupReembedStore(t)

	embedder := mock.NewMockEmbedder()
	var buf bytes.Buffer
	reembedder, err := NewReembedder(insightRepo, checkpointRepo, embedder, nil, &buf)
	require.NoError(t, err)

	require.NoError(t, reembedder.Run(context.Background()))
	assert.Contains(t, buf.String(), "No insights found to reembed")
	assert.Zero(t, embedder.CallCount())
}

func TestReembedder_ResumesFromCheckpoint(t *testing.T) {
	captureRepo, insightRepo, checkpointRepo := setupReembedStore(t)
	ctx := context.Background()

	seeded := seedInsights(t, captureRepo, insightRepo, 4)

	// Pretend a previous run stopped after the second insight
	require.NoError(t, checkpointRepo.SaveCheckpoint(ctx, &core.Checkpoint{
		ProcessorType: ProcessorType,
		LastId:        seeded[1].CaptureId,
	}))

	var embedded []string
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		embedded = append(embedded, texts...)
		vectors := make([][]float32, len(texts))
		for i := range texts {
			vectors[i] = []float32{0.0, 1.0}
		}
		return vectors, nil
	}

	var buf bytes.Buffer
	reembedder, err := NewReembedder(insightRepo, checkpointRepo, embedder, nil, &buf)
	require.NoError(t, err)
	require.NoError(t, reembedder.Run(ctx))

	assert.Contains(t, buf.String(), fmt.Sprintf("Resuming after capture id %d", seeded[1].CaptureId))
	assert.Contains(t, buf.String(), "Starting reembedding of 2 insights")

	// Only the insights past the checkpoint were embedded
	require.Len(t, embedded, 2)
	assert.Equal(t, core.CanonicalText(seeded[2].Summary, seeded[2].KeyPoints), embedded[0])
	assert.Equal(t, core.CanonicalText(seeded[3].Summary, seeded[3].KeyPoints), embedded[1])

	// Insights before the checkpoint keep their original vectors
	stored, err := insightRepo.GetInsight(ctx, seeded[0].CaptureId)
	require.NoError(t, err)
	assert.Equal(t, []float32{1.0, 0.0}, stored.Vector)
}

func TestReembedder_ResetsCheckpointOnCompletion(t *testing.T) {
	captureRepo, insightRepo, checkpointRepo := setupReembedStore(t)
	ctx := context.Background()

	seedInsights(t, captureRepo, insightRepo, 3)

	reembedder, err := NewReembedder(insightRepo, checkpointRepo, mock.NewMockEmbedder(), nil, &bytes.Buffer{})
	require.NoError(t, err)
	require.NoError(t, reembedder.Run(ctx))

	checkpoint, err := checkpointRepo.LoadCheckpoint(ctx, ProcessorType)
	require.NoError(t, err)
	require.NotNil(t, checkpoint)
	assert.Equal(t, core.ID(0), checkpoint.LastId)
}

func TestReembedder_CheckpointSurvivesFailure(t *testing.T) {
	captureRepo, insightRepo, checkpointRepo := setupReembedStore(t)
	ctx := context.Background()

	seeded := seedInsights(t, captureRepo, insightRepo, 4)

	// First batch succeeds, second fails
	var calls int
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		calls++
		if calls > 1 {
			return nil, errors.New("embedding service down")
		}
		vectors := make([][]float32, len(texts))
		for i := range texts {
			vectors[i] = []float32{0.0, 1.0}
		}
		return vectors, nil
	}

	config := &Config{BatchSize: 2, ReportInterval: 1, MaxRetries: 1, RetryDelay: time.Millisecond}
	reembedder, err := NewReembedder(insightRepo, checkpointRepo, embedder, config, &bytes.Buffer{})
	require.NoError(t, err)

	err = reembedder.Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to process batch")

	// The checkpoint marks the end of the completed batch, so a rerun
	// picks up at the failed one
	checkpoint, err := checkpointRepo.LoadCheckpoint(ctx, ProcessorType)
	require.NoError(t, err)
	require.NotNil(t, checkpoint)
	assert.Equal(t, seeded[1].CaptureId, checkpoint.LastId)
}

func TestReembedder_ContextCancellation(t *testing.T) {
	captureRepo, insightRepo, checkpointRepo := setupReembedStore(t)

	seedInsights(t, captureRepo, insightRepo, 6)

	ctx, cancel := context.WithCancel(context.Background())
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		cancel()
		vectors := make([][]float32, len(texts))
		for i := range texts {
			vectors[i] = []float32{0.0, 1.0}
		}
		return vectors, nil
	}

	config := &Config{BatchSize: 2, ReportInterval: 1, MaxRetries: 1, RetryDelay: time.Millisecond}
	reembedder, err := NewReembedder(insightRepo, checkpointRepo, embedder, config, &bytes.Buffer{})
	require.NoError(t, err)

	err = reembedder.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, 100, config.BatchSize)
	assert.Equal(t, 100, config.ReportInterval)
	assert.Equal(t, 3, config.MaxRetries)
	assert.Equal(t, 1*time.Second, config.RetryDelay)
}

package ai_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinelkb/sentinel/ai"
	"github.com/sentinelkb/sentinel/ai/fallback"
	"github.com/sentinelkb/sentinel/ai/mock"
	"github.com/sentinelkb/sentinel/core"
)

func newFailover(t *testing.T, primary ai.AIProvider) *ai.FailoverProvider {
	t.Helper()
	provider, err := ai.NewFailoverProvider(primary, fallback.NewProvider(), time.Second, 1)
	require.NoError(t, err)
	return provider
}

func TestNewFailoverProvider_RequiresProviders(t *testing.T) {
	_, err := ai.NewFailoverProvider(nil, fallback.NewProvider(), time.Second, 1)
	assert.ErrorIs(t, err, ai.ErrPrimaryProviderRequired)

	_, err = ai.NewFailoverProvider(mock.NewMockProvider(), nil, time.Second, 1)
	assert.ErrorIs(t, err, ai.ErrFallbackProviderRequired)
}

func TestFailoverEmbedder_PrimarySucceeds(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	primary := mock.NewMockProviderWithServices(embedder, mock.NewMockInsightExtractor())
	provider := newFailover(t, primary)

	vector, err := provider.Embedder().EmbedText(context.Background(), "hello")
	require.NoError(t, err)

	want, err := embedder.EmbedText(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, want, vector)
}

func TestFailoverEmbedder_FallsBackOnError(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("backend unavailable")
	}
	primary := mock.NewMockProviderWithServices(embedder, mock.NewMockInsightExtractor())
	provider := newFailover(t, primary)

	vector, err := provider.Embedder().EmbedText(context.Background(), "hello")
	require.NoError(t, err)
	assert.Len(t, vector, core.EmbeddingDim)

	// The result is the deterministic fallback vector.
	want, err := fallback.NewEmbedder().EmbedText(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, want, vector)
}

func TestFailoverEmbedder_FallsBackOnWrongDimension(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return make([]float32, 8), nil
	}
	primary := mock.NewMockProviderWithServices(embedder, mock.NewMockInsightExtractor())
	provider := newFailover(t, primary)

	vector, err := provider.Embedder().EmbedText(context.Background(), "hello")
	require.NoError(t, err)
	assert.Len(t, vector, core.EmbeddingDim)
}

func TestFailoverEmbedder_CallerCancellationPropagates(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	primary := mock.NewMockProviderWithServices(embedder, mock.NewMockInsightExtractor())
	provider := newFailover(t, primary)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := provider.Embedder().EmbedText(ctx, "hello")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFailoverEmbedder_BatchFallsBack(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("backend unavailable")
	}
	primary := mock.NewMockProviderWithServices(embedder, mock.NewMockInsightExtractor())
	provider := newFailover(t, primary)

	vectors, err := provider.Embedder().EmbedTexts(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	for _, v := range vectors {
		assert.Len(t, v, core.EmbeddingDim)
	}
}

func TestFailoverExtractor_PrimarySucceeds(t *testing.T) {
	extractor := mock.NewMockInsightExtractor()
	extractor.ExtractFunc = func(ctx context.Context, text string, contentType core.ContentType) (*ai.Extraction, error) {
		return &ai.Extraction{Title: "from primary", Summary: "summary"}, nil
	}
	primary := mock.NewMockProviderWithServices(mock.NewMockEmbedder(), extractor)
	provider := newFailover(t, primary)

	result, err := provider.InsightExtractor().ExtractInsights(context.Background(), "text", core.ContentTypeNote)
	require.NoError(t, err)
	assert.Equal(t, "from primary", result.Title)
}

func TestFailoverExtractor_FallsBackOnError(t *testing.T) {
	extractor := mock.NewMockInsightExtractor()
	extractor.ExtractFunc = func(ctx context.Context, text string, contentType core.ContentType) (*ai.Extraction, error) {
		return nil, errors.New("backend unavailable")
	}
	primary := mock.NewMockProviderWithServices(mock.NewMockEmbedder(), extractor)
	provider := newFailover(t, primary)

	result, err := provider.InsightExtractor().ExtractInsights(context.Background(), "A useful line of content.", core.ContentTypeNote)
	require.NoError(t, err)
	assert.Equal(t, "A useful line of content.", result.Title)
}

func TestFailoverExtractor_RetriesBeforeFallback(t *testing.T) {
	extractor := mock.NewMockInsightExtractor()
	extractor.ExtractFunc = func(ctx context.Context, text string, contentType core.ContentType) (*ai.Extraction, error) {
		return nil, errors.New("flaky")
	}
	primary := mock.NewMockProviderWithServices(mock.NewMockEmbedder(), extractor)

	provider, err := ai.NewFailoverProvider(primary, fallback.NewProvider(), time.Second, 2)
	require.NoError(t, err)

	_, err = provider.InsightExtractor().ExtractInsights(context.Background(), "text", core.ContentTypeNote)
	require.NoError(t, err)
	assert.Equal(t, 2, extractor.CallCount())
}

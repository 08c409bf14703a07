package storage

import (
	"testing"
	"time"

	"github.com/sentinelkb/sentinel/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("test content")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.Error(t, err)
}

func TestMarshalUnmarshalCapture(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	original := &core.Capture{
		Id:            core.ID(7),
		SourceURL:     "https://example.com/post/1",
		ContentType:   core.ContentTypeTweet,
		RawContent:    "Short thought with ünïcödé 🌍",
		Metadata:      map[string]string{"client": "browser-ext"},
		RequestedTags: []string{"ai", "golang"},
		Status:        core.StatusFailed,
		ErrorMessage:  "model unavailable",
		CapturedAt:    now.Add(-time.Hour),
		ProcessedAt:   now,
		InsertedAt:    now,
		UpdatedAt:     now,
	}

	data := MarshalCapture(original)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalCapture(data)
	require.NoError(t, err)

	assert.Equal(t, original.Id, decoded.Id)
	assert.Equal(t, original.SourceURL, decoded.SourceURL)
	assert.Equal(t, original.ContentType, decoded.ContentType)
	assert.Equal(t, original.RawContent, decoded.RawContent)
	assert.Equal(t, original.Metadata, decoded.Metadata)
	assert.Equal(t, original.RequestedTags, decoded.RequestedTags)
	assert.Equal(t, original.Status, decoded.Status)
	assert.Equal(t, original.ErrorMessage, decoded.ErrorMessage)
	assert.True(t, original.CapturedAt.Equal(decoded.CapturedAt))
	assert.True(t, original.ProcessedAt.Equal(decoded.ProcessedAt))
}

func TestUnmarshalCapture_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"invalid data", []byte{0xFF, 0xFF, 0xFF}},
		{"partial data", []byte{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalCapture(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestMarshalUnmarshalInsight(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	original := &core.Insight{
		CaptureId:   core.ID(7),
		Title:       "Vector databases in practice",
		Summary:     "A tour of embedding storage tradeoffs.",
		KeyPoints:   []string{"exact scan is fine at small scale", "quantization saves memory"},
		ActionItems: []string{"benchmark badger scan"},
		SourceTitle: "Engineering Blog",
		Author:      "J. Writer",
		Tags:        []string{"databases", "embeddings"},
		Vector:      make([]float32, core.EmbeddingDim),
		ProcessedAt: now,
		InsertedAt:  now,
		UpdatedAt:   now,
	}
	original.Vector[0] = 0.25
	original.Vector[core.EmbeddingDim-1] = -0.5

	data := MarshalInsight(original)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalInsight(data)
	require.NoError(t, err)

	assert.Equal(t, original.CaptureId, decoded.CaptureId)
	assert.Equal(t, original.Title, decoded.Title)
	assert.Equal(t, original.Summary, decoded.Summary)
	assert.Equal(t, original.KeyPoints, decoded.KeyPoints)
	assert.Equal(t, original.ActionItems, decoded.ActionItems)
	assert.Equal(t, original.SourceTitle, decoded.SourceTitle)
	assert.Equal(t, original.Author, decoded.Author)
	assert.Equal(t, original.Tags, decoded.Tags)
	assert.Equal(t, original.Vector, decoded.Vector)
	assert.True(t, original.ProcessedAt.Equal(decoded.ProcessedAt))
}

func TestMarshalUnmarshalTag(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	original := &core.Tag{
		Id:         core.TagID("golang"),
		Name:       "golang",
		InsertedAt: now,
		UpdatedAt:  now,
	}

	data := MarshalTag(original)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalTag(data)
	require.NoError(t, err)
	assert.Equal(t, original.Id, decoded.Id)
	assert.Equal(t, original.Name, decoded.Name)
}

func TestMarshalUnmarshalCheckpoint(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	original := &core.Checkpoint{
		ProcessorType: "reembed",
		LastId:        core.ID(512),
		UpdatedAt:     now,
	}

	data := MarshalCheckpoint(original)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalCheckpoint(data)
	require.NoError(t, err)
	assert.Equal(t, original.ProcessorType, decoded.ProcessorType)
	assert.Equal(t, original.LastId, decoded.LastId)
	assert.True(t, original.UpdatedAt.Equal(decoded.UpdatedAt))
}

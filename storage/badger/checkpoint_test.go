package badger

import (
	"context"
	"testing"

	"github.com/sentinelkb/sentinel/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckpointRoundTrip(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	repo := NewCheckpointRepository(backend)
	ctx := context.Background()

	// No checkpoint yet
	loaded, err := repo.LoadCheckpoint(ctx, "reembed")
	require.NoError(t, err)
	assert.Nil(t, loaded)

	checkpoint := &core.Checkpoint{
		ProcessorType: "reembed",
		LastId:        core.ID(42),
	}
	require.NoError(t, repo.SaveCheckpoint(ctx, checkpoint))

	loaded, err = repo.LoadCheckpoint(ctx, "reembed")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, core.ID(42), loaded.LastId)
	assert.False(t, loaded.UpdatedAt.IsZero())

	// Overwrite advances the checkpoint
	checkpoint.LastId = core.ID(100)
	require.NoError(t, repo.SaveCheckpoint(ctx, checkpoint))

	loaded, err = repo.LoadCheckpoint(ctx, "reembed")
	require.NoError(t, err)
	assert.Equal(t, core.ID(100), loaded.LastId)

	// Other processor types are independent
	other, err := repo.LoadCheckpoint(ctx, "other")
	require.NoError(t, err)
	assert.Nil(t, other)
}

package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synd-dev/synd/pkg/adapters/memory"
	"github.com/synd-dev/synd/pkg/domain"
	"github.com/synd-dev/synd/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.New()
	ports.RunSnapshotStoreContract(t, store)
}

func TestMemoryStore_PayloadIsolation(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	payload := []byte{1, 2, 3}
	require.NoError(t, store.Save(ctx, domain.NewSnapshot("iso", "test/dynamics", payload, "")))

	// Mutating the caller's slice must not reach the stored copy.
	payload[0] = 99

	loaded, err := store.Load(ctx, "iso")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, loaded.Payload)

	// Neither must mutating a loaded payload.
	loaded.Payload[1] = 99
	again, err := store.Load(ctx, "iso")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, again.Payload)
}

func TestMemoryStore_ListSorted(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	for _, id := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, store.Save(ctx, domain.NewSnapshot(id, "test/dynamics", nil, "")))
	}

	infos, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 3)
	assert.Equal(t, "alpha", infos[0].ID)
	assert.Equal(t, "mid", infos[1].ID)
	assert.Equal(t, "zeta", infos[2].ID)
}

package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synd-dev/synd/pkg/domain"
)

// RunSnapshotStoreContract runs a suite of tests to verify that a
// SnapshotStore implementation adheres to the defined interface contract.
// Adapter packages call it from their own tests against a live instance.
func RunSnapshotStoreContract(t *testing.T, store SnapshotStore) {
	ctx := context.Background()
	id := "contract-test-snapshot-" + time.Now().Format("20060102150405.000")

	t.Run("Save and Load", func(t *testing.T) {
		snap := domain.NewSnapshot(id, "test/dynamics", []byte{0x00, 0x01, 0xFF, 0x42}, "contract")

		err := store.Save(ctx, snap)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, snap.Payload, loaded.Payload, "payload must round-trip byte-for-byte")
		assert.Equal(t, snap.Kind, loaded.Kind)
		assert.Equal(t, snap.Note, loaded.Note)
		assert.Equal(t, snap.Size, loaded.Size)
		// Stores may lose sub-second precision on timestamps.
		assert.WithinDuration(t, snap.SavedAt, loaded.SavedAt, time.Second)
	})

	t.Run("Overwrite", func(t *testing.T) {
		first := domain.NewSnapshot(id, "test/dynamics", []byte("v1"), "")
		second := domain.NewSnapshot(id, "test/dynamics", []byte("v2"), "updated")

		require.NoError(t, store.Save(ctx, first))
		require.NoError(t, store.Save(ctx, second))

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, []byte("v2"), loaded.Payload)
		assert.Equal(t, "updated", loaded.Note)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+id)
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, domain.NewSnapshot(id, "test/dynamics", []byte("doomed"), ""))
		require.NoError(t, err)

		err = store.Delete(ctx, id)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, id)
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound, "Load after Delete should return ErrSnapshotNotFound")

		err = store.Delete(ctx, id)
		assert.NoError(t, err, "Delete must be idempotent")
	})

	t.Run("List", func(t *testing.T) {
		id1 := id + "-1"
		id2 := id + "-2"
		require.NoError(t, store.Save(ctx, domain.NewSnapshot(id1, "test/dynamics", []byte("a"), "")))
		require.NoError(t, store.Save(ctx, domain.NewSnapshot(id2, "test/dynamics", []byte("bb"), "")))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		infos, err := store.List(ctx)
		require.NoError(t, err)

		byID := make(map[string]domain.SnapshotInfo, len(infos))
		for _, info := range infos {
			byID[info.ID] = info
		}
		require.Contains(t, byID, id1)
		require.Contains(t, byID, id2)
		assert.Equal(t, 1, byID[id1].Size)
		assert.Equal(t, 2, byID[id2].Size)
		assert.Equal(t, "test/dynamics", byID[id1].Kind)
	})
}

package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synd-dev/synd/pkg/adapters/redis"
	"github.com/synd-dev/synd/pkg/domain"
	"github.com/synd-dev/synd/pkg/ports"
)

func newTestStore(t *testing.T, opts ...redis.Option) (*miniredis.Miniredis, *redis.Store) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})

	store := redis.NewFromClient(client, opts...)
	t.Cleanup(func() { _ = store.Close() })

	return mr, store
}

func TestRedisStore_Contract(t *testing.T) {
	_, store := newTestStore(t)
	ports.RunSnapshotStoreContract(t, store)
}

func TestRedisStore_TTLExpiration(t *testing.T) {
	mr, store := newTestStore(t, redis.WithTTL(1*time.Second))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.NewSnapshot("snap-ttl", "walk/v1", []byte("payload"), "")))

	infos, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "snap-ttl", infos[0].ID)

	// Expire the keys inside miniredis.
	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, "snap-ttl")
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)

	// The index prune compares against time.Now, so wait past the TTL in
	// real time before asserting the lazy cleanup.
	time.Sleep(1200 * time.Millisecond)

	infos, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, infos)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, store := newTestStore(t, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.NewSnapshot("my-snap", "walk/v1", []byte("x"), "")))

	assert.True(t, mr.Exists("custom:app:my-snap"), "expected payload key with custom prefix")
	assert.True(t, mr.Exists("custom:app:info:my-snap"), "expected info key with custom prefix")
	assert.True(t, mr.Exists("custom:app:index"), "expected index key with custom prefix")

	infos, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "my-snap", infos[0].ID)
}

func TestRedisStore_BinaryPayload(t *testing.T) {
	_, store := newTestStore(t)
	ctx := context.Background()

	payload := []byte{0x00, 0xFF, 0x10, 0x00, 0x7F}
	require.NoError(t, store.Save(ctx, domain.NewSnapshot("bin", "walk/v1", payload, "")))

	loaded, err := store.Load(ctx, "bin")
	require.NoError(t, err)
	assert.Equal(t, payload, loaded.Payload)
}

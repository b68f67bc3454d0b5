package synd_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synd-dev/synd"
	"github.com/synd-dev/synd/pkg/adapters/memory"
	"github.com/synd-dev/synd/pkg/backmap"
	"github.com/synd-dev/synd/pkg/codec"
	"github.com/synd-dev/synd/pkg/domain"
	"github.com/synd-dev/synd/pkg/ports"
)

// walkDynamics is a registered dynamics with persistent configuration in an
// exported field.
type walkDynamics struct {
	Offset int
}

func (d *walkDynamics) GenerateUnmapped(ctx context.Context, req domain.Request) (ports.Cursor, error) {
	out := make([]domain.Trajectory, 0, len(req.InitialStates))
	for _, s := range req.InitialStates {
		out = append(out, ramp(s.(int)+d.Offset, int(req.Length)))
	}
	return synd.Trajectories(out...), nil
}

// driftDynamics is registered under its own kind; it exists to exercise the
// restore type guard.
type driftDynamics struct {
	Rate float64
}

func (d *driftDynamics) GenerateUnmapped(ctx context.Context, req domain.Request) (ports.Cursor, error) {
	return synd.Trajectories(), nil
}

// bareDynamics is deliberately never registered.
type bareDynamics struct {
	N int
}

func (d *bareDynamics) GenerateUnmapped(ctx context.Context, req domain.Request) (ports.Cursor, error) {
	return synd.Trajectories(), nil
}

func init() {
	codec.RegisterDynamics("syndtest.Walk", &walkDynamics{})
	codec.RegisterDynamics("syndtest.Drift", &driftDynamics{})
}

// collectAll runs one fixed generation and drains it, so two models can be
// compared by behavior.
func collectAll(t *testing.T, model *synd.Model) []domain.Trajectory {
	t.Helper()
	stream, err := model.GenerateTrajectories(context.Background(), 4, []domain.State{1, 2})
	require.NoError(t, err)
	trajs, err := stream.Collect()
	require.NoError(t, err)
	return trajs
}

func TestSerializeDeserialize_RoundTrip(t *testing.T) {
	model, err := synd.New(&walkDynamics{Offset: 5},
		synd.WithDefaultBackmapperRef(backmap.KindReverse, nil))
	require.NoError(t, err)
	require.NoError(t, model.AddBackmapperRef("thin", backmap.KindStride, map[string]any{"step": 2}))

	data, err := model.Serialize()
	require.NoError(t, err)

	restored, err := synd.Deserialize[*walkDynamics](data)
	require.NoError(t, err)

	walk, ok := restored.Dynamics().(*walkDynamics)
	require.True(t, ok)
	assert.Equal(t, 5, walk.Offset)
	assert.Equal(t, []string{"default", "thin"}, restored.Backmappers())

	assert.Equal(t, collectAll(t, model), collectAll(t, restored),
		"restored model must generate identically")
}

func TestSerialize_BareFunctionFails(t *testing.T) {
	model, err := synd.New(&walkDynamics{})
	require.NoError(t, err)
	require.NoError(t, model.AddBackmapper("opaque", passthrough))

	_, err = model.Serialize()
	require.ErrorIs(t, err, domain.ErrNotSerializable)
	assert.Contains(t, err.Error(), "opaque", "failure must name the offending entry")
}

func TestSerialize_UnregisteredDynamics(t *testing.T) {
	model, err := synd.New(&bareDynamics{N: 1})
	require.NoError(t, err)

	_, err = model.Serialize()
	assert.ErrorIs(t, err, domain.ErrNotSerializable)
}

func TestDeserialize_TypeMismatch(t *testing.T) {
	model, err := synd.New(&walkDynamics{Offset: 2})
	require.NoError(t, err)
	data, err := model.Serialize()
	require.NoError(t, err)

	_, err = synd.Deserialize[*driftDynamics](data)
	require.ErrorIs(t, err, domain.ErrTypeMismatch)
	assert.Contains(t, err.Error(), "walkDynamics")
	assert.Contains(t, err.Error(), "driftDynamics")
}

func TestDeserialize_Garbage(t *testing.T) {
	_, err := synd.Deserialize[*walkDynamics]([]byte("not a snapshot"))
	assert.Error(t, err)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models", "walk.synd")

	model, err := synd.New(&walkDynamics{Offset: 3},
		synd.WithDefaultBackmapperRef(backmap.KindIdentity, nil))
	require.NoError(t, err)

	require.NoError(t, model.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	loaded, err := synd.Load[*walkDynamics](path)
	require.NoError(t, err)
	assert.Equal(t, collectAll(t, model), collectAll(t, loaded))

	// Saving over an existing file replaces it.
	require.NoError(t, model.Save(path))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := synd.Load[*walkDynamics](filepath.Join(t.TempDir(), "absent.synd"))
	assert.Error(t, err)
}

func TestCheckpointRestore(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	model, err := synd.New(&walkDynamics{Offset: 7},
		synd.WithDefaultBackmapperRef(backmap.KindStride, map[string]any{"step": 2}))
	require.NoError(t, err)

	require.NoError(t, model.Checkpoint(ctx, store, "exp-1", "first sweep"))

	infos, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "exp-1", infos[0].ID)
	assert.Equal(t, "syndtest.Walk", infos[0].Kind)
	assert.Equal(t, "first sweep", infos[0].Note)
	assert.Positive(t, infos[0].Size)

	restored, err := synd.Restore[*walkDynamics](ctx, store, "exp-1")
	require.NoError(t, err)
	assert.Equal(t, collectAll(t, model), collectAll(t, restored))

	_, err = synd.Restore[*walkDynamics](ctx, store, "exp-2")
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestCheckpoint_EmptyID(t *testing.T) {
	model, err := synd.New(&walkDynamics{})
	require.NoError(t, err)

	assert.Error(t, model.Checkpoint(context.Background(), memory.New(), "", ""))
}

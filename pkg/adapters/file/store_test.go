package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/synd-dev/synd/pkg/adapters/file"
	"github.com/synd-dev/synd/pkg/domain"
	"github.com/synd-dev/synd/pkg/ports"
)

func TestFileStore_Contract(t *testing.T) {
	store := file.New(t.TempDir())
	ports.RunSnapshotStoreContract(t, store)
}

func TestFileStore_DefaultBasePath(t *testing.T) {
	store := file.New("")
	assert.Equal(t, filepath.Join(".synd", "snapshots"), store.BasePath)
}

func TestFileStore_FilesOnDisk(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	payload := []byte{0xCA, 0xFE}
	require.NoError(t, store.Save(ctx, domain.NewSnapshot("exp-1", "walk/v1", payload, "sweep")))

	// The payload file holds the bytes verbatim.
	onDisk, err := os.ReadFile(filepath.Join(dir, "exp-1.synd"))
	require.NoError(t, err)
	assert.Equal(t, payload, onDisk)

	// The sidecar manifest is valid YAML carrying the metadata.
	manifest, err := os.ReadFile(filepath.Join(dir, "exp-1.yaml"))
	require.NoError(t, err)

	var info domain.SnapshotInfo
	require.NoError(t, yaml.Unmarshal(manifest, &info))
	assert.Equal(t, "exp-1", info.ID)
	assert.Equal(t, "walk/v1", info.Kind)
	assert.Equal(t, "sweep", info.Note)
	assert.Equal(t, len(payload), info.Size)
}

func TestFileStore_RejectsUnsafeIDs(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	for _, id := range []string{"", ".", "..", "a/b", `a\b`} {
		t.Run("id "+id, func(t *testing.T) {
			err := store.Save(ctx, domain.NewSnapshot(id, "k", nil, ""))
			assert.Error(t, err)

			_, err = store.Load(ctx, id)
			assert.Error(t, err)
		})
	}
}

func TestFileStore_DeleteRemovesBothFiles(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.NewSnapshot("doomed", "k", []byte("x"), "")))
	require.NoError(t, store.Delete(ctx, "doomed"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileStore_ListEmptyDirectory(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "never-created"))

	infos, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, infos)
}

package synd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/synd-dev/synd/pkg/codec"
	"github.com/synd-dev/synd/pkg/domain"
	"github.com/synd-dev/synd/pkg/ports"
)

// Serialize captures the model's full state graph as an opaque binary
// payload: the dynamics value plus every backmapper reference. It fails
// wrapping domain.ErrNotSerializable when the dynamics type was never
// registered with codec.RegisterDynamics, or when any backmapper was
// attached as a bare function with no catalog provenance.
//
// Serialize performs no I/O; pair it with Save, a SnapshotStore, or your
// own transport.
func (m *Model) Serialize() ([]byte, error) {
	refs, err := m.backmappers.Refs()
	if err != nil {
		return nil, err
	}

	data, err := codec.Encode(m.dyn, refs)
	if err != nil {
		return nil, err
	}

	m.logger.Debug("model serialized", "bytes", len(data), "backmappers", len(refs))
	return data, nil
}

// Deserialize reconstructs a model from a payload produced by Serialize.
// The type parameter names the concrete dynamics type the caller expects; a
// payload holding anything else fails wrapping domain.ErrTypeMismatch.
// Backmappers are re-attached by resolving their catalog references, so the
// factories they were built from must be registered in this process too.
func Deserialize[D ports.Dynamics](data []byte, opts ...Option) (*Model, error) {
	dyn, refs, err := codec.Decode(data)
	if err != nil {
		return nil, err
	}

	typed, ok := dyn.(D)
	if !ok {
		var want D
		return nil, fmt.Errorf("snapshot holds %T, not %T: %w", dyn, want, domain.ErrTypeMismatch)
	}

	m, err := New(typed, opts...)
	if err != nil {
		return nil, err
	}
	for name, ref := range refs {
		if err := m.AddBackmapperRef(name, ref.Kind, ref.Params); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Save writes the serialized model to path. The write is atomic: data goes
// to a temp file in the destination directory, is fsynced, and is renamed
// into place, so a crash never leaves a partial model file behind.
func (m *Model) Save(path string) error {
	data, err := m.Serialize()
	if err != nil {
		return err
	}
	if err := writeFileAtomic(path, data); err != nil {
		return err
	}
	m.logger.Debug("model saved", "path", path, "bytes", len(data))
	return nil
}

// Load reads a file written by Save and reconstructs the model, with the
// same type guard as Deserialize.
func Load[D ports.Dynamics](path string, opts ...Option) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}
	return Deserialize[D](data, opts...)
}

// Checkpoint serializes the model and saves it in the store under id. The
// snapshot's Kind records the registered dynamics kind for listings.
func (m *Model) Checkpoint(ctx context.Context, store ports.SnapshotStore, id, note string) error {
	if id == "" {
		return fmt.Errorf("snapshot id cannot be empty")
	}

	payload, err := m.Serialize()
	if err != nil {
		return err
	}

	// Serialize succeeded, so the kind is registered.
	kind, _ := codec.KindOf(m.dyn)

	if err := store.Save(ctx, domain.NewSnapshot(id, kind, payload, note)); err != nil {
		return err
	}
	m.logger.Debug("checkpoint saved", "id", id, "bytes", len(payload))
	return nil
}

// Restore loads the identified snapshot from the store and reconstructs the
// model, with the same type guard as Deserialize.
func Restore[D ports.Dynamics](ctx context.Context, store ports.SnapshotStore, id string, opts ...Option) (*Model, error) {
	snap, err := store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return Deserialize[D](snap.Payload, opts...)
}

// writeFileAtomic writes data via temp file, fsync, and rename.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to ensure directory: %w", err)
	}

	// The temp file lives in the destination directory so the final rename
	// stays on one filesystem.
	tmp, err := os.CreateTemp(dir, "tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath) // no-op once renamed
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file into place: %w", err)
	}
	return nil
}

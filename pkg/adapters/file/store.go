package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/synd-dev/synd/pkg/domain"
)

const (
	payloadExt  = ".synd"
	manifestExt = ".yaml"
)

// Store implements ports.SnapshotStore on the local filesystem.
// Each snapshot is a pair of files in the base directory: the payload
// verbatim in <id>.synd and the metadata in a <id>.yaml manifest.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".synd/snapshots".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".synd", "snapshots")
	}
	return &Store{BasePath: basePath}
}

func (s *Store) payloadPath(id string) string {
	return filepath.Join(s.BasePath, id+payloadExt)
}

func (s *Store) manifestPath(id string) string {
	return filepath.Join(s.BasePath, id+manifestExt)
}

// validID rejects IDs that would name files outside the base directory.
func validID(id string) error {
	if id == "" {
		return fmt.Errorf("snapshot id cannot be empty")
	}
	if id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("snapshot id %q must not contain path separators", id)
	}
	return nil
}

// Save persists the snapshot atomically: payload first, manifest second,
// each via temp file, fsync, and rename. The manifest is written last so a
// listed snapshot always has its payload on disk.
func (s *Store) Save(ctx context.Context, snap domain.Snapshot) error {
	if err := validID(snap.ID); err != nil {
		return err
	}

	if err := os.MkdirAll(s.BasePath, 0o755); err != nil {
		return fmt.Errorf("failed to ensure snapshot directory: %w", err)
	}

	manifest, err := yaml.Marshal(snap.SnapshotInfo)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := s.writeAtomic(s.payloadPath(snap.ID), snap.Payload); err != nil {
		return err
	}
	return s.writeAtomic(s.manifestPath(snap.ID), manifest)
}

// Load retrieves the snapshot by reading its manifest and payload files.
func (s *Store) Load(ctx context.Context, id string) (domain.Snapshot, error) {
	if err := validID(id); err != nil {
		return domain.Snapshot{}, err
	}

	manifest, err := os.ReadFile(s.manifestPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Snapshot{}, domain.ErrSnapshotNotFound
		}
		return domain.Snapshot{}, fmt.Errorf("failed to read manifest: %w", err)
	}

	var info domain.SnapshotInfo
	if err := yaml.Unmarshal(manifest, &info); err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to unmarshal manifest: %w", err)
	}

	payload, err := os.ReadFile(s.payloadPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Snapshot{}, domain.ErrSnapshotNotFound
		}
		return domain.Snapshot{}, fmt.Errorf("failed to read payload: %w", err)
	}

	return domain.Snapshot{SnapshotInfo: info, Payload: payload}, nil
}

// Delete removes both snapshot files. Absent IDs are not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := validID(id); err != nil {
		return err
	}

	for _, path := range []string{s.payloadPath(id), s.manifestPath(id)} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete snapshot file: %w", err)
		}
	}
	return nil
}

// List reads every manifest in the base directory. Results come back in
// directory order, which is sorted by ID.
func (s *Store) List(ctx context.Context) ([]domain.SnapshotInfo, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.SnapshotInfo{}, nil
		}
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	infos := make([]domain.SnapshotInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != manifestExt {
			continue
		}

		manifest, err := os.ReadFile(filepath.Join(s.BasePath, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read manifest %s: %w", entry.Name(), err)
		}

		var info domain.SnapshotInfo
		if err := yaml.Unmarshal(manifest, &info); err != nil {
			return nil, fmt.Errorf("failed to unmarshal manifest %s: %w", entry.Name(), err)
		}
		infos = append(infos, info)
	}

	return infos, nil
}

// writeAtomic writes data to dest via a temp file in the same directory
// (required for an atomic rename), fsyncs, and renames into place.
func (s *Store) writeAtomic(dest string, data []byte) error {
	tmp, err := os.CreateTemp(s.BasePath, "tmp-"+filepath.Base(dest)+"-*")
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
	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("failed to rename temp file into place: %w", err)
	}
	return nil
}

package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/synd-dev/synd/pkg/domain"
)

// Store implements ports.SnapshotStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.Snapshot
	mu   sync.RWMutex
}

// New creates an empty in-memory snapshot store.
func New() *Store {
	return &Store{
		data: make(map[string]domain.Snapshot),
	}
}

// Save stores the snapshot, overwriting any entry with the same ID.
func (s *Store) Save(ctx context.Context, snap domain.Snapshot) error {
	// Copy the payload so the store never aliases caller-owned bytes.
	stored := snap
	stored.Payload = append([]byte(nil), snap.Payload...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[snap.ID] = stored
	return nil
}

// Load retrieves the snapshot by ID.
func (s *Store) Load(ctx context.Context, id string) (domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.data[id]
	if !ok {
		return domain.Snapshot{}, domain.ErrSnapshotNotFound
	}

	// Copy on read so the caller cannot mutate stored bytes.
	ret := snap
	ret.Payload = append([]byte(nil), snap.Payload...)
	return ret, nil
}

// Delete removes the snapshot. Absent IDs are not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns the stored snapshot metadata, sorted by ID.
func (s *Store) List(ctx context.Context) ([]domain.SnapshotInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]domain.SnapshotInfo, 0, len(s.data))
	for _, snap := range s.data {
		infos = append(infos, snap.SnapshotInfo)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos, nil
}

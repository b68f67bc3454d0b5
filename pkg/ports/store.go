package ports

import (
	"context"

	"github.com/synd-dev/synd/pkg/domain"
)

// SnapshotStore defines the interface for persisting serialized models under
// caller-chosen IDs. Payloads are opaque bytes; stores must return them
// byte-for-byte identical to what was saved.
type SnapshotStore interface {
	// Save persists the snapshot, overwriting any existing entry with the
	// same ID.
	Save(ctx context.Context, snap domain.Snapshot) error

	// Load retrieves a snapshot by ID.
	// Returns domain.ErrSnapshotNotFound if the ID does not exist.
	Load(ctx context.Context, id string) (domain.Snapshot, error)

	// Delete removes the snapshot. Deleting an absent ID is not an error.
	Delete(ctx context.Context, id string) error

	// List returns metadata for every stored snapshot.
	List(ctx context.Context) ([]domain.SnapshotInfo, error)
}

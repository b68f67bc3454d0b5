/*
Package ports defines the driven ports (interfaces) for synd models.

These interfaces decouple the generation pipeline from external
implementations: the concrete dynamics that produce raw trajectories and the
storage backends that persist serialized models.

# Key Interfaces

  - Dynamics: the single extension point a concrete model must implement —
    raw, unmapped trajectory generation.
  - Cursor: a pull iterator over generated trajectories, lazy or eager at
    the implementation's discretion.
  - SnapshotStore: named persistence for serialized models (memory, file,
    and Redis adapters ship under pkg/adapters).
*/
package ports

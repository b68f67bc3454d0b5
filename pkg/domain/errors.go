package domain

import "errors"

// ErrBackmapperExists is returned when registering a backmapper under a name
// that is already taken on the same model. Entries are never overwritten
// silently; remove the old one first.
var ErrBackmapperExists = errors.New("backmapper already registered")

// ErrBackmapperNotFound is returned when a backmapper name cannot be
// resolved, either on a model instance or in the process-wide catalog.
var ErrBackmapperNotFound = errors.New("backmapper not found")

// ErrTypeMismatch is returned by Deserialize when the decoded payload does
// not carry the dynamics type the caller asked for.
var ErrTypeMismatch = errors.New("dynamics type mismatch")

// ErrNotSerializable is returned by Serialize when part of the model's state
// graph cannot be captured, typically a backmapper registered as a bare
// function with no catalog reference.
var ErrNotSerializable = errors.New("not serializable")

// ErrSnapshotNotFound is returned when a snapshot ID cannot be found in a
// store.
var ErrSnapshotNotFound = errors.New("snapshot not found")

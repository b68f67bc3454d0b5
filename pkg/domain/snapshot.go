package domain

import "time"

// SnapshotInfo is the descriptive metadata of a stored model payload.
type SnapshotInfo struct {
	ID      string    `json:"id" yaml:"id"`
	Kind    string    `json:"kind" yaml:"kind"`
	SavedAt time.Time `json:"saved_at" yaml:"saved_at"`
	Note    string    `json:"note,omitempty" yaml:"note,omitempty"`
	Size    int       `json:"size" yaml:"size"`
}

// Snapshot is one serialized model: opaque payload bytes plus metadata.
// Stores persist the payload verbatim; the bytes are only meaningful to
// synd.Deserialize.
type Snapshot struct {
	SnapshotInfo `yaml:",inline"`
	Payload      []byte `json:"payload" yaml:"-"`
}

// NewSnapshot stamps a snapshot with the current time and payload size.
// Kind is the registered dynamics kind of the serialized model; Note is a
// free-form caller annotation.
func NewSnapshot(id, kind string, payload []byte, note string) Snapshot {
	return Snapshot{
		SnapshotInfo: SnapshotInfo{
			ID:      id,
			Kind:    kind,
			SavedAt: time.Now().UTC(),
			Note:    note,
			Size:    len(payload),
		},
		Payload: payload,
	}
}

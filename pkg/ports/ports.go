package ports

import (
	"context"

	"github.com/synd-dev/synd/pkg/domain"
)

// Cursor is a pull iterator over trajectories. Next returns io.EOF after the
// final trajectory; any other error is a generation failure belonging to the
// producing implementation. A Cursor may compute everything up front or one
// trajectory per pull — callers must not assume either.
//
// Implementations that hold external resources should additionally implement
// io.Closer; the pipeline's Stream propagates Close to the cursor it wraps.
type Cursor interface {
	Next() (domain.Trajectory, error)
}

// Dynamics is the raw-generation capability every concrete model provides,
// and the single extension point of the library. Implementations must yield
// exactly one raw trajectory of the requested length per initial state, in
// input order. The pipeline relays trajectories as produced and does not
// enforce that count discipline; violating it breaks downstream pairing of
// states to trajectories.
//
// Implementations that should survive Serialize/Load round trips must be
// registered with codec.RegisterDynamics and keep their persistent
// configuration in exported fields.
type Dynamics interface {
	GenerateUnmapped(ctx context.Context, req domain.Request) (Cursor, error)
}

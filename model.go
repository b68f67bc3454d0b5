package synd

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/synd-dev/synd/internal/logging"
	"github.com/synd-dev/synd/pkg/backmap"
	"github.com/synd-dev/synd/pkg/codec"
	"github.com/synd-dev/synd/pkg/domain"
	"github.com/synd-dev/synd/pkg/ports"
)

// Model is the high-level entry point of the library. It wraps a Dynamics
// implementation and provides the registry, generation, and persistence API
// for consumers.
//
// A Model is not safe for concurrent use; callers that share one across
// goroutines must synchronize externally.
type Model struct {
	dyn         ports.Dynamics
	backmappers *backmap.Registry
	hooks       domain.GenerationHooks
	logger      *slog.Logger

	// pending collects default-backmapper options until New can apply them
	// through the regular add path.
	pending []pendingDefault
}

type pendingDefault struct {
	fn  backmap.Func
	ref *backmap.Ref
}

// defaultLogger is shared by every Model that was not given its own.
var defaultLogger = sync.OnceValue(func() *slog.Logger {
	return logging.New(slog.LevelInfo)
})

// New wires a dynamics implementation into a Model.
// The implementation is the only required collaborator; everything else is
// configured through options.
func New(dyn ports.Dynamics, opts ...Option) (*Model, error) {
	if dyn == nil {
		return nil, fmt.Errorf("a dynamics implementation is required")
	}

	m := &Model{
		dyn:         dyn,
		backmappers: backmap.NewRegistry(),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.logger == nil {
		m.logger = defaultLogger()
	}

	// Tag log records with the dynamics identity: the registered kind when
	// there is one, the Go type otherwise.
	if kind, ok := codec.KindOf(dyn); ok {
		m.logger = m.logger.With("dynamics", kind)
	} else {
		m.logger = m.logger.With("dynamics", fmt.Sprintf("%T", dyn))
	}

	// Default-backmapper options run through the regular add path so that
	// conflicting options surface as construction errors.
	for _, p := range m.pending {
		var err error
		if p.ref != nil {
			err = m.AddBackmapperRef(backmap.Default, p.ref.Kind, p.ref.Params)
		} else {
			err = m.AddBackmapper(backmap.Default, p.fn)
		}
		if err != nil {
			return nil, err
		}
	}
	m.pending = nil

	return m, nil
}

// Dynamics returns the wrapped dynamics implementation.
func (m *Model) Dynamics() ports.Dynamics {
	return m.dyn
}

// AddBackmapper registers fn under name. It fails wrapping
// domain.ErrBackmapperExists when the name is taken; the existing entry is
// left untouched. Entries added this way have no catalog provenance and make
// the model unserializable; prefer AddBackmapperRef when the model needs to
// survive a Serialize round trip.
func (m *Model) AddBackmapper(name string, fn backmap.Func) error {
	if err := m.backmappers.Add(name, fn); err != nil {
		return err
	}
	m.logger.Debug("backmapper registered", "name", name)
	return nil
}

// AddBackmapperRef builds a backmapper of the given catalog kind and
// registers it under name, remembering the reference so the entry survives
// serialization. Uniqueness rules match AddBackmapper.
func (m *Model) AddBackmapperRef(name, kind string, params map[string]any) error {
	if err := m.backmappers.AddRef(name, backmap.Ref{Kind: kind, Params: params}); err != nil {
		return err
	}
	m.logger.Debug("backmapper registered", "name", name, "kind", kind)
	return nil
}

// RemoveBackmapper deletes the named backmapper. It fails wrapping
// domain.ErrBackmapperNotFound when the name is absent.
func (m *Model) RemoveBackmapper(name string) error {
	if err := m.backmappers.Remove(name); err != nil {
		return err
	}
	m.logger.Debug("backmapper removed", "name", name)
	return nil
}

// Backmapper looks up a registered backmapper by name. It fails wrapping
// domain.ErrBackmapperNotFound when the name is absent.
func (m *Model) Backmapper(name string) (backmap.Func, error) {
	return m.backmappers.Get(name)
}

// DefaultBackmapper returns the "default" entry, with a comma-ok flag for
// absence.
func (m *Model) DefaultBackmapper() (backmap.Func, bool) {
	return m.backmappers.Default()
}

// SetDefaultBackmapper registers fn under the reserved default name. It is
// sugar for AddBackmapper(backmap.Default, fn) and fails the same way when a
// default is already set.
func (m *Model) SetDefaultBackmapper(fn backmap.Func) error {
	return m.AddBackmapper(backmap.Default, fn)
}

// Backmappers returns the registered backmapper names in sorted order.
func (m *Model) Backmappers() []string {
	return m.backmappers.Names()
}

package backmap

import (
	"fmt"
	"sort"
	"sync"

	"github.com/synd-dev/synd/pkg/domain"
)

// Factory builds a backmapper from plain-data parameters. Implementations
// typically decode params with mapstructure into a typed config and close
// over the result, so the pair (kind, params) fully reconstructs the
// function after a model is deserialized.
type Factory func(params map[string]any) (Func, error)

// Ref is the serializable reference form of a backmapper: a catalog kind
// plus the parameters its factory was invoked with. Params values must be
// representable by the binary codec (basic scalars and slices are; arbitrary
// structs are not unless registered with encoding/gob).
type Ref struct {
	Kind   string         `json:"kind"`
	Params map[string]any `json:"params,omitempty"`
}

// Resolve builds the referenced function through the catalog.
func (r Ref) Resolve() (Func, error) {
	return New(r.Kind, r.Params)
}

// catalog is process-wide shared state. Unlike instance registries it is
// mutex-guarded, since package init functions register into it from
// arbitrary import orders.
var catalog = struct {
	mu        sync.RWMutex
	factories map[string]Factory
}{factories: make(map[string]Factory)}

// Register makes a backmapper factory available under kind, in the manner
// of gob.RegisterName: it is expected to be called from init paths and
// panics on empty kind, nil factory, or duplicate registration.
func Register(kind string, factory Factory) {
	if kind == "" {
		panic("backmap: attempt to register factory with empty kind")
	}
	if factory == nil {
		panic("backmap: nil factory for kind " + kind)
	}
	catalog.mu.Lock()
	defer catalog.mu.Unlock()
	if _, dup := catalog.factories[kind]; dup {
		panic("backmap: Register called twice for kind " + kind)
	}
	catalog.factories[kind] = factory
}

// New builds a backmapper of the given kind. Unknown kinds fail wrapping
// domain.ErrBackmapperNotFound; parameter validation is the factory's
// responsibility and its errors are returned as-is.
func New(kind string, params map[string]any) (Func, error) {
	catalog.mu.RLock()
	factory, ok := catalog.factories[kind]
	catalog.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("kind %q: %w", kind, domain.ErrBackmapperNotFound)
	}
	return factory(params)
}

// Kinds returns every registered catalog kind in sorted order.
func Kinds() []string {
	catalog.mu.RLock()
	defer catalog.mu.RUnlock()
	kinds := make([]string, 0, len(catalog.factories))
	for kind := range catalog.factories {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

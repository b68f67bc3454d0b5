// Package backmap manages the transformations that turn raw trajectories
// into caller-facing representations.
//
// Each model instance owns a Registry of named backmappers; the pipeline
// resolves a name against it per generation run. Independently, a
// process-wide catalog maps backmapper kinds to factories so that
// registrations can be persisted by reference and re-attached after
// deserialization (function values themselves are not serializable).
package backmap

import (
	"fmt"
	"sort"

	"github.com/synd-dev/synd/pkg/domain"
)

// Default is the reserved entry name the generation pipeline resolves when
// the caller does not select a backmapper explicitly.
const Default = "default"

// Func is a backmapper: a unary transformation from a raw trajectory to a
// mapped one. The library imposes no shape requirement beyond this
// signature; a Func must accept whatever the model's raw generation
// produces.
type Func func(domain.Trajectory) (domain.Trajectory, error)

type entry struct {
	fn Func
	// ref records catalog provenance for entries attached via AddRef; only
	// such entries survive serialization.
	ref *Ref
}

// Registry is the per-model named set of backmappers. Names are unique;
// entries change only through explicit Add/Remove calls, never by silent
// overwrite.
//
// A Registry is owned exclusively by one model and is not internally
// synchronized; concurrent mutation requires external coordination.
type Registry struct {
	entries map[string]entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Add registers fn under name. The existing entry is left untouched and an
// error wrapping domain.ErrBackmapperExists is returned if the name is
// already taken. Entries added this way carry no catalog reference and make
// the owning model unserializable; use AddRef when persistence matters.
func (r *Registry) Add(name string, fn Func) error {
	if fn == nil {
		return fmt.Errorf("backmapper %q is nil", name)
	}
	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("backmapper %q: %w", name, domain.ErrBackmapperExists)
	}
	r.entries[name] = entry{fn: fn}
	return nil
}

// AddRef resolves ref through the catalog and registers the produced
// function under name, remembering the reference so the entry can be
// serialized and re-attached later. Uniqueness rules match Add.
func (r *Registry) AddRef(name string, ref Ref) error {
	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("backmapper %q: %w", name, domain.ErrBackmapperExists)
	}
	fn, err := ref.Resolve()
	if err != nil {
		return fmt.Errorf("backmapper %q: %w", name, err)
	}
	r.entries[name] = entry{fn: fn, ref: &ref}
	return nil
}

// Remove deletes the named entry. The registry is left untouched and an
// error wrapping domain.ErrBackmapperNotFound is returned if the name is
// absent.
func (r *Registry) Remove(name string) error {
	if _, exists := r.entries[name]; !exists {
		return fmt.Errorf("backmapper %q: %w", name, domain.ErrBackmapperNotFound)
	}
	delete(r.entries, name)
	return nil
}

// Get looks up a backmapper by name.
// Returns an error wrapping domain.ErrBackmapperNotFound if absent.
func (r *Registry) Get(name string) (Func, error) {
	e, exists := r.entries[name]
	if !exists {
		return nil, fmt.Errorf("backmapper %q: %w", name, domain.ErrBackmapperNotFound)
	}
	return e.fn, nil
}

// Default returns the entry named Default, with a comma-ok flag for absence.
func (r *Registry) Default() (Func, bool) {
	e, exists := r.entries[Default]
	if !exists {
		return nil, false
	}
	return e.fn, true
}

// Len reports the number of registered backmappers.
func (r *Registry) Len() int { return len(r.entries) }

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Refs returns the catalog reference of every entry, the serializable form
// of the registry. It fails wrapping domain.ErrNotSerializable, naming the
// offending entry, if any backmapper was attached as a bare function.
func (r *Registry) Refs() (map[string]Ref, error) {
	refs := make(map[string]Ref, len(r.entries))
	for name, e := range r.entries {
		if e.ref == nil {
			return nil, fmt.Errorf("backmapper %q has no catalog reference: %w", name, domain.ErrNotSerializable)
		}
		refs[name] = *e.ref
	}
	return refs, nil
}

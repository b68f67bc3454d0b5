package codec

import (
	"encoding/gob"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/synd-dev/synd/pkg/ports"
)

var (
	mu          sync.RWMutex
	kindsByType = make(map[reflect.Type]string)
	typesByKind = make(map[string]reflect.Type)
)

// RegisterDynamics records a dynamics implementation under a stable kind name
// so that snapshots can identify the concrete type on the wire. Call it from
// the implementation's init function, passing a zero value as the prototype:
//
//	func init() { codec.RegisterDynamics("mymod.RandomWalk", &RandomWalk{}) }
//
// The kind name is written into every snapshot, so treat it like a wire
// format: renaming it breaks existing snapshots. Registering the same
// kind/type pair again is a no-op; conflicting registrations panic, in line
// with gob's own registry.
func RegisterDynamics(kind string, proto ports.Dynamics) {
	if kind == "" {
		panic("codec: RegisterDynamics called with empty kind")
	}
	if proto == nil {
		panic(fmt.Sprintf("codec: RegisterDynamics %q called with nil prototype", kind))
	}

	t := reflect.TypeOf(proto)

	mu.Lock()
	defer mu.Unlock()

	if existing, ok := typesByKind[kind]; ok {
		if existing == t {
			return
		}
		panic(fmt.Sprintf("codec: RegisterDynamics kind %q already bound to %v", kind, existing))
	}
	if existing, ok := kindsByType[t]; ok {
		panic(fmt.Sprintf("codec: RegisterDynamics type %v already registered as %q", t, existing))
	}

	gob.RegisterName(kind, proto)
	typesByKind[kind] = t
	kindsByType[t] = kind
}

// KindOf reports the registered kind name for the dynamics implementation,
// or false when its type was never registered.
func KindOf(dyn ports.Dynamics) (string, bool) {
	if dyn == nil {
		return "", false
	}

	mu.RLock()
	defer mu.RUnlock()

	kind, ok := kindsByType[reflect.TypeOf(dyn)]
	return kind, ok
}

// Kinds returns the registered dynamics kind names in sorted order.
func Kinds() []string {
	mu.RLock()
	defer mu.RUnlock()

	kinds := make([]string, 0, len(typesByKind))
	for kind := range typesByKind {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

/*
Package codec turns a dynamics implementation plus its backmapper references
into a self-describing binary snapshot and back.

The wire format is encoding/gob: an envelope carrying a format version, the
registered kind name of the dynamics type, the dynamics value itself, and the
backmapper references. Because the dynamics travels inside an interface
field, its concrete type must be registered with RegisterDynamics on both
the encoding and the decoding side. Dynamics state must consist of exported,
gob-encodable fields; anything unexported is silently dropped by gob.
*/
package codec

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/synd-dev/synd/pkg/backmap"
	"github.com/synd-dev/synd/pkg/domain"
	"github.com/synd-dev/synd/pkg/ports"
)

// Version identifies the snapshot layout. It is written into every encoded
// payload and checked on decode.
const Version = 1

// envelope is the top-level structure written to the wire.
type envelope struct {
	Version     int
	Kind        string
	Dynamics    ports.Dynamics
	Backmappers map[string]backmap.Ref
}

// Encode serializes the dynamics and its backmapper references into a
// binary payload. It fails with domain.ErrNotSerializable when the dynamics
// type was never registered with RegisterDynamics.
func Encode(dyn ports.Dynamics, refs map[string]backmap.Ref) ([]byte, error) {
	if dyn == nil {
		return nil, fmt.Errorf("codec: cannot encode nil dynamics")
	}

	kind, ok := KindOf(dyn)
	if !ok {
		return nil, fmt.Errorf("codec: dynamics type %T is not registered, call codec.RegisterDynamics in its package init: %w",
			dyn, domain.ErrNotSerializable)
	}

	env := envelope{
		Version:     Version,
		Kind:        kind,
		Dynamics:    dyn,
		Backmappers: refs,
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(env); err != nil {
		return nil, fmt.Errorf("codec: encode %s: %w", kind, err)
	}
	return buf.Bytes(), nil
}

// Decode parses a payload produced by Encode and returns the dynamics value
// and the backmapper references that were serialized with it. The concrete
// dynamics type must be registered with RegisterDynamics before calling
// Decode, otherwise gob cannot resolve the kind name.
func Decode(data []byte) (ports.Dynamics, map[string]backmap.Ref, error) {
	if len(data) == 0 {
		return nil, nil, fmt.Errorf("codec: empty payload")
	}

	var env envelope
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&env); err != nil {
		return nil, nil, fmt.Errorf("codec: decode: %w", err)
	}

	if env.Version != Version {
		return nil, nil, fmt.Errorf("codec: unsupported snapshot version %d (expected %d)", env.Version, Version)
	}
	if env.Dynamics == nil {
		return nil, nil, fmt.Errorf("codec: snapshot carries no dynamics")
	}

	return env.Dynamics, env.Backmappers, nil
}

package backmap

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"

	"github.com/synd-dev/synd/pkg/domain"
)

// Built-in catalog kinds. They operate on slice-shaped trajectories via
// reflection, which covers the common "ordered sequence of states" layout
// without binding the library to a concrete element type.
const (
	KindIdentity = "identity"
	KindReverse  = "reverse"
	KindStride   = "stride"
)

func init() {
	Register(KindIdentity, func(map[string]any) (Func, error) {
		return func(t domain.Trajectory) (domain.Trajectory, error) { return t, nil }, nil
	})
	Register(KindReverse, func(map[string]any) (Func, error) {
		return reverse, nil
	})
	Register(KindStride, newStride)
}

func reverse(t domain.Trajectory) (domain.Trajectory, error) {
	v, err := sliceOf(t)
	if err != nil {
		return nil, err
	}
	n := v.Len()
	out := reflect.MakeSlice(v.Type(), n, n)
	for i := 0; i < n; i++ {
		out.Index(n - 1 - i).Set(v.Index(i))
	}
	return out.Interface(), nil
}

type strideConfig struct {
	// Step keeps every Step-th frame, starting from the first.
	Step int `mapstructure:"step"`
}

func newStride(params map[string]any) (Func, error) {
	cfg := strideConfig{Step: 1}
	if err := mapstructure.Decode(params, &cfg); err != nil {
		return nil, fmt.Errorf("stride params: %w", err)
	}
	if cfg.Step < 1 {
		return nil, fmt.Errorf("stride step must be >= 1, got %d", cfg.Step)
	}
	return func(t domain.Trajectory) (domain.Trajectory, error) {
		v, err := sliceOf(t)
		if err != nil {
			return nil, err
		}
		out := reflect.MakeSlice(v.Type(), 0, (v.Len()+cfg.Step-1)/cfg.Step)
		for i := 0; i < v.Len(); i += cfg.Step {
			out = reflect.Append(out, v.Index(i))
		}
		return out.Interface(), nil
	}, nil
}

func sliceOf(t domain.Trajectory) (reflect.Value, error) {
	v := reflect.ValueOf(t)
	if !v.IsValid() || v.Kind() != reflect.Slice {
		return reflect.Value{}, fmt.Errorf("backmapper requires a slice trajectory, got %T", t)
	}
	return v, nil
}

package domain

// State is one initial condition accepted by a model. Its representation is
// entirely model-defined (an index into a discretized state space, a
// coordinate vector, a struct...); the pipeline only counts and orders
// states, it never looks inside them.
type State = any

// Trajectory is an ordered sequence of states produced by one model run
// from a single initial state. Raw trajectories are whatever the concrete
// generation step produces; mapped trajectories are whatever a backmapper
// returns. The core imposes no structural invariant on either.
type Trajectory = any

// Request carries the parameters of a single generation run as handed to a
// Dynamics implementation.
type Request struct {
	// Length is the requested trajectory length. It is a real-valued
	// quantity (a duration, a frame count, a stopping time...) interpreted
	// by the concrete model, not necessarily integral.
	Length float64

	// InitialStates is consumed to produce exactly one trajectory per
	// element, preserving this order.
	InitialStates []State

	// Params are open keyword parameters forwarded verbatim from the caller
	// to the model. The pipeline never reads them.
	Params map[string]any
}

// Param returns the named generation parameter, with a comma-ok flag for
// absence. Implementations remain free to read Params directly.
func (r Request) Param(key string) (any, bool) {
	if r.Params == nil {
		return nil, false
	}
	v, ok := r.Params[key]
	return v, ok
}

package synd

import (
	"log/slog"

	"github.com/synd-dev/synd/pkg/backmap"
	"github.com/synd-dev/synd/pkg/domain"
)

// Option defines a functional option for configuring a Model.
type Option func(*Model)

// WithLogger sets a custom structured logger for the model.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithHooks registers observability hooks fired by the generation pipeline.
func WithHooks(hooks domain.GenerationHooks) Option {
	return func(m *Model) {
		m.hooks = hooks
	}
}

// WithDefaultBackmapper registers fn under the reserved default name during
// construction. Combining it with another default registration makes New
// fail, exactly as a second SetDefaultBackmapper call would.
func WithDefaultBackmapper(fn backmap.Func) Option {
	return func(m *Model) {
		m.pending = append(m.pending, pendingDefault{fn: fn})
	}
}

// WithDefaultBackmapperRef registers a catalog-built backmapper under the
// reserved default name during construction. Unlike WithDefaultBackmapper,
// the entry carries its catalog reference and therefore survives
// serialization.
func WithDefaultBackmapperRef(kind string, params map[string]any) Option {
	return func(m *Model) {
		m.pending = append(m.pending, pendingDefault{ref: &backmap.Ref{Kind: kind, Params: params}})
	}
}

// GenerateOption adjusts a single generation run.
type GenerateOption func(*generateConfig)

type generateConfig struct {
	name     string
	disabled bool
	params   map[string]any
}

// WithBackmapper selects the named backmapper for this run instead of the
// default entry.
func WithBackmapper(name string) GenerateOption {
	return func(c *generateConfig) {
		c.name = name
		c.disabled = false
	}
}

// WithoutBackmapping disables backmapping for this run; raw trajectories
// reach the consumer unchanged and no default entry is required.
func WithoutBackmapping() GenerateOption {
	return func(c *generateConfig) {
		c.disabled = true
	}
}

// WithParams merges params into the request forwarded to the dynamics
// implementation. The core does not interpret them.
func WithParams(params map[string]any) GenerateOption {
	return func(c *generateConfig) {
		for key, value := range params {
			c.setParam(key, value)
		}
	}
}

// WithParam sets a single request parameter.
func WithParam(key string, value any) GenerateOption {
	return func(c *generateConfig) {
		c.setParam(key, value)
	}
}

func (c *generateConfig) setParam(key string, value any) {
	if c.params == nil {
		c.params = make(map[string]any)
	}
	c.params[key] = value
}

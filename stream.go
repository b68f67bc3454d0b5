package synd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/synd-dev/synd/pkg/backmap"
	"github.com/synd-dev/synd/pkg/domain"
	"github.com/synd-dev/synd/pkg/ports"
)

// Trajectories wraps already-computed trajectories in a Cursor. It is the
// eager counterpart for dynamics implementations that produce everything up
// front; lazy implementations return their own Cursor (or a CursorFunc).
func Trajectories(ts ...domain.Trajectory) ports.Cursor {
	return &sliceCursor{items: ts}
}

type sliceCursor struct {
	items []domain.Trajectory
	pos   int
}

func (c *sliceCursor) Next() (domain.Trajectory, error) {
	if c.pos >= len(c.items) {
		return nil, io.EOF
	}
	t := c.items[c.pos]
	c.pos++
	return t, nil
}

// CursorFunc adapts a pull function to the ports.Cursor interface.
type CursorFunc func() (domain.Trajectory, error)

// Next calls f.
func (f CursorFunc) Next() (domain.Trajectory, error) {
	return f()
}

// Stream is the lazy result of a generation run: a single-consumer pull
// iterator that advances raw generation and backmapping one trajectory at a
// time. Memory stays bounded to one trajectory in flight provided the
// underlying cursor is itself lazy.
type Stream struct {
	ctx    context.Context
	cur    ports.Cursor
	fn     backmap.Func
	name   string
	hooks  domain.GenerationHooks
	logger *slog.Logger

	runID   string
	length  float64
	states  int
	started time.Time
	index   int
	done    bool
}

// GenerateTrajectories runs the generation pipeline for the given initial
// states and returns the resulting stream.
//
// The backmapper selection is resolved before any generation happens: the
// entry named by WithBackmapper, or the "default" entry when no option is
// given. A missing selection fails immediately wrapping
// domain.ErrBackmapperNotFound; WithoutBackmapping skips resolution
// entirely. Errors from the dynamics implementation are returned as they
// are, never wrapped or retried.
func (m *Model) GenerateTrajectories(ctx context.Context, length float64, initialStates []domain.State, opts ...GenerateOption) (*Stream, error) {
	cfg := generateConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	var (
		fn   backmap.Func
		name string
	)
	if !cfg.disabled {
		name = cfg.name
		if name == "" {
			name = backmap.Default
		}
		var err error
		fn, err = m.backmappers.Get(name)
		if err != nil {
			return nil, err
		}
	}

	req := domain.Request{
		Length:        length,
		InitialStates: append([]domain.State(nil), initialStates...),
		Params:        cfg.params,
	}

	cur, err := m.dyn.GenerateUnmapped(ctx, req)
	if err != nil {
		return nil, err
	}
	if cur == nil {
		return nil, fmt.Errorf("dynamics returned a nil cursor")
	}

	runID := uuid.NewString()
	started := time.Now()

	if m.hooks.OnGenerationStart != nil {
		m.hooks.OnGenerationStart(ctx, &domain.GenerationEvent{
			Timestamp:  started,
			RunID:      runID,
			Length:     length,
			States:     len(req.InitialStates),
			Backmapper: name,
		})
	}
	m.logger.Debug("generation started",
		"run_id", runID,
		"length", length,
		"states", len(req.InitialStates),
		"backmapper", name)

	return &Stream{
		ctx:     ctx,
		cur:     cur,
		fn:      fn,
		name:    name,
		hooks:   m.hooks,
		logger:  m.logger,
		runID:   runID,
		length:  length,
		states:  len(req.InitialStates),
		started: started,
	}, nil
}

// GenerateTrajectory is the single-state convenience form: it generates for
// exactly one initial state and returns the first trajectory. When the
// dynamics yields nothing the stream's io.EOF propagates.
func (m *Model) GenerateTrajectory(ctx context.Context, length float64, initialState domain.State, opts ...GenerateOption) (domain.Trajectory, error) {
	stream, err := m.GenerateTrajectories(ctx, length, []domain.State{initialState}, opts...)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	return stream.Next()
}

// RunID returns the correlation ID of this generation run. It matches the
// RunID carried by the run's hook events.
func (s *Stream) RunID() string {
	return s.runID
}

// Next returns the next mapped trajectory. It returns io.EOF once the run is
// exhausted, ctx.Err() if the generation context was canceled, and otherwise
// propagates dynamics and backmapper failures unchanged. After any error the
// stream behaves exhausted.
func (s *Stream) Next() (domain.Trajectory, error) {
	if s.done {
		return nil, io.EOF
	}

	select {
	case <-s.ctx.Done():
		err := s.ctx.Err()
		s.finish(err)
		return nil, err
	default:
	}

	pullStart := time.Now()

	raw, err := s.cur.Next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			s.finish(nil)
			return nil, io.EOF
		}
		s.finish(err)
		return nil, err
	}

	traj := raw
	if s.fn != nil {
		traj, err = s.fn(raw)
		if err != nil {
			s.finish(err)
			return nil, err
		}
	}

	if s.hooks.OnTrajectory != nil {
		s.hooks.OnTrajectory(s.ctx, &domain.TrajectoryEvent{
			Timestamp:  time.Now(),
			RunID:      s.runID,
			Index:      s.index,
			Backmapper: s.name,
			Duration:   time.Since(pullStart),
		})
	}
	s.index++
	return traj, nil
}

// Collect drains the stream into a slice. Generation is still single-pass;
// Collect simply pulls until io.EOF. On failure it returns the trajectories
// yielded so far alongside the error.
func (s *Stream) Collect() ([]domain.Trajectory, error) {
	var out []domain.Trajectory
	for {
		traj, err := s.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return out, err
		}
		out = append(out, traj)
	}
}

// Close marks the stream exhausted and releases the underlying cursor if it
// implements io.Closer. Closing an abandoned stream still fires the end
// hook, so hook-based accounting balances even for partial consumption.
// Close is idempotent.
func (s *Stream) Close() error {
	s.finish(nil)
	if c, ok := s.cur.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// finish ends the run exactly once: it marks the stream exhausted, fires the
// end hook, and logs the outcome.
func (s *Stream) finish(err error) {
	if s.done {
		return
	}
	s.done = true

	if s.hooks.OnGenerationEnd != nil {
		ev := &domain.GenerationEvent{
			Timestamp:    time.Now(),
			RunID:        s.runID,
			Length:       s.length,
			States:       s.states,
			Backmapper:   s.name,
			Trajectories: s.index,
			Duration:     time.Since(s.started),
		}
		if err != nil {
			ev.Err = err.Error()
		}
		s.hooks.OnGenerationEnd(s.ctx, ev)
	}

	if err != nil {
		s.logger.Debug("generation failed",
			"run_id", s.runID,
			"trajectories", s.index,
			"err", err)
		return
	}
	s.logger.Debug("generation finished",
		"run_id", s.runID,
		"trajectories", s.index,
		"duration", time.Since(s.started))
}

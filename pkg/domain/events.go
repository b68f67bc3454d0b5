package domain

import (
	"context"
	"time"
)

// GenerationEvent describes one generation run as a whole. Start events
// carry the request shape; end events additionally carry the yielded count,
// the wall-clock duration, and the error message if the run failed.
type GenerationEvent struct {
	Timestamp    time.Time     `json:"timestamp"`
	RunID        string        `json:"run_id"`
	Length       float64       `json:"length"`
	States       int           `json:"states"`
	Backmapper   string        `json:"backmapper,omitempty"`
	Trajectories int           `json:"trajectories,omitempty"`
	Duration     time.Duration `json:"duration,omitempty"`
	Err          string        `json:"err,omitempty"`
}

// TrajectoryEvent describes one yielded trajectory.
type TrajectoryEvent struct {
	Timestamp  time.Time     `json:"timestamp"`
	RunID      string        `json:"run_id"`
	Index      int           `json:"index"`
	Backmapper string        `json:"backmapper,omitempty"`
	Duration   time.Duration `json:"duration"`
}

// GenerationHooks defines callbacks for pipeline observability. All fields
// are optional. Hooks run synchronously on the consumer's goroutine, in
// yield order; the pipeline never interprets anything they do.
type GenerationHooks struct {
	OnGenerationStart func(context.Context, *GenerationEvent)
	OnTrajectory      func(context.Context, *TrajectoryEvent)
	OnGenerationEnd   func(context.Context, *GenerationEvent)
}

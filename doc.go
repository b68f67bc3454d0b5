/*
Package synd is an abstraction layer for generative dynamical models that
produce synthetic state trajectories.

It separates what a model generates (the Dynamics implementation, written by
you) from how trajectories reach the caller (backmapper resolution, lazy
streaming, persistence — the Model harness, provided here).

# Concept

A concrete model implements ports.Dynamics: given initial states and a target
length, it returns a cursor over raw trajectories in whatever internal
representation the model uses. Wrapping it in a Model adds the shared
pipeline. Named backmappers translate raw trajectories into caller-facing
representations, with a reserved "default" entry applied unless the caller
selects otherwise. Generation is pull-driven, so a single trajectory is in
flight at a time. Every model serializes to an opaque binary payload and can
be restored later, on its own or through a pluggable snapshot store. This
hexagonal split keeps the core free of any concrete dynamics semantics:
integration schemes, sampling, and state layout all belong to the Dynamics
implementation.

# Key Features

  - Single extension point: implement one method, inherit the whole pipeline.
  - Named backmappers: explicit add/remove, no silent overwrite, per-call
    override or opt-out.
  - Lazy streaming: raw generation and backmapping advance only when the
    consumer pulls.
  - Generic persistence: Serialize/Deserialize with a type-checked restore,
    atomic file helpers, and snapshot stores (memory, file, redis).

# Usage

Implement Dynamics, wrap it, generate:

	package main

	import (
		"context"
		"errors"
		"fmt"
		"io"
		"log"
		"math/rand"

		"github.com/synd-dev/synd"
		"github.com/synd-dev/synd/pkg/backmap"
		"github.com/synd-dev/synd/pkg/domain"
		"github.com/synd-dev/synd/pkg/ports"
	)

	// RandomWalk generates one-dimensional Gaussian random walks.
	type RandomWalk struct {
		Seed int64
	}

	func (w *RandomWalk) GenerateUnmapped(ctx context.Context, req domain.Request) (ports.Cursor, error) {
		rng := rand.New(rand.NewSource(w.Seed))
		out := make([]domain.Trajectory, 0, len(req.InitialStates))
		for _, init := range req.InitialStates {
			x := init.(float64)
			traj := make([]float64, 0, int(req.Length))
			for i := 0; i < int(req.Length); i++ {
				traj = append(traj, x)
				x += rng.NormFloat64()
			}
			out = append(out, traj)
		}
		return synd.Trajectories(out...), nil
	}

	func main() {
		model, err := synd.New(&RandomWalk{Seed: 7},
			synd.WithDefaultBackmapperRef(backmap.KindIdentity, nil),
		)
		if err != nil {
			log.Fatal(err)
		}

		stream, err := model.GenerateTrajectories(context.Background(), 100, []domain.State{0.0, 1.0})
		if err != nil {
			log.Fatal(err)
		}
		defer stream.Close()

		for {
			traj, err := stream.Next()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				log.Fatal(err)
			}
			fmt.Println(traj)
		}
	}

Backmappers registered by catalog reference (AddBackmapperRef, or the
WithDefaultBackmapperRef option) survive Serialize/Deserialize round trips;
bare functions added with AddBackmapper work for generation but make the
model unserializable, exactly as anonymous functions cannot be persisted.
*/
package synd

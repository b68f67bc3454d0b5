/*
Package domain contains the core domain types for synd models.

It defines the vocabulary of the generation pipeline — states, trajectories,
generation requests — together with the lifecycle events emitted while
trajectories are produced and the sentinel errors shared by every package.
This package is kept pure and free of I/O, following Hexagonal Architecture
principles: nothing here touches files, sockets, or clocks beyond stamping
event times.

# Key Entities

  - State / Trajectory: opaque payloads owned by the concrete model. The
    core orders and counts them but never inspects their structure.
  - Request: the parameters of one generation run (length, initial states,
    open keyword parameters forwarded to the model).
  - GenerationHooks: optional observability callbacks fired by the pipeline.
  - Snapshot: a serialized model payload plus descriptive metadata, the unit
    handled by snapshot stores.
*/
package domain

// Copyright 2024 The Evochora Authors
// This file is part of Evochora.
//
// Evochora is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Evochora is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Evochora. If not, see <http://www.gnu.org/licenses/>.

// Package adapters declares the trait-level contracts the runtime
// exposes to its external collaborators — storage, telemetry, and label
// resolution — without implementing any of them. These are "external
// adapters": the data-pipeline (storage backends, message brokers, HTTP
// visualizer, video rendering) and the compiler front-end that resolves
// human-readable labels into LABELREF hashes are all out of scope for
// the core; this package is the seam they plug into.
//
// The shape mirrors internal/probeapi's Backend interface: a handful of
// narrow, state-access-only methods a concrete implementation outside
// this module satisfies, with no method here ever mutating simulation
// state — every adapter is a passive observer or resolver, never a
// second writer of organism/grid state.
package adapters

import (
	"context"

	"github.com/evochora/evochora/env"
	"github.com/evochora/evochora/molecule"
	"github.com/evochora/evochora/sim"
)

// StateStore persists and retrieves full simulation checkpoints, per
// the save/load contract. A concrete implementation might
// write to local disk, object storage, or a database; the core only
// ever calls through this interface.
type StateStore interface {
	// SaveCheckpoint persists a simulation's serialized state under tick,
	// as produced by (*sim.Simulation).SaveState.
	SaveCheckpoint(ctx context.Context, tick uint64, data []byte) error

	// LoadCheckpoint retrieves a previously saved checkpoint for tick, or
	// the most recent one if tick is 0 and latest is true.
	LoadCheckpoint(ctx context.Context, tick uint64, latest bool) ([]byte, error)

	// ListCheckpoints returns the tick numbers available to load, in
	// ascending order.
	ListCheckpoints(ctx context.Context) ([]uint64, error)
}

// Telemetry receives per-tick observability events. Implementations
// might forward to a metrics backend, a message broker, or an HTTP
// visualizer's event stream — the core never blocks on delivery
// succeeding, mirroring go-probeum's event.Subscription channels, which
// are also fire-and-forget from the producer's side.
type Telemetry interface {
	// TickCompleted is called once per call to (*sim.Simulation).Tick,
	// after the tick counter has advanced.
	TickCompleted(tick uint64, population int, changedCells int)

	// OrganismBorn is called for every child spawned during a tick.
	OrganismBorn(child sim.OrganismSnapshot)

	// OrganismDied is called for every organism whose ER reached zero
	// during a tick.
	OrganismDied(victim sim.OrganismSnapshot)
}

// LabelResolver maps between the human-readable labels a compiler
// front-end assigns to genome locations and the 19-bit hashes stored in
// the value field of LABEL/LABELREF molecules. Resolution in the other
// direction (hash back to name) is best-effort, since multiple source
// labels can in principle collide to the same hash.
type LabelResolver interface {
	// Hash computes the LABEL/LABELREF payload for a source-level label
	// name. Implementations are expected to be deterministic and
	// collision-avoiding within a single compiled program.
	Hash(name string) uint32

	// Name returns the source label a hash was assigned to, if the
	// resolver was built from a source program that recorded one.
	Name(hash uint32) (string, bool)
}

// GridView is the minimal read-only surface a telemetry or visualization
// adapter needs to render the environment, kept separate from
// sim.Simulation's own richer read interface so adapters only depend on
// the coordinate and shape types, not on the simulation package.
type GridView interface {
	Shape() []int
	Toroidal() bool
	Cell(flat int) (molecule.Word, uint32)
	CoordToFlat(c env.Coord) int
}

var _ GridView = (*env.Grid)(nil)

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

// Package sim ties together the environment grid, the organism list, and
// the execution engine into the tick scheduler: deterministic per-tick
// insertion-order execution, death-handler dispatch, post-birth plugin
// dispatch, and the external read/persistence interfaces. Simulation
// implements engine.Hooks itself rather than delegating to a separate
// adapter, since lineage resolution and organism creation both need the
// same organism list this package already owns.
package sim

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/evochora/evochora/engine"
	"github.com/evochora/evochora/env"
	"github.com/evochora/evochora/molecule"
	"github.com/evochora/evochora/organism"
	"github.com/evochora/evochora/plugins"
	"github.com/evochora/evochora/prng"
	"github.com/evochora/evochora/thermo"
	"github.com/evochora/evochora/xlog"
)

// FatalError wraps an invariant violation that halts the simulation,
// distinct from the per-instruction failures Step recovers from on its
// own.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string { return "sim: fatal: " + e.Err.Error() }
func (e *FatalError) Unwrap() error { return e.Err }

// OrganismSnapshot is the read-only view of one organism exposed through
// the external read interface.
type OrganismSnapshot struct {
	ID       uint32
	ParentID uint32
	Alive    bool
	IP       env.Coord
	DV       []int32
	Energy   int64
	Entropy  int64
}

// Simulation owns one environment, one organism population, and the
// plugins that mutate both around the edges of a tick.
type Simulation struct {
	Grid      *env.Grid
	Rng       *prng.Provider
	Policy    *thermo.Policy
	Banks     organism.BankSizes
	Plugins   []plugins.Plugin
	Organisms []*organism.Organism

	// RunID identifies one Simulation's lifetime across log lines, the
	// way node.Config carries a generated node
	// identity through go-probeum's logs. It plays no role in simulation
	// semantics and is never round-tripped by SaveState/LoadState: a
	// restored run gets its own fresh identity.
	RunID uuid.UUID

	nextID      uint32
	currentTick uint64
	tickZeroRan bool

	bornThisTick []*organism.Organism
}

// New builds an empty Simulation ready to have organisms spawned into it.
func New(g *env.Grid, rng *prng.Provider, policy *thermo.Policy, banks organism.BankSizes, plugs []plugins.Plugin) *Simulation {
	return &Simulation{
		Grid:    g,
		Rng:     rng,
		Policy:  policy,
		Banks:   banks,
		Plugins: plugs,
		RunID:   uuid.New(),
	}
}

// Seed creates the first organism directly, with no parent and without
// Spawn's born-this-tick recording (so no post-birth plugin runs on it) —
// used once at setup time before any tick runs.
func (s *Simulation) Seed(pos env.Coord, dv []int32, energy int64) *organism.Organism {
	s.nextID++
	o := organism.New(s.nextID, 0, s.currentTick, pos, dv, energy, s.Banks)
	o.Alive = true
	s.Organisms = append(s.Organisms, o)
	return o
}

// Lineage implements engine.Hooks: orgID followed by its ancestors,
// nearest first. Dead organisms are kept in Organisms (never deleted) so
// lineage resolution stays correct after a parent's death.
func (s *Simulation) Lineage(orgID uint32) []uint32 {
	byID := make(map[uint32]*organism.Organism, len(s.Organisms))
	for _, o := range s.Organisms {
		byID[o.ID] = o
	}
	var chain []uint32
	cur, ok := byID[orgID]
	for ok {
		chain = append(chain, cur.ID)
		if cur.ParentID == 0 {
			break
		}
		cur, ok = byID[cur.ParentID]
	}
	return chain
}

// Spawn implements engine.Hooks: creates and registers a new organism,
// recording it as born-this-tick for post-birth plugin dispatch.
func (s *Simulation) Spawn(parent *organism.Organism, pos env.Coord, dv []int32, energy int64) (*organism.Organism, error) {
	s.nextID++
	child := organism.New(s.nextID, parent.ID, s.currentTick, pos, dv, energy, s.Banks)
	s.Organisms = append(s.Organisms, child)
	s.bornThisTick = append(s.bornThisTick, child)
	return child, nil
}

var _ engine.Hooks = (*Simulation)(nil)

// Tick advances the simulation by exactly one step:
// run tick-0 plugins once if this is the first call, execute every living
// organism in insertion order, dispatch death handlers for organisms that
// died this tick, dispatch post-birth plugins for organisms born this
// tick in registration order, then advance current_tick.
func (s *Simulation) Tick() error {
	if s.currentTick == 0 && !s.tickZeroRan {
		for _, p := range s.Plugins {
			if tz, ok := p.(plugins.TickZeroPlugin); ok {
				if err := tz.OnTickZero(s.Grid, s.Rng); err != nil {
					return &FatalError{Err: fmt.Errorf("plugin %s: %w", p.Name(), err)}
				}
			}
		}
		s.tickZeroRan = true
	}

	s.bornThisTick = s.bornThisTick[:0]
	var died []*organism.Organism
	for _, o := range s.Organisms {
		if !o.Alive {
			continue
		}
		engine.Step(o, s.Grid, s.Policy, s.Rng, s, s.currentTick)
		if o.ER <= 0 {
			o.Alive = false
			died = append(died, o)
		}
	}

	for _, victim := range died {
		for _, p := range s.Plugins {
			if dp, ok := p.(plugins.DeathPlugin); ok {
				if err := dp.OnDeath(s.Grid, victim); err != nil {
					xlog.Error("death plugin failed", "run_id", s.RunID, "tick", s.currentTick, "plugin", p.Name(), "organism", victim.ID, "err", err)
				}
			}
		}
	}

	for _, child := range s.bornThisTick {
		for _, p := range s.Plugins {
			if pb, ok := p.(plugins.PostBirthPlugin); ok {
				if err := pb.OnPostBirth(s.Grid, child, s.Rng); err != nil {
					xlog.Error("post-birth plugin failed", "run_id", s.RunID, "tick", s.currentTick, "plugin", p.Name(), "organism", child.ID, "err", err)
				}
			}
		}
	}

	s.currentTick++
	return nil
}

// CurrentTick returns the number of ticks executed so far.
func (s *Simulation) CurrentTick() uint64 { return s.currentTick }

// SnapshotOrganisms returns a read-only view of every organism, living or
// dead, in insertion order.
func (s *Simulation) SnapshotOrganisms() []OrganismSnapshot {
	out := make([]OrganismSnapshot, len(s.Organisms))
	for i, o := range s.Organisms {
		out[i] = OrganismSnapshot{
			ID:       o.ID,
			ParentID: o.ParentID,
			Alive:    o.Alive,
			IP:       o.IP.Clone(),
			DV:       append([]int32(nil), o.DV...),
			Energy:   o.ER,
			Entropy:  o.SR,
		}
	}
	return out
}

// EnvShape returns the grid's extent.
func (s *Simulation) EnvShape() []int { return s.Grid.Shape() }

// IsToroidal reports the grid's topology.
func (s *Simulation) IsToroidal() bool { return s.Grid.Toroidal() }

// ChangedCellsSinceLastReset returns every (flat_index, molecule_word,
// owner) triple mutated since the last ResetChangeTracking call.
func (s *Simulation) ChangedCellsSinceLastReset() []ChangedCell {
	indices := s.Grid.ChangedIndices()
	out := make([]ChangedCell, len(indices))
	for i, flat := range indices {
		m, owner := s.Grid.Cell(flat)
		out[i] = ChangedCell{FlatIndex: flat, Molecule: m, Owner: owner}
	}
	return out
}

// ResetChangeTracking clears the grid's change-tracking bitset.
func (s *Simulation) ResetChangeTracking() { s.Grid.ResetChangeTracking() }

// GetCell returns the (molecule, owner) pair at a flat index.
func (s *Simulation) GetCell(flat int) (molecule.Word, uint32) {
	return s.Grid.Cell(flat)
}

// ChangedCell is one entry of ChangedCellsSinceLastReset's result.
type ChangedCell struct {
	FlatIndex int
	Molecule  molecule.Word
	Owner     uint32
}

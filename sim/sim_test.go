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

package sim

import (
	"testing"

	"github.com/evochora/evochora/env"
	"github.com/evochora/evochora/isa"
	"github.com/evochora/evochora/molecule"
	"github.com/evochora/evochora/organism"
	"github.com/evochora/evochora/plugins"
	"github.com/evochora/evochora/prng"
	"github.com/evochora/evochora/thermo"
)

func newTestSim(plugs []plugins.Plugin) *Simulation {
	g := env.New([]int{16, 16}, true)
	rng := prng.New(1)
	policy := thermo.Default()
	banks := organism.BankSizes{NumDR: 4, NumPR: 2, NumFPR: 2, NumLR: 2, NumDPs: 1}
	return New(g, rng, policy, banks, plugs)
}

func writeNOP(t *testing.T, g *env.Grid, c env.Coord, owner uint32) {
	t.Helper()
	def, ok := isa.LookupName("NOP")
	if !ok {
		t.Fatal("NOP not registered")
	}
	if err := g.SetMoleculeOwned(molecule.Pack(molecule.Code, def.ID.Pack(), 0), owner, c); err != nil {
		t.Fatal(err)
	}
}

func TestTickExecutesOrganismsInInsertionOrder(t *testing.T) {
	s := newTestSim(nil)
	a := s.Seed(env.Coord{0, 0}, []int32{1, 0}, 1000)
	b := s.Seed(env.Coord{5, 5}, []int32{1, 0}, 1000)
	writeNOP(t, s.Grid, a.IP, a.ID)
	writeNOP(t, s.Grid, b.IP, b.ID)

	if s.Organisms[0].ID != a.ID || s.Organisms[1].ID != b.ID {
		t.Fatalf("insertion order not preserved: %v", s.Organisms)
	}
	if err := s.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if s.Organisms[0].Age != 1 || s.Organisms[1].Age != 1 {
		t.Fatalf("expected both organisms to execute once: %+v %+v", s.Organisms[0], s.Organisms[1])
	}
}

func TestTickAdvancesCurrentTick(t *testing.T) {
	s := newTestSim(nil)
	o := s.Seed(env.Coord{0, 0}, []int32{1, 0}, 1000)
	writeNOP(t, s.Grid, o.IP, o.ID)
	if s.CurrentTick() != 0 {
		t.Fatalf("current tick = %d, want 0", s.CurrentTick())
	}
	if err := s.Tick(); err != nil {
		t.Fatal(err)
	}
	if s.CurrentTick() != 1 {
		t.Fatalf("current tick = %d, want 1", s.CurrentTick())
	}
}

func TestTickRunsDeathHandlerWhenEnergyExhausted(t *testing.T) {
	decay := &plugins.DecayOnDeath{Config: plugins.DecayOnDeathConfig{Mode: "clear"}}
	s := newTestSim([]plugins.Plugin{decay})
	o := s.Seed(env.Coord{0, 0}, []int32{1, 0}, 0)
	writeNOP(t, s.Grid, o.IP, o.ID)

	if err := s.Tick(); err != nil {
		t.Fatal(err)
	}
	if o.Alive {
		t.Fatal("expected organism to die once ER reaches 0")
	}
	m, err := s.Grid.GetMolecule(env.Coord{0, 0})
	if err != nil {
		t.Fatal(err)
	}
	if !m.IsEmpty() {
		t.Fatalf("expected decay-on-death to clear owned cell, got %v", m)
	}
}

func TestLineageWalksAncestorChainThroughDeadParents(t *testing.T) {
	s := newTestSim(nil)
	grandparent := s.Seed(env.Coord{0, 0}, []int32{1, 0}, 100)
	parent, err := s.Spawn(grandparent, env.Coord{1, 0}, []int32{1, 0}, 50)
	if err != nil {
		t.Fatal(err)
	}
	child, err := s.Spawn(parent, env.Coord{2, 0}, []int32{1, 0}, 25)
	if err != nil {
		t.Fatal(err)
	}
	grandparent.Alive = false

	chain := s.Lineage(child.ID)
	if len(chain) != 3 || chain[0] != child.ID || chain[1] != parent.ID || chain[2] != grandparent.ID {
		t.Fatalf("lineage = %v, want [child parent grandparent]", chain)
	}
}

func TestSaveLoadStateRoundTrip(t *testing.T) {
	s := newTestSim(plugins.BuildDefaultSet(plugins.DefaultConfig(), organism.BankSizes{NumDR: 4, NumPR: 2, NumFPR: 2, NumLR: 2, NumDPs: 1}))
	o := s.Seed(env.Coord{3, 3}, []int32{1, 0}, 777)
	writeNOP(t, s.Grid, o.IP, o.ID)
	if err := s.Tick(); err != nil {
		t.Fatal(err)
	}

	data, err := s.SaveState()
	if err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	restored := newTestSim(plugins.BuildDefaultSet(plugins.DefaultConfig(), organism.BankSizes{NumDR: 4, NumPR: 2, NumFPR: 2, NumLR: 2, NumDPs: 1}))
	if err := restored.LoadState(data); err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if restored.CurrentTick() != s.CurrentTick() {
		t.Fatalf("tick mismatch: %d vs %d", restored.CurrentTick(), s.CurrentTick())
	}
	if len(restored.Organisms) != 1 || restored.Organisms[0].ID != o.ID {
		t.Fatalf("organism list mismatch: %+v", restored.Organisms)
	}
	if restored.Organisms[0].ER != o.ER {
		t.Fatalf("ER mismatch: %d vs %d", restored.Organisms[0].ER, o.ER)
	}
}

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

package plugins

import (
	"math/bits"
	"testing"

	"github.com/evochora/evochora/env"
	"github.com/evochora/evochora/molecule"
	"github.com/evochora/evochora/organism"
	"github.com/evochora/evochora/prng"
)

func newFixture() (*env.Grid, *organism.Organism) {
	g := env.New([]int{16, 16}, true)
	o := organism.New(7, 0, 0, env.Coord{8, 8}, []int32{1, 0}, 1000,
		organism.BankSizes{NumDR: 4, NumPR: 2, NumFPR: 2, NumLR: 2, NumDPs: 1})
	return g, o
}

func TestLabelRewritePreservesHammingDistance(t *testing.T) {
	g, o := newFixture()
	g.SetMoleculeOwned(molecule.Pack(molecule.Label, 0x55555&int32(molecule.ValueMask), 0), o.ID, env.Coord{8, 8})
	g.SetMoleculeOwned(molecule.Pack(molecule.LabelRef, 0x55554&int32(molecule.ValueMask), 0), o.ID, env.Coord{8, 9})

	rng := prng.New(1)
	p := &LabelRewritePlugin{Config: LabelRewriteConfig{Rate: 1}}
	if err := p.OnPostBirth(g, o, rng); err != nil {
		t.Fatalf("OnPostBirth: %v", err)
	}

	label, _ := g.GetMolecule(env.Coord{8, 8})
	ref, _ := g.GetMolecule(env.Coord{8, 9})
	if label.RawValue() == 0x55555 && ref.RawValue() == 0x55554 {
		t.Fatal("expected values to change")
	}
	dist := bits.OnesCount32(label.RawValue() ^ ref.RawValue())
	if dist != 1 {
		t.Fatalf("hamming distance = %d, want 1", dist)
	}
}

func TestGeneSubstitutionRegisterStaysInBank(t *testing.T) {
	g, o := newFixture()
	banks := organism.BankSizes{NumDR: 4, NumPR: 2, NumFPR: 2, NumLR: 2, NumDPs: 1}
	// PR bank spans flat ids [4,5]; place a REGISTER molecule at its upper edge.
	g.SetMoleculeOwned(molecule.Pack(molecule.Register, 5, 0), o.ID, env.Coord{8, 8})

	p := &GeneSubstitutionPlugin{
		Config: GeneSubstitutionConfig{Rate: 1, WeightRegister: 1},
		Banks:  banks,
	}
	rng := prng.New(3)
	for i := 0; i < 20; i++ {
		if err := p.OnPostBirth(g, o, rng); err != nil {
			t.Fatalf("OnPostBirth: %v", err)
		}
		m, _ := g.GetMolecule(env.Coord{8, 8})
		if m.ToScalar() < 4 || m.ToScalar() > 5 {
			t.Fatalf("register value escaped PR bank: %d", m.ToScalar())
		}
	}
}

func TestSeedEnergyCreatorIdempotentAtTarget(t *testing.T) {
	g := env.New([]int{8, 8}, true)
	p := &SeedEnergyCreator{Config: SeedEnergyConfig{Percentage: 0.5, Amount: 10, AmountVariance: 0}}
	rng := prng.New(5)
	if err := p.OnTickZero(g, rng); err != nil {
		t.Fatalf("first OnTickZero: %v", err)
	}
	count := func() int {
		n := 0
		for i := 0; i < g.TotalCells(); i++ {
			m, _ := g.Cell(i)
			if m.Type() == molecule.Energy {
				n++
			}
		}
		return n
	}
	first := count()
	if err := p.OnTickZero(g, rng); err != nil {
		t.Fatalf("second OnTickZero: %v", err)
	}
	if count() != first {
		t.Fatalf("re-running at target changed count: %d -> %d", first, count())
	}
}

func TestDecayOnDeathConvertsOwnedCellsToEnergy(t *testing.T) {
	g, o := newFixture()
	g.SetMoleculeOwned(molecule.Pack(molecule.Code, 0, 0), o.ID, env.Coord{8, 8})
	g.SetMoleculeOwned(molecule.Pack(molecule.Code, 0, 0), o.ID, env.Coord{8, 9})
	o.ER = 100

	p := &DecayOnDeath{Config: DecayOnDeathConfig{Mode: "energy"}}
	if err := p.OnDeath(g, o); err != nil {
		t.Fatalf("OnDeath: %v", err)
	}
	for _, c := range []env.Coord{{8, 8}, {8, 9}} {
		m, _ := g.GetMolecule(c)
		if m.Type() != molecule.Energy {
			t.Fatalf("cell %v type = %v, want ENERGY", c, m.Type())
		}
	}
}

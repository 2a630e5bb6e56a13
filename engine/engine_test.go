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

package engine

import (
	"testing"

	"github.com/evochora/evochora/env"
	"github.com/evochora/evochora/isa"
	"github.com/evochora/evochora/molecule"
	"github.com/evochora/evochora/organism"
	"github.com/evochora/evochora/prng"
	"github.com/evochora/evochora/thermo"
)

// stubHooks satisfies Hooks for tests that never exercise FORK/JMP label
// resolution.
type stubHooks struct{}

func (stubHooks) Lineage(orgID uint32) []uint32 { return []uint32{orgID} }
func (stubHooks) Spawn(parent *organism.Organism, pos env.Coord, dv []int32, energy int64) (*organism.Organism, error) {
	return organism.New(99, parent.ID, 0, pos, dv, energy, organism.BankSizes{NumDR: 4, NumPR: 4, NumFPR: 4, NumLR: 2, NumDPs: 2}), nil
}

func TestHandlersCoverEveryOpcode(t *testing.T) {
	for _, def := range isa.All() {
		if _, ok := handlers[def.ID]; !ok {
			t.Errorf("no handler registered for %s (%+v)", def.Name, def.ID)
		}
	}
}

func newTestFixture() (*organism.Organism, *env.Grid) {
	g := env.New([]int{16, 16}, false)
	o := organism.New(1, 0, 0, env.Coord{0, 0}, []int32{1, 0}, 1000, organism.BankSizes{NumDR: 4, NumPR: 4, NumFPR: 4, NumLR: 2, NumDPs: 2})
	return o, g
}

func writeOpcode(t *testing.T, g *env.Grid, c env.Coord, id isa.ID) env.Coord {
	t.Helper()
	if err := g.SetMolecule(molecule.Pack(molecule.Code, id.Pack(), 0), c); err != nil {
		t.Fatalf("SetMolecule opcode: %v", err)
	}
	next, err := g.Step(c, []int32{1, 0})
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	return next
}

func writeImmediate(t *testing.T, g *env.Grid, c env.Coord, val int32) env.Coord {
	t.Helper()
	if err := g.SetMolecule(molecule.Pack(molecule.Data, val, 0), c); err != nil {
		t.Fatalf("SetMolecule immediate: %v", err)
	}
	next, err := g.Step(c, []int32{1, 0})
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	return next
}

func TestStepAddImmediateWritesBack(t *testing.T) {
	o, g := newTestFixture()
	policy := thermo.Default()
	rng := prng.New(1)

	def, ok := isa.LookupName("ADDI")
	if !ok {
		t.Fatal("ADDI not registered")
	}
	o.DR[0] = organism.Value{Scalar: uint32(molecule.Pack(molecule.Data, 7, 0))}

	c := writeOpcode(t, g, o.IP, def.ID)
	c = writeImmediate(t, g, c, 0) // register operand: DR0
	_ = writeImmediate(t, g, c, 5) // immediate operand: 5

	out := Step(o, g, policy, rng, stubHooks{}, 0)
	if out.Failed {
		t.Fatalf("ADDI failed: %s", out.Reason)
	}
	got := molecule.Word(o.DR[0].Scalar).ToScalar()
	if got != 12 {
		t.Fatalf("DR0 = %d, want 12", got)
	}
}

func TestStepHashIsDeterministic(t *testing.T) {
	def, ok := isa.LookupName("HASH")
	if !ok {
		t.Fatal("HASH not registered")
	}

	run := func() int32 {
		o, g := newTestFixture()
		policy := thermo.Default()
		rng := prng.New(1)
		o.DR[1] = organism.Value{Scalar: uint32(molecule.Pack(molecule.Data, 42, 0))}

		c := writeOpcode(t, g, o.IP, def.ID)
		c = writeImmediate(t, g, c, 0) // dest DR0
		_ = writeImmediate(t, g, c, 1) // source DR1

		out := Step(o, g, policy, rng, stubHooks{}, 0)
		if out.Failed {
			t.Fatalf("HASH failed: %s", out.Reason)
		}
		return molecule.Word(o.DR[0].Scalar).ToScalar()
	}

	a, b := run(), run()
	if a != b {
		t.Fatalf("HASH not deterministic: %d vs %d", a, b)
	}
}

func TestStepConditionalFalseSkipsNextInstruction(t *testing.T) {
	o, g := newTestFixture()
	policy := thermo.Default()
	rng := prng.New(1)

	ifDef, _ := isa.LookupName("IFI")
	o.DR[0] = organism.Value{Scalar: uint32(molecule.Pack(molecule.Data, 1, 0))}
	c := writeOpcode(t, g, o.IP, ifDef.ID)
	c = writeImmediate(t, g, c, 0) // DR0
	c = writeImmediate(t, g, c, 99) // compares DR0(1) == 99 -> false

	addDef, _ := isa.LookupName("ADDI")
	c = writeOpcode(t, g, c, addDef.ID)
	c = writeImmediate(t, g, c, 0)
	afterADDI := writeImmediate(t, g, c, 5)

	before := molecule.Word(o.DR[0].Scalar).ToScalar()
	out := Step(o, g, policy, rng, stubHooks{}, 0)
	if out.Failed || !out.IsBranch || out.BranchTrue {
		t.Fatalf("expected a false branch outcome, got %+v", out)
	}
	if !o.IP.Equal(afterADDI) {
		t.Fatalf("IP after skip = %v, want past ADDI at %v", o.IP, afterADDI)
	}
	after := molecule.Word(o.DR[0].Scalar).ToScalar()
	if after != before {
		t.Fatalf("ADDI after a false IF should have been skipped, not executed: DR0 went from %d to %d", before, after)
	}
}

func TestStepPokeWritesOwnedCell(t *testing.T) {
	o, g := newTestFixture()
	policy := thermo.Default()
	rng := prng.New(1)

	pokeDef, _ := isa.LookupName("POKE")
	o.DR[0] = organism.Value{Scalar: uint32(molecule.Pack(molecule.Data, 77, 0))}
	c := writeOpcode(t, g, o.IP, pokeDef.ID)
	c = writeImmediate(t, g, c, 0) // source register DR0
	// vector offset (+1, 0), then register for dest not needed for POKE
	if err := g.SetMolecule(molecule.Pack(molecule.Data, 1, 0), c); err != nil {
		t.Fatal(err)
	}
	c, _ = g.Step(c, []int32{1, 0})
	if err := g.SetMolecule(molecule.Pack(molecule.Data, 0, 0), c); err != nil {
		t.Fatal(err)
	}

	out := Step(o, g, policy, rng, stubHooks{}, 0)
	if out.Failed {
		t.Fatalf("POKE failed: %s", out.Reason)
	}
	written, err := g.GetMolecule(env.Coord{1, 0})
	if err != nil {
		t.Fatal(err)
	}
	if written.ToScalar() != 77 {
		t.Fatalf("poked cell scalar = %d, want 77", written.ToScalar())
	}
	owner, _ := g.GetOwner(env.Coord{1, 0})
	if owner != o.ID {
		t.Fatalf("poked cell owner = %d, want %d", owner, o.ID)
	}
}

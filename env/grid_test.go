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

package env

import (
	"testing"

	"github.com/evochora/evochora/molecule"
)

func TestFlatCoordRoundTrip(t *testing.T) {
	g := New([]int{4, 5, 3}, false)
	for i := 0; i < g.TotalCells(); i++ {
		c := g.FlatToCoord(i)
		if got := g.CoordToFlat(c); got != i {
			t.Fatalf("CoordToFlat(FlatToCoord(%d)) = %d, want %d (coord=%v)", i, got, i, c)
		}
	}
}

func TestToroidalWrap(t *testing.T) {
	g := New([]int{30, 20}, true)
	next, err := g.Step(Coord{29, 0}, []int32{1, 0})
	if err != nil {
		t.Fatalf("Step returned error: %v", err)
	}
	if !next.Equal(Coord{0, 0}) {
		t.Fatalf("toroidal step past boundary = %v, want {0,0}", next)
	}
}

func TestBoundedOutOfRange(t *testing.T) {
	g := New([]int{4, 4}, false)
	if _, err := g.Step(Coord{3, 3}, []int32{1, 0}); err != ErrOutOfBounds {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestSetMoleculeMarksChanged(t *testing.T) {
	g := New([]int{4, 4}, false)
	c := Coord{1, 2}
	if err := g.SetMoleculeOwned(molecule.Pack(molecule.Data, 7, 0), 5, c); err != nil {
		t.Fatalf("SetMoleculeOwned: %v", err)
	}
	flat := g.CoordToFlat(c)
	idx := g.ChangedIndices()
	found := false
	for _, i := range idx {
		if i == flat {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected flat index %d in changed set, got %v", flat, idx)
	}
	owner, _ := g.GetOwner(c)
	if owner != 5 {
		t.Fatalf("owner = %d, want 5", owner)
	}
}

func TestTransferOwnershipByMarker(t *testing.T) {
	g := New([]int{4, 4}, false)
	a, b, c := Coord{0, 0}, Coord{0, 1}, Coord{0, 2}
	_ = g.SetMoleculeOwned(molecule.Pack(molecule.Data, 1, 3), 10, a)
	_ = g.SetMoleculeOwned(molecule.Pack(molecule.Data, 2, 3), 10, b)
	_ = g.SetMoleculeOwned(molecule.Pack(molecule.Data, 3, 5), 10, c)

	n := g.TransferOwnership(10, 20, 3)
	if n != 2 {
		t.Fatalf("TransferOwnership returned %d, want 2", n)
	}
	for _, coord := range []Coord{a, b} {
		owner, _ := g.GetOwner(coord)
		m, _ := g.GetMolecule(coord)
		if owner != 20 || m.Marker() != 0 {
			t.Fatalf("cell %v: owner=%d marker=%d, want owner=20 marker=0", coord, owner, m.Marker())
		}
	}
	owner, _ := g.GetOwner(c)
	m, _ := g.GetMolecule(c)
	if owner != 10 || m.Marker() != 5 {
		t.Fatalf("untouched cell %v changed: owner=%d marker=%d", c, owner, m.Marker())
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	g := New([]int{3, 3}, true)
	_ = g.SetMoleculeOwned(molecule.Pack(molecule.Data, 42, 1), 7, Coord{1, 1})
	data := g.SaveState()

	g2 := New([]int{1}, false) // deliberately different shape before load
	if err := g2.LoadState(data); err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if g2.SaveState() == nil {
		t.Fatal("nil state")
	}
	m, _ := g2.GetMolecule(Coord{1, 1})
	if m.ToScalar() != 42 {
		t.Fatalf("restored molecule scalar = %d, want 42", m.ToScalar())
	}
	owner, _ := g2.GetOwner(Coord{1, 1})
	if owner != 7 {
		t.Fatalf("restored owner = %d, want 7", owner)
	}
}

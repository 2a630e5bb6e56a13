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

// Package env implements the N-dimensional environment grid: a dense array
// of bit-packed molecules with a parallel owner-id array, toroidal or
// bounded topology, and a change-tracking bitset feeding the external
// delta-compression pipeline (an out-of-scope external collaborator; this
// package only produces the change set it consumes).
package env

import (
	"encoding/binary"
	"fmt"

	"github.com/evochora/evochora/molecule"
)

// Grid is the N-dimensional dense environment: two parallel flat arrays —
// molecules and owners — addressed by row-major strides, with an optional
// toroidal topology and a change-tracking bitset serving as the
// delta-compression hook an external snapshot/delta pipeline reads from.
type Grid struct {
	shape    []int
	strides  []int
	toroidal bool

	molecules []molecule.Word
	owners    []uint32
	changed   *changeSet

	labels *LabelIndex
}

// New builds a Grid of the given shape. Strides are row-major:
// stride[k-1] = 1, stride[i] = stride[i+1] * shape[i+1].
func New(shape []int, toroidal bool) *Grid {
	total := 1
	for _, d := range shape {
		total *= d
	}
	strides := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= shape[i]
	}
	g := &Grid{
		shape:     append([]int(nil), shape...),
		strides:   strides,
		toroidal:  toroidal,
		molecules: make([]molecule.Word, total),
		owners:    make([]uint32, total),
		changed:   newChangeSet(total),
	}
	g.labels = NewLabelIndex()
	return g
}

// Shape returns a copy of the grid's extent.
func (g *Grid) Shape() []int { return append([]int(nil), g.shape...) }

// Toroidal reports whether the grid wraps coordinates modulo their extent.
func (g *Grid) Toroidal() bool { return g.toroidal }

// TotalCells returns the product of the grid's shape.
func (g *Grid) TotalCells() int { return len(g.molecules) }

// GetMolecule returns the molecule stored at coord.
func (g *Grid) GetMolecule(coord Coord) (molecule.Word, error) {
	rc, err := g.Wrap(coord)
	if err != nil {
		return 0, err
	}
	return g.molecules[g.CoordToFlat(rc)], nil
}

// GetOwner returns the owner id stored at coord. 0 means unowned.
func (g *Grid) GetOwner(coord Coord) (uint32, error) {
	rc, err := g.Wrap(coord)
	if err != nil {
		return 0, err
	}
	return g.owners[g.CoordToFlat(rc)], nil
}

// SetMolecule writes w at coord and clears ownership of the cell.
func (g *Grid) SetMolecule(w molecule.Word, coord Coord) error {
	return g.setAt(w, 0, false, coord)
}

// SetMoleculeOwned writes w at coord and assigns owner to the cell.
func (g *Grid) SetMoleculeOwned(w molecule.Word, owner uint32, coord Coord) error {
	return g.setAt(w, owner, true, coord)
}

func (g *Grid) setAt(w molecule.Word, owner uint32, setOwner bool, coord Coord) error {
	rc, err := g.Wrap(coord)
	if err != nil {
		return err
	}
	flat := g.CoordToFlat(rc)
	g.molecules[flat] = w
	if setOwner {
		g.owners[flat] = owner
	} else {
		g.owners[flat] = 0
	}
	g.changed.set(flat)
	g.labels.invalidate()
	return nil
}

// SetOwner assigns owner to the cell at coord without touching its
// molecule.
func (g *Grid) SetOwner(owner uint32, coord Coord) error {
	rc, err := g.Wrap(coord)
	if err != nil {
		return err
	}
	flat := g.CoordToFlat(rc)
	g.owners[flat] = owner
	g.changed.set(flat)
	g.labels.invalidate()
	return nil
}

// ClearOwner sets the owner of the cell at coord back to 0 (unowned).
func (g *Grid) ClearOwner(coord Coord) error {
	return g.SetOwner(0, coord)
}

// TransferOwnership reassigns every cell owned by `from` whose stored
// marker equals `marker` to `to`, resetting the transferred cells' markers
// to 0, and returns the number of cells transferred. A single pass over
// the grid, per the bulk-op contract.
func (g *Grid) TransferOwnership(from, to uint32, marker uint8) int {
	count := 0
	for i, owner := range g.owners {
		if owner != from {
			continue
		}
		if g.molecules[i].Marker() != marker {
			continue
		}
		g.owners[i] = to
		g.molecules[i] = g.molecules[i].WithMarker(0)
		g.changed.set(i)
		count++
	}
	if count > 0 {
		g.labels.invalidate()
	}
	return count
}

// ClearOwnershipFor sets every cell owned by owner back to unowned and
// returns the count of cells cleared.
func (g *Grid) ClearOwnershipFor(owner uint32) int {
	count := 0
	for i, o := range g.owners {
		if o != owner {
			continue
		}
		g.owners[i] = 0
		g.changed.set(i)
		count++
	}
	if count > 0 {
		g.labels.invalidate()
	}
	return count
}

// ClearOwnershipForMarker sets every cell owned by owner whose marker
// equals marker back to unowned, and returns the count of cells cleared —
// the CMR opcode's "orphan own molecules matching marker" semantics.
func (g *Grid) ClearOwnershipForMarker(owner uint32, marker uint8) int {
	count := 0
	for i, o := range g.owners {
		if o != owner || g.molecules[i].Marker() != marker {
			continue
		}
		g.owners[i] = 0
		g.changed.set(i)
		count++
	}
	if count > 0 {
		g.labels.invalidate()
	}
	return count
}

// ChangedIndices returns every flat index mutated since the last
// ResetChangeTracking call, in ascending order.
func (g *Grid) ChangedIndices() []int {
	return g.changed.indices()
}

// ResetChangeTracking clears the change-tracking bitset. Callers decide
// snapshot boundaries; the grid never resets this on its own.
func (g *Grid) ResetChangeTracking() {
	g.changed.reset()
}

// Cell returns the (molecule, owner) pair at a flat index, used by the
// external read interface.
func (g *Grid) Cell(flat int) (molecule.Word, uint32) {
	return g.molecules[flat], g.owners[flat]
}

// Labels returns the grid's lazily-rebuilt label index.
func (g *Grid) Labels() *LabelIndex { return g.labels }

// SaveState serializes shape, toroidal flag, molecules, owners, and the
// change bitset, forming the env portion of sim.Simulation's persistence
// contract.
func (g *Grid) SaveState() []byte {
	buf := make([]byte, 0, 16+len(g.shape)*4+len(g.molecules)*4+len(g.owners)*4+len(g.changed.words)*8)
	put32 := func(v uint32) { buf = binary.LittleEndian.AppendUint32(buf, v) }
	put64 := func(v uint64) { buf = binary.LittleEndian.AppendUint64(buf, v) }

	put32(uint32(len(g.shape)))
	for _, d := range g.shape {
		put32(uint32(d))
	}
	if g.toroidal {
		put32(1)
	} else {
		put32(0)
	}
	put32(uint32(len(g.molecules)))
	for _, m := range g.molecules {
		put32(uint32(m))
	}
	for _, o := range g.owners {
		put32(o)
	}
	put32(uint32(len(g.changed.words)))
	for _, w := range g.changed.words {
		put64(w)
	}
	return buf
}

// LoadState restores a Grid previously produced by SaveState. It replaces
// the receiver's contents in place.
func (g *Grid) LoadState(data []byte) error {
	r := data
	get32 := func() (uint32, error) {
		if len(r) < 4 {
			return 0, fmt.Errorf("env: truncated state")
		}
		v := binary.LittleEndian.Uint32(r)
		r = r[4:]
		return v, nil
	}
	get64 := func() (uint64, error) {
		if len(r) < 8 {
			return 0, fmt.Errorf("env: truncated state")
		}
		v := binary.LittleEndian.Uint64(r)
		r = r[8:]
		return v, nil
	}

	ndims, err := get32()
	if err != nil {
		return err
	}
	shape := make([]int, ndims)
	for i := range shape {
		v, err := get32()
		if err != nil {
			return err
		}
		shape[i] = int(v)
	}
	toroidalFlag, err := get32()
	if err != nil {
		return err
	}

	rebuilt := New(shape, toroidalFlag != 0)

	n, err := get32()
	if err != nil {
		return err
	}
	if int(n) != len(rebuilt.molecules) {
		return fmt.Errorf("env: state cell count %d does not match shape %v", n, shape)
	}
	for i := range rebuilt.molecules {
		v, err := get32()
		if err != nil {
			return err
		}
		rebuilt.molecules[i] = molecule.Word(v)
	}
	for i := range rebuilt.owners {
		v, err := get32()
		if err != nil {
			return err
		}
		rebuilt.owners[i] = v
	}
	nw, err := get32()
	if err != nil {
		return err
	}
	if int(nw) != len(rebuilt.changed.words) {
		return fmt.Errorf("env: state bitset word count mismatch")
	}
	for i := range rebuilt.changed.words {
		v, err := get64()
		if err != nil {
			return err
		}
		rebuilt.changed.words[i] = v
	}

	*g = *rebuilt
	return nil
}

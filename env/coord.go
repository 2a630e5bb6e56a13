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

import "errors"

// Coord is an N-dimensional grid coordinate. Its length must equal the
// arity of the Grid it addresses.
type Coord []int32

// Clone returns an independent copy of c.
func (c Coord) Clone() Coord {
	out := make(Coord, len(c))
	copy(out, c)
	return out
}

// Equal reports whether c and o have the same arity and components.
func (c Coord) Equal(o Coord) bool {
	if len(c) != len(o) {
		return false
	}
	for i := range c {
		if c[i] != o[i] {
			return false
		}
	}
	return true
}

// ErrOutOfBounds is returned by coordinate resolution in bounded (non
// toroidal) mode when a coordinate falls outside the grid's shape.
var ErrOutOfBounds = errors.New("env: coordinate out of bounds")

// Wrap resolves c against the grid's shape and topology: in toroidal mode
// every axis is reduced modulo its extent; in bounded mode any
// out-of-range axis fails with ErrOutOfBounds.
func (g *Grid) Wrap(c Coord) (Coord, error) {
	out := make(Coord, len(c))
	for i, v := range c {
		d := int32(g.shape[i])
		if g.toroidal {
			m := v % d
			if m < 0 {
				m += d
			}
			out[i] = m
		} else {
			if v < 0 || v >= d {
				return nil, ErrOutOfBounds
			}
			out[i] = v
		}
	}
	return out, nil
}

// Step adds dv to coord component by component (dv may be a unit
// direction vector or any multi-cell offset) and resolves the result
// against the grid's topology. It is the single place DV-stepping is
// implemented, per design note 9 of SPEC_FULL.md — every operand decoder
// and every IP advance calls through here.
func (g *Grid) Step(coord Coord, dv []int32) (Coord, error) {
	next := make(Coord, len(coord))
	for i := range coord {
		next[i] = coord[i] + dv[i]
	}
	return g.Wrap(next)
}

// FlatToCoord converts a flat storage index back to an N-dimensional
// coordinate using the grid's precomputed strides.
func (g *Grid) FlatToCoord(i int) Coord {
	c := make(Coord, len(g.shape))
	for axis, stride := range g.strides {
		c[axis] = int32(i / stride % g.shape[axis])
	}
	return c
}

// CoordToFlat converts an in-range coordinate to its flat storage index
// using the grid's precomputed strides. The coordinate must already be
// resolved (via Wrap); it is not bounds-checked again here.
func (g *Grid) CoordToFlat(c Coord) int {
	flat := 0
	for axis, stride := range g.strides {
		flat += int(c[axis]) * stride
	}
	return flat
}

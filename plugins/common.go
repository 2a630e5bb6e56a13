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
	"github.com/evochora/evochora/env"
	"github.com/evochora/evochora/isa"
	"github.com/evochora/evochora/molecule"
	"github.com/evochora/evochora/prng"
)

// scanLine walks the interior of org's genome along its own direction
// vector, stopping at the first STRUCTURE cell in either direction — the
// "interior NOP area delimited by the child's boundary cells along its DV
// axis" every genome-editing plugin operates within.
func scanLine(g *env.Grid, start env.Coord, dv []int32) []env.Coord {
	neg := make([]int32, len(dv))
	for i, d := range dv {
		neg[i] = -d
	}
	var backward []env.Coord
	cur := start
	for i := 0; i < g.TotalCells(); i++ {
		next, err := g.Step(cur, neg)
		if err != nil {
			break
		}
		m, _ := g.GetMolecule(next)
		if m.Type() == molecule.Structure {
			break
		}
		backward = append(backward, next)
		cur = next
	}
	coords := make([]env.Coord, 0, len(backward)*2+1)
	for i := len(backward) - 1; i >= 0; i-- {
		coords = append(coords, backward[i])
	}
	coords = append(coords, start)
	cur = start
	for i := 0; i < g.TotalCells(); i++ {
		next, err := g.Step(cur, dv)
		if err != nil {
			break
		}
		m, _ := g.GetMolecule(next)
		if m.Type() == molecule.Structure {
			break
		}
		coords = append(coords, next)
		cur = next
	}
	return coords
}

// freeRun finds a contiguous stretch of n cells, all empty and unowned,
// within coords, starting at a random offset. Returns nil if none fits.
func freeRun(g *env.Grid, coords []env.Coord, n int, rng *prng.Provider) []env.Coord {
	if n <= 0 || len(coords) < n {
		return nil
	}
	starts := rng.Intn(len(coords)-n+1) // bias-free enough for a mutator
	for s := starts; s < len(coords)-n+1; s++ {
		ok := true
		for i := 0; i < n; i++ {
			m, err := g.GetMolecule(coords[s+i])
			owner, _ := g.GetOwner(coords[s+i])
			if err != nil || !m.IsEmpty() || owner != 0 {
				ok = false
				break
			}
		}
		if ok {
			return coords[s : s+n]
		}
	}
	for s := 0; s < starts; s++ {
		ok := true
		for i := 0; i < n; i++ {
			m, err := g.GetMolecule(coords[s+i])
			owner, _ := g.GetOwner(coords[s+i])
			if err != nil || !m.IsEmpty() || owner != 0 {
				ok = false
				break
			}
		}
		if ok {
			return coords[s : s+n]
		}
	}
	return nil
}

// weightedPick chooses an index in [0, len(weights)) proportionally to
// weights, skipping non-positive entries entirely. Returns -1 if every
// weight is non-positive.
func weightedPick(weights []float64, rng *prng.Provider) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}
	r := rng.Float64() * total
	acc := 0.0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		acc += w
		if r < acc {
			return i
		}
	}
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return -1
}

// randomUnitVector returns a vector with exactly one nonzero component
// (±1), matching the "vector=unit" operand-arg contract.
func randomUnitVector(arity int, rng *prng.Provider) []int32 {
	v := make([]int32, arity)
	axis := rng.Intn(arity)
	if rng.Bool() {
		v[axis] = 1
	} else {
		v[axis] = -1
	}
	return v
}

// clampValue masks v into molecule's 19-bit signed value range.
func clampValue(v int32) int32 {
	return molecule.Pack(molecule.Data, v, 0).ToScalar()
}

// flipOneBit flips a single pseudo-random bit of the 19-bit hash.
func flipOneBit(hash uint32, rng *prng.Provider) uint32 {
	bit := uint32(rng.Intn(molecule.ValueBits))
	return hash ^ (1 << bit)
}

// writeInstructionChain writes def's opcode cell followed by its operand
// cells into coords, owned by owner. Each operand slice occupies one cell
// per element, so a vector operand takes as many cells as its length, and
// coords must hold one entry for the opcode plus one per operand element
// (instructionCellCount gives that number).
func writeInstructionChain(g *env.Grid, coords []env.Coord, owner uint32, def *isa.Def, operands [][]int32) {
	i := 0
	g.SetMoleculeOwned(molecule.Pack(molecule.Code, def.ID.Pack(), 0), owner, coords[i])
	i++
	for _, operand := range operands {
		for _, v := range operand {
			g.SetMoleculeOwned(molecule.Pack(molecule.Data, v, 0), owner, coords[i])
			i++
		}
	}
}

// instructionCellCount returns how many cells def's full instruction
// (opcode + operands) occupies, given the organism's coordinate arity.
func instructionCellCount(def *isa.Def, arity int) int {
	n := 1
	for _, src := range def.OperandSources {
		switch src {
		case isa.SrcVector:
			n += arity
		case isa.SrcStack:
			// consumes no instruction cell
		default:
			n++
		}
	}
	return n
}

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
	"github.com/evochora/evochora/env"
	"github.com/evochora/evochora/isa"
	"github.com/evochora/evochora/organism"
	"github.com/evochora/evochora/prng"
	"github.com/evochora/evochora/thermo"
)

// Hooks is everything the engine needs from its caller that isn't pure
// per-organism/per-cell state: label-lineage resolution and child-organism
// creation. Passed explicitly on every Step call rather than stored,
// keeping engine free of a back-reference to the simulation that owns it
// (design note 9).
type Hooks interface {
	// Lineage returns orgID followed by its ancestors, nearest first, for
	// CALL/JMP label resolution and the IFM/IFF ownership predicates.
	Lineage(orgID uint32) []uint32

	// Spawn creates and registers a new organism and returns it. Used by
	// FORK; the simulation assigns the new id and inserts it into its own
	// bookkeeping.
	Spawn(parent *organism.Organism, pos env.Coord, dv []int32, energy int64) (*organism.Organism, error)
}

// Operand is one resolved instruction operand: its source kind, its
// current value, and — when it came from a register — enough information
// for the handler to write a result back into that same register.
type Operand struct {
	Source    isa.OperandSource
	Value     organism.Value
	FromReg   bool
	RegFlatID int
}

// Ctx bundles everything one instruction execution needs. It is built
// fresh by Step for every instruction and never retained past that call.
type Ctx struct {
	Org    *organism.Organism
	Grid   *env.Grid
	Policy *thermo.Policy
	Rng    *prng.Provider
	Hooks  Hooks
	Tick   uint64

	Def *isa.Def
	Ops []Operand

	// NextIP is where IP moves to after decode, absent any control-flow
	// override by the handler (the cell past the opcode and all of its
	// operand cells).
	NextIP env.Coord
}

// Operand returns ctx.Ops[i], or a zero Operand if i is out of range —
// handlers for opcodes with fewer declared operands than expected should
// never hit this, but it avoids a panic turning a decode bug into a
// process crash.
func (c *Ctx) Operand(i int) Operand {
	if i < 0 || i >= len(c.Ops) {
		return Operand{}
	}
	return c.Ops[i]
}

// WriteBack stores v into operand i's source register, if it came from
// one. Used by in-place binary/unary arithmetic and bitwise opcodes (R/I
// variants write their result back into the first operand's register).
func (c *Ctx) WriteBack(i int, v organism.Value) {
	op := c.Operand(i)
	if op.FromReg {
		c.Org.SetRegisterValue(op.RegFlatID, v)
	}
}

// Push pushes v onto the organism's data stack.
func (c *Ctx) Push(v organism.Value) {
	c.Org.DataStack = append(c.Org.DataStack, v)
}

// Pop removes and returns the top of the organism's data stack.
// ok is false on underflow.
func (c *Ctx) Pop() (v organism.Value, ok bool) {
	n := len(c.Org.DataStack)
	if n == 0 {
		return organism.Value{}, false
	}
	v = c.Org.DataStack[n-1]
	c.Org.DataStack = c.Org.DataStack[:n-1]
	return v, true
}

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

// Package organism models a single organism's private state: its register
// banks, stacks, pointers, and thermodynamic accumulators. An Organism owns
// none of the grid — it is mutated only by the engine, which is handed an
// explicit (*Organism, *env.Grid, ...) pair and never stores a back
// reference (design note 9).
package organism

import "github.com/evochora/evochora/env"

// Value is a tagged register/stack slot: either a scalar molecule word or
// an integer vector of the grid's arity. Polymorphism lives here, at the
// slot, instead of in per-opcode dynamic dispatch (design note 9).
type Value struct {
	Vector []int32 // non-nil => this slot holds a vector
	Scalar uint32  // raw molecule.Word bits when Vector is nil
}

// IsVector reports whether v currently holds a vector.
func (v Value) IsVector() bool { return v.Vector != nil }

// Frame is a call-stack activation record, saved on CALL and restored on
// RET: the return IP, the caller's direction vector, its procedure
// registers, its active data-pointer index, and the formal-parameter
// register bank the caller had bound for the callee — CALL snapshots the
// caller's current FPR values here so RET can hand them back once the
// callee is done, the same save/restore discipline SavedPRs/SavedDV use.
type Frame struct {
	ReturnIP      env.Coord
	SavedDV       []int32
	SavedPRs      []Value
	SavedActiveDP int
	FPRBindings   []Value
}

// BankSizes configures the size of every register bank and stack-adjacent
// array, sourced from config.Config.
type BankSizes struct {
	NumDR, NumPR, NumFPR, NumLR, NumDPs int
}

// Organism is the full per-organism runtime state: register banks, data/
// call/location stacks, data pointers, instruction pointer and direction
// vector, and the thermodynamic accumulators (energy, entropy, marker).
type Organism struct {
	ID       uint32
	ParentID uint32

	BirthTick uint64
	Age       uint64
	Alive     bool

	IP env.Coord
	DV []int32

	DPs         []env.Coord
	ActiveDPIdx int

	DR   []Value
	PR   []Value
	FPR  []Value
	LR   []env.Coord
	Arity int

	DataStack     []Value
	CallStack     []Frame
	LocationStack []env.Coord

	ER int64
	SR int64
	MR uint8

	FailureFlag  bool
	FailureReason string
}

// New creates a freshly-born organism at pos with the given banks, energy,
// and lineage: all register banks and stacks start empty, the failure
// flag is clear, and age/birth tick are set from the caller's clock.
func New(id, parentID uint32, birthTick uint64, pos env.Coord, dv []int32, energy int64, banks BankSizes) *Organism {
	arity := len(pos)
	o := &Organism{
		ID:          id,
		ParentID:    parentID,
		BirthTick:   birthTick,
		Alive:       true,
		IP:          pos.Clone(),
		DV:          append([]int32(nil), dv...),
		DPs:         make([]env.Coord, banks.NumDPs),
		ActiveDPIdx: 0,
		DR:          make([]Value, banks.NumDR),
		PR:          make([]Value, banks.NumPR),
		FPR:         make([]Value, banks.NumFPR),
		LR:          make([]env.Coord, banks.NumLR),
		Arity:       arity,
		ER:          energy,
	}
	for i := range o.DPs {
		o.DPs[i] = pos.Clone()
	}
	for i := range o.LR {
		o.LR[i] = pos.Clone()
	}
	return o
}

// ActiveDP returns the currently-selected data pointer.
func (o *Organism) ActiveDP() env.Coord {
	return o.DPs[o.ActiveDPIdx]
}

// SetActiveDP replaces the currently-selected data pointer's coordinate.
func (o *Organism) SetActiveDP(c env.Coord) {
	o.DPs[o.ActiveDPIdx] = c
}

// ClearFailure resets the failure flag and reason at the start of a new
// tick, before the engine fetches this organism's next instruction.
func (o *Organism) ClearFailure() {
	o.FailureFlag = false
	o.FailureReason = ""
}

// Fail records an instruction failure. IP advance still happens in the
// engine; Fail only marks the flag/reason.
func (o *Organism) Fail(reason string) {
	o.FailureFlag = true
	o.FailureReason = reason
}

// ClampEnergy clamps ER into [0, max].
func (o *Organism) ClampEnergy(max int64) {
	if o.ER < 0 {
		o.ER = 0
	}
	if o.ER > max {
		o.ER = max
	}
}

// ClampEntropy clamps SR into [0, max].
func (o *Organism) ClampEntropy(max int64) {
	if o.SR < 0 {
		o.SR = 0
	}
	if o.SR > max {
		o.SR = max
	}
}

// RegisterValue resolves a flat register id — DR first, then PR, then FPR,
// then LR — into its current Value. LR slots (which hold a coordinate, not
// a Value) are surfaced as a vector Value. This flat numbering is the
// engine's register-operand addressing convention: a REGISTER-typed
// molecule's scalar payload is the flat id consumed by a Register operand.
func (o *Organism) RegisterValue(flat int) (Value, bool) {
	if flat < 0 {
		return Value{}, false
	}
	if flat < len(o.DR) {
		return o.DR[flat], true
	}
	flat -= len(o.DR)
	if flat < len(o.PR) {
		return o.PR[flat], true
	}
	flat -= len(o.PR)
	if flat < len(o.FPR) {
		return o.FPR[flat], true
	}
	flat -= len(o.FPR)
	if flat < len(o.LR) {
		return Value{Vector: append([]int32(nil), o.LR[flat]...)}, true
	}
	return Value{}, false
}

// SetRegisterValue writes v into the register addressed by the same flat
// numbering RegisterValue uses. Writing a vector Value into an LR slot
// replaces that location register's coordinate.
func (o *Organism) SetRegisterValue(flat int, v Value) bool {
	if flat < 0 {
		return false
	}
	if flat < len(o.DR) {
		o.DR[flat] = v
		return true
	}
	flat -= len(o.DR)
	if flat < len(o.PR) {
		o.PR[flat] = v
		return true
	}
	flat -= len(o.PR)
	if flat < len(o.FPR) {
		o.FPR[flat] = v
		return true
	}
	flat -= len(o.FPR)
	if flat < len(o.LR) {
		if v.Vector != nil {
			o.LR[flat] = append(env.Coord(nil), v.Vector...)
		}
		return true
	}
	return false
}

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

// Package isa describes the organism instruction set: opcode identity
// (family/operation/variant), operand sources, and the disassembly
// metadata the engine and any external tooling need. It deliberately holds
// no execution semantics — those live in package engine, keeping the
// {family, operation, variant, operand_sources, handler} table design note
// 9 calls for split across two packages so isa stays free of an import
// cycle back to engine/organism/env.
package isa

import "fmt"

// Family is the 4-bit opcode family: one of the nine families below,
// each grouping opcodes that share execution semantics and cost tier.
type Family uint8

const (
	Arithmetic Family = iota
	Bitwise
	Conditional
	Stack
	Control
	Environment
	State
	Vector
	Special
)

func (f Family) String() string {
	names := [...]string{"ARITHMETIC", "BITWISE", "CONDITIONAL", "STACK", "CONTROL", "ENVIRONMENT", "STATE", "VECTOR", "SPECIAL"}
	if int(f) < len(names) {
		return names[f]
	}
	return fmt.Sprintf("FAMILY(%d)", uint8(f))
}

// Variant is the addressing mode of an opcode.
type Variant uint8

const (
	VariantR    Variant = iota // register operand(s)
	VariantI                   // immediate operand(s)
	VariantS                   // stack operand(s)
	VariantNone                // no addressing-mode operands
	VariantV                   // vector-immediate
	VariantLR                  // location-register
)

func (v Variant) String() string {
	names := [...]string{"R", "I", "S", "NONE", "V", "LR"}
	if int(v) < len(names) {
		return names[v]
	}
	return fmt.Sprintf("VARIANT(%d)", uint8(v))
}

// OperandSource names where one operand cell's value comes from: a
// register bank, an immediate cell, a vector of immediate cells, a
// labelref hash cell, a location-register bank, or the data stack.
type OperandSource uint8

const (
	SrcRegister OperandSource = iota
	SrcImmediate
	SrcVector
	SrcLabelRef
	SrcLocationRegister
	SrcStack // consumes no instruction cell; handler pops the data stack
)

func (s OperandSource) String() string {
	names := [...]string{"REGISTER", "IMMEDIATE", "VECTOR", "LABELREF", "LOCATION_REGISTER", "STACK"}
	if int(s) < len(names) {
		return names[s]
	}
	return fmt.Sprintf("SOURCE(%d)", uint8(s))
}

// ID identifies one opcode: its family, its operation within that family,
// and its addressing variant. It is the map key used by the flat opcode
// table (design note 9) and is the logical content of a CODE molecule's
// 19-bit payload.
type ID struct {
	Family    Family
	Operation uint16
	Variant   Variant
}

// Pack encodes id into the 19-bit scalar value stored in a CODE molecule.
// Layout: family(4) | operation(11) | variant(4), family most significant.
func (id ID) Pack() int32 {
	return int32(uint32(id.Family)&0xF)<<15 | int32(uint32(id.Operation)&0x7FF)<<4 | int32(uint32(id.Variant)&0xF)
}

// Unpack decodes a 19-bit scalar (as read from a CODE molecule) back into
// an ID.
func Unpack(v int32) ID {
	u := uint32(v)
	return ID{
		Family:    Family(u >> 15 & 0xF),
		Operation: uint16(u >> 4 & 0x7FF),
		Variant:   Variant(u & 0xF),
	}
}

// Def is the static descriptor for one opcode: everything the decoder
// needs to know how many cells to consume and from where, plus a
// human-readable name for disassembly and error messages.
type Def struct {
	ID             ID
	Name           string
	OperandSources []OperandSource
}

// table is the global, flat, index-by-ID opcode table. It is populated
// once by TryInit from the static catalogue below and is otherwise
// read-only, matching design note 9's "global mutable opcode table,
// initialized once, idempotent try_init()".
var table map[ID]*Def

// byName supports disassembly and test helpers that build programs by
// opcode name rather than by ID.
var byName map[string]*Def

var initialized bool

// TryInit populates the opcode table from the static catalogue. It is
// idempotent: calling it more than once is a no-op.
func TryInit() {
	if initialized {
		return
	}
	table = make(map[ID]*Def, len(catalogue))
	byName = make(map[string]*Def, len(catalogue))
	for i := range catalogue {
		def := &catalogue[i]
		table[def.ID] = def
		byName[variantName(def.Name, def.ID.Variant)] = def
	}
	initialized = true
}

func variantName(base string, v Variant) string {
	switch v {
	case VariantNone, VariantLR, VariantV:
		return base
	default:
		return base + v.String()
	}
}

// Lookup returns the Def for id, initializing the table on first use.
func Lookup(id ID) (*Def, bool) {
	TryInit()
	d, ok := table[id]
	return d, ok
}

// LookupName returns the Def for a disassembly-style mnemonic such as
// "ADDR", "ADDI", "ADDS", "NOP", initializing the table on first use.
func LookupName(name string) (*Def, bool) {
	TryInit()
	d, ok := byName[name]
	return d, ok
}

// All returns every registered Def, initializing the table on first use.
func All() []*Def {
	TryInit()
	out := make([]*Def, 0, len(table))
	for _, d := range table {
		out = append(out, d)
	}
	return out
}

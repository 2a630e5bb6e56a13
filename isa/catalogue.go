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

package isa

// operation ids within a family. Grouped by family for readability; values
// only need to be unique within a family, not globally.
const (
	opAdd uint16 = iota
	opSub
	opMul
	opDiv
	opMod
	opMin
	opMax
	opNeg
	opAbs
	opInc
	opDec
	opSgn
	opDot
	opCrs
)

const (
	opAnd uint16 = iota
	opOr
	opXor
	opShl
	opShr
	opNot
)

const (
	opIf uint16 = iota
	opIn
	opLt
	opGt
	opLte
	opGte
	opIfMine
	opIfForeign
	opIfVacant
	opIfType
)

const (
	opPush uint16 = iota
	opPop
	opDup
	opSwap
	opDrop
	opRot
)

const (
	opJmp uint16 = iota
	opJmpi
	opJmpr
	opJmps
	opCall
	opRet
	opBrk
	opNop
)

const (
	opPeek uint16 = iota
	opPoke
	opScan
	opPpk
)

const (
	opTurn uint16 = iota
	opSync
	opNrg
	opNtr
	opPos
	opDiff
	opSeek
	opGdv
	opAdp
	opSmr
	opGmr
	opCmr
)

const (
	opFork uint16 = iota
	opHash
)

// binary builds the three addressing variants (R, I, S) shared by every
// two-operand scalar opcode: "a = a OP b" in place for R/I, "push(op2 OP
// op1)" for S where op1 is the stack top and op2 the value beneath it.
func binary(fam Family, op uint16, name string) []Def {
	return []Def{
		{ID: ID{fam, op, VariantR}, Name: name, OperandSources: []OperandSource{SrcRegister, SrcRegister}},
		{ID: ID{fam, op, VariantI}, Name: name, OperandSources: []OperandSource{SrcRegister, SrcImmediate}},
		{ID: ID{fam, op, VariantS}, Name: name, OperandSources: nil},
	}
}

// unary builds the two addressing variants (R, S) shared by single-operand
// scalar opcodes.
func unary(fam Family, op uint16, name string) []Def {
	return []Def{
		{ID: ID{fam, op, VariantR}, Name: name, OperandSources: []OperandSource{SrcRegister}},
		{ID: ID{fam, op, VariantS}, Name: name, OperandSources: nil},
	}
}

// compare builds the three addressing variants of a conditional scalar
// predicate: R compares two registers, I compares a register against an
// immediate, S compares the top two stack values.
func compare(op uint16, name string) []Def {
	return []Def{
		{ID: ID{Conditional, op, VariantR}, Name: name, OperandSources: []OperandSource{SrcRegister, SrcRegister}},
		{ID: ID{Conditional, op, VariantI}, Name: name, OperandSources: []OperandSource{SrcRegister, SrcImmediate}},
		{ID: ID{Conditional, op, VariantS}, Name: name, OperandSources: nil},
	}
}

// cellPredicate builds the R/I addressing variants of an ownership/vacancy
// predicate: the operand is the offset vector from the active data
// pointer, supplied either by a register (R) or by k immediate cells (I).
func cellPredicate(op uint16, name string) []Def {
	return []Def{
		{ID: ID{Conditional, op, VariantR}, Name: name, OperandSources: []OperandSource{SrcRegister}},
		{ID: ID{Conditional, op, VariantI}, Name: name, OperandSources: []OperandSource{SrcVector}},
	}
}

// stateOp builds the R/I/S variants shared by most STATE family opcodes:
// the single operand is a scalar or vector sourced from a register,
// immediate cell(s), or the stack.
func stateOp(op uint16, name string, vectorValued bool) []Def {
	imm := SrcImmediate
	if vectorValued {
		imm = SrcVector
	}
	return []Def{
		{ID: ID{State, op, VariantR}, Name: name, OperandSources: []OperandSource{SrcRegister}},
		{ID: ID{State, op, VariantI}, Name: name, OperandSources: []OperandSource{imm}},
		{ID: ID{State, op, VariantS}, Name: name, OperandSources: nil},
	}
}

// readOnlyStateOp builds the R/S variants of a STATE opcode that only ever
// reads a simulation-maintained value into a register or onto the stack
// (GDV, NRG, NTR, POS, DIFF, GMR have no immediate form — there is nothing
// to supply).
func readOnlyStateOp(op uint16, name string) []Def {
	return []Def{
		{ID: ID{State, op, VariantR}, Name: name, OperandSources: []OperandSource{SrcRegister}},
		{ID: ID{State, op, VariantS}, Name: name, OperandSources: nil},
	}
}

var catalogue = buildCatalogue()

func buildCatalogue() []Def {
	var defs []Def

	defs = append(defs, binary(Arithmetic, opAdd, "ADD")...)
	defs = append(defs, binary(Arithmetic, opSub, "SUB")...)
	defs = append(defs, binary(Arithmetic, opMul, "MUL")...)
	defs = append(defs, binary(Arithmetic, opDiv, "DIV")...)
	defs = append(defs, binary(Arithmetic, opMod, "MOD")...)
	defs = append(defs, binary(Arithmetic, opMin, "MIN")...)
	defs = append(defs, binary(Arithmetic, opMax, "MAX")...)
	defs = append(defs, unary(Arithmetic, opNeg, "NEG")...)
	defs = append(defs, unary(Arithmetic, opAbs, "ABS")...)
	defs = append(defs, unary(Arithmetic, opInc, "INC")...)
	defs = append(defs, unary(Arithmetic, opDec, "DEC")...)
	defs = append(defs, unary(Arithmetic, opSgn, "SGN")...)
	defs = append(defs, Def{ID: ID{Arithmetic, opDot, VariantR}, Name: "DOT", OperandSources: []OperandSource{SrcRegister, SrcRegister, SrcRegister}})
	defs = append(defs, Def{ID: ID{Arithmetic, opCrs, VariantR}, Name: "CRS", OperandSources: []OperandSource{SrcRegister, SrcRegister, SrcRegister}})

	defs = append(defs, binary(Bitwise, opAnd, "AND")...)
	defs = append(defs, binary(Bitwise, opOr, "OR")...)
	defs = append(defs, binary(Bitwise, opXor, "XOR")...)
	defs = append(defs, binary(Bitwise, opShl, "SHL")...)
	defs = append(defs, binary(Bitwise, opShr, "SHR")...)
	defs = append(defs, unary(Bitwise, opNot, "NOT")...)

	defs = append(defs, compare(opIf, "IF")...)
	defs = append(defs, compare(opIn, "IN")...)
	defs = append(defs, compare(opLt, "LT")...)
	defs = append(defs, compare(opGt, "GT")...)
	defs = append(defs, compare(opLte, "LTE")...)
	defs = append(defs, compare(opGte, "GTE")...)
	defs = append(defs, cellPredicate(opIfMine, "IFM")...)
	defs = append(defs, cellPredicate(opIfForeign, "IFF")...)
	defs = append(defs, cellPredicate(opIfVacant, "IFV")...)
	defs = append(defs, Def{ID: ID{Conditional, opIfType, VariantR}, Name: "IFT", OperandSources: []OperandSource{SrcRegister, SrcRegister}})

	defs = append(defs,
		Def{ID: ID{Stack, opPush, VariantR}, Name: "PUSH", OperandSources: []OperandSource{SrcRegister}},
		Def{ID: ID{Stack, opPush, VariantI}, Name: "PUSH", OperandSources: []OperandSource{SrcImmediate}},
		Def{ID: ID{Stack, opPop, VariantR}, Name: "POP", OperandSources: []OperandSource{SrcRegister}},
		Def{ID: ID{Stack, opDup, VariantNone}, Name: "DUP", OperandSources: nil},
		Def{ID: ID{Stack, opSwap, VariantNone}, Name: "SWAP", OperandSources: nil},
		Def{ID: ID{Stack, opDrop, VariantNone}, Name: "DROP", OperandSources: nil},
		Def{ID: ID{Stack, opRot, VariantNone}, Name: "ROT", OperandSources: nil},
	)

	defs = append(defs,
		Def{ID: ID{Control, opJmp, VariantLR}, Name: "JMP", OperandSources: []OperandSource{SrcLabelRef}},
		Def{ID: ID{Control, opJmpi, VariantI}, Name: "JMPI", OperandSources: []OperandSource{SrcVector}},
		Def{ID: ID{Control, opJmpr, VariantR}, Name: "JMPR", OperandSources: []OperandSource{SrcRegister}},
		Def{ID: ID{Control, opJmps, VariantS}, Name: "JMPS", OperandSources: nil},
		Def{ID: ID{Control, opCall, VariantLR}, Name: "CALL", OperandSources: []OperandSource{SrcLabelRef}},
		Def{ID: ID{Control, opRet, VariantNone}, Name: "RET", OperandSources: nil},
		Def{ID: ID{Control, opBrk, VariantNone}, Name: "BRK", OperandSources: nil},
		Def{ID: ID{Control, opNop, VariantNone}, Name: "NOP", OperandSources: nil},
	)

	defs = append(defs,
		Def{ID: ID{Environment, opPeek, VariantV}, Name: "PEEK", OperandSources: []OperandSource{SrcVector, SrcRegister}},
		Def{ID: ID{Environment, opPoke, VariantV}, Name: "POKE", OperandSources: []OperandSource{SrcRegister, SrcVector}},
		Def{ID: ID{Environment, opScan, VariantV}, Name: "SCAN", OperandSources: []OperandSource{SrcVector, SrcRegister}},
		Def{ID: ID{Environment, opPpk, VariantV}, Name: "PPK", OperandSources: []OperandSource{SrcVector, SrcRegister}},
	)

	defs = append(defs, stateOp(opTurn, "TURN", true)...)
	defs = append(defs, Def{ID: ID{State, opSync, VariantNone}, Name: "SYNC", OperandSources: nil})
	defs = append(defs, readOnlyStateOp(opNrg, "NRG")...)
	defs = append(defs, readOnlyStateOp(opNtr, "NTR")...)
	defs = append(defs, readOnlyStateOp(opPos, "POS")...)
	defs = append(defs, readOnlyStateOp(opDiff, "DIFF")...)
	defs = append(defs, stateOp(opSeek, "SEEK", true)...)
	defs = append(defs, readOnlyStateOp(opGdv, "GDV")...)
	defs = append(defs, stateOp(opAdp, "ADP", false)...)
	defs = append(defs, stateOp(opSmr, "SMR", false)...)
	defs = append(defs, readOnlyStateOp(opGmr, "GMR")...)
	defs = append(defs, stateOp(opCmr, "CMR", false)...)

	defs = append(defs,
		Def{ID: ID{Special, opFork, VariantR}, Name: "FORK", OperandSources: []OperandSource{SrcRegister, SrcRegister, SrcRegister}},
		Def{ID: ID{Special, opFork, VariantI}, Name: "FORK", OperandSources: []OperandSource{SrcVector, SrcImmediate, SrcVector}},
		Def{ID: ID{Special, opFork, VariantS}, Name: "FORK", OperandSources: nil},
	)

	defs = append(defs,
		Def{ID: ID{Special, opHash, VariantR}, Name: "HASH", OperandSources: []OperandSource{SrcRegister, SrcRegister}},
		Def{ID: ID{Special, opHash, VariantS}, Name: "HASH", OperandSources: nil},
	)

	return defs
}

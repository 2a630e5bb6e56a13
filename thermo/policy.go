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

// Package thermo holds the thermodynamic accounting policy: the
// energy/entropy cost charged for executing each opcode. It mirrors the
// flat per-family gas-cost table in go-probe's lang/vm (gasTrivial,
// gasArithmetic, gasMul, …) generalized to two ledgers — energy debited,
// entropy credited — with an optional per-opcode override layered on top
// of the family default, matching the "family default, override
// table, explicit charge()" design.
package thermo

import "github.com/evochora/evochora/isa"

// Cost is the energy/entropy charge for one instruction execution.
type Cost struct {
	Energy  int64
	Entropy int64
}

// Policy is the thermodynamic cost table for one simulation run. Every
// field is read-only after construction; Policy carries no mutable
// simulation state of its own.
type Policy struct {
	FamilyDefault map[isa.Family]Cost
	Overrides     map[isa.ID]Cost

	// ErrorPenalty is debited from ER in addition to the opcode's own cost
	// whenever an instruction's execution fails.
	ErrorPenalty int64

	// PerCellSurcharge is the additional energy PEEK/POKE/SCAN/PPK charge
	// per environment cell touched, resolved through this single
	// policy-table field rather than a hardcoded constant.
	PerCellSurcharge int64

	// MaxEnergy and MaxEntropy bound an organism's ER/SR registers.
	MaxEnergy  int64
	MaxEntropy int64
}

// Default returns the policy used when no config override is supplied,
// following go-probe's gasTrivial/gasArithmetic/gasMul/gasDivMod/
// gasBitwise/gasJump/gasCall tiers, adapted into an energy/entropy pair
// per family instead of a single gas scalar.
func Default() *Policy {
	return &Policy{
		FamilyDefault: map[isa.Family]Cost{
			isa.Arithmetic:  {Energy: 3, Entropy: 1},
			isa.Bitwise:     {Energy: 2, Entropy: 1},
			isa.Conditional: {Energy: 2, Entropy: 0},
			isa.Stack:       {Energy: 1, Entropy: 0},
			isa.Control:     {Energy: 3, Entropy: 0},
			isa.Environment: {Energy: 5, Entropy: 2},
			isa.State:       {Energy: 1, Entropy: 0},
			isa.Vector:      {Energy: 4, Entropy: 1},
			isa.Special:     {Energy: 50, Entropy: 10},
		},
		Overrides: map[isa.ID]Cost{
			{Family: isa.Arithmetic, Operation: 2 /* opMul */, Variant: isa.VariantR}: {Energy: 5, Entropy: 1},
			{Family: isa.Arithmetic, Operation: 2 /* opMul */, Variant: isa.VariantI}: {Energy: 5, Entropy: 1},
			{Family: isa.Arithmetic, Operation: 2 /* opMul */, Variant: isa.VariantS}: {Energy: 5, Entropy: 1},
			{Family: isa.Arithmetic, Operation: 3 /* opDiv */, Variant: isa.VariantR}: {Energy: 10, Entropy: 2},
			{Family: isa.Arithmetic, Operation: 3 /* opDiv */, Variant: isa.VariantI}: {Energy: 10, Entropy: 2},
			{Family: isa.Arithmetic, Operation: 3 /* opDiv */, Variant: isa.VariantS}: {Energy: 10, Entropy: 2},
			{Family: isa.Arithmetic, Operation: 4 /* opMod */, Variant: isa.VariantR}: {Energy: 10, Entropy: 2},
			{Family: isa.Arithmetic, Operation: 4 /* opMod */, Variant: isa.VariantI}: {Energy: 10, Entropy: 2},
			{Family: isa.Arithmetic, Operation: 4 /* opMod */, Variant: isa.VariantS}: {Energy: 10, Entropy: 2},
		},
		ErrorPenalty:     10,
		PerCellSurcharge: 5,
		MaxEnergy:        32767,
		MaxEntropy:       8191,
	}
}

// Charge returns the energy/entropy cost of executing def, consulting the
// per-opcode override before falling back to the opcode's family default.
func (p *Policy) Charge(id isa.ID) Cost {
	if c, ok := p.Overrides[id]; ok {
		return c
	}
	return p.FamilyDefault[id.Family]
}

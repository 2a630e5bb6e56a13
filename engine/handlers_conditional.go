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
	"github.com/evochora/evochora/isa"
	"github.com/evochora/evochora/molecule"
)

// compareHandler builds a Handler for IF/IN/LT/GT/LTE/GTE: R and I compare
// two registers (or a register and an immediate); S compares the top two
// stack values, consuming both, with op1 the top and op2 the value beneath
// it, evaluating pred(op2, op1) to match the stack ordering.
func compareHandler(pred func(a, b int32) bool) Handler {
	return func(ctx *Ctx) Outcome {
		if ctx.Def.ID.Variant == isa.VariantS {
			op1, ok1 := ctx.Pop()
			op2, ok2 := ctx.Pop()
			if !ok1 || !ok2 {
				return fail("stack underflow")
			}
			return branch(pred(scalarOf(op2), scalarOf(op1)))
		}
		a := scalarOf(ctx.Operand(0).Value)
		b := scalarOf(ctx.Operand(1).Value)
		return branch(pred(a, b))
	}
}

// inLineage reports whether owner appears in lineage.
func inLineage(owner uint32, lineage []uint32) bool {
	for _, id := range lineage {
		if id == owner {
			return true
		}
	}
	return false
}

func registerConditional(h map[isa.ID]Handler) {
	eq := func(a, b int32) bool { return a == b }
	neq := func(a, b int32) bool { return a != b }
	lt := func(a, b int32) bool { return a < b }
	gt := func(a, b int32) bool { return a > b }
	lte := func(a, b int32) bool { return a <= b }
	gte := func(a, b int32) bool { return a >= b }

	for _, v := range []isa.Variant{isa.VariantR, isa.VariantI, isa.VariantS} {
		h[isa.ID{Family: isa.Conditional, Operation: 0, Variant: v}] = compareHandler(eq)
		h[isa.ID{Family: isa.Conditional, Operation: 1, Variant: v}] = compareHandler(neq)
		h[isa.ID{Family: isa.Conditional, Operation: 2, Variant: v}] = compareHandler(lt)
		h[isa.ID{Family: isa.Conditional, Operation: 3, Variant: v}] = compareHandler(gt)
		h[isa.ID{Family: isa.Conditional, Operation: 4, Variant: v}] = compareHandler(lte)
		h[isa.ID{Family: isa.Conditional, Operation: 5, Variant: v}] = compareHandler(gte)
	}

	cellPred := func(want func(owner uint32, lineage []uint32) bool) Handler {
		return func(ctx *Ctx) Outcome {
			offset := ctx.Operand(0).Value.Vector
			if offset == nil {
				return fail("missing offset vector")
			}
			target, err := ctx.Grid.Step(ctx.Org.ActiveDP(), offset)
			if err != nil {
				return branch(false)
			}
			owner, err := ctx.Grid.GetOwner(target)
			if err != nil {
				return branch(false)
			}
			lineage := ctx.Hooks.Lineage(ctx.Org.ID)
			return branch(want(owner, lineage))
		}
	}
	mine := func(owner uint32, lineage []uint32) bool { return owner != 0 && inLineage(owner, lineage) }
	foreign := func(owner uint32, lineage []uint32) bool { return owner != 0 && !inLineage(owner, lineage) }
	vacant := func(owner uint32, lineage []uint32) bool { return owner == 0 }
	for _, v := range []isa.Variant{isa.VariantR, isa.VariantI} {
		h[isa.ID{Family: isa.Conditional, Operation: 6, Variant: v}] = cellPred(mine)
		h[isa.ID{Family: isa.Conditional, Operation: 7, Variant: v}] = cellPred(foreign)
		h[isa.ID{Family: isa.Conditional, Operation: 8, Variant: v}] = cellPred(vacant)
	}

	h[isa.ID{Family: isa.Conditional, Operation: 9, Variant: isa.VariantR}] = func(ctx *Ctx) Outcome {
		offset := ctx.Operand(0).Value.Vector
		if offset == nil {
			return fail("missing offset vector")
		}
		wantType := molecule.Type(scalarOf(ctx.Operand(1).Value))
		target, err := ctx.Grid.Step(ctx.Org.ActiveDP(), offset)
		if err != nil {
			return branch(false)
		}
		m, err := ctx.Grid.GetMolecule(target)
		if err != nil {
			return branch(false)
		}
		return branch(m.Type() == wantType)
	}
}

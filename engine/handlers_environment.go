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
	"github.com/evochora/evochora/organism"
)

func registerEnvironment(h map[isa.ID]Handler) {
	target := func(ctx *Ctx) (targetCoord organism.Value, ok bool) {
		offset := ctx.Operand(0).Value.Vector
		if offset == nil {
			return organism.Value{}, false
		}
		coord, err := ctx.Grid.Step(ctx.Org.ActiveDP(), offset)
		if err != nil {
			return organism.Value{}, false
		}
		return organism.Value{Vector: coord}, true
	}

	h[isa.ID{Family: isa.Environment, Operation: 0, Variant: isa.VariantV}] = func(ctx *Ctx) Outcome {
		tv, found := target(ctx)
		if !found {
			return fail("peek target out of bounds")
		}
		m, err := ctx.Grid.GetMolecule(tv.Vector)
		if err != nil {
			return fail(err.Error())
		}
		if err := ctx.Grid.SetMolecule(molecule.EmptyWord, tv.Vector); err != nil {
			return fail(err.Error())
		}
		ctx.WriteBack(1, organism.Value{Scalar: uint32(m)})
		return ok()
	}

	h[isa.ID{Family: isa.Environment, Operation: 1, Variant: isa.VariantV}] = func(ctx *Ctx) Outcome {
		offset := ctx.Operand(1).Value.Vector
		if offset == nil {
			return fail("missing poke offset")
		}
		coord, err := ctx.Grid.Step(ctx.Org.ActiveDP(), offset)
		if err != nil {
			return fail(err.Error())
		}
		src := ctx.Operand(0).Value
		w := molecule.Word(src.Scalar)
		if err := ctx.Grid.SetMoleculeOwned(w, ctx.Org.ID, coord); err != nil {
			return fail(err.Error())
		}
		ctx.Org.SR -= int64(w.ToScalar())
		ctx.Org.ClampEntropy(1 << 18)
		return ok()
	}

	h[isa.ID{Family: isa.Environment, Operation: 2, Variant: isa.VariantV}] = func(ctx *Ctx) Outcome {
		tv, found := target(ctx)
		if !found {
			return fail("scan target out of bounds")
		}
		m, err := ctx.Grid.GetMolecule(tv.Vector)
		if err != nil {
			return fail(err.Error())
		}
		ctx.WriteBack(1, organism.Value{Scalar: uint32(m)})
		return ok()
	}

	h[isa.ID{Family: isa.Environment, Operation: 3, Variant: isa.VariantV}] = func(ctx *Ctx) Outcome {
		tv, found := target(ctx)
		if !found {
			return fail("ppk target out of bounds")
		}
		cellWord, err := ctx.Grid.GetMolecule(tv.Vector)
		if err != nil {
			return fail(err.Error())
		}
		regVal := ctx.Operand(1).Value
		if err := ctx.Grid.SetMoleculeOwned(molecule.Word(regVal.Scalar), ctx.Org.ID, tv.Vector); err != nil {
			return fail(err.Error())
		}
		ctx.WriteBack(1, organism.Value{Scalar: uint32(cellWord)})
		return ok()
	}
}

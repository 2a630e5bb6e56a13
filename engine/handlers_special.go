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
	"encoding/binary"

	"golang.org/x/crypto/sha3"

	"github.com/evochora/evochora/isa"
	"github.com/evochora/evochora/molecule"
)

func registerSpecial(h map[isa.ID]Handler) {
	fork := func(ctx *Ctx, delta []int32, energy int32, childDV []int32) Outcome {
		if delta == nil || childDV == nil {
			return fail("fork requires a delta and a child direction vector")
		}
		if !isUnitVector(childDV) {
			return fail("fork child direction vector must be a unit vector")
		}
		if energy <= 0 || int64(energy) > ctx.Org.ER {
			return fail("insufficient energy to fork")
		}
		pos, err := ctx.Grid.Step(ctx.Org.IP, delta)
		if err != nil {
			return fail(err.Error())
		}
		child, err := ctx.Hooks.Spawn(ctx.Org, pos, childDV, int64(energy))
		if err != nil {
			return fail(err.Error())
		}
		ctx.Org.ER -= int64(energy)
		ctx.Grid.TransferOwnership(ctx.Org.ID, child.ID, ctx.Org.MR)
		return ok()
	}

	h[isa.ID{Family: isa.Special, Operation: 0, Variant: isa.VariantR}] = func(ctx *Ctx) Outcome {
		delta := ctx.Operand(0).Value.Vector
		energy := scalarOf(ctx.Operand(1).Value)
		dv := ctx.Operand(2).Value.Vector
		return fork(ctx, delta, energy, dv)
	}
	h[isa.ID{Family: isa.Special, Operation: 0, Variant: isa.VariantI}] = func(ctx *Ctx) Outcome {
		delta := ctx.Operand(0).Value.Vector
		energy := scalarOf(ctx.Operand(1).Value)
		dv := ctx.Operand(2).Value.Vector
		return fork(ctx, delta, energy, dv)
	}
	h[isa.ID{Family: isa.Special, Operation: 0, Variant: isa.VariantS}] = func(ctx *Ctx) Outcome {
		dv, ok1 := ctx.Pop()
		nrg, ok2 := ctx.Pop()
		delta, ok3 := ctx.Pop()
		if !ok1 || !ok2 || !ok3 {
			return fail("stack underflow")
		}
		return fork(ctx, delta.Vector, scalarOf(nrg), dv.Vector)
	}

	hash := func(v []int32) int32 {
		buf := make([]byte, 4*len(v))
		for i, n := range v {
			binary.LittleEndian.PutUint32(buf[i*4:], uint32(n))
		}
		digest := sha3.Sum256(buf)
		raw := binary.LittleEndian.Uint32(digest[:4]) & molecule.ValueMask
		return molecule.Word(molecule.Pack(molecule.Data, int32(raw), 0)).ToScalar()
	}

	h[isa.ID{Family: isa.Special, Operation: opHashOp, Variant: isa.VariantR}] = func(ctx *Ctx) Outcome {
		v := ctx.Operand(1).Value.Vector
		if v == nil {
			v = []int32{scalarOf(ctx.Operand(1).Value)}
		}
		ctx.WriteBack(0, dataValue(hash(v)))
		return ok()
	}
	h[isa.ID{Family: isa.Special, Operation: opHashOp, Variant: isa.VariantS}] = func(ctx *Ctx) Outcome {
		top, okPop := ctx.Pop()
		if !okPop {
			return fail("stack underflow")
		}
		v := top.Vector
		if v == nil {
			v = []int32{scalarOf(top)}
		}
		ctx.Push(dataValue(hash(v)))
		return ok()
	}
}

// opHashOp is HASH's Operation id within the Special family (opFork is 0).
const opHashOp = 1

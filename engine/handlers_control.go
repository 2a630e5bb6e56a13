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
	"github.com/evochora/evochora/organism"
)

func registerControl(h map[isa.ID]Handler) {
	jumpTo := func(ctx *Ctx, target organism.Value) Outcome {
		if target.Vector == nil {
			return fail("jump target is not a coordinate")
		}
		ctx.Org.IP = append([]int32(nil), target.Vector...)
		return jumped()
	}

	h[isa.ID{Family: isa.Control, Operation: 0, Variant: isa.VariantLR}] = func(ctx *Ctx) Outcome {
		hash := ctx.Operand(0).Value.Scalar
		lineage := ctx.Hooks.Lineage(ctx.Org.ID)
		from := ctx.Grid.CoordToFlat(ctx.Org.IP)
		coord, found := ctx.Grid.Labels().FindTarget(hash, lineage, from, ctx.Grid)
		if !found {
			return fail("label not found")
		}
		ctx.Org.IP = coord
		return jumped()
	}
	h[isa.ID{Family: isa.Control, Operation: 1, Variant: isa.VariantI}] = func(ctx *Ctx) Outcome {
		offset := ctx.Operand(0).Value.Vector
		if offset == nil {
			return fail("missing jump offset")
		}
		target, err := ctx.Grid.Step(ctx.NextIP, offset)
		if err != nil {
			return fail(err.Error())
		}
		ctx.Org.IP = target
		return jumped()
	}
	h[isa.ID{Family: isa.Control, Operation: 2, Variant: isa.VariantR}] = func(ctx *Ctx) Outcome {
		return jumpTo(ctx, ctx.Operand(0).Value)
	}
	h[isa.ID{Family: isa.Control, Operation: 3, Variant: isa.VariantS}] = func(ctx *Ctx) Outcome {
		v, ok1 := ctx.Pop()
		if !ok1 {
			return fail("stack underflow")
		}
		return jumpTo(ctx, v)
	}

	h[isa.ID{Family: isa.Control, Operation: 4, Variant: isa.VariantLR}] = func(ctx *Ctx) Outcome {
		hash := ctx.Operand(0).Value.Scalar
		lineage := ctx.Hooks.Lineage(ctx.Org.ID)
		from := ctx.Grid.CoordToFlat(ctx.Org.IP)
		coord, found := ctx.Grid.Labels().FindTarget(hash, lineage, from, ctx.Grid)
		if !found {
			return fail("call target not found")
		}
		ctx.Org.CallStack = append(ctx.Org.CallStack, organism.Frame{
			ReturnIP:      ctx.NextIP,
			SavedDV:       append([]int32(nil), ctx.Org.DV...),
			SavedPRs:      append([]organism.Value(nil), ctx.Org.PR...),
			SavedActiveDP: ctx.Org.ActiveDPIdx,
			FPRBindings:   append([]organism.Value(nil), ctx.Org.FPR...),
		})
		ctx.Org.IP = coord
		return jumped()
	}
	h[isa.ID{Family: isa.Control, Operation: 5, Variant: isa.VariantNone}] = func(ctx *Ctx) Outcome {
		n := len(ctx.Org.CallStack)
		if n == 0 {
			return fail("call stack underflow")
		}
		frame := ctx.Org.CallStack[n-1]
		ctx.Org.CallStack = ctx.Org.CallStack[:n-1]
		ctx.Org.IP = frame.ReturnIP
		ctx.Org.DV = frame.SavedDV
		ctx.Org.PR = frame.SavedPRs
		ctx.Org.ActiveDPIdx = frame.SavedActiveDP
		ctx.Org.FPR = frame.FPRBindings
		return jumped()
	}
	h[isa.ID{Family: isa.Control, Operation: 6, Variant: isa.VariantNone}] = func(ctx *Ctx) Outcome {
		ctx.Org.IP = ctx.NextIP
		return Outcome{AdvanceIP: false, Break: true}
	}
	h[isa.ID{Family: isa.Control, Operation: 7, Variant: isa.VariantNone}] = func(ctx *Ctx) Outcome {
		return ok()
	}
}

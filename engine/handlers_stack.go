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

import "github.com/evochora/evochora/isa"

func registerStack(h map[isa.ID]Handler) {
	h[isa.ID{Family: isa.Stack, Operation: 0, Variant: isa.VariantR}] = func(ctx *Ctx) Outcome {
		ctx.Push(ctx.Operand(0).Value)
		return ok()
	}
	h[isa.ID{Family: isa.Stack, Operation: 0, Variant: isa.VariantI}] = func(ctx *Ctx) Outcome {
		ctx.Push(ctx.Operand(0).Value)
		return ok()
	}
	h[isa.ID{Family: isa.Stack, Operation: 1, Variant: isa.VariantR}] = func(ctx *Ctx) Outcome {
		v, ok1 := ctx.Pop()
		if !ok1 {
			return fail("stack underflow")
		}
		ctx.WriteBack(0, v)
		return ok()
	}
	h[isa.ID{Family: isa.Stack, Operation: 2, Variant: isa.VariantNone}] = func(ctx *Ctx) Outcome {
		v, ok1 := ctx.Pop()
		if !ok1 {
			return fail("stack underflow")
		}
		ctx.Push(v)
		ctx.Push(v)
		return ok()
	}
	h[isa.ID{Family: isa.Stack, Operation: 3, Variant: isa.VariantNone}] = func(ctx *Ctx) Outcome {
		a, ok1 := ctx.Pop()
		b, ok2 := ctx.Pop()
		if !ok1 || !ok2 {
			return fail("stack underflow")
		}
		ctx.Push(a)
		ctx.Push(b)
		return ok()
	}
	h[isa.ID{Family: isa.Stack, Operation: 4, Variant: isa.VariantNone}] = func(ctx *Ctx) Outcome {
		if _, ok1 := ctx.Pop(); !ok1 {
			return fail("stack underflow")
		}
		return ok()
	}
	h[isa.ID{Family: isa.Stack, Operation: 5, Variant: isa.VariantNone}] = func(ctx *Ctx) Outcome {
		a, ok1 := ctx.Pop()
		b, ok2 := ctx.Pop()
		c, ok3 := ctx.Pop()
		if !ok1 || !ok2 || !ok3 {
			return fail("stack underflow")
		}
		// a=top, b=second, c=third -> third moves to top, others shift down
		ctx.Push(b)
		ctx.Push(a)
		ctx.Push(c)
		return ok()
	}
}

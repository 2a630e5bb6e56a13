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
	"github.com/holiman/uint256"

	"github.com/evochora/evochora/isa"
	"github.com/evochora/evochora/molecule"
	"github.com/evochora/evochora/organism"
)

// scalarOf decodes a Value holding raw molecule.Word bits into its signed
// scalar payload.
func scalarOf(v organism.Value) int32 {
	return molecule.Word(v.Scalar).ToScalar()
}

// dataValue packs n as a DATA molecule and wraps it as a Value, the
// convention every arithmetic/bitwise result is returned in.
func dataValue(n int32) organism.Value {
	return organism.Value{Scalar: uint32(molecule.Pack(molecule.Data, n, 0))}
}

// binHandler builds a Handler for a two-operand R/I/S opcode: R and I
// write their result back into the first operand's register ("a = a OP
// b"); S pops op1 (top) then op2 (second) and pushes op2 OP op1, matching
// the stack-variant operand order.
func binHandler(fn func(a, b int32) (int32, bool)) Handler {
	return func(ctx *Ctx) Outcome {
		if ctx.Def.ID.Variant == isa.VariantS {
			op1, ok1 := ctx.Pop()
			op2, ok2 := ctx.Pop()
			if !ok1 || !ok2 {
				return fail("stack underflow")
			}
			res, valid := fn(scalarOf(op2), scalarOf(op1))
			if !valid {
				return fail("arithmetic fault")
			}
			ctx.Push(dataValue(res))
			return ok()
		}
		a := scalarOf(ctx.Operand(0).Value)
		b := scalarOf(ctx.Operand(1).Value)
		res, valid := fn(a, b)
		if !valid {
			return fail("arithmetic fault")
		}
		ctx.WriteBack(0, dataValue(res))
		return ok()
	}
}

// unaryHandler builds a Handler for a single-operand R/S opcode.
func unaryHandler(fn func(a int32) int32) Handler {
	return func(ctx *Ctx) Outcome {
		if ctx.Def.ID.Variant == isa.VariantS {
			op, ok1 := ctx.Pop()
			if !ok1 {
				return fail("stack underflow")
			}
			ctx.Push(dataValue(fn(scalarOf(op))))
			return ok()
		}
		a := scalarOf(ctx.Operand(0).Value)
		ctx.WriteBack(0, dataValue(fn(a)))
		return ok()
	}
}

func registerArithmetic(h map[isa.ID]Handler) {
	add := func(a, b int32) (int32, bool) { return a + b, true }
	sub := func(a, b int32) (int32, bool) { return a - b, true }
	mul := func(a, b int32) (int32, bool) { return a * b, true }
	div := func(a, b int32) (int32, bool) {
		if b == 0 {
			return 0, false
		}
		return a / b, true
	}
	mod := func(a, b int32) (int32, bool) {
		if b == 0 {
			return 0, false
		}
		return a % b, true
	}
	min := func(a, b int32) (int32, bool) {
		if a < b {
			return a, true
		}
		return b, true
	}
	max := func(a, b int32) (int32, bool) {
		if a > b {
			return a, true
		}
		return b, true
	}

	for _, v := range []isa.Variant{isa.VariantR, isa.VariantI, isa.VariantS} {
		h[isa.ID{Family: isa.Arithmetic, Operation: 0, Variant: v}] = binHandler(add)
		h[isa.ID{Family: isa.Arithmetic, Operation: 1, Variant: v}] = binHandler(sub)
		h[isa.ID{Family: isa.Arithmetic, Operation: 2, Variant: v}] = binHandler(mul)
		h[isa.ID{Family: isa.Arithmetic, Operation: 3, Variant: v}] = binHandler(div)
		h[isa.ID{Family: isa.Arithmetic, Operation: 4, Variant: v}] = binHandler(mod)
		h[isa.ID{Family: isa.Arithmetic, Operation: 5, Variant: v}] = binHandler(min)
		h[isa.ID{Family: isa.Arithmetic, Operation: 6, Variant: v}] = binHandler(max)
	}

	neg := func(a int32) int32 { return -a }
	abs := func(a int32) int32 {
		if a < 0 {
			return -a
		}
		return a
	}
	inc := func(a int32) int32 { return a + 1 }
	dec := func(a int32) int32 { return a - 1 }
	sgn := func(a int32) int32 {
		switch {
		case a > 0:
			return 1
		case a < 0:
			return -1
		default:
			return 0
		}
	}
	for _, v := range []isa.Variant{isa.VariantR, isa.VariantS} {
		h[isa.ID{Family: isa.Arithmetic, Operation: 7, Variant: v}] = unaryHandler(neg)
		h[isa.ID{Family: isa.Arithmetic, Operation: 8, Variant: v}] = unaryHandler(abs)
		h[isa.ID{Family: isa.Arithmetic, Operation: 9, Variant: v}] = unaryHandler(inc)
		h[isa.ID{Family: isa.Arithmetic, Operation: 10, Variant: v}] = unaryHandler(dec)
		h[isa.ID{Family: isa.Arithmetic, Operation: 11, Variant: v}] = unaryHandler(sgn)
	}

	h[isa.ID{Family: isa.Arithmetic, Operation: 12, Variant: isa.VariantR}] = func(ctx *Ctx) Outcome {
		v1 := ctx.Operand(1).Value.Vector
		v2 := ctx.Operand(2).Value.Vector
		if v1 == nil || v2 == nil || len(v1) != len(v2) {
			return fail("DOT requires two vectors of equal arity")
		}
		var terms []int64
		for i := range v1 {
			terms = append(terms, int64(v1[i])*int64(v2[i]))
		}
		ctx.WriteBack(0, dataValue(clampInt32(sumTerms(terms))))
		return ok()
	}
	h[isa.ID{Family: isa.Arithmetic, Operation: 13, Variant: isa.VariantR}] = func(ctx *Ctx) Outcome {
		v1 := ctx.Operand(1).Value.Vector
		v2 := ctx.Operand(2).Value.Vector
		if v1 == nil || v2 == nil || len(v1) != 2 || len(v2) != 2 {
			return fail("CRS requires two 2-dimensional vectors")
		}
		cross := sumTerms([]int64{int64(v1[0]) * int64(v2[1]), -int64(v1[1]) * int64(v2[0])})
		ctx.WriteBack(0, dataValue(clampInt32(cross)))
		return ok()
	}
}

// sumTerms accumulates signed products via uint256, matching a
// production chain VM's fixed-width integer discipline instead of
// relying on implicit int64 wraparound for the DOT/CRS accumulation
// path. Positive and negative terms are summed separately in unsigned
// 256-bit space, then combined, so overflow of the *accumulator* (as
// opposed to the final clamp to the 19-bit value range) can never
// silently wrap.
func sumTerms(terms []int64) int64 {
	pos, neg := new(uint256.Int), new(uint256.Int)
	for _, t := range terms {
		if t >= 0 {
			pos.AddUint64(pos, uint64(t))
		} else {
			neg.AddUint64(neg, uint64(-t))
		}
	}
	if pos.Cmp(neg) >= 0 {
		return int64(new(uint256.Int).Sub(pos, neg).Uint64())
	}
	return -int64(new(uint256.Int).Sub(neg, pos).Uint64())
}

func clampInt32(v int64) int32 {
	const max = 1<<18 - 1
	const min = -(1 << 18)
	if v > max {
		return max
	}
	if v < min {
		return min
	}
	return int32(v)
}

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

// isUnitVector reports whether v has exactly one nonzero axis, of
// magnitude 1 — the only direction vectors TURN and FORK accept.
func isUnitVector(v []int32) bool {
	nonzero := 0
	for _, c := range v {
		switch c {
		case 0:
		case 1, -1:
			nonzero++
		default:
			return false
		}
	}
	return nonzero == 1
}

// vectorOperand resolves operand i from either a register/immediate
// vector (R/I) or the data stack (S), per the opcode's own variant.
func vectorOperand(ctx *Ctx, i int) ([]int32, bool) {
	if ctx.Def.ID.Variant == isa.VariantS {
		v, ok := ctx.Pop()
		if !ok {
			return nil, false
		}
		return v.Vector, v.Vector != nil
	}
	val := ctx.Operand(i).Value
	return val.Vector, val.Vector != nil
}

// scalarStateOperand resolves operand i from a register/immediate scalar
// (R/I) or the data stack (S).
func scalarStateOperand(ctx *Ctx, i int) (int32, bool) {
	if ctx.Def.ID.Variant == isa.VariantS {
		v, ok := ctx.Pop()
		if !ok {
			return 0, false
		}
		return scalarOf(v), true
	}
	return scalarOf(ctx.Operand(i).Value), true
}

func writeOrPush(ctx *Ctx, v organism.Value) {
	if ctx.Def.ID.Variant == isa.VariantS {
		ctx.Push(v)
		return
	}
	ctx.WriteBack(0, v)
}

func registerState(h map[isa.ID]Handler) {
	h[isa.ID{Family: isa.State, Operation: 0, Variant: isa.VariantR}] = turnHandler
	h[isa.ID{Family: isa.State, Operation: 0, Variant: isa.VariantI}] = turnHandler
	h[isa.ID{Family: isa.State, Operation: 0, Variant: isa.VariantS}] = turnHandler

	h[isa.ID{Family: isa.State, Operation: 1, Variant: isa.VariantNone}] = func(ctx *Ctx) Outcome {
		ctx.Org.SetActiveDP(append([]int32(nil), ctx.Org.IP...))
		return ok()
	}

	regOnly := func(readVal func(ctx *Ctx) organism.Value) Handler {
		return func(ctx *Ctx) Outcome {
			writeOrPush(ctx, readVal(ctx))
			return ok()
		}
	}
	h[isa.ID{Family: isa.State, Operation: 2, Variant: isa.VariantR}] = regOnly(func(ctx *Ctx) organism.Value { return dataValue(clampInt32(ctx.Org.ER)) })
	h[isa.ID{Family: isa.State, Operation: 2, Variant: isa.VariantS}] = regOnly(func(ctx *Ctx) organism.Value { return dataValue(clampInt32(ctx.Org.ER)) })
	h[isa.ID{Family: isa.State, Operation: 3, Variant: isa.VariantR}] = regOnly(func(ctx *Ctx) organism.Value { return dataValue(clampInt32(ctx.Org.SR)) })
	h[isa.ID{Family: isa.State, Operation: 3, Variant: isa.VariantS}] = regOnly(func(ctx *Ctx) organism.Value { return dataValue(clampInt32(ctx.Org.SR)) })
	h[isa.ID{Family: isa.State, Operation: 4, Variant: isa.VariantR}] = regOnly(func(ctx *Ctx) organism.Value {
		return organism.Value{Vector: append([]int32(nil), ctx.Org.IP...)}
	})
	h[isa.ID{Family: isa.State, Operation: 4, Variant: isa.VariantS}] = regOnly(func(ctx *Ctx) organism.Value {
		return organism.Value{Vector: append([]int32(nil), ctx.Org.IP...)}
	})
	h[isa.ID{Family: isa.State, Operation: 5, Variant: isa.VariantR}] = regOnly(func(ctx *Ctx) organism.Value {
		dp, ip := ctx.Org.ActiveDP(), ctx.Org.IP
		diff := make([]int32, len(ip))
		for i := range ip {
			diff[i] = dp[i] - ip[i]
		}
		return organism.Value{Vector: diff}
	})
	h[isa.ID{Family: isa.State, Operation: 5, Variant: isa.VariantS}] = h[isa.ID{Family: isa.State, Operation: 5, Variant: isa.VariantR}]

	for _, v := range []isa.Variant{isa.VariantR, isa.VariantI, isa.VariantS} {
		vv := v
		h[isa.ID{Family: isa.State, Operation: 6, Variant: vv}] = func(ctx *Ctx) Outcome {
			offset, valid := vectorOperand(ctx, 0)
			if !valid {
				return fail("seek requires a vector")
			}
			next, err := ctx.Grid.Step(ctx.Org.ActiveDP(), offset)
			if err != nil {
				return fail(err.Error())
			}
			ctx.Org.SetActiveDP(next)
			return ok()
		}
	}

	h[isa.ID{Family: isa.State, Operation: 7, Variant: isa.VariantR}] = regOnly(func(ctx *Ctx) organism.Value {
		return organism.Value{Vector: append([]int32(nil), ctx.Org.DV...)}
	})
	h[isa.ID{Family: isa.State, Operation: 7, Variant: isa.VariantS}] = regOnly(func(ctx *Ctx) organism.Value {
		return organism.Value{Vector: append([]int32(nil), ctx.Org.DV...)}
	})

	for _, v := range []isa.Variant{isa.VariantR, isa.VariantI, isa.VariantS} {
		vv := v
		h[isa.ID{Family: isa.State, Operation: 8, Variant: vv}] = func(ctx *Ctx) Outcome {
			idx, valid := scalarStateOperand(ctx, 0)
			if !valid || idx < 0 || int(idx) >= len(ctx.Org.DPs) {
				return fail("invalid data pointer index")
			}
			ctx.Org.ActiveDPIdx = int(idx)
			return ok()
		}
	}

	for _, v := range []isa.Variant{isa.VariantR, isa.VariantI, isa.VariantS} {
		vv := v
		h[isa.ID{Family: isa.State, Operation: 9, Variant: vv}] = func(ctx *Ctx) Outcome {
			m, valid := scalarStateOperand(ctx, 0)
			if !valid {
				return fail("stack underflow")
			}
			ctx.Org.MR = uint8(m)
			return ok()
		}
	}

	h[isa.ID{Family: isa.State, Operation: 10, Variant: isa.VariantR}] = regOnly(func(ctx *Ctx) organism.Value { return dataValue(int32(ctx.Org.MR)) })
	h[isa.ID{Family: isa.State, Operation: 10, Variant: isa.VariantS}] = regOnly(func(ctx *Ctx) organism.Value { return dataValue(int32(ctx.Org.MR)) })

	for _, v := range []isa.Variant{isa.VariantR, isa.VariantI, isa.VariantS} {
		vv := v
		h[isa.ID{Family: isa.State, Operation: 11, Variant: vv}] = func(ctx *Ctx) Outcome {
			m, valid := scalarStateOperand(ctx, 0)
			if !valid {
				return fail("stack underflow")
			}
			ctx.Grid.ClearOwnershipForMarker(ctx.Org.ID, uint8(m))
			return ok()
		}
	}
}

func turnHandler(ctx *Ctx) Outcome {
	offset, valid := vectorOperand(ctx, 0)
	if !valid || !isUnitVector(offset) {
		return fail("DV must be a unit vector")
	}
	ctx.Org.DV = append([]int32(nil), offset...)
	return ok()
}

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

func registerBitwise(h map[isa.ID]Handler) {
	and := func(a, b int32) (int32, bool) { return a & b, true }
	or := func(a, b int32) (int32, bool) { return a | b, true }
	xor := func(a, b int32) (int32, bool) { return a ^ b, true }
	shl := func(a, b int32) (int32, bool) { return a << uint32(b&31), true }
	shr := func(a, b int32) (int32, bool) { return a >> uint32(b&31), true }

	for _, v := range []isa.Variant{isa.VariantR, isa.VariantI, isa.VariantS} {
		h[isa.ID{Family: isa.Bitwise, Operation: 0, Variant: v}] = binHandler(and)
		h[isa.ID{Family: isa.Bitwise, Operation: 1, Variant: v}] = binHandler(or)
		h[isa.ID{Family: isa.Bitwise, Operation: 2, Variant: v}] = binHandler(xor)
		h[isa.ID{Family: isa.Bitwise, Operation: 3, Variant: v}] = binHandler(shl)
		h[isa.ID{Family: isa.Bitwise, Operation: 4, Variant: v}] = binHandler(shr)
	}

	not := func(a int32) int32 { return ^a }
	for _, v := range []isa.Variant{isa.VariantR, isa.VariantS} {
		h[isa.ID{Family: isa.Bitwise, Operation: 5, Variant: v}] = unaryHandler(not)
	}
}

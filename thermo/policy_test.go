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

package thermo

import (
	"testing"

	"github.com/evochora/evochora/isa"
)

func TestChargeFallsBackToFamilyDefault(t *testing.T) {
	p := Default()
	id := isa.ID{Family: isa.Stack, Operation: 0, Variant: isa.VariantR}
	got := p.Charge(id)
	want := p.FamilyDefault[isa.Stack]
	if got != want {
		t.Fatalf("Charge(%+v) = %+v, want family default %+v", id, got, want)
	}
}

func TestChargeHonorsOverride(t *testing.T) {
	p := Default()
	mulR := isa.ID{Family: isa.Arithmetic, Operation: 2, Variant: isa.VariantR}
	got := p.Charge(mulR)
	if got == p.FamilyDefault[isa.Arithmetic] {
		t.Fatalf("MUL should use its override, got family default %+v", got)
	}
	if got.Energy != 5 {
		t.Fatalf("MUL energy = %d, want 5", got.Energy)
	}
}

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

package organism

import (
	"testing"

	"github.com/evochora/evochora/env"
)

func newTestOrganism() *Organism {
	return New(1, 0, 0, env.Coord{2, 3}, []int32{1, 0}, 100, BankSizes{NumDR: 4, NumPR: 2, NumFPR: 2, NumLR: 2, NumDPs: 2})
}

func TestNewInitializesDPsAndLRToBirthPosition(t *testing.T) {
	o := newTestOrganism()
	for i, dp := range o.DPs {
		if !dp.Equal(env.Coord{2, 3}) {
			t.Fatalf("DP[%d] = %v, want birth position", i, dp)
		}
	}
	for i, lr := range o.LR {
		if !lr.Equal(env.Coord{2, 3}) {
			t.Fatalf("LR[%d] = %v, want birth position", i, lr)
		}
	}
}

func TestRegisterValueFlatNumberingAcrossBanks(t *testing.T) {
	o := newTestOrganism()
	o.DR[0] = Value{Scalar: 11}
	o.PR[0] = Value{Scalar: 22}
	o.FPR[0] = Value{Scalar: 33}

	cases := []struct {
		flat int
		want uint32
	}{
		{0, 11},  // DR0
		{4, 22},  // PR0 (after 4 DRs)
		{6, 33},  // FPR0 (after 4 DRs + 2 PRs)
	}
	for _, c := range cases {
		v, ok := o.RegisterValue(c.flat)
		if !ok {
			t.Fatalf("RegisterValue(%d) not found", c.flat)
		}
		if v.Scalar != c.want {
			t.Fatalf("RegisterValue(%d) = %d, want %d", c.flat, v.Scalar, c.want)
		}
	}
}

func TestRegisterValueResolvesLRAsVector(t *testing.T) {
	o := newTestOrganism()
	lrFlat := 4 + 2 + 2 // past DR, PR, FPR
	o.LR[0] = env.Coord{9, 9}
	v, ok := o.RegisterValue(lrFlat)
	if !ok || !v.IsVector() {
		t.Fatalf("expected LR0 to resolve as a vector, got %+v ok=%v", v, ok)
	}
	if v.Vector[0] != 9 || v.Vector[1] != 9 {
		t.Fatalf("LR0 vector = %v, want {9,9}", v.Vector)
	}
}

func TestSetRegisterValueOutOfRange(t *testing.T) {
	o := newTestOrganism()
	if o.SetRegisterValue(999, Value{Scalar: 1}) {
		t.Fatal("expected out-of-range flat id to fail")
	}
}

func TestClampEnergyAndEntropy(t *testing.T) {
	o := newTestOrganism()
	o.ER = -5
	o.ClampEnergy(1000)
	if o.ER != 0 {
		t.Fatalf("ER = %d, want clamped to 0", o.ER)
	}
	o.SR = 5000
	o.ClampEntropy(1000)
	if o.SR != 1000 {
		t.Fatalf("SR = %d, want clamped to 1000", o.SR)
	}
}

func TestFailAndClearFailure(t *testing.T) {
	o := newTestOrganism()
	o.Fail("division by zero")
	if !o.FailureFlag || o.FailureReason != "division by zero" {
		t.Fatalf("Fail did not set flag/reason: %+v", o)
	}
	o.ClearFailure()
	if o.FailureFlag || o.FailureReason != "" {
		t.Fatalf("ClearFailure left state: %+v", o)
	}
}

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

func TestSaveLoadOrganismRoundTrip(t *testing.T) {
	o := New(5, 2, 10, env.Coord{1, 2}, []int32{1, 0}, 500, BankSizes{NumDR: 2, NumPR: 2, NumFPR: 1, NumLR: 1, NumDPs: 1})
	o.DR[0] = Value{Scalar: 42}
	o.DataStack = append(o.DataStack, Value{Vector: []int32{3, 4}})
	o.CallStack = append(o.CallStack, Frame{ReturnIP: env.Coord{9, 9}, SavedDV: []int32{0, 1}, SavedActiveDP: 0})
	o.ER = 321
	o.SR = 12
	o.Fail("division by zero")

	data := o.SaveState()
	restored, n, err := LoadOrganism(data)
	if err != nil {
		t.Fatalf("LoadOrganism: %v", err)
	}
	if n != len(data) {
		t.Fatalf("consumed %d bytes, want %d", n, len(data))
	}
	if restored.ID != o.ID || restored.ParentID != o.ParentID || restored.ER != o.ER || restored.SR != o.SR {
		t.Fatalf("scalar fields mismatch: %+v vs %+v", restored, o)
	}
	if !restored.IP.Equal(o.IP) {
		t.Fatalf("IP mismatch: %v vs %v", restored.IP, o.IP)
	}
	if restored.DR[0].Scalar != 42 {
		t.Fatalf("DR0 = %+v, want Scalar 42", restored.DR[0])
	}
	if len(restored.DataStack) != 1 || restored.DataStack[0].Vector[1] != 4 {
		t.Fatalf("data stack mismatch: %+v", restored.DataStack)
	}
	if !restored.FailureFlag || restored.FailureReason != "division by zero" {
		t.Fatalf("failure state mismatch: %+v", restored)
	}
}

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

package molecule

import "testing"

func TestPackUnpackRoundTrip(t *testing.T) {
	cases := []struct {
		name   string
		typ    Type
		value  int32
		marker uint8
	}{
		{"zero", Code, 0, 0},
		{"positive", Data, 15, 3},
		{"negative", Data, -77, 9},
		{"maxPositive", Energy, (1 << (ValueBits - 1)) - 1, 0},
		{"minNegative", Structure, -(1 << (ValueBits - 1)), 0xF},
		{"markerOverflowMasked", Label, 5, 0x1F}, // marker masked to 4 bits
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := Pack(c.typ, c.value, c.marker)
			gotType, gotRaw, gotMarker := w.Unpack()
			wantRaw := uint32(c.value) & ValueMask
			wantMarker := c.marker & 0xF
			if gotType != c.typ || gotRaw != wantRaw || gotMarker != wantMarker {
				t.Fatalf("Unpack(Pack(%v,%d,%d)) = (%v,%d,%d), want (%v,%d,%d)",
					c.typ, c.value, c.marker, gotType, gotRaw, gotMarker, c.typ, wantRaw, wantMarker)
			}
		})
	}
}

func TestToScalarSignExtension(t *testing.T) {
	cases := []struct {
		value int32
	}{{0}, {1}, {-1}, {12345}, {-12345}, {262143}, {-262144}}
	for _, c := range cases {
		w := Pack(Data, c.value, 0)
		if got := w.ToScalar(); got != c.value {
			t.Fatalf("ToScalar(Pack(_, %d, _)) = %d, want %d", c.value, got, c.value)
		}
	}
}

func TestIsEmpty(t *testing.T) {
	if !Pack(Code, 0, 0).IsEmpty() {
		t.Fatal("Code:0 must be empty")
	}
	if Pack(Code, 0, 5).IsEmpty() == false {
		t.Fatal("marker must not affect emptiness")
	}
	if Pack(Code, 1, 0).IsEmpty() {
		t.Fatal("Code:1 must not be empty")
	}
	if Pack(Data, 0, 0).IsEmpty() {
		t.Fatal("Data:0 must not be empty")
	}
}

func TestWithMarker(t *testing.T) {
	w := Pack(Data, 42, 3)
	w2 := w.WithMarker(9)
	if w2.Marker() != 9 {
		t.Fatalf("WithMarker did not update marker: got %d", w2.Marker())
	}
	if w2.ToScalar() != 42 || w2.Type() != Data {
		t.Fatalf("WithMarker must not disturb type/value: %v", w2)
	}
	if w.WithMarker(0xFF).Marker() != 0xF {
		t.Fatal("marker must mask to 4 bits")
	}
}

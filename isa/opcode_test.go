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

package isa

import "testing"

func TestPackUnpackRoundTrip(t *testing.T) {
	ids := []ID{
		{Arithmetic, opAdd, VariantR},
		{Conditional, opIfType, VariantR},
		{Special, opFork, VariantS},
		{Control, opJmp, VariantLR},
	}
	for _, id := range ids {
		got := Unpack(id.Pack())
		if got != id {
			t.Fatalf("round trip %+v -> %+v", id, got)
		}
	}
}

func TestLookupByName(t *testing.T) {
	cases := []struct {
		name string
		fam  Family
	}{
		{"ADDR", Arithmetic},
		{"ADDI", Arithmetic},
		{"ADDS", Arithmetic},
		{"NOP", Control},
		{"JMP", Control},
		{"PEEK", Environment},
		{"IFMR", Conditional},
		{"FORKS", Special},
	}
	for _, c := range cases {
		def, ok := LookupName(c.name)
		if !ok {
			t.Fatalf("LookupName(%q) not found", c.name)
		}
		if def.ID.Family != c.fam {
			t.Fatalf("LookupName(%q).Family = %v, want %v", c.name, def.ID.Family, c.fam)
		}
	}
}

func TestAllNonEmpty(t *testing.T) {
	if len(All()) == 0 {
		t.Fatal("All() returned no opcodes")
	}
}

func TestTryInitIdempotent(t *testing.T) {
	TryInit()
	n1 := len(All())
	TryInit()
	n2 := len(All())
	if n1 != n2 {
		t.Fatalf("TryInit not idempotent: %d then %d entries", n1, n2)
	}
}

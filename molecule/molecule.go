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

// Package molecule implements the bit-packed 32-bit cell word shared by
// every cell of the environment grid: a (type, value, marker) triple with a
// fixed layout, analogous to the PROBE VM's fixed-width instruction word but
// one level further compressed (3 fields instead of 4).
package molecule

import "fmt"

// Type is the 4-bit kind tag of a molecule.
type Type uint8

const (
	// Code marks an executable cell. Code:0 is the canonical empty cell.
	Code Type = iota
	// Data marks a scalar or vector payload cell.
	Data
	// Energy marks a cell redeemable for organism energy via PEEK.
	Energy
	// Structure marks an immutable boundary cell (genome delimiters).
	Structure
	// Label marks a jump target resolvable by the label index.
	Label
	// LabelRef marks a symbolic reference to a Label's hash.
	LabelRef
	// Register marks a cell whose value selects a register id operand.
	Register
	// Empty is reserved; in practice IsEmpty is defined as Code with value 0,
	// but the tag exists so a molecule can be explicitly constructed as such.
	Empty
)

func (t Type) String() string {
	switch t {
	case Code:
		return "CODE"
	case Data:
		return "DATA"
	case Energy:
		return "ENERGY"
	case Structure:
		return "STRUCTURE"
	case Label:
		return "LABEL"
	case LabelRef:
		return "LABELREF"
	case Register:
		return "REGISTER"
	case Empty:
		return "EMPTY"
	default:
		return fmt.Sprintf("TYPE(%d)", uint8(t))
	}
}

// Word is a packed 32-bit molecule: type, value and marker.
//
// Layout, low bit to high bit:
//
//	value  [0:19)   19 bits, masked, sign-extended on scalar read
//	marker [19:23)  4 bits
//	type   [23:27)  4 bits, TypeShift = 23
//	       [27:32)  reserved, always zero
type Word uint32

const (
	// ValueBits is the width of the value field.
	ValueBits = 19
	// ValueMask masks a raw value to its 19-bit field.
	ValueMask uint32 = (1 << ValueBits) - 1
	// valueSignBit is the sign bit of the 19-bit two's-complement value.
	valueSignBit int32 = 1 << (ValueBits - 1)

	// MarkerShift is the bit offset of the marker field.
	MarkerShift = ValueBits
	// MarkerBits is the width of the marker field.
	MarkerBits = 4
	// MarkerMask masks a raw marker to its 4-bit field.
	MarkerMask uint32 = (1 << MarkerBits) - 1

	// TypeShift is the bit offset of the type field.
	TypeShift = MarkerShift + MarkerBits
	// TypeBits is the width of the type field.
	TypeBits = 4
	// TypeMask masks a raw type to its 4-bit field.
	TypeMask uint32 = (1 << TypeBits) - 1
)

// Pack builds a molecule word from its logical fields. value is masked to
// ValueBits (its sign is recovered by ToScalar, never by Pack), and marker
// is masked to MarkerBits, exactly as spec'd: packing is a total function.
func Pack(t Type, value int32, marker uint8) Word {
	v := uint32(value) & ValueMask
	m := uint32(marker) & MarkerMask
	ty := uint32(t) & TypeMask
	return Word(ty<<TypeShift | m<<MarkerShift | v)
}

// Unpack decomposes a word into its (type, raw value, marker) fields. The
// raw value is NOT sign-extended; use ToScalar for that.
func (w Word) Unpack() (t Type, rawValue uint32, marker uint8) {
	t = Type(uint32(w) >> TypeShift & TypeMask)
	marker = uint8(uint32(w) >> MarkerShift & MarkerMask)
	rawValue = uint32(w) & ValueMask
	return
}

// Type returns the molecule's type field.
func (w Word) Type() Type {
	return Type(uint32(w) >> TypeShift & TypeMask)
}

// RawValue returns the molecule's unsigned 19-bit value field.
func (w Word) RawValue() uint32 {
	return uint32(w) & ValueMask
}

// Marker returns the molecule's 4-bit marker field.
func (w Word) Marker() uint8 {
	return uint8(uint32(w) >> MarkerShift & MarkerMask)
}

// WithMarker returns a copy of w with its marker field replaced, masked to
// MarkerBits.
func (w Word) WithMarker(marker uint8) Word {
	t, v, _ := w.Unpack()
	return Pack(t, int32(v), marker)
}

// ToScalar sign-extends the raw 19-bit value to a native signed integer, the
// inverse of the encoding Pack performs on its value argument.
func (w Word) ToScalar() int32 {
	raw := int32(w.RawValue())
	if raw&valueSignBit != 0 {
		return raw - (1 << ValueBits)
	}
	return raw
}

// IsEmpty reports whether w is the canonical empty molecule: type CODE and
// value 0. Marker is not part of the emptiness test.
func (w Word) IsEmpty() bool {
	return w.Type() == Code && w.RawValue() == 0
}

// EmptyWord is the canonical empty molecule.
var EmptyWord = Pack(Code, 0, 0)

// FromScalar packs a signed scalar into a molecule of type t with the given
// marker, masking value into the 19-bit field the same way Pack does. It is a convenience used throughout engine handlers that write a
// freshly computed scalar back into a register or cell.
func FromScalar(t Type, value int32, marker uint8) Word {
	return Pack(t, value, marker)
}

func (w Word) String() string {
	t, _, m := w.Unpack()
	return fmt.Sprintf("%s:%d(m=%d)", t, w.ToScalar(), m)
}

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
	"fmt"

	"github.com/evochora/evochora/env"
	"github.com/evochora/evochora/isa"
	"github.com/evochora/evochora/organism"
)

// decodeOperands walks forward from the opcode cell at o.IP along o.DV,
// consuming one cell per declared REGISTER/IMMEDIATE/LABELREF/
// LOCATION_REGISTER source and arity-many cells per VECTOR source. STACK
// sources consume no cell at all — the handler pops the data stack
// itself. It returns the resolved operands and the coordinate one past the
// last cell consumed, which becomes the organism's next IP absent a
// control-flow override.
func decodeOperands(o *organism.Organism, g *env.Grid, def *isa.Def) ([]Operand, env.Coord, error) {
	cursor := o.IP
	var err error
	cursor, err = g.Step(cursor, o.DV) // past the opcode cell itself
	if err != nil {
		return nil, nil, err
	}

	ops := make([]Operand, 0, len(def.OperandSources))
	for _, src := range def.OperandSources {
		switch src {
		case isa.SrcRegister:
			m, e := g.GetMolecule(cursor)
			if e != nil {
				return nil, nil, e
			}
			flat := int(m.ToScalar())
			val, ok := o.RegisterValue(flat)
			if !ok {
				return nil, nil, fmt.Errorf("engine: register operand %d out of range", flat)
			}
			ops = append(ops, Operand{Source: src, Value: val, FromReg: true, RegFlatID: flat})
			cursor, err = g.Step(cursor, o.DV)
		case isa.SrcImmediate:
			m, e := g.GetMolecule(cursor)
			if e != nil {
				return nil, nil, e
			}
			ops = append(ops, Operand{Source: src, Value: organism.Value{Scalar: uint32(m)}})
			cursor, err = g.Step(cursor, o.DV)
		case isa.SrcVector:
			vec := make([]int32, o.Arity)
			for i := 0; i < o.Arity; i++ {
				m, e := g.GetMolecule(cursor)
				if e != nil {
					return nil, nil, e
				}
				vec[i] = m.ToScalar()
				cursor, err = g.Step(cursor, o.DV)
				if err != nil {
					return nil, nil, err
				}
			}
			ops = append(ops, Operand{Source: src, Value: organism.Value{Vector: vec}})
		case isa.SrcLabelRef:
			m, e := g.GetMolecule(cursor)
			if e != nil {
				return nil, nil, e
			}
			ops = append(ops, Operand{Source: src, Value: organism.Value{Scalar: m.RawValue()}})
			cursor, err = g.Step(cursor, o.DV)
		case isa.SrcLocationRegister:
			m, e := g.GetMolecule(cursor)
			if e != nil {
				return nil, nil, e
			}
			idx := int(m.ToScalar())
			if idx < 0 || idx >= len(o.LR) {
				return nil, nil, fmt.Errorf("engine: location register %d out of range", idx)
			}
			ops = append(ops, Operand{Source: src, Value: organism.Value{Vector: o.LR[idx].Clone()}})
			cursor, err = g.Step(cursor, o.DV)
		case isa.SrcStack:
			// no cell consumed
		}
		if err != nil {
			return nil, nil, err
		}
	}
	return ops, cursor, nil
}

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

package plugins

import (
	"github.com/evochora/evochora/env"
	"github.com/evochora/evochora/isa"
	"github.com/evochora/evochora/organism"
	"github.com/evochora/evochora/prng"
)

// PointMutationPlugin inserts a single, complete instruction chain into a
// naturally-empty region of a newly-born organism's genome, with
// probability Config.Rate.
type PointMutationPlugin struct {
	Config PointMutationConfig
	Banks  organism.BankSizes
}

func (p *PointMutationPlugin) Name() string { return "point_mutation" }

func (p *PointMutationPlugin) OnPostBirth(g *env.Grid, child *organism.Organism, rng *prng.Provider) error {
	if rng.Float64() >= p.Config.Rate {
		return nil
	}
	catalogue := isa.All()
	def := catalogue[rng.Intn(len(catalogue))]

	operands := make([][]int32, len(def.OperandSources))
	for i, src := range def.OperandSources {
		switch src {
		case isa.SrcRegister:
			total := p.Banks.NumDR + p.Banks.NumPR + p.Banks.NumFPR + p.Banks.NumLR
			operands[i] = []int32{int32(rng.Intn(max1(total)))}
		case isa.SrcImmediate:
			span := p.Config.DataMax - p.Config.DataMin
			if span < 0 {
				span = 0
			}
			operands[i] = []int32{p.Config.DataMin + int32(rng.Intn(int(span)+1))}
		case isa.SrcVector:
			operands[i] = randomUnitVector(child.Arity, rng)
		case isa.SrcLabelRef:
			if rng.Float64() < p.Config.LabelRefExistingProbability {
				owned := g.Labels().OwnedLabels(child.ID, g)
				if len(owned) > 0 {
					hashes := make([]uint32, 0, len(owned))
					for h := range owned {
						hashes = append(hashes, h)
					}
					operands[i] = []int32{int32(hashes[rng.Intn(len(hashes))])}
					continue
				}
			}
			operands[i] = []int32{int32(rng.Intn(1 << 19))}
		case isa.SrcLocationRegister:
			operands[i] = []int32{int32(rng.Intn(max1(p.Banks.NumLR)))}
		case isa.SrcStack:
			operands[i] = nil
		}
	}

	n := instructionCellCount(def, child.Arity)
	line := scanLine(g, child.IP, child.DV)
	run := freeRun(g, line, n, rng)
	if run == nil {
		return nil
	}
	writeInstructionChain(g, run, child.ID, def, operands)
	return nil
}

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

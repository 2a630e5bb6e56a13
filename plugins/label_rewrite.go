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
	"github.com/evochora/evochora/molecule"
	"github.com/evochora/evochora/organism"
	"github.com/evochora/evochora/prng"
)

// LabelRewritePlugin XORs every child-owned LABEL and LABELREF value with
// a single random mask, which preserves the Hamming distance between any
// (label, labelref) pair — XOR with the same mask on both sides cancels
// out in the distance computation.
type LabelRewritePlugin struct {
	Config LabelRewriteConfig
}

func (p *LabelRewritePlugin) Name() string { return "label_rewrite" }

func (p *LabelRewritePlugin) OnPostBirth(g *env.Grid, child *organism.Organism, rng *prng.Provider) error {
	if rng.Float64() >= p.Config.Rate {
		return nil
	}
	mask := uint32(rng.Intn(1 << molecule.ValueBits))
	for flat := 0; flat < g.TotalCells(); flat++ {
		m, owner := g.Cell(flat)
		if owner != child.ID {
			continue
		}
		if m.Type() != molecule.Label && m.Type() != molecule.LabelRef {
			continue
		}
		rewritten := molecule.Pack(m.Type(), int32(m.RawValue()^mask), m.Marker())
		g.SetMolecule(rewritten, g.FlatToCoord(flat))
	}
	g.Labels().Rebuild(g)
	return nil
}

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
	"math"

	"github.com/evochora/evochora/env"
	"github.com/evochora/evochora/molecule"
	"github.com/evochora/evochora/organism"
	"github.com/evochora/evochora/prng"
)

// GeneDeletionPlugin removes one of a child's labeled blocks, weighted
// toward labels with more duplicate occurrences.
type GeneDeletionPlugin struct {
	Config GeneDeletionConfig
}

func (p *GeneDeletionPlugin) Name() string { return "gene_deletion" }

func (p *GeneDeletionPlugin) OnPostBirth(g *env.Grid, child *organism.Organism, rng *prng.Provider) error {
	if rng.Float64() >= p.Config.Rate {
		return nil
	}
	owned := g.Labels().OwnedLabels(child.ID, g)
	if len(owned) == 0 {
		return nil
	}
	hashes := make([]uint32, 0, len(owned))
	weights := make([]float64, 0, len(owned))
	for h, idxs := range owned {
		hashes = append(hashes, h)
		weights = append(weights, math.Pow(float64(len(idxs)), p.Config.Exponent))
	}
	pick := weightedPick(weights, rng)
	if pick < 0 {
		return nil
	}
	candidates := owned[hashes[pick]]
	labelFlat := candidates[rng.Intn(len(candidates))]
	labelCoord := g.FlatToCoord(labelFlat)

	block := scanLine(g, labelCoord, child.DV)
	blockStart := 0
	for i, c := range block {
		if c.Equal(labelCoord) {
			blockStart = i
			break
		}
	}
	for i, c := range block[blockStart:] {
		owner, err := g.GetOwner(c)
		if err != nil {
			break
		}
		m, _ := g.GetMolecule(c)
		if i > 0 && m.Type() == molecule.Label {
			break
		}
		if owner != child.ID {
			break
		}
		g.SetMolecule(molecule.EmptyWord, c)
	}
	return nil
}

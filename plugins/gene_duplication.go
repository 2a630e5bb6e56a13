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

// GeneDuplicationPlugin copies a labeled code block from a child's genome
// into a large-enough NOP area elsewhere in its genome.
type GeneDuplicationPlugin struct {
	Config GeneDuplicationConfig
}

func (p *GeneDuplicationPlugin) Name() string { return "gene_duplication" }

func (p *GeneDuplicationPlugin) OnPostBirth(g *env.Grid, child *organism.Organism, rng *prng.Provider) error {
	if rng.Float64() >= p.Config.Rate {
		return nil
	}
	owned := g.Labels().OwnedLabels(child.ID, g)
	if len(owned) == 0 {
		return nil
	}
	hashes := make([]uint32, 0, len(owned))
	for h := range owned {
		hashes = append(hashes, h)
	}
	hash := hashes[rng.Intn(len(hashes))]
	candidates := owned[hash]
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
	block = block[blockStart:]
	// Truncate at the next LABEL cell (exclusive), keeping only this block.
	words := make([]molecule.Word, 0, len(block))
	for i, c := range block {
		m, err := g.GetMolecule(c)
		if err != nil {
			break
		}
		if i > 0 && m.Type() == molecule.Label {
			break
		}
		owner, _ := g.GetOwner(c)
		if owner != child.ID {
			break
		}
		words = append(words, m)
	}
	n := len(words)
	if n < p.Config.MinNopSize {
		return nil
	}

	line := scanLine(g, child.IP, child.DV)
	run := freeRun(g, line, n, rng)
	if run == nil {
		return nil
	}
	for i, w := range words {
		g.SetMoleculeOwned(w, child.ID, run[i])
	}
	return nil
}

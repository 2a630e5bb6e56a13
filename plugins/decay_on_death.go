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
)

// DecayOnDeath converts every cell owned by a dying organism into a
// configured replacement molecule. In "energy" mode the
// victim's remaining ER is spread evenly across its owned cells as ENERGY
// value; in "clear" mode owned cells are simply reset to CODE:0.
type DecayOnDeath struct {
	Config DecayOnDeathConfig
}

func (p *DecayOnDeath) Name() string { return "decay_on_death" }

func (p *DecayOnDeath) OnDeath(g *env.Grid, victim *organism.Organism) error {
	owned := make([]int, 0)
	for flat := 0; flat < g.TotalCells(); flat++ {
		_, owner := g.Cell(flat)
		if owner == victim.ID {
			owned = append(owned, flat)
		}
	}
	if len(owned) == 0 {
		return nil
	}

	if p.Config.Mode == "clear" {
		for _, flat := range owned {
			g.SetMolecule(molecule.EmptyWord, g.FlatToCoord(flat))
		}
		return nil
	}

	perCell := int32(victim.ER / int64(len(owned)))
	if perCell < 0 {
		perCell = 0
	}
	for _, flat := range owned {
		g.SetMolecule(molecule.Pack(molecule.Energy, perCell, 0), g.FlatToCoord(flat))
	}
	return nil
}

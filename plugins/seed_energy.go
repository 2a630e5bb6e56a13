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
	"github.com/evochora/evochora/prng"
)

// SeedEnergyCreator places ENERGY molecules in empty cells at simulation
// start until ENERGY cells make up Percentage of all the grid's cells
// (or no empty cell is left). It only ever
// runs at tick 0, and is idempotent: re-invoking it at tick 0 tops the
// grid up toward the same target rather than overshooting it.
type SeedEnergyCreator struct {
	Config SeedEnergyConfig
}

func (p *SeedEnergyCreator) Name() string { return "seed_energy" }

func (p *SeedEnergyCreator) OnTickZero(g *env.Grid, rng *prng.Provider) error {
	total := g.TotalCells()
	target := int(math.Round(p.Config.Percentage * float64(total)))

	existing := 0
	var emptyFlats []int
	for flat := 0; flat < total; flat++ {
		m, _ := g.Cell(flat)
		if m.Type() == molecule.Energy {
			existing++
			continue
		}
		if m.IsEmpty() {
			emptyFlats = append(emptyFlats, flat)
		}
	}
	need := target - existing
	if need <= 0 || len(emptyFlats) == 0 {
		return nil
	}
	if need > len(emptyFlats) {
		need = len(emptyFlats)
	}
	for i := len(emptyFlats) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		emptyFlats[i], emptyFlats[j] = emptyFlats[j], emptyFlats[i]
	}
	for _, flat := range emptyFlats[:need] {
		variance := (rng.Float64()*2 - 1) * p.Config.AmountVariance
		value := int32(math.Round(p.Config.Amount * (1 + variance)))
		g.SetMolecule(molecule.Pack(molecule.Energy, value, 0), g.FlatToCoord(flat))
	}
	return nil
}

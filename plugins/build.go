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

import "github.com/evochora/evochora/organism"

// BuildDefaultSet returns the standard plugin set, in registration order:
// point mutation, gene duplication, gene deletion, gene substitution,
// then label rewrite, plus the tick-0 energy seeder and death-time decay
// handler.
func BuildDefaultSet(cfg Config, banks organism.BankSizes) []Plugin {
	return []Plugin{
		&PointMutationPlugin{Config: cfg.PointMutation, Banks: banks},
		&GeneDuplicationPlugin{Config: cfg.GeneDuplication},
		&GeneDeletionPlugin{Config: cfg.GeneDeletion},
		&GeneSubstitutionPlugin{Config: cfg.GeneSubstitution, Banks: banks},
		&LabelRewritePlugin{Config: cfg.LabelRewrite},
		&SeedEnergyCreator{Config: cfg.SeedEnergy},
		&DecayOnDeath{Config: cfg.DecayOnDeath},
	}
}

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

// PointMutationConfig configures PointMutationPlugin.
type PointMutationConfig struct {
	Rate           float64 `toml:"rate"`
	DataMin        int32   `toml:"data_min"`
	DataMax        int32   `toml:"data_max"`
	LabelRefExistingProbability float64 `toml:"labelref_existing_probability"`
}

// GeneDuplicationConfig configures GeneDuplicationPlugin.
type GeneDuplicationConfig struct {
	Rate       float64 `toml:"rate"`
	MinNopSize int     `toml:"min_nop_size"`
}

// GeneDeletionConfig configures GeneDeletionPlugin.
type GeneDeletionConfig struct {
	Rate     float64 `toml:"rate"`
	Exponent float64 `toml:"exponent"`
}

// GeneSubstitutionConfig configures GeneSubstitutionPlugin.
type GeneSubstitutionConfig struct {
	Rate float64 `toml:"rate"`

	WeightCode     float64 `toml:"weight_code"`
	WeightRegister float64 `toml:"weight_register"`
	WeightData     float64 `toml:"weight_data"`
	WeightLabel    float64 `toml:"weight_label"`
	WeightLabelRef float64 `toml:"weight_labelref"`

	OpFlipProbability      float64 `toml:"op_flip_probability"`
	FamilyFlipProbability  float64 `toml:"family_flip_probability"`
	VariantFlipProbability float64 `toml:"variant_flip_probability"`

	DataExponent float64 `toml:"data_exponent"`
}

// LabelRewriteConfig configures LabelRewritePlugin.
type LabelRewriteConfig struct {
	Rate float64 `toml:"rate"`
}

// SeedEnergyConfig configures SeedEnergyCreator.
type SeedEnergyConfig struct {
	Percentage      float64 `toml:"percentage"`
	Amount          float64 `toml:"amount"`
	AmountVariance  float64 `toml:"amount_variance"`
}

// DecayOnDeathConfig configures DecayOnDeath.
type DecayOnDeathConfig struct {
	// Mode is "energy" (convert owned cells to ENERGY proportional to the
	// victim's remaining ER) or "clear" (reset owned cells to CODE:0).
	Mode string `toml:"mode"`
}

// Config is the plugins.* configuration group nested under config.Config.
type Config struct {
	PointMutation    PointMutationConfig    `toml:"point_mutation"`
	GeneDuplication  GeneDuplicationConfig  `toml:"gene_duplication"`
	GeneDeletion     GeneDeletionConfig     `toml:"gene_deletion"`
	GeneSubstitution GeneSubstitutionConfig `toml:"gene_substitution"`
	LabelRewrite     LabelRewriteConfig     `toml:"label_rewrite"`
	SeedEnergy       SeedEnergyConfig       `toml:"seed_energy"`
	DecayOnDeath     DecayOnDeathConfig     `toml:"decay_on_death"`
}

// DefaultConfig returns conservative defaults for every plugin.
func DefaultConfig() Config {
	return Config{
		PointMutation: PointMutationConfig{
			Rate:                        0.01,
			DataMin:                     -256,
			DataMax:                     256,
			LabelRefExistingProbability: 0.5,
		},
		GeneDuplication: GeneDuplicationConfig{
			Rate:       0.005,
			MinNopSize: 4,
		},
		GeneDeletion: GeneDeletionConfig{
			Rate:     0.005,
			Exponent: 1.5,
		},
		GeneSubstitution: GeneSubstitutionConfig{
			Rate:                   0.02,
			WeightCode:             1,
			WeightRegister:         1,
			WeightData:             1,
			WeightLabel:            0.5,
			WeightLabelRef:         0.5,
			OpFlipProbability:      0.34,
			FamilyFlipProbability:  0.33,
			VariantFlipProbability: 0.33,
			DataExponent:           0.9,
		},
		LabelRewrite: LabelRewriteConfig{
			Rate: 0.01,
		},
		SeedEnergy: SeedEnergyConfig{
			Percentage:     0.05,
			Amount:         100,
			AmountVariance: 0.2,
		},
		DecayOnDeath: DecayOnDeathConfig{
			Mode: "energy",
		},
	}
}

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

// Package config holds the simulation's externally-supplied settings:
// bank sizes, thermodynamic defaults and overrides, topology, and
// per-plugin parameters, loaded the way cmd/gprobe/config.go loads
// gprobeConfig — defaults first, then an optional TOML file, then CLI
// flag overrides layered on top by the caller.
package config

import (
	"os"

	"github.com/naoina/toml"

	"github.com/evochora/evochora/isa"
	"github.com/evochora/evochora/organism"
	"github.com/evochora/evochora/plugins"
	"github.com/evochora/evochora/thermo"
)

// CostOverride is one entry of a per-instruction or per-family
// thermodynamic override.
type CostOverride struct {
	BaseEnergy  int64 `toml:"base_energy"`
	BaseEntropy int64 `toml:"base_entropy"`
}

// Thermodynamics is the thermodynamics.* key group.
type Thermodynamics struct {
	Default CostOverride `toml:"default"`
	Overrides struct {
		Instructions map[string]CostOverride `toml:"instructions"`
		Families     map[string]CostOverride `toml:"families"`
	} `toml:"overrides"`
}

// Config is the full recognized configuration object.
type Config struct {
	MaxEnergy        int64 `toml:"max_energy"`
	MaxEntropy       int64 `toml:"max_entropy"`
	ErrorPenaltyCost int64 `toml:"error_penalty_cost"`
	PerCellSurcharge int64 `toml:"per_cell_surcharge"`

	NumDR  int `toml:"num_dr"`
	NumPR  int `toml:"num_pr"`
	NumFPR int `toml:"num_fpr"`
	NumLR  int `toml:"num_lr"`
	NumDPs int `toml:"num_dps"`

	Shape    []int `toml:"shape"`
	Toroidal bool  `toml:"toroidal"`
	Seed     uint64 `toml:"seed"`

	Thermodynamics Thermodynamics `toml:"thermodynamics"`
	Plugins        plugins.Config `toml:"plugins"`
}

// Default returns the recognized defaults for every configuration key.
func Default() *Config {
	c := &Config{
		MaxEnergy:        32767,
		MaxEntropy:       8191,
		ErrorPenaltyCost: 10,
		PerCellSurcharge: 5,
		NumDR:            8,
		NumPR:            8,
		NumFPR:           4,
		NumLR:            4,
		NumDPs:           2,
		Shape:            []int{64, 64},
		Toroidal:         true,
		Seed:             1,
		Plugins:          plugins.DefaultConfig(),
	}
	c.Thermodynamics.Overrides.Instructions = map[string]CostOverride{}
	c.Thermodynamics.Overrides.Families = map[string]CostOverride{}
	return c
}

// Load reads path as TOML onto a copy of Default(), so any key the file
// omits keeps its default value — the same merge order
// cmd/gprobe/config.go uses before CLI flags are applied on top.
func Load(path string) (*Config, error) {
	c := Default()
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := toml.NewDecoder(f).Decode(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Dump marshals c back to TOML, mirroring cmd/gprobe/config.go's
// dumpConfig command.
func Dump(c *Config) ([]byte, error) {
	return toml.Marshal(c)
}

// BankSizes projects the register/stack bank sizes into organism.BankSizes.
func (c *Config) BankSizes() organism.BankSizes {
	return organism.BankSizes{
		NumDR:  c.NumDR,
		NumPR:  c.NumPR,
		NumFPR: c.NumFPR,
		NumLR:  c.NumLR,
		NumDPs: c.NumDPs,
	}
}

// Policy builds a thermo.Policy from the default policy overlaid with
// this config's thermodynamics.default and per-instruction/per-family
// overrides, keyed by opcode mnemonic or isa.Family name.
func (c *Config) Policy() *thermo.Policy {
	p := thermo.Default()
	p.ErrorPenalty = c.ErrorPenaltyCost
	p.PerCellSurcharge = c.PerCellSurcharge
	p.MaxEnergy = c.MaxEnergy
	p.MaxEntropy = c.MaxEntropy

	if c.Thermodynamics.Default.BaseEnergy != 0 || c.Thermodynamics.Default.BaseEntropy != 0 {
		for fam := range p.FamilyDefault {
			p.FamilyDefault[fam] = thermo.Cost{
				Energy:  c.Thermodynamics.Default.BaseEnergy,
				Entropy: c.Thermodynamics.Default.BaseEntropy,
			}
		}
	}
	for famName, o := range c.Thermodynamics.Overrides.Families {
		fam, ok := familyByName(famName)
		if !ok {
			continue
		}
		p.FamilyDefault[fam] = thermo.Cost{Energy: o.BaseEnergy, Entropy: o.BaseEntropy}
	}
	for name, o := range c.Thermodynamics.Overrides.Instructions {
		for _, def := range isa.All() {
			if def.Name == name {
				p.Overrides[def.ID] = thermo.Cost{Energy: o.BaseEnergy, Entropy: o.BaseEntropy}
			}
		}
	}
	return p
}

func familyByName(name string) (isa.Family, bool) {
	for _, f := range []isa.Family{
		isa.Arithmetic, isa.Bitwise, isa.Conditional, isa.Stack,
		isa.Control, isa.Environment, isa.State, isa.Vector, isa.Special,
	} {
		if f.String() == name {
			return f, true
		}
	}
	return 0, false
}

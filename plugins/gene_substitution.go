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
	"github.com/evochora/evochora/isa"
	"github.com/evochora/evochora/molecule"
	"github.com/evochora/evochora/organism"
	"github.com/evochora/evochora/prng"
)

// GeneSubstitutionPlugin reservoir-samples one of a child's owned,
// non-empty cells (weighted by molecule type) and mutates it in a
// type-specific way.
type GeneSubstitutionPlugin struct {
	Config GeneSubstitutionConfig
	Banks  organism.BankSizes
}

func (p *GeneSubstitutionPlugin) Name() string { return "gene_substitution" }

func (p *GeneSubstitutionPlugin) OnPostBirth(g *env.Grid, child *organism.Organism, rng *prng.Provider) error {
	if rng.Float64() >= p.Config.Rate {
		return nil
	}
	flat, ok := p.reservoirSample(g, child, rng)
	if !ok {
		return nil
	}
	coord := g.FlatToCoord(flat)
	m, err := g.GetMolecule(coord)
	if err != nil {
		return nil
	}
	switch m.Type() {
	case molecule.Code:
		p.mutateCode(g, coord, m, rng)
	case molecule.Register:
		p.mutateRegister(g, coord, m, rng)
	case molecule.Data:
		p.mutateData(g, coord, m, rng)
	case molecule.Label, molecule.LabelRef:
		p.mutateHash(g, coord, m, rng)
	default:
		// ENERGY/STRUCTURE are never mutated.
	}
	return nil
}

// reservoirSample walks every cell owned by child, weighting each
// candidate by its type's configured weight, using reservoir sampling so
// the whole grid need not be materialized into a slice first.
func (p *GeneSubstitutionPlugin) reservoirSample(g *env.Grid, child *organism.Organism, rng *prng.Provider) (int, bool) {
	chosen := -1
	totalWeight := 0.0
	for flat := 0; flat < g.TotalCells(); flat++ {
		m, owner := g.Cell(flat)
		if owner != child.ID || m.IsEmpty() {
			continue
		}
		w := p.weightFor(m.Type())
		if w <= 0 {
			continue
		}
		totalWeight += w
		if rng.Float64()*totalWeight < w {
			chosen = flat
		}
	}
	return chosen, chosen >= 0
}

func (p *GeneSubstitutionPlugin) weightFor(t molecule.Type) float64 {
	switch t {
	case molecule.Code:
		return p.Config.WeightCode
	case molecule.Register:
		return p.Config.WeightRegister
	case molecule.Data:
		return p.Config.WeightData
	case molecule.Label:
		return p.Config.WeightLabel
	case molecule.LabelRef:
		return p.Config.WeightLabelRef
	default:
		return 0
	}
}

func (p *GeneSubstitutionPlugin) mutateCode(g *env.Grid, coord env.Coord, m molecule.Word, rng *prng.Provider) {
	id := isa.Unpack(m.ToScalar())
	kinds := []float64{p.Config.OpFlipProbability, p.Config.FamilyFlipProbability, p.Config.VariantFlipProbability}
	switch weightedPick(kinds, rng) {
	case 0:
		if alt := p.alternateOperation(id, rng); alt != nil {
			id = *alt
		}
	case 1:
		if alt := p.alternateFamily(id, rng); alt != nil {
			id = *alt
		}
	case 2:
		if alt := p.alternateVariant(id, rng); alt != nil {
			id = *alt
		}
	}
	g.SetMolecule(molecule.Pack(molecule.Code, id.Pack(), m.Marker()), coord)
}

func (p *GeneSubstitutionPlugin) alternateOperation(id isa.ID, rng *prng.Provider) *isa.ID {
	var candidates []isa.ID
	for _, def := range isa.All() {
		if def.ID.Family == id.Family && def.ID.Variant == id.Variant && def.ID.Operation != id.Operation {
			candidates = append(candidates, def.ID)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	return &candidates[rng.Intn(len(candidates))]
}

func (p *GeneSubstitutionPlugin) alternateFamily(id isa.ID, rng *prng.Provider) *isa.ID {
	var candidates []isa.ID
	for _, def := range isa.All() {
		if def.ID.Family != id.Family && def.ID.Operation == id.Operation && def.ID.Variant == id.Variant {
			candidates = append(candidates, def.ID)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	return &candidates[rng.Intn(len(candidates))]
}

// alternateVariant stays within the same arity group: only variants whose
// Def declares the same number of operand cells as the original.
func (p *GeneSubstitutionPlugin) alternateVariant(id isa.ID, rng *prng.Provider) *isa.ID {
	orig, ok := isa.Lookup(id)
	if !ok {
		return nil
	}
	var candidates []isa.ID
	for _, def := range isa.All() {
		if def.ID.Family == id.Family && def.ID.Operation == id.Operation && def.ID.Variant != id.Variant &&
			len(def.OperandSources) == len(orig.OperandSources) {
			candidates = append(candidates, def.ID)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	return &candidates[rng.Intn(len(candidates))]
}

func (p *GeneSubstitutionPlugin) mutateRegister(g *env.Grid, coord env.Coord, m molecule.Word, rng *prng.Provider) {
	flat := int(m.ToScalar())
	lo, hi := p.bankBounds(flat)
	delta := 1
	if rng.Bool() {
		delta = -1
	}
	next := flat + delta
	if next < lo {
		next = lo
	}
	if next > hi {
		next = hi
	}
	g.SetMolecule(molecule.Pack(molecule.Register, int32(next), m.Marker()), coord)
}

// bankBounds returns the inclusive flat-id range of the bank containing
// flat, following the DR/PR/FPR/LR ordering organism.RegisterValue uses.
func (p *GeneSubstitutionPlugin) bankBounds(flat int) (int, int) {
	lo := 0
	for _, size := range []int{p.Banks.NumDR, p.Banks.NumPR, p.Banks.NumFPR, p.Banks.NumLR} {
		hi := lo + size - 1
		if flat >= lo && flat <= hi {
			return lo, hi
		}
		lo = hi + 1
	}
	return 0, 0
}

func (p *GeneSubstitutionPlugin) mutateData(g *env.Grid, coord env.Coord, m molecule.Word, rng *prng.Provider) {
	v := m.ToScalar()
	delta := math.Max(1, math.Round(math.Pow(math.Abs(float64(v)), p.Config.DataExponent)))
	if rng.Bool() {
		v += int32(delta)
	} else {
		v -= int32(delta)
	}
	if v < 0 {
		v = 0
	}
	if uint32(v) > molecule.ValueMask {
		v = int32(molecule.ValueMask)
	}
	g.SetMolecule(molecule.Pack(molecule.Data, v, m.Marker()), coord)
}

func (p *GeneSubstitutionPlugin) mutateHash(g *env.Grid, coord env.Coord, m molecule.Word, rng *prng.Provider) {
	hash := flipOneBit(m.RawValue(), rng)
	g.SetMolecule(molecule.Pack(m.Type(), int32(hash), m.Marker()), coord)
	g.Labels().Rebuild(g)
}

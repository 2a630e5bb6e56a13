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

package engine

import (
	"github.com/evochora/evochora/env"
	"github.com/evochora/evochora/isa"
	"github.com/evochora/evochora/molecule"
	"github.com/evochora/evochora/organism"
	"github.com/evochora/evochora/prng"
	"github.com/evochora/evochora/thermo"
)

// Step executes exactly one instruction for o: fetch, decode, dispatch,
// thermodynamic charge, and IP advance, in that order. It never returns a Go error:
// organism-level faults surface as o.FailureFlag/FailureReason via the
// returned Outcome, per design note 9. When the IP itself is out of bounds
// the organism is marked failed and returned without a charge or an IP
// advance; other fetch/decode failures charge the error penalty and
// advance the IP one cell.
func Step(o *organism.Organism, g *env.Grid, policy *thermo.Policy, rng *prng.Provider, hooks Hooks, tick uint64) Outcome {
	o.ClearFailure()

	m, err := g.GetMolecule(o.IP)
	if err != nil {
		o.Fail("instruction pointer out of bounds")
		return fail(o.FailureReason)
	}
	if m.Type() != molecule.Code {
		o.Fail("instruction pointer does not point at code")
		advanceOneCell(o, g)
		chargeFailure(o, policy)
		o.Age++
		return fail(o.FailureReason)
	}
	id := isa.Unpack(m.ToScalar())
	def, found := isa.Lookup(id)
	if !found {
		o.Fail("unknown opcode")
		advanceOneCell(o, g)
		chargeFailure(o, policy)
		o.Age++
		return fail(o.FailureReason)
	}

	ops, nextIP, err := decodeOperands(o, g, def)
	if err != nil {
		o.Fail(err.Error())
		advanceOneCell(o, g)
		chargeFailure(o, policy)
		o.Age++
		return fail(o.FailureReason)
	}

	handler, found := handlers[id]
	if !found {
		o.Fail("unimplemented opcode: " + def.Name)
		o.IP = nextIP
		chargeFailure(o, policy)
		o.Age++
		return fail(o.FailureReason)
	}

	ctx := &Ctx{Org: o, Grid: g, Policy: policy, Rng: rng, Hooks: hooks, Tick: tick, Def: def, Ops: ops, NextIP: nextIP}
	outcome := handler(ctx)

	cost := policy.Charge(id)
	o.ER -= cost.Energy
	o.SR += cost.Entropy
	if id.Family == isa.Environment {
		o.ER -= policy.PerCellSurcharge
	}
	if outcome.Failed {
		o.Fail(outcome.Reason)
		o.ER -= policy.ErrorPenalty
	}
	o.ClampEnergy(policy.MaxEnergy)
	o.ClampEntropy(policy.MaxEntropy)

	if outcome.AdvanceIP {
		o.IP = nextIP
	}
	if outcome.IsBranch && !outcome.BranchTrue {
		if err := skipOne(o, g); err != nil {
			o.Fail("skip target out of bounds")
		}
	}
	o.Age++
	return outcome
}

func advanceOneCell(o *organism.Organism, g *env.Grid) {
	if next, err := g.Step(o.IP, o.DV); err == nil {
		o.IP = next
	}
}

func chargeFailure(o *organism.Organism, policy *thermo.Policy) {
	o.ER -= policy.ErrorPenalty
}

// skipOne advances o.IP past the single instruction currently at o.IP
// without executing it — used when a CONDITIONAL opcode's predicate is
// false, per the "the next instruction is skipped, not just
// not-taken" contract.
func skipOne(o *organism.Organism, g *env.Grid) error {
	m, err := g.GetMolecule(o.IP)
	if err != nil {
		return err
	}
	var def *isa.Def
	if m.Type() == molecule.Code {
		def, _ = isa.Lookup(isa.Unpack(m.ToScalar()))
	}
	if def == nil {
		next, err := g.Step(o.IP, o.DV)
		if err != nil {
			return err
		}
		o.IP = next
		return nil
	}
	_, next, err := decodeOperands(o, g, def)
	if err != nil {
		return err
	}
	o.IP = next
	return nil
}

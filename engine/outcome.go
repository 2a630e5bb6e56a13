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

// Package engine implements the organism instruction cycle: fetch, decode,
// dispatch, thermodynamic charge, and IP advance. Handlers return an
// explicit Outcome instead of panicking or using Go errors for control
// flow, per design note 9's "InstructionOutcome replaces exceptions".
package engine

// Outcome is the explicit result of executing one instruction.
type Outcome struct {
	// Failed marks that the instruction could not complete as requested
	// (e.g. division by zero, stack underflow, out-of-bounds write). The
	// organism's failure flag/reason are set from this; the instruction
	// still consumes its normal IP advance and thermodynamic charge, plus
	// the policy's error penalty.
	Failed bool
	Reason string

	// AdvanceIP is true unless the handler itself repositioned IP (JMP*,
	// CALL, RET, BRK) and the engine must not also apply the default
	// post-decode advance.
	AdvanceIP bool

	// Branch, when Outcome comes from a CONDITIONAL opcode, reports
	// whether the predicate held. The engine uses this to decide whether
	// to additionally skip the next instruction.
	IsBranch   bool
	BranchTrue bool

	// Break is set by BRK to mark a tick-ending break. The scheduler runs
	// one Step per organism per tick, so the flag is informational.
	Break bool
}

// ok builds the common non-failing, IP-advancing outcome.
func ok() Outcome { return Outcome{AdvanceIP: true} }

// fail builds a failing outcome that still advances IP normally.
func fail(reason string) Outcome { return Outcome{Failed: true, Reason: reason, AdvanceIP: true} }

// jumped builds an outcome for a handler that has already set organism.IP
// itself and must suppress the engine's default advance.
func jumped() Outcome { return Outcome{AdvanceIP: false} }

// branch builds the outcome for a CONDITIONAL opcode.
func branch(taken bool) Outcome { return Outcome{AdvanceIP: true, IsBranch: true, BranchTrue: taken} }

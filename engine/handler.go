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

import "github.com/evochora/evochora/isa"

// Handler implements one opcode's semantics. It receives the fully
// decoded Ctx — operands already resolved regardless of addressing
// variant — and returns the explicit Outcome the engine applies.
type Handler func(ctx *Ctx) Outcome

// handlers is the flat {id -> handler} table described in design note 9,
// built once by this file's init from the per-family register* functions.
// It is keyed by isa.ID, the same key the isa package's own opcode table
// uses, so every registered Def either has a handler here or is a bug
// caught by TestHandlersCoverEveryOpcode (see engine_test.go).
var handlers map[isa.ID]Handler

func init() {
	isa.TryInit()
	handlers = make(map[isa.ID]Handler, len(isa.All()))
	registerArithmetic(handlers)
	registerBitwise(handlers)
	registerConditional(handlers)
	registerStack(handlers)
	registerControl(handlers)
	registerEnvironment(handlers)
	registerState(handlers)
	registerSpecial(handlers)
}

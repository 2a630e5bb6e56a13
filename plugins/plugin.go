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

// Package plugins implements the world-generation hooks that run around
// the tick scheduler: post-birth genome mutators, a tick-0 energy seeder,
// and a death-time cell decay handler. Every plugin takes
// the grid, organism, and PRNG it needs directly rather than a reference
// to the simulation that drives it, so this package never imports sim
// (design note 9's Hooks-interface pattern, applied a second time).
package plugins

import (
	"github.com/evochora/evochora/env"
	"github.com/evochora/evochora/organism"
	"github.com/evochora/evochora/prng"
)

// Plugin is the minimal capability every world-generation plugin has: a
// name for logging and configuration lookup.
type Plugin interface {
	Name() string
}

// StatefulPlugin is implemented by plugins that carry state across ticks.
// Plugins without state simply don't implement this interface; the
// simulation's persistence layer treats a non-stateful plugin as
// save=empty/load=no-op.
type StatefulPlugin interface {
	Plugin
	SaveState() []byte
	LoadState(data []byte) error
}

// PostBirthPlugin runs once per newly-born organism, in registration
// order, after the tick's per-organism execution loop.
type PostBirthPlugin interface {
	Plugin
	OnPostBirth(g *env.Grid, child *organism.Organism, rng *prng.Provider) error
}

// DeathPlugin runs once per organism that died during the current tick.
type DeathPlugin interface {
	Plugin
	OnDeath(g *env.Grid, victim *organism.Organism) error
}

// TickZeroPlugin runs exactly once, before the first tick's execution
// loop, to seed the environment.
type TickZeroPlugin interface {
	Plugin
	OnTickZero(g *env.Grid, rng *prng.Provider) error
}

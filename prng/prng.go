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

// Package prng provides the simulation's seeded, derivable random source.
// It follows the same math/rand construction go-probe's probeash sealer
// uses (rand.New(rand.NewSource(seed))) but is built on math/rand/v2's PCG
// source so that Provider.SaveState/LoadState round-trip exactly — v1's
// rand.Source does not expose its internal state for serialization, which
// go-probe never needed since its PoW search is never checkpointed
// mid-stream. This simulation's persistence contract requires exactly
// that, so PCG (same standard-library family) is used instead.
package prng

import (
	"encoding/binary"
	"hash/fnv"
	"math/rand/v2"
)

// Provider is a single per-simulation random stream. It is never a global:
// every simulation, and every sub-stream derived from it, owns its own
// instance.
type Provider struct {
	source *rand.PCG
	rng    *rand.Rand
}

// New creates a Provider seeded deterministically from seed.
func New(seed uint64) *Provider {
	src := rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)
	return &Provider{source: src, rng: rand.New(src)}
}

// Derive returns a new, independent Provider seeded from one value drawn
// from p's stream mixed with label, so the same parent state and label
// always give the same sub-stream. Each call advances p by one draw.
func (p *Provider) Derive(label string) *Provider {
	h := fnv.New64a()
	_, _ = h.Write(binaryOf(p.rng.Uint64()))
	_, _ = h.Write([]byte(label))
	seed1 := h.Sum64()
	_, _ = h.Write([]byte{0xFF})
	seed2 := h.Sum64()
	src := rand.NewPCG(seed1, seed2)
	return &Provider{source: src, rng: rand.New(src)}
}

func binaryOf(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

// Intn returns a pseudo-random number in [0, n).
func (p *Provider) Intn(n int) int {
	return int(p.rng.Int64N(int64(n)))
}

// Float64 returns a pseudo-random number in [0.0, 1.0).
func (p *Provider) Float64() float64 {
	return p.rng.Float64()
}

// Uint64 returns a raw pseudo-random 64-bit word.
func (p *Provider) Uint64() uint64 {
	return p.rng.Uint64()
}

// Bool returns true with probability 0.5.
func (p *Provider) Bool() bool {
	return p.rng.Uint64()&1 == 1
}

// SaveState serializes the PCG's internal state exactly, per
// math/rand/v2.PCG's MarshalBinary contract.
func (p *Provider) SaveState() ([]byte, error) {
	return p.source.MarshalBinary()
}

// LoadState restores the PCG's internal state exactly as produced by a
// prior SaveState call.
func (p *Provider) LoadState(data []byte) error {
	return p.source.UnmarshalBinary(data)
}

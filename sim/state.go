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

package sim

import (
	"encoding/binary"
	"fmt"

	"github.com/evochora/evochora/organism"
	"github.com/evochora/evochora/plugins"
)

// SaveState serializes the simulation as the concatenation 
// specifies: tick counter, env, PRNG state, organism list, plugin states.
// Stateless plugins (those not implementing plugins.StatefulPlugin)
// contribute an empty byte string.
func (s *Simulation) SaveState() ([]byte, error) {
	var buf []byte
	put32 := func(v uint32) { buf = binary.LittleEndian.AppendUint32(buf, v) }
	put64 := func(v uint64) { buf = binary.LittleEndian.AppendUint64(buf, v) }
	putBytes := func(b []byte) {
		put32(uint32(len(b)))
		buf = append(buf, b...)
	}

	put64(s.currentTick)
	putBytes(s.Grid.SaveState())

	rngState, err := s.Rng.SaveState()
	if err != nil {
		return nil, fmt.Errorf("sim: saving prng state: %w", err)
	}
	putBytes(rngState)

	put32(uint32(len(s.Organisms)))
	for _, o := range s.Organisms {
		putBytes(o.SaveState())
	}

	put32(uint32(len(s.Plugins)))
	for _, p := range s.Plugins {
		if sp, ok := p.(plugins.StatefulPlugin); ok {
			putBytes(sp.SaveState())
		} else {
			putBytes(nil)
		}
	}

	return buf, nil
}

// LoadState restores a Simulation previously produced by SaveState. The
// receiver's Grid, Rng, Policy, Banks, and Plugins must already be set up
// identically to how the saved simulation was constructed; LoadState
// replaces the tick counter, the grid's contents, the PRNG state, the
// organisms, and the plugin state.
func (s *Simulation) LoadState(data []byte) error {
	r := &stateCursor{data: data}

	tick, err := r.get64()
	if err != nil {
		return err
	}

	envBytes, err := r.getBytes()
	if err != nil {
		return err
	}
	if err := s.Grid.LoadState(envBytes); err != nil {
		return fmt.Errorf("sim: loading env state: %w", err)
	}

	rngBytes, err := r.getBytes()
	if err != nil {
		return err
	}
	if err := s.Rng.LoadState(rngBytes); err != nil {
		return fmt.Errorf("sim: loading prng state: %w", err)
	}

	nOrganisms, err := r.get32()
	if err != nil {
		return err
	}
	organisms := make([]*organism.Organism, nOrganisms)
	var maxID uint32
	for i := range organisms {
		b, err := r.getBytes()
		if err != nil {
			return err
		}
		o, _, err := organism.LoadOrganism(b)
		if err != nil {
			return fmt.Errorf("sim: loading organism %d: %w", i, err)
		}
		organisms[i] = o
		if o.ID > maxID {
			maxID = o.ID
		}
	}

	nPlugins, err := r.get32()
	if err != nil {
		return err
	}
	if int(nPlugins) != len(s.Plugins) {
		return fmt.Errorf("sim: saved plugin count %d does not match configured %d", nPlugins, len(s.Plugins))
	}
	for _, p := range s.Plugins {
		b, err := r.getBytes()
		if err != nil {
			return err
		}
		if sp, ok := p.(plugins.StatefulPlugin); ok {
			if err := sp.LoadState(b); err != nil {
				return fmt.Errorf("sim: loading plugin %s state: %w", p.Name(), err)
			}
		}
	}

	s.currentTick = tick
	s.Organisms = organisms
	s.nextID = maxID
	s.tickZeroRan = tick > 0
	s.bornThisTick = nil
	return nil
}

type stateCursor struct {
	data []byte
	pos  int
}

func (c *stateCursor) get32() (uint32, error) {
	if len(c.data)-c.pos < 4 {
		return 0, fmt.Errorf("sim: truncated state")
	}
	v := binary.LittleEndian.Uint32(c.data[c.pos:])
	c.pos += 4
	return v, nil
}

func (c *stateCursor) get64() (uint64, error) {
	if len(c.data)-c.pos < 8 {
		return 0, fmt.Errorf("sim: truncated state")
	}
	v := binary.LittleEndian.Uint64(c.data[c.pos:])
	c.pos += 8
	return v, nil
}

func (c *stateCursor) getBytes() ([]byte, error) {
	n, err := c.get32()
	if err != nil {
		return nil, err
	}
	if len(c.data)-c.pos < int(n) {
		return nil, fmt.Errorf("sim: truncated state")
	}
	b := c.data[c.pos : c.pos+int(n)]
	c.pos += int(n)
	return b, nil
}

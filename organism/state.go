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

package organism

import (
	"encoding/binary"
	"fmt"

	"github.com/evochora/evochora/env"
)

// SaveState serializes o's complete state, including its stacks, as a
// self-describing byte sequence — one organism's contribution to the
// simulation's save_state() concatenation.
func (o *Organism) SaveState() []byte {
	var buf []byte
	put32 := func(v uint32) { buf = binary.LittleEndian.AppendUint32(buf, v) }
	put64 := func(v uint64) { buf = binary.LittleEndian.AppendUint64(buf, v) }
	putBool := func(b bool) {
		if b {
			put32(1)
		} else {
			put32(0)
		}
	}
	putCoord := func(c env.Coord) {
		put32(uint32(len(c)))
		for _, v := range c {
			put32(uint32(v))
		}
	}
	putValue := func(v Value) {
		if v.Vector != nil {
			put32(1)
			putCoord(env.Coord(v.Vector))
		} else {
			put32(0)
			put32(v.Scalar)
		}
	}
	putValues := func(vs []Value) {
		put32(uint32(len(vs)))
		for _, v := range vs {
			putValue(v)
		}
	}
	putString := func(s string) {
		put32(uint32(len(s)))
		buf = append(buf, s...)
	}

	put32(o.ID)
	put32(o.ParentID)
	put64(o.BirthTick)
	put64(o.Age)
	putBool(o.Alive)
	putCoord(o.IP)
	putCoord(env.Coord(o.DV))
	put32(uint32(len(o.DPs)))
	for _, dp := range o.DPs {
		putCoord(dp)
	}
	put32(uint32(o.ActiveDPIdx))
	putValues(o.DR)
	putValues(o.PR)
	putValues(o.FPR)
	put32(uint32(len(o.LR)))
	for _, lr := range o.LR {
		putCoord(lr)
	}
	put32(uint32(o.Arity))
	putValues(o.DataStack)
	put32(uint32(len(o.CallStack)))
	for _, fr := range o.CallStack {
		putCoord(fr.ReturnIP)
		putCoord(env.Coord(fr.SavedDV))
		putValues(fr.SavedPRs)
		put32(uint32(fr.SavedActiveDP))
		putValues(fr.FPRBindings)
	}
	put32(uint32(len(o.LocationStack)))
	for _, c := range o.LocationStack {
		putCoord(c)
	}
	put64(uint64(o.ER))
	put64(uint64(o.SR))
	put32(uint32(o.MR))
	putBool(o.FailureFlag)
	putString(o.FailureReason)

	return buf
}

// stateReader is a small cursor over a SaveState byte sequence, shared by
// LoadOrganism and (indirectly) sim's organism-list decode loop.
type stateReader struct {
	data []byte
	pos  int
}

func (r *stateReader) get32() (uint32, error) {
	if len(r.data)-r.pos < 4 {
		return 0, fmt.Errorf("organism: truncated state")
	}
	v := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *stateReader) get64() (uint64, error) {
	if len(r.data)-r.pos < 8 {
		return 0, fmt.Errorf("organism: truncated state")
	}
	v := binary.LittleEndian.Uint64(r.data[r.pos:])
	r.pos += 8
	return v, nil
}

func (r *stateReader) getCoord() (env.Coord, error) {
	n, err := r.get32()
	if err != nil {
		return nil, err
	}
	c := make(env.Coord, n)
	for i := range c {
		v, err := r.get32()
		if err != nil {
			return nil, err
		}
		c[i] = int32(v)
	}
	return c, nil
}

func (r *stateReader) getValue() (Value, error) {
	tag, err := r.get32()
	if err != nil {
		return Value{}, err
	}
	if tag == 1 {
		c, err := r.getCoord()
		if err != nil {
			return Value{}, err
		}
		return Value{Vector: c}, nil
	}
	s, err := r.get32()
	if err != nil {
		return Value{}, err
	}
	return Value{Scalar: s}, nil
}

func (r *stateReader) getValues() ([]Value, error) {
	n, err := r.get32()
	if err != nil {
		return nil, err
	}
	vs := make([]Value, n)
	for i := range vs {
		v, err := r.getValue()
		if err != nil {
			return nil, err
		}
		vs[i] = v
	}
	return vs, nil
}

// LoadOrganism decodes one organism previously produced by SaveState,
// starting at data[0], and returns the number of bytes consumed so the
// caller can decode the next organism in sequence.
func LoadOrganism(data []byte) (*Organism, int, error) {
	r := &stateReader{data: data}
	o := &Organism{}

	var err error
	if o.ID, err = r.get32(); err != nil {
		return nil, 0, err
	}
	if o.ParentID, err = r.get32(); err != nil {
		return nil, 0, err
	}
	if o.BirthTick, err = r.get64(); err != nil {
		return nil, 0, err
	}
	if o.Age, err = r.get64(); err != nil {
		return nil, 0, err
	}
	aliveFlag, err := r.get32()
	if err != nil {
		return nil, 0, err
	}
	o.Alive = aliveFlag != 0
	if o.IP, err = r.getCoord(); err != nil {
		return nil, 0, err
	}
	dv, err := r.getCoord()
	if err != nil {
		return nil, 0, err
	}
	o.DV = []int32(dv)

	nDPs, err := r.get32()
	if err != nil {
		return nil, 0, err
	}
	o.DPs = make([]env.Coord, nDPs)
	for i := range o.DPs {
		if o.DPs[i], err = r.getCoord(); err != nil {
			return nil, 0, err
		}
	}
	activeDP, err := r.get32()
	if err != nil {
		return nil, 0, err
	}
	o.ActiveDPIdx = int(activeDP)

	if o.DR, err = r.getValues(); err != nil {
		return nil, 0, err
	}
	if o.PR, err = r.getValues(); err != nil {
		return nil, 0, err
	}
	if o.FPR, err = r.getValues(); err != nil {
		return nil, 0, err
	}
	nLR, err := r.get32()
	if err != nil {
		return nil, 0, err
	}
	o.LR = make([]env.Coord, nLR)
	for i := range o.LR {
		if o.LR[i], err = r.getCoord(); err != nil {
			return nil, 0, err
		}
	}
	arity, err := r.get32()
	if err != nil {
		return nil, 0, err
	}
	o.Arity = int(arity)

	if o.DataStack, err = r.getValues(); err != nil {
		return nil, 0, err
	}
	nFrames, err := r.get32()
	if err != nil {
		return nil, 0, err
	}
	o.CallStack = make([]Frame, nFrames)
	for i := range o.CallStack {
		fr := &o.CallStack[i]
		if fr.ReturnIP, err = r.getCoord(); err != nil {
			return nil, 0, err
		}
		savedDV, err := r.getCoord()
		if err != nil {
			return nil, 0, err
		}
		fr.SavedDV = []int32(savedDV)
		if fr.SavedPRs, err = r.getValues(); err != nil {
			return nil, 0, err
		}
		activeDP, err := r.get32()
		if err != nil {
			return nil, 0, err
		}
		fr.SavedActiveDP = int(activeDP)
		if fr.FPRBindings, err = r.getValues(); err != nil {
			return nil, 0, err
		}
	}
	nLoc, err := r.get32()
	if err != nil {
		return nil, 0, err
	}
	o.LocationStack = make([]env.Coord, nLoc)
	for i := range o.LocationStack {
		if o.LocationStack[i], err = r.getCoord(); err != nil {
			return nil, 0, err
		}
	}
	er, err := r.get64()
	if err != nil {
		return nil, 0, err
	}
	o.ER = int64(er)
	sr, err := r.get64()
	if err != nil {
		return nil, 0, err
	}
	o.SR = int64(sr)
	mr, err := r.get32()
	if err != nil {
		return nil, 0, err
	}
	o.MR = uint8(mr)
	failFlag, err := r.get32()
	if err != nil {
		return nil, 0, err
	}
	o.FailureFlag = failFlag != 0
	reasonLen, err := r.get32()
	if err != nil {
		return nil, 0, err
	}
	if len(r.data)-r.pos < int(reasonLen) {
		return nil, 0, fmt.Errorf("organism: truncated failure reason")
	}
	o.FailureReason = string(r.data[r.pos : r.pos+int(reasonLen)])
	r.pos += int(reasonLen)

	return o, r.pos, nil
}

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

package env

import "math/bits"

// changeSet is a dense, exact, word-packed bitset used to track which grid
// cells were mutated since the last reset. Unlike the probabilistic
// bloomfilter.Filter used elsewhere in the pack for approximate membership,
// this tracker must never report a false positive or a false negative —
// the external delta-compression pipeline trusts it bit for bit — so it is
// hand-rolled rather than built on a probabilistic structure like
// bloomfilter.Filter.
type changeSet struct {
	words []uint64
	n     int
}

func newChangeSet(n int) *changeSet {
	return &changeSet{words: make([]uint64, (n+63)/64), n: n}
}

func (c *changeSet) set(i int) {
	c.words[i>>6] |= 1 << uint(i&63)
}

func (c *changeSet) get(i int) bool {
	return c.words[i>>6]&(1<<uint(i&63)) != 0
}

func (c *changeSet) reset() {
	for i := range c.words {
		c.words[i] = 0
	}
}

// indices returns every set index in ascending order.
func (c *changeSet) indices() []int {
	out := make([]int, 0, c.count())
	for w, word := range c.words {
		for word != 0 {
			b := bits.TrailingZeros64(word)
			out = append(out, w*64+b)
			word &^= 1 << uint(b)
		}
	}
	return out
}

func (c *changeSet) count() int {
	total := 0
	for _, word := range c.words {
		total += bits.OnesCount64(word)
	}
	return total
}

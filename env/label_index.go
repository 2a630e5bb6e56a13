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

import "github.com/evochora/evochora/molecule"

// labelKey identifies a (owner, hash) bucket in the index.
type labelKey struct {
	owner uint32
	hash  uint32
}

// LabelIndex maps (owner_id, label_hash) to the set of flat indices holding
// a matching LABEL molecule, rebuilt lazily from the grid on first use
// after invalidation. It never stores a back-pointer to the Grid that
// invalidates it (design note 9): Rebuild always takes the grid explicitly.
type LabelIndex struct {
	dirty bool
	byKey map[labelKey][]int
}

// NewLabelIndex returns an index that will rebuild itself on first query.
func NewLabelIndex() *LabelIndex {
	return &LabelIndex{dirty: true, byKey: make(map[labelKey][]int)}
}

// invalidate marks the index stale; the next FindTarget call rebuilds it.
func (li *LabelIndex) invalidate() {
	li.dirty = true
}

// Rebuild forces an immediate rescan of g's LABEL molecules. Used after
// plugins that deliberately change label values (e.g. LabelRewritePlugin),
// per the "Label index must be rebuilt after" contract.
func (li *LabelIndex) Rebuild(g *Grid) {
	li.byKey = make(map[labelKey][]int)
	for i, m := range g.molecules {
		if m.Type() != molecule.Label {
			continue
		}
		owner := g.owners[i]
		key := labelKey{owner: owner, hash: m.RawValue()}
		li.byKey[key] = append(li.byKey[key], i)
	}
	li.dirty = false
}

// FindTarget resolves a labelref hash to a coordinate, searching the given
// lineage of owner ids in order (self first, then parent, grandparent, …
// as supplied by the caller) and returning the first lineage member with a
// matching label, choosing among that member's candidates the one closest
// by flat-index distance to fromFlat, tie-broken by the smallest flat
// index. Returns ok=false if no lineage member owns a matching label.
func (li *LabelIndex) FindTarget(hash uint32, lineage []uint32, fromFlat int, g *Grid) (coord Coord, ok bool) {
	if li.dirty {
		li.Rebuild(g)
	}
	for _, owner := range lineage {
		candidates, found := li.byKey[labelKey{owner: owner, hash: hash}]
		if !found || len(candidates) == 0 {
			continue
		}
		best := candidates[0]
		bestDist := abs(best - fromFlat)
		for _, c := range candidates[1:] {
			d := abs(c - fromFlat)
			if d < bestDist || (d == bestDist && c < best) {
				best, bestDist = c, d
			}
		}
		return g.FlatToCoord(best), true
	}
	return nil, false
}

// OwnedLabels returns, for every LABEL hash owned by owner, the flat
// indices holding that hash — used by GeneDuplicationPlugin and
// GeneDeletionPlugin to enumerate a child's own labeled blocks.
func (li *LabelIndex) OwnedLabels(owner uint32, g *Grid) map[uint32][]int {
	if li.dirty {
		li.Rebuild(g)
	}
	out := make(map[uint32][]int)
	for k, idxs := range li.byKey {
		if k.owner != owner {
			continue
		}
		out[k.hash] = append(out[k.hash], idxs...)
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

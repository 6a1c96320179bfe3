package fstree

import (
	"fmt"
	"math"
	"math/bits"
)

// SumAtMost returns the sum of the cumulative sizes of every directory whose
// size is at most threshold. Directories of size zero only count when
// includeEmpty is set; they never change the sum, but the choice is kept
// explicit so callers can report which predicate was used.
func (t *Tree) SumAtMost(threshold uint64, includeEmpty bool) uint64 {
	var sum uint64
	for _, d := range t.Directories() {
		size := d.CumulativeSize
		if size > threshold || (size == 0 && !includeEmpty) {
			continue
		}
		sum += size
	}
	return sum
}

// CountAtMost returns how many directories SumAtMost would add up.
func (t *Tree) CountAtMost(threshold uint64, includeEmpty bool) int {
	count := 0
	for _, d := range t.Directories() {
		size := d.CumulativeSize
		if size > threshold || (size == 0 && !includeEmpty) {
			continue
		}
		count++
	}
	return count
}

// SmallestAtLeast returns the smallest directory whose cumulative size is at
// least minSize. Ties go to the directory discovered first.
func (t *Tree) SmallestAtLeast(minSize uint64) (NodeID, error) {
	best := NoNode
	for id, d := range t.Directories() {
		if d.CumulativeSize < minSize {
			continue
		}
		if best == NoNode || d.CumulativeSize < t.nodes[best].CumulativeSize {
			best = id
		}
	}
	if best == NoNode {
		return NoNode, fmt.Errorf("%w: nothing of at least %d", ErrNoMatch, minSize)
	}
	return best, nil
}

// FreeResult describes the directory to delete to reach a free-space target.
type FreeResult struct {
	Capacity uint64 // total disk capacity
	Required uint64 // free space that must be available
	Used     uint64 // cumulative size of the root
	Free     uint64 // Capacity - Used, zero on an overfull disk

	// Deficit is the space still missing, Required - Free. Zero means the
	// target is already met.
	Deficit uint64

	Dir  NodeID // NoNode when nothing needs deleting
	Size uint64 // cumulative size of Dir
}

// NeedsDeletion reports whether any directory has to go.
func (r FreeResult) NeedsDeletion() bool {
	return r.Deficit > 0
}

// FreeUp finds the smallest directory whose deletion leaves at least required
// bytes free on a disk of the given capacity.
func (t *Tree) FreeUp(capacity, required uint64) (FreeResult, error) {
	used := t.Size(t.Root())
	r := FreeResult{
		Capacity: capacity,
		Required: required,
		Used:     used,
		Dir:      NoNode,
	}
	switch {
	case capacity >= used:
		r.Free = capacity - used
		if r.Free < required {
			r.Deficit = required - r.Free
		}
	default:
		var carry uint64
		r.Deficit, carry = bits.Add64(required, used-capacity, 0)
		if carry != 0 {
			r.Deficit = math.MaxUint64
		}
	}
	if !r.NeedsDeletion() {
		return r, nil
	}

	id, err := t.SmallestAtLeast(r.Deficit)
	if err != nil {
		return r, fmt.Errorf("cannot free %d bytes: %w", r.Deficit, err)
	}
	r.Dir = id
	r.Size = t.nodes[id].CumulativeSize
	return r, nil
}

package fstree

import (
	"errors"
	"fmt"
)

// adjacency lists the live children of every directory in insertion order.
func (t *Tree) adjacency() map[NodeID][]NodeID {
	adj := make(map[NodeID][]NodeID)
	for id, n := range t.Iterate {
		if n.Parent == NoNode {
			continue
		}
		adj[n.Parent] = append(adj[n.Parent], id)
	}
	return adj
}

// Recompute derives the cumulative size of every live directory by walking
// the tree from the root, without looking at the memoized sizes.
func (t *Tree) Recompute() map[NodeID]uint64 {
	adj := t.adjacency()
	sizes := make(map[NodeID]uint64)

	var walk func(id NodeID) uint64
	walk = func(id NodeID) uint64 {
		n := t.nodes[id]
		if !n.IsDir() {
			return n.Size
		}
		var total uint64
		for _, c := range adj[id] {
			total += walk(c)
		}
		sizes[id] = total
		return total
	}
	walk(t.Root())
	return sizes
}

// Verify checks every memoized directory size against Recompute.
func (t *Tree) Verify() error {
	var errs []error
	for id, size := range t.Recompute() {
		if memo := t.nodes[id].CumulativeSize; memo != size {
			errs = append(errs, fmt.Errorf("%w: %s memoized %d, recomputed %d",
				ErrSizeMismatch, t.Path(id), memo, size))
		}
	}
	return errors.Join(errs...)
}

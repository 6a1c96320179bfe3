package fstree

import (
	"fmt"
	"iter"
	"math/bits"
	"strings"
)

// Tree is an arena of nodes rooted at a single directory named "/".
type Tree struct {
	nodes []Node
	index map[childKey]NodeID
}

// New returns a tree holding only the root directory.
func New() *Tree {
	return &Tree{
		nodes: []Node{{Name: RootName, Kind: Directory, Parent: NoNode}},
		index: make(map[childKey]NodeID),
	}
}

// Root returns the id of the root directory.
func (t *Tree) Root() NodeID {
	return 0
}

// Len returns the number of nodes in the arena, retired nodes included.
func (t *Tree) Len() int {
	return len(t.nodes)
}

func (t *Tree) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// Node returns a copy of the node with the given id.
func (t *Tree) Node(id NodeID) (Node, error) {
	if !t.valid(id) {
		return Node{}, fmt.Errorf("%w: %d", ErrNodeNotFound, id)
	}
	return t.nodes[id], nil
}

// Size returns the cumulative size of id, or 0 for an unknown id.
func (t *Tree) Size(id NodeID) uint64 {
	if !t.valid(id) {
		return 0
	}
	return t.nodes[id].CumulativeSize
}

// Lookup finds the live child of parent called name.
func (t *Tree) Lookup(parent NodeID, name string) (NodeID, bool) {
	id, ok := t.index[childKey{parent: parent, name: name}]
	return id, ok
}

// Children returns the live children of id in insertion order.
func (t *Tree) Children(id NodeID) []NodeID {
	var out []NodeID
	if !t.valid(id) {
		return out
	}
	for i := int(id) + 1; i < len(t.nodes); i++ {
		n := t.nodes[i]
		if n.Parent == id && !n.Retired {
			out = append(out, NodeID(i))
		}
	}
	return out
}

// Iterate yields every live node in insertion order, root first.
func (t *Tree) Iterate(yield func(NodeID, Node) bool) {
	for i, n := range t.nodes {
		if n.Retired {
			continue
		}
		if !yield(NodeID(i), n) {
			return
		}
	}
}

// Directories yields every live directory in insertion order, root first.
func (t *Tree) Directories() iter.Seq2[NodeID, Node] {
	return func(yield func(NodeID, Node) bool) {
		for id, n := range t.Iterate {
			if n.IsDir() && !yield(id, n) {
				return
			}
		}
	}
}

// Path returns the absolute slash-separated path of id.
func (t *Tree) Path(id NodeID) string {
	if !t.valid(id) {
		return ""
	}
	var parts []string
	for cur := id; cur != t.Root(); cur = t.nodes[cur].Parent {
		parts = append(parts, t.nodes[cur].Name)
	}
	if len(parts) == 0 {
		return RootName
	}
	var sb strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		sb.WriteString("/")
		sb.WriteString(parts[i])
	}
	return sb.String()
}

// add appends a node under parent and propagates its size to every ancestor.
func (t *Tree) add(parent NodeID, name string, kind Kind, size uint64) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, Node{
		Name:           name,
		Kind:           kind,
		Size:           size,
		Parent:         parent,
		Depth:          t.nodes[parent].Depth + 1,
		CumulativeSize: size,
	})
	t.index[childKey{parent: parent, name: name}] = id
	t.grow(parent, size)
	return id
}

// fits reports whether the tree can take size more bytes once freed bytes
// have been withdrawn. The root total bounds every other directory.
func (t *Tree) fits(size, freed uint64) bool {
	_, carry := bits.Add64(t.nodes[0].CumulativeSize-freed, size, 0)
	return carry == 0
}

func (t *Tree) grow(from NodeID, size uint64) {
	for id := from; id != NoNode; id = t.nodes[id].Parent {
		t.nodes[id].CumulativeSize += size
	}
}

func (t *Tree) shrink(from NodeID, size uint64) {
	for id := from; id != NoNode; id = t.nodes[id].Parent {
		t.nodes[id].CumulativeSize -= size
	}
}

// resize replaces the size of file id and moves the difference up the chain.
func (t *Tree) resize(id NodeID, size uint64) {
	n := &t.nodes[id]
	old := n.Size
	n.Size = size
	n.CumulativeSize = size
	t.shrink(n.Parent, old)
	t.grow(n.Parent, size)
}

// retire hides id and its whole subtree, withdrawing its size from the
// ancestors. It returns the number of nodes retired.
func (t *Tree) retire(id NodeID) int {
	n := &t.nodes[id]
	t.shrink(n.Parent, n.CumulativeSize)
	n.Retired = true
	delete(t.index, childKey{parent: n.Parent, name: n.Name})

	// Descendants always sit after their parent in the arena.
	count := 1
	for i := int(id) + 1; i < len(t.nodes); i++ {
		c := &t.nodes[i]
		if c.Retired || !t.nodes[c.Parent].Retired {
			continue
		}
		c.Retired = true
		delete(t.index, childKey{parent: c.Parent, name: c.Name})
		count++
	}
	return count
}

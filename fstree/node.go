package fstree

// NodeID addresses a node in the tree arena.
type NodeID int

// NoNode is the parent of the root and the result of lookups that found nothing.
const NoNode NodeID = -1

// RootName is the reserved name of the root directory.
const RootName = "/"

// Kind tells directories and files apart.
type Kind uint8

const (
	Directory Kind = iota
	File
)

func (k Kind) String() string {
	if k == File {
		return "file"
	}
	return "dir"
}

// Node is a directory or a file. Names are only unique among siblings.
type Node struct {
	Name   string
	Kind   Kind
	Size   uint64 // file size, zero for directories
	Parent NodeID // NoNode for the root
	Depth  int    // the root is at depth 0

	// CumulativeSize is the total size of all live file descendants of a
	// directory. For files it mirrors Size.
	CumulativeSize uint64

	Retired bool
}

func (n Node) IsDir() bool {
	return n.Kind == Directory
}

type childKey struct {
	parent NodeID
	name   string
}

package replayfs

import "github.com/dendrascience/replayfs/fstree"

// InodeFor returns the inode number of a tree node. The root maps to inode 1.
func InodeFor(id fstree.NodeID) uint64 {
	return uint64(id) + 1
}

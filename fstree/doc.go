// Package fstree rebuilds a directory hierarchy from replayed transcript events
// and answers size queries over it.
//
// # Storage
//
// All nodes live in a single arena owned by the Tree and are addressed by
// NodeID. A node refers to its parent by id; children are never stored as
// owned lists and are derived by scanning the arena, which keeps the structure
// free of cycles by construction. A child always has a larger id than its
// parent. Sibling lookup goes through a map keyed by (parent id, name).
//
// # Sizes
//
// Every directory carries a memoized cumulative size. When a file is inserted
// its size is added to each ancestor, root included, so the memoized values are
// correct after every event, not only at the end of a replay. Recompute and
// Verify re-derive the sizes by walking the tree, ignoring the memo.
//
// # Lifecycle
//
//  1. Create a Builder (or call Replay) with the desired ConflictPolicy.
//  2. Feed it transcript.Events one at a time with Apply.
//  3. Query the Tree: SumAtMost, SmallestAtLeast, FreeUp, Render, Summarize.
//
// Nodes are never removed from the arena. Under ConflictLastWriteWins a node
// that loses its name is retired instead: it keeps its id but disappears from
// lookups, queries and listings, and its size is withdrawn from its ancestors.
//
// # Thread Safety
//
// A Tree is not safe for concurrent mutation. Once a replay has finished the
// tree is only read, and may then be shared between goroutines.
package fstree

package fstree

import "errors"

// Sentinel errors for package fstree.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Replay errors
	ErrNavigateAboveRoot = errors.New("cannot navigate above the root directory")
	ErrNameConflict      = errors.New("name already used by a different entry")
	ErrSizeOverflow      = errors.New("total size exceeds 2^64-1 bytes")

	// Query errors
	ErrNoMatch = errors.New("no directory matches the query")

	// Consistency errors
	ErrSizeMismatch = errors.New("memoized size differs from recomputed size")

	// Lookup errors
	ErrNodeNotFound = errors.New("node not found")
)

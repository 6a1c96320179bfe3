// Package transcript parses captured shell sessions into replayable events.
//
// A transcript is the verbatim output of an interactive session that only ever
// ran two commands, cd and ls:
//
//	$ cd /
//	$ ls
//	dir a
//	14848514 b.txt
//	$ cd a
//
// Each non-blank line becomes exactly one Event. Lines are classified by their
// shape, never by their position, and anything that does not match one of the
// four known shapes is rejected with a *ParseError. Events yields the events
// lazily in a single pass; the sequence cannot be restarted.
//
// Generate writes synthetic, well-formed transcripts for load testing and for
// round-trip checks against the fstree package.
package transcript

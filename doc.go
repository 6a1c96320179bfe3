// Package main provides the replayfs command-line interface.
//
// replayfs rebuilds a filesystem hierarchy from a transcript of shell commands
// ("$ cd", "$ ls") and their listing output, keeps a cumulative size for every
// directory, and answers size queries over the result.
//
// The binary supports multiple subcommands:
//   - sizes: Sum the directories at or below a size threshold
//   - free: Find the smallest directory whose deletion frees enough space
//   - tree: Print the reconstructed tree
//   - count: Summarize directories, files and sizes
//   - validate: Replay a transcript and cross-check every directory size
//   - seed: Generate a synthetic transcript
//   - mount: Mount the reconstructed tree read-only with FUSE
//   - browse: Explore the reconstructed tree interactively
package main

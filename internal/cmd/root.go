package cmd

import (
	"github.com/dendrascience/replayfs/fstree"
	"github.com/dendrascience/replayfs/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root cobra command for the replayfs CLI.
// It sets up all subcommands, command groups and the persistent flags shared
// by every command that replays a transcript.
func NewRootCmd() *cobra.Command {
	var conflict fstree.ConflictPolicy

	rootCmd := &cobra.Command{
		Use:   "replayfs",
		Short: "replayfs - rebuild a filesystem tree from a shell transcript",
		Long: `replayfs rebuilds a filesystem hierarchy from a transcript of shell
commands ("$ cd", "$ ls") and their listing output, then answers size queries
over the reconstructed tree.

Use subcommands to perform different operations:
  - sizes: Sum the directories at or below a size threshold
  - free: Find the smallest directory that frees enough space
  - tree: Print the reconstructed tree
  - count: Summarize directories, files and sizes
  - validate: Replay a transcript and cross-check every directory size
  - seed: Generate a synthetic transcript
  - mount: Mount the reconstructed tree read-only
  - browse: Explore the reconstructed tree interactively`,
		Version: version.GetFullVersion(),
	}

	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Var(&conflict, "conflict", "Name conflict policy (reject, last-write-wins)")

	groupQueries := "queries"
	groupFilesystem := "filesystem"
	groupUtilities := "utilities"

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupQueries,
		Title: "Queries",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupFilesystem,
		Title: "Filesystem Views",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	sizesCmd := NewSizesCmd()
	freeCmd := NewFreeCmd()
	treeCmd := NewTreeCmd()
	countCmd := NewCountCmd()
	mountCmd := NewMountCmd()
	browseCmd := NewBrowseCmd()
	validateCmd := NewValidateCmd()
	seedCmd := NewSeedCmd()

	sizesCmd.GroupID = groupQueries
	freeCmd.GroupID = groupQueries
	treeCmd.GroupID = groupQueries
	countCmd.GroupID = groupQueries
	mountCmd.GroupID = groupFilesystem
	browseCmd.GroupID = groupFilesystem
	validateCmd.GroupID = groupUtilities
	seedCmd.GroupID = groupUtilities

	rootCmd.AddCommand(sizesCmd, freeCmd, treeCmd, countCmd)
	rootCmd.AddCommand(mountCmd, browseCmd)
	rootCmd.AddCommand(validateCmd, seedCmd)

	return rootCmd
}

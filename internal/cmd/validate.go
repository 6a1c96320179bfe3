package cmd

import (
	"fmt"

	"github.com/dendrascience/replayfs/fstree"
	"github.com/dendrascience/replayfs/transcript"
	"github.com/spf13/cobra"
)

// NewValidateCmd creates and returns the validate subcommand for the replayfs CLI.
// It replays a transcript and checks the memoized sizes against a full re-walk.
func NewValidateCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "validate TRANSCRIPT",
		Short: "Validate a transcript and its reconstructed sizes",
		Long: `Replay TRANSCRIPT event by event and report the first malformed line, navigation
error or name conflict. After a successful replay every directory size kept
during the replay is compared against a fresh walk of the tree.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			policy, err := fstree.ParseConflictPolicy(s.cfg.ConflictPolicy)
			if err != nil {
				return err
			}

			f, err := transcript.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			out := cmd.OutOrStdout()
			if verbose {
				fmt.Fprintf(out, "Validating transcript %s\n", args[0])
			}

			b := fstree.NewBuilder(fstree.WithConflictPolicy(policy), fstree.WithLogger(s.logger))
			for ev, err := range transcript.Events(f) {
				if err != nil {
					return err
				}
				if err := b.Apply(ev); err != nil {
					return err
				}
			}
			tree := b.Tree()

			sizes := tree.Recompute()
			if verbose {
				for id := range tree.Directories() {
					fmt.Fprintf(out, "  %s %d\n", tree.Path(id), sizes[id])
				}
			}
			if err := tree.Verify(); err != nil {
				return err
			}

			summary := tree.Summarize()
			fmt.Fprintf(out, "Validation complete:\n")
			fmt.Fprintf(out, "  Events applied: %d\n", b.Applied())
			fmt.Fprintf(out, "  Directories checked: %d\n", summary.Directories)
			fmt.Fprintf(out, "  Files: %d\n", summary.Files)
			fmt.Fprintf(out, "  Total size: %d\n", summary.TotalSize)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print every directory and its size")

	return cmd
}

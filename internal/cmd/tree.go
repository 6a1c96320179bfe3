package cmd

import (
	"github.com/dendrascience/replayfs/fstree"
	"github.com/spf13/cobra"
)

// NewTreeCmd creates and returns the tree subcommand.
func NewTreeCmd() *cobra.Command {
	var color bool

	cmd := &cobra.Command{
		Use:   "tree TRANSCRIPT",
		Short: "Print the reconstructed directory tree",
		Long: `Replay TRANSCRIPT and print the reconstructed tree. Directories are listed
before files and show their cumulative size in parentheses.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			tree, err := s.replay(args[0])
			if err != nil {
				return err
			}
			return tree.Render(cmd.OutOrStdout(), fstree.RenderOptions{Color: color})
		},
	}

	cmd.Flags().BoolVar(&color, "color", false, "Colour names by a stable hash")

	return cmd
}

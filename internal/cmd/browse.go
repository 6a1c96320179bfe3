package cmd

import (
	"github.com/dendrascience/replayfs/internal/browse"
	"github.com/spf13/cobra"
)

// NewBrowseCmd creates and returns the browse subcommand.
func NewBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse TRANSCRIPT",
		Short: "Explore the reconstructed tree interactively",
		Long: `Replay TRANSCRIPT and open an interactive browser over the reconstructed tree.
Entries are sorted by size, largest first. Use the arrow keys to move, enter
to open a directory, backspace to go up and q to quit.`,
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
			return browse.Run(tree, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

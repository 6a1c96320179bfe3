package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSizesCmd creates and returns the sizes subcommand.
func NewSizesCmd() *cobra.Command {
	var (
		threshold    uint64
		includeEmpty bool
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:   "sizes TRANSCRIPT",
		Short: "Sum the sizes of directories at or below a threshold",
		Long: `Replay TRANSCRIPT and print the sum of the cumulative sizes of every
directory whose size does not exceed the threshold. Nested directories are
counted once for each qualifying ancestor. Empty directories are left out
unless --include-empty is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			if cmd.Flags().Changed("threshold") {
				s.cfg.Threshold = threshold
			}
			if cmd.Flags().Changed("include-empty") {
				s.cfg.IncludeEmpty = includeEmpty
			}

			tree, err := s.replay(args[0])
			if err != nil {
				return err
			}

			sum := tree.SumAtMost(s.cfg.Threshold, s.cfg.IncludeEmpty)
			if verbose {
				count := tree.CountAtMost(s.cfg.Threshold, s.cfg.IncludeEmpty)
				fmt.Fprintf(cmd.OutOrStdout(), "Directories at or below %d: %d\n", s.cfg.Threshold, count)
				fmt.Fprintf(cmd.OutOrStdout(), "Total: %d\n", sum)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), sum)
			return nil
		},
	}

	cmd.Flags().Uint64VarP(&threshold, "threshold", "t", 100000, "Largest directory size to include")
	cmd.Flags().BoolVar(&includeEmpty, "include-empty", false, "Include directories of size zero")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Also print the number of matching directories")

	return cmd
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewFreeCmd creates and returns the free subcommand.
func NewFreeCmd() *cobra.Command {
	var (
		capacity uint64
		required uint64
	)

	cmd := &cobra.Command{
		Use:   "free TRANSCRIPT",
		Short: "Find the smallest directory whose deletion frees enough space",
		Long: `Replay TRANSCRIPT on a disk of the given capacity and find the smallest
directory whose deletion leaves at least the required amount of free space.

The used space is the size of the root directory. When the disk already has
enough free space nothing needs to be deleted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			if cmd.Flags().Changed("capacity") {
				s.cfg.Capacity = capacity
			}
			if cmd.Flags().Changed("required") {
				s.cfg.RequiredFree = required
			}
			if err := s.cfg.Validate(); err != nil {
				return err
			}

			tree, err := s.replay(args[0])
			if err != nil {
				return err
			}

			res, err := tree.FreeUp(s.cfg.Capacity, s.cfg.RequiredFree)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Used: %d\n", res.Used)
			fmt.Fprintf(out, "Free: %d\n", res.Free)
			if !res.NeedsDeletion() {
				fmt.Fprintf(out, "Deficit: 0 (nothing to delete)\n")
				return nil
			}
			fmt.Fprintf(out, "Deficit: %d\n", res.Deficit)
			fmt.Fprintf(out, "Delete: %s %d\n", tree.Path(res.Dir), res.Size)
			return nil
		},
	}

	cmd.Flags().Uint64VarP(&capacity, "capacity", "c", 70000000, "Total disk capacity")
	cmd.Flags().Uint64VarP(&required, "required", "r", 30000000, "Free space required")

	return cmd
}

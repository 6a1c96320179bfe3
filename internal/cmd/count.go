package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewCountCmd creates and returns the count subcommand for the replayfs CLI.
// It summarizes the reconstructed tree.
func NewCountCmd() *cobra.Command {
	var (
		asJSON bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "count TRANSCRIPT",
		Short: "Count directories and files in a transcript",
		Long: `Replay TRANSCRIPT and count the directories and files it describes,
together with the total size, the largest file and the deepest nesting level.

With --output the summary is also written as JSON to the given file, or to
summary.json inside the given directory.`,
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
			summary := tree.Summarize()

			if output != "" {
				if err := summary.Save(output); err != nil {
					return fmt.Errorf("failed to write summary: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				je := json.NewEncoder(out)
				je.SetIndent("", "  ")
				return je.Encode(summary)
			}

			fmt.Fprintf(out, "Directories: %d\n", summary.Directories)
			fmt.Fprintf(out, "Files: %d\n", summary.Files)
			fmt.Fprintf(out, "Total size: %d\n", summary.TotalSize)
			fmt.Fprintf(out, "Largest file: %d\n", summary.LargestFile)
			fmt.Fprintf(out, "Max depth: %d\n", summary.MaxDepth)
			if summary.Retired > 0 {
				fmt.Fprintf(out, "Replaced nodes: %d\n", summary.Retired)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the summary as JSON")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Also write the JSON summary to this file or directory")

	return cmd
}

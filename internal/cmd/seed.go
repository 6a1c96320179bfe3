package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/dendrascience/replayfs/transcript"
	"github.com/spf13/cobra"
)

// NewSeedCmd creates and returns the seed subcommand for the replayfs CLI.
// It writes a synthetic transcript with a randomized directory structure.
func NewSeedCmd() *cobra.Command {
	var (
		outputPath string
		opts       = transcript.DefaultGenerateOptions()
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a synthetic transcript with a randomized directory structure",
		Long: `Generate a well-formed transcript for testing replayfs.

Directories are nested up to --depth levels with random UUID-derived names and
files are spread across them with random sizes. The transcript visits every
directory once, listing it before descending. Use "-" as the output to write to
standard output.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var w io.Writer = cmd.OutOrStdout()
			if outputPath != "-" {
				f, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer f.Close()
				w = f
			}

			total, err := transcript.Generate(w, opts)
			if err != nil {
				return err
			}

			if verbose && outputPath != "-" {
				fmt.Fprintf(cmd.OutOrStdout(), "Generated %d directories and %d files in %s\n", opts.Dirs, opts.Files, outputPath)
				fmt.Fprintf(cmd.OutOrStdout(), "Total size: %d\n", total)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to the output transcript, or - for stdout (required)")
	cmd.Flags().IntVar(&opts.Dirs, "dirs", opts.Dirs, "Number of directories below the root")
	cmd.Flags().IntVarP(&opts.Files, "files", "c", opts.Files, "Number of files")
	cmd.Flags().IntVar(&opts.MaxDepth, "depth", opts.MaxDepth, "Maximum directory depth")
	cmd.Flags().Uint64Var(&opts.MaxSize, "max-size", opts.MaxSize, "Largest file size")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	cmd.MarkFlagRequired("output")

	return cmd
}

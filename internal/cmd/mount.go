package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/dendrascience/replayfs/replayfs"
	"github.com/dendrascience/replayfs/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewMountCmd creates and returns the mount subcommand for the replayfs CLI.
// It serves the reconstructed tree read-only at a mountpoint.
func NewMountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mount TRANSCRIPT MOUNTPOINT",
		Short: "Mount the reconstructed tree as a read-only filesystem",
		Long: `Replay TRANSCRIPT and mount the reconstructed tree at MOUNTPOINT.

Directories report their cumulative size and files read back as zeros up to
their listed size. The filesystem is read-only and stays mounted until the
process is interrupted.`,
		Args: cobra.ExactArgs(2),
		RunE: runMount,
	}
}

func runMount(cmd *cobra.Command, args []string) error {
	transcriptPath := args[0]
	mountpoint := args[1]

	if pathsOverlap(transcriptPath, mountpoint) {
		return fmt.Errorf("mountpoint %s would hide transcript %s", mountpoint, transcriptPath)
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	tree, err := s.replay(transcriptPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s.logger.Info("mounting",
		zap.String("version", version.GetVersion()),
		zap.String("mountpoint", mountpoint),
		zap.String("transcript", transcriptPath),
	)
	if err := replayfs.Mount(ctx, tree, mountpoint, s.logger); err != nil {
		return err
	}
	s.logger.Info("shutdown complete")
	return nil
}

// pathsOverlap reports whether one path is equal to or nested inside the other.
func pathsOverlap(path1, path2 string) bool {
	abs1, err := filepath.Abs(path1)
	if err != nil {
		abs1 = filepath.Clean(path1)
	}
	abs2, err := filepath.Abs(path2)
	if err != nil {
		abs2 = filepath.Clean(path2)
	}
	return within(abs1, abs2) || within(abs2, abs1)
}

func within(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

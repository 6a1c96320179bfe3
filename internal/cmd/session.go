package cmd

import (
	"fmt"
	"time"

	"github.com/dendrascience/replayfs/fstree"
	"github.com/dendrascience/replayfs/internal/config"
	"github.com/dendrascience/replayfs/internal/logging"
	"github.com/dendrascience/replayfs/transcript"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// session carries the resolved configuration and logger of one command run.
type session struct {
	cfg    *config.Config
	logger *zap.Logger
	runID  string
}

// newSession loads the config file named by --config, applies the persistent
// flag overrides and builds the logger.
func newSession(cmd *cobra.Command) (*session, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if f := flags.Lookup("log-level"); f != nil && f.Changed {
		cfg.LogLevel = f.Value.String()
	}
	if f := flags.Lookup("conflict"); f != nil && f.Changed {
		cfg.ConflictPolicy = f.Value.String()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		return nil, err
	}
	runID := uuid.NewString()

	return &session{
		cfg:    cfg,
		logger: logger.With(zap.String("run", runID), zap.String("command", cmd.Name())),
		runID:  runID,
	}, nil
}

// replay reads the transcript at path and builds its tree.
func (s *session) replay(path string) (*fstree.Tree, error) {
	policy, err := fstree.ParseConflictPolicy(s.cfg.ConflictPolicy)
	if err != nil {
		return nil, err
	}

	f, err := transcript.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	start := time.Now()
	tree, err := fstree.Replay(transcript.Events(f),
		fstree.WithConflictPolicy(policy),
		fstree.WithLogger(s.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("replaying %s: %w", path, err)
	}

	s.logger.Debug("transcript replayed",
		zap.String("path", path),
		zap.Int("nodes", tree.Len()),
		zap.Uint64("total_size", tree.Size(tree.Root())),
		zap.Duration("elapsed", time.Since(start)),
	)
	return tree, nil
}

func (s *session) close() {
	_ = s.logger.Sync()
}

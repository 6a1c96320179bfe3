// Package cmd provides the command-line interface implementation for replayfs.
//
// Each subcommand lives in its own file with a constructor returning a
// *cobra.Command. The root command registers them in groups and owns the
// persistent --config, --log-level and --conflict flags. Commands that read
// a transcript open a session, which resolves the configuration from the
// config file, REPLAYFS_* environment variables and flags, builds the zap
// logger and replays the transcript into an fstree.Tree.
//
// Commands return their errors; fang renders them and sets the exit status.
package cmd

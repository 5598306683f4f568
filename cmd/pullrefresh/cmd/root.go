// Package cmd implements the pullrefresh CLI commands.
//
// The root command resolves the project configuration and sets up logging
// before dispatching to a subcommand (demo, replay, version).
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/go-drift/pullrefresh/pkg/config"
	"github.com/go-drift/pullrefresh/pkg/logging"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// options carries state resolved by the root command to its subcommands.
type options struct {
	dir      string
	debug    bool
	resolved *config.Resolved
}

// NewRootCmd creates the root command with every subcommand registered.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "pullrefresh",
		Short: "pullrefresh - pull-to-refresh and load-more for scroll views",
		Long: `pullrefresh drives a scroll-position state machine that decides when a
list has been pulled far enough to refresh or to load the next page.

Use "pullrefresh <command> --help" for more information about a command.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.dir, "dir", "", "project directory holding pullrefresh.yaml (default: nearest project root)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	cmd.AddCommand(newDemoCmd(opts), newReplayCmd(opts), newVersionCmd())

	return cmd
}

func (o *options) setup(cmd *cobra.Command) error {
	dir := o.dir
	if dir == "" {
		root, err := config.FindProjectRoot()
		if err != nil {
			return err
		}
		dir = root
	}

	resolved, err := config.Resolve(dir)
	if err != nil {
		return err
	}
	o.resolved = resolved

	level := resolved.LogLevel
	if o.debug {
		level = "debug"
	}
	logging.Init(level, cmd.ErrOrStderr())
	logging.Logger().Debug().
		Str("dir", dir).
		Str("module", resolved.ModulePath).
		Msg("configuration resolved")
	return nil
}

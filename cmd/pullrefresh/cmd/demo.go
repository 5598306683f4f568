package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/go-drift/pullrefresh/pkg/logging"
	"github.com/go-drift/pullrefresh/pkg/tui"
)

var errNotTerminal = errors.New("demo needs an interactive terminal")

func newDemoCmd(opts *options) *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run an interactive pull-to-refresh list in the terminal",
		Long: `Demo renders a paged list in the terminal. Hold the left mouse button and
drag down past the top to refresh, or drag up past the bottom to load the
next page. Logs are discarded unless --log-file is set, since the list owns
the screen.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(os.Stdout) || !isTerminal(os.Stdin) {
				return errNotTerminal
			}

			var w io.Writer = io.Discard
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("failed to open log file: %w", err)
				}
				defer f.Close()
				w = f
			}
			level := opts.resolved.LogLevel
			if opts.debug {
				level = "debug"
			}
			if w == io.Discard {
				logging.Set(zerolog.Nop())
			} else {
				logging.Init(level, w)
			}

			model := tui.New(*opts.resolved, tui.WithLogger(logging.Logger()))
			program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("demo failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file while the demo runs")
	return cmd
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-drift/pullrefresh/pkg/logging"
	"github.com/go-drift/pullrefresh/pkg/replay"
)

func newReplayCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "replay <trace.yaml>",
		Short: "Replay a recorded event trace through the state machine",
		Long: `Replay feeds every event of a YAML trace to a fresh state machine and
prints one line per event: the index, the operation, the state before and
after, and any callbacks it fired.`,
		Example: `  pullrefresh replay testdata/refresh.yaml
  pullrefresh replay --json session.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trace, err := replay.Load(args[0])
			if err != nil {
				return err
			}
			steps, err := replay.Run(trace, replay.WithLogger(logging.Logger()))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				for _, step := range steps {
					if err := enc.Encode(step); err != nil {
						return err
					}
				}
				return nil
			}
			for _, step := range steps {
				if _, err := fmt.Fprintln(out, step); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print one JSON object per event")
	return cmd
}

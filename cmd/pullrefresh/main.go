// Command pullrefresh demos and replays the pull-to-refresh state machine.
package main

import (
	"os"

	"github.com/go-drift/pullrefresh/cmd/pullrefresh/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

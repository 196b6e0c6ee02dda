package cmd

import (
	"github.com/spf13/cobra"

	"github.com/go-drift/reorder/cmd/reorder/internal/replay"
)

func replayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replay <script.yaml>",
		Short: "Replay a scripted gesture and print the resulting order",
		Long: `Replay a scripted gesture against the configured lists.

A script is a YAML document with a list of steps. Each step drags the row
named by "from" onto the row named by "to"; rows are named "list/index" or
"list/label". Set "cancel: true" to abort the drag over the target instead.

  steps:
    - from: todo/0
      to: done/0
    - from: fruit/apple
      to: fruit/2
      cancel: true`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := replay.Load(args[0])
			if err != nil {
				return err
			}
			runner := replay.NewRunner(resolved)
			defer runner.Close()
			_, err = runner.Run(script, cmd.OutOrStdout())
			return err
		},
	}
}

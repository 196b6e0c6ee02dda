package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-drift/reorder/pkg/term"
)

func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the interactive terminal board",
		Long: `Run the interactive terminal board.

Press a row's handle and drag it onto another row of the same group to move
it. Escape cancels a drag, y copies the current order, ? shows all keys.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			board := term.NewBoard(resolved.Lists, term.WithDirectiveName(resolved.Directive))
			model := term.NewModel(board, term.WithTitle(resolved.Title))
			if err := term.Run(cmd.Context(), model); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), board.String())
			return nil
		},
	}
}

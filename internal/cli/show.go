package cli

import (
	"github.com/spf13/cobra"
)

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <card-id>",
		Short: "Show one card in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			card, err := app.remote.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			renderCard(cmd.OutOrStdout(), card)
			return nil
		},
	}
}

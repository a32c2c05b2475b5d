package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ryuseikaiz/Ichu-Database/internal/editor"
	apperr "github.com/Ryuseikaiz/Ichu-Database/internal/errors"
)

func newDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <card-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a card",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.gate.CanMutate() {
				return errLoginRequired
			}
			if err := app.coord.Refresh(cmd.Context()); err != nil {
				return err
			}

			id := args[0]
			card, ok := app.coord.Collection().Get(id)
			if !ok {
				return apperr.NotFoundf("card %s not found", id)
			}

			confirm := editor.ConfirmFunc(func(prompt string) (bool, error) {
				if yes {
					return true, nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), bold.Sprint(card.Name))
				return app.confirm(prompt)
			})

			out := cmd.OutOrStdout()
			err := app.coord.SubmitDelete(cmd.Context(), id, confirm)
			switch {
			case apperr.Is(err, editor.ErrCancelled):
				fmt.Fprintln(out, "Cancelled.")
				return nil
			case err != nil:
				return &displayError{msg: editor.UserMessage(err), err: err}
			}

			fmt.Fprintf(out, "Deleted %s.\n", card.Name)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

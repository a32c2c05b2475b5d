package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const exportFile = "ichu_cards.json"

func newExportCmd(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download the whole collection as JSON",
		Long: `Download the whole collection in the crawler's file format.
Use "-o -" to write to standard output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := app.remote.Export(cmd.Context())
			if err != nil {
				return err
			}

			if output == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil { //#nosec G306 -- exported catalog is public data
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported collection to %s.\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", exportFile, "Output file")
	return cmd
}

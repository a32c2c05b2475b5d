package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the command tree for app.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "ichu",
		Short: "Browse and curate the I-Chu card catalog",
		Long: `ichu is a terminal client for the I-Chu card catalog.

Anyone can list, search, sort and page through the cards. Logging in as an
editor enables edit and delete; changes show immediately and are undone if
the server refuses them.

Configuration lives in $XDG_CONFIG_HOME/ichu/config.toml and is created on
first run.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.setup(cmd)
		},
	}

	root.SetIn(app.In)
	root.SetOut(app.Out)
	root.SetErr(app.Err)

	pf := root.PersistentFlags()
	pf.StringVar(&app.flags.config, "config", "", "Config file (default $XDG_CONFIG_HOME/ichu/config.toml)")
	pf.StringVar(&app.flags.server, "server", "", "Catalog server URL (overrides config)")
	pf.DurationVar(&app.flags.timeout, "timeout", 0, "Request timeout (overrides config)")
	pf.StringVar(&app.flags.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	pf.BoolVar(&app.flags.noColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		newListCmd(app),
		newShowCmd(app),
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newEditCmd(app),
		newDeleteCmd(app),
		newExportCmd(app),
	)
	return root
}

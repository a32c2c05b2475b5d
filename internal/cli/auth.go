package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	apperr "github.com/Ryuseikaiz/Ichu-Database/internal/errors"
)

func newLoginCmd(app *App) *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as an editor",
		Long: `Log in as an editor. The session is kept in
$XDG_CONFIG_HOME/ichu/session.toml until you log out.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if username == "" {
				if username, err = app.readLine("Username: "); err != nil {
					return err
				}
			}
			password, err := app.readPassword("Password: ")
			if err != nil {
				return err
			}
			if username == "" || password == "" {
				return errors.New("username and password are required")
			}

			s, err := app.gate.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s.\n", bold.Sprint(s.Username))
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "Editor username")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the editor session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.gate.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current editor session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			s := app.gate.Current()
			if s == nil {
				fmt.Fprintln(out, "Not logged in.")
				return nil
			}

			remote, err := app.remote.Session(cmd.Context(), s.Token)
			switch {
			case apperr.Is(err, apperr.ErrUnauthorized), apperr.Is(err, apperr.ErrTokenExpired):
				fmt.Fprintf(out, "Logged in as %s, but the session has expired. Please login again.\n", s.Username)
				return nil
			case err != nil:
				return err
			}

			fmt.Fprintf(out, "Logged in as %s", bold.Sprint(remote.Username))
			if !remote.ExpiresAt.IsZero() {
				fmt.Fprintf(out, " until %s", remote.ExpiresAt.Local().Format(time.DateTime))
			}
			fmt.Fprintln(out, ".")
			return nil
		},
	}
}

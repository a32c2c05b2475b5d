// Package cli implements the ichu terminal client: browsing the catalog,
// and editing it while logged in.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Ryuseikaiz/Ichu-Database/internal/client"
	"github.com/Ryuseikaiz/Ichu-Database/internal/clientconfig"
	"github.com/Ryuseikaiz/Ichu-Database/internal/editor"
	apperr "github.com/Ryuseikaiz/Ichu-Database/internal/errors"
	"github.com/Ryuseikaiz/Ichu-Database/internal/logger"
)

// App holds the I/O streams and the collaborators shared by every command.
// Collaborators are built in the root command's pre-run, after flags are
// parsed.
type App struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// ConfigPath and SessionPath default to the files under
	// clientconfig.Dir.
	ConfigPath  string
	SessionPath string

	flags globalFlags

	cfg    *clientconfig.Config
	log    *logger.Logger
	remote *client.Client
	gate   *editor.SessionGate
	coord  *editor.Coordinator
	reader *bufio.Reader
}

type globalFlags struct {
	config   string
	server   string
	timeout  time.Duration
	logLevel string
	noColor  bool
}

// New creates an App over the given streams.
func New(in io.Reader, out, errOut io.Writer) *App {
	return &App{In: in, Out: out, Err: errOut}
}

// Execute runs the client with the process arguments and returns the exit
// code.
func Execute(ctx context.Context) int {
	app := New(os.Stdin, os.Stdout, os.Stderr)
	if err := NewRootCommand(app).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(app.Err, color.RedString("Error:"), errorText(err))
		return 1
	}
	return 0
}

// setup loads configuration and builds the collaborators.
func (a *App) setup(cmd *cobra.Command) error {
	if a.flags.noColor {
		color.NoColor = true
	}

	path := a.flags.config
	if path == "" {
		path = a.ConfigPath
	}
	if path == "" {
		path = clientconfig.FilePath()
	}
	cfg, err := clientconfig.Load(path)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("server") {
		cfg.ServerURL = a.flags.server
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout = clientconfig.Duration{Duration: a.flags.timeout}
	}
	a.cfg = cfg

	a.log = logger.New(logger.Config{
		Writer:      a.Err,
		Environment: "development",
		Level:       logger.ParseLevel(a.flags.logLevel),
	})

	a.remote, err = client.New(cfg.ServerURL,
		client.WithTimeout(cfg.Timeout.Duration),
		client.WithLogger(a.log.Logger),
	)
	if err != nil {
		return err
	}

	sessionPath := a.SessionPath
	if sessionPath == "" {
		sessionPath = clientconfig.DefaultSessionFile().Path
	}
	a.gate, err = editor.NewSessionGate(a.remote, &clientconfig.SessionFile{Path: sessionPath}, a.log.Logger)
	if err != nil {
		return err
	}

	a.coord = editor.NewCoordinator(editor.NewCollection(nil), a.remote, a.gate, a.log.Logger)
	return nil
}

// input returns a reader shared by every prompt of one run.
func (a *App) input() *bufio.Reader {
	if a.reader == nil {
		a.reader = bufio.NewReader(a.In)
	}
	return a.reader
}

// displayError carries the text shown to the user alongside the cause.
type displayError struct {
	msg string
	err error
}

func (e *displayError) Error() string { return e.msg }
func (e *displayError) Unwrap() error { return e.err }

// errorText picks the message to print for err.
func errorText(err error) string {
	var de *displayError
	if errors.As(err, &de) {
		return de.msg
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return err.Error()
}

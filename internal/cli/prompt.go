package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readLine prints prompt and reads one line of input.
func (a *App) readLine(prompt string) (string, error) {
	fmt.Fprint(a.Out, prompt)
	line, err := a.input().ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readPassword reads a password without echo when stdin is a terminal.
func (a *App) readPassword(prompt string) (string, error) {
	if f, ok := a.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(a.Out, prompt)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(a.Out)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(b), nil
	}
	return a.readLine(prompt)
}

// confirm asks a yes/no question. Anything but y or yes is a no, as is
// end of input.
func (a *App) confirm(prompt string) (bool, error) {
	answer, err := a.readLine(prompt + " [y/N]: ")
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

package credentials

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// FormPrompter prompts with a huh password input. It needs a terminal.
type FormPrompter struct{}

func (FormPrompter) Password(login string) (string, error) {
	var password string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Nexus password").
				Description(fmt.Sprintf("Password for %s", login)).
				EchoMode(huh.EchoModePassword).
				Value(&password),
		),
	)
	if err := form.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(password), nil
}

// StreamPrompter reads the password from a stream. When the stream is a
// terminal the input is not echoed; otherwise one line is read, which lets
// scripts pipe the password in.
type StreamPrompter struct {
	In  *os.File
	Out io.Writer
}

func (p StreamPrompter) Password(login string) (string, error) {
	fmt.Fprintf(p.Out, "Nexus password for %s: ", login)
	fd := int(p.In.Fd())
	if term.IsTerminal(fd) {
		password, err := term.ReadPassword(fd)
		fmt.Fprintln(p.Out)
		if err != nil {
			return "", fmt.Errorf("error reading password: %w", err)
		}
		return strings.TrimSpace(string(password)), nil
	}
	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("error reading password: %w", err)
	}
	return strings.TrimSpace(line), nil
}

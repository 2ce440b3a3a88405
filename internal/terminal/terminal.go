// Package terminal provides TTY detection so that commands can decide
// whether to colour output and whether an interactive prompt is possible.
package terminal

import (
	"os"

	"golang.org/x/term"
)

// Info holds the resolved terminal state for the current process.
type Info struct {
	// StdinIsTerminal is true when stdin is connected to a TTY.
	StdinIsTerminal bool
	// StderrIsTerminal is true when stderr is connected to a TTY.
	StderrIsTerminal bool
	// ColorEnabled is true when ANSI colours should be emitted.
	ColorEnabled bool
}

// Detect inspects the environment and returns a populated Info.
// noColor is the value of the --no-color flag; NO_COLOR is honoured too.
func Detect(noColor bool) Info {
	stdinTTY := term.IsTerminal(int(os.Stdin.Fd()))
	stderrTTY := term.IsTerminal(int(os.Stderr.Fd()))

	// https://no-color.org/
	envNoColor := os.Getenv("NO_COLOR") != ""

	return Info{
		StdinIsTerminal:  stdinTTY,
		StderrIsTerminal: stderrTTY,
		ColorEnabled:     stderrTTY && !noColor && !envNoColor,
	}
}

// CanPrompt reports whether an interactive prompt can be shown.
func (i Info) CanPrompt() bool {
	return i.StdinIsTerminal && i.StderrIsTerminal
}

// Package style defines the colours and text styles used for the CLI's
// own messages. Call Init(colorEnabled) once at startup.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

var (
	Cyan   = lipgloss.Color("#00B4D8")
	Green  = lipgloss.Color("#22C55E")
	Yellow = lipgloss.Color("#FACC15")
	Red    = lipgloss.Color("#EF4444")
	Dim    = lipgloss.Color("#6B7280")
)

var (
	// Success style for positive confirmations.
	Success = lipgloss.NewStyle().
		Foreground(Green).
		Bold(true)

	// Warning style for non-fatal alerts.
	Warning = lipgloss.NewStyle().
		Foreground(Yellow)

	// Error style for error messages.
	Error = lipgloss.NewStyle().
		Foreground(Red).
		Bold(true)

	// DimText is used for hints and secondary info.
	DimText = lipgloss.NewStyle().
		Foreground(Dim)

	// Code style for coordinates, paths and URLs.
	Code = lipgloss.NewStyle().
		Foreground(Cyan)
)

// Enabled tracks whether styles should render ANSI output.
var Enabled = true

// Init configures lipgloss and pterm for the detected terminal.
func Init(colorEnabled bool) {
	Enabled = colorEnabled
	if colorEnabled {
		lipgloss.SetColorProfile(termenv.ColorProfile())
		pterm.EnableStyling()
		return
	}
	lipgloss.SetColorProfile(termenv.Ascii)
	pterm.DisableStyling()
}

// Hint renders a "next step" hint message.
func Hint(msg string) string {
	return DimText.Render("→ " + msg)
}

// ErrorLine renders a fatal error for stderr.
func ErrorLine(msg string) string {
	if Enabled {
		return Error.Render("Error: " + msg)
	}
	return "Error: " + msg
}

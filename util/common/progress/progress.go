// Package progress provides progress reporting functionality
package progress

import (
	"io"

	"github.com/pterm/pterm"
)

// Reporter defines the interface for reporting progress.
// It provides methods to report different stages of an operation
// and its status.
type Reporter interface {
	// Start begins progress reporting with an initial message
	Start(message string)

	// Step reports a new step in the operation
	Step(message string)

	// Warn reports a non-fatal condition
	Warn(message string)

	// Error reports an error condition
	Error(message string)

	// Success reports successful completion
	Success(message string)
}

// ConsoleReporter implements Reporter with pterm prefix printers.
type ConsoleReporter struct {
	start   pterm.PrefixPrinter
	step    pterm.PrefixPrinter
	warn    pterm.PrefixPrinter
	err     pterm.PrefixPrinter
	success pterm.PrefixPrinter
}

// NewWriterReporter creates a ConsoleReporter writing to w.
func NewWriterReporter(w io.Writer) *ConsoleReporter {
	step := pterm.PrefixPrinter{
		MessageStyle: &pterm.ThemeDefault.DefaultText,
		Prefix: pterm.Prefix{
			Style: &pterm.ThemeDefault.InfoPrefixStyle,
			Text:  " STEP ",
		},
	}
	return &ConsoleReporter{
		start:   *pterm.Info.WithWriter(w),
		step:    *step.WithWriter(w),
		warn:    *pterm.Warning.WithWriter(w),
		err:     *pterm.Error.WithWriter(w),
		success: *pterm.Success.WithWriter(w),
	}
}

func (r *ConsoleReporter) Start(message string) {
	r.start.Println(message + "...")
}

func (r *ConsoleReporter) Step(message string) {
	r.step.Println(message + "...")
}

func (r *ConsoleReporter) Warn(message string) {
	r.warn.Println(message)
}

func (r *ConsoleReporter) Error(message string) {
	r.err.Println(message)
}

func (r *ConsoleReporter) Success(message string) {
	r.success.Println(message)
}

// NopReporter implements Reporter with no-op operations
type NopReporter struct{}

// NewNopReporter creates a new NopReporter
func NewNopReporter() *NopReporter {
	return &NopReporter{}
}

func (r *NopReporter) Start(message string)   {}
func (r *NopReporter) Step(message string)    {}
func (r *NopReporter) Warn(message string)    {}
func (r *NopReporter) Error(message string)   {}
func (r *NopReporter) Success(message string) {}

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	isatty "github.com/mattn/go-isatty"
)

// StatusLinePrinter prints a single, dynamically updated status line to the
// console. It supports colorized printing.
type StatusLinePrinter struct {
	// UseStandardError causes the printer to use standard error for its output
	// instead of standard output (the default).
	UseStandardError bool
	// nonEmpty indicates whether or not the printer has printed any content to
	// the status line.
	nonEmpty bool
}

// output returns the printer's output stream. The color streams are used so
// that color escape sequences are properly handled.
func (p *StatusLinePrinter) output() io.Writer {
	if p.UseStandardError {
		return color.Error
	}
	return color.Output
}

// Print prints a message to the status line, overwriting any existing content.
// Messages are truncated or padded to a platform-dependent width.
func (p *StatusLinePrinter) Print(message string) {
	fmt.Fprintf(p.output(), statusLineFormat, message)
	p.nonEmpty = true
}

// Clear clears any content on the status line and moves the cursor back to the
// beginning of the line.
func (p *StatusLinePrinter) Clear() {
	if p.nonEmpty {
		fmt.Fprintf(p.output(), statusLineFormat+"\r", "")
		p.nonEmpty = false
	}
}

// BreakIfNonEmpty prints a newline character if the current line is non-empty.
func (p *StatusLinePrinter) BreakIfNonEmpty() {
	if p.nonEmpty {
		fmt.Fprintln(p.output())
		p.nonEmpty = false
	}
}

// StandardErrorIsTerminal indicates whether or not standard error is attached
// to a terminal, in which case status lines can be used.
func StandardErrorIsTerminal() bool {
	return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
}

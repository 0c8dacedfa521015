package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

// TestStatusLinePrinter tests status line printing, clearing, and breaking.
func TestStatusLinePrinter(t *testing.T) {
	// Redirect color output.
	buffer := &bytes.Buffer{}
	original := color.Error
	color.Error = buffer
	defer func() {
		color.Error = original
	}()

	// Print a status line.
	printer := &StatusLinePrinter{UseStandardError: true}
	printer.Print("Operation 1/10")
	if !strings.HasPrefix(buffer.String(), "\rOperation 1/10 ") {
		t.Errorf("unexpected status line: %q", buffer.String())
	}

	// Break the line.
	buffer.Reset()
	printer.BreakIfNonEmpty()
	if buffer.String() != "\n" {
		t.Errorf("unexpected line break output: %q", buffer.String())
	}

	// Breaking or clearing an empty line is a no-op.
	buffer.Reset()
	printer.BreakIfNonEmpty()
	printer.Clear()
	if buffer.Len() != 0 {
		t.Errorf("unexpected output for empty line: %q", buffer.String())
	}

	// Clear a non-empty line.
	printer.Print("Operation 2/10")
	buffer.Reset()
	printer.Clear()
	if output := buffer.String(); !strings.HasPrefix(output, "\r ") || !strings.HasSuffix(output, "\r") {
		t.Errorf("unexpected clear output: %q", output)
	}
}

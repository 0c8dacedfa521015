package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// AbortExitCode is the exit code used by Abort. It's the status that a shell
// reports for a process terminated by SIGABRT (128 + 6), matching what callers
// observe when a C program fails an assert(3).
const AbortExitCode = 134

// Warning prints a warning message to standard error.
func Warning(message string) {
	color.New(color.FgYellow).Fprintln(color.Error, "Warning:", message)
}

// Error prints an error message to standard error.
func Error(err error) {
	color.New(color.FgRed).Fprintln(color.Error, "Error:", err)
}

// Fatal prints an error message to standard error and then terminates the
// process with an error exit code.
func Fatal(err error) {
	Error(err)
	os.Exit(1)
}

// Abort reports a failed assertion on standard error and terminates the
// process with AbortExitCode. Deferred functions are not run.
func Abort(err error) {
	fmt.Fprintln(color.Error, color.RedString("Aborted: %v", err))
	os.Exit(AbortExitCode)
}

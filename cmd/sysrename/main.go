package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mutagen-io/fsprobe/cmd"

	"github.com/mutagen-io/fsprobe/pkg/fsprobe"
	"github.com/mutagen-io/fsprobe/pkg/probe"
)

// rootMain is the entry point for the root command.
func rootMain(command *cobra.Command, arguments []string) error {
	// Invoke rename(2) directly and report the outcome, whatever it is.
	fmt.Fprintln(command.ErrOrStderr(), probe.Rename(arguments[0], arguments[1]))

	// Success.
	return nil
}

// rootCommand is the root command. Flag parsing is disabled so that every
// argument (including something like "-h") is treated as a path.
var rootCommand = &cobra.Command{
	Use:                "sysrename <src> <dst>",
	Version:            fsprobe.Version,
	Short:              "Invoke the rename system call directly and report its raw outcome",
	Long: `Invoke the rename system call directly and report its raw outcome.

Exactly one line of the form "ret=<int> errno=<int> errstr=<string>" is written
to standard error and the exit status is 0, whatever the outcome. The errstr
value is Go's lowercase description of the errno (for example "no such file or
directory" rather than strerror's "No such file or directory"), and an errno of
0 is described as "success".`,
	Args:               cobra.ExactArgs(2),
	RunE:               rootMain,
	DisableFlagParsing: true,
	SilenceUsage:       true,
	SilenceErrors:      true,
}

func init() {
	// Disable Cobra's use of mousetrap.
	cobra.MousetrapHelpText = ""
}

// sysrenameMain runs the root command and returns the process exit code. An
// incorrect argument count exits with status 1 and no output. Otherwise, the
// exit status is 0 regardless of the rename outcome.
func sysrenameMain() int {
	// Execute the root command. Cobra's command lookup is bypassed so that
	// paths can't be mistaken for its hidden completion commands.
	if err := cmd.ExecuteLeaf(rootCommand, os.Args[1:]); err != nil {
		return 1
	}
	return 0
}

func main() {
	os.Exit(sysrenameMain())
}

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mutagen-io/fsprobe/cmd"

	"github.com/mutagen-io/fsprobe/pkg/fsprobe"
	"github.com/mutagen-io/fsprobe/pkg/probe"
)

// rootMain is the entry point for the root command.
func rootMain(_ *cobra.Command, _ []string) error {
	// Create the logger.
	logger, err := cmd.NewLogger(rootConfiguration.logLevel)
	if err != nil {
		return err
	}

	// Run the probe in the current working directory. Any failure is an
	// assertion failure.
	if err := probe.AppendOffset(".", logger.Sublogger("probe")); err != nil {
		cmd.Abort(err)
	}

	// Success.
	return nil
}

// rootCommand is the root command.
var rootCommand = &cobra.Command{
	Use:     "repro-read-append",
	Version: fsprobe.Version,
	Short:   "Verify append-mode write and file offset semantics",
	Long: "Verify append-mode write and file offset semantics using a file named \"" +
		probe.AppendProbeFileName + "\" in the current working directory, which is created or truncated.",
	Args:          cobra.NoArgs,
	RunE:          rootMain,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// rootConfiguration stores configuration for the root command.
var rootConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// logLevel is the log level for system call tracing.
	logLevel string
}

func init() {
	// Disable Cobra's command sorting behavior.
	cobra.EnableCommandSorting = false

	// Disable Cobra's use of mousetrap.
	cobra.MousetrapHelpText = ""

	// Grab a handle for the command line flags.
	flags := rootCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Its logic is
	// still implemented by ExecuteLeaf.
	flags.BoolVarP(&rootConfiguration.help, "help", "h", false, "Show help information")

	// Wire up flags.
	flags.StringVar(&rootConfiguration.logLevel, "log-level", "warn", cmd.LogLevelFlagUsage)
}

// readAppendMain runs the root command and returns the process exit code.
func readAppendMain() int {
	// Execute the root command. Cobra's command lookup is bypassed so that
	// arguments can't be mistaken for its hidden completion commands.
	if err := cmd.ExecuteLeaf(rootCommand, os.Args[1:]); err != nil {
		cmd.Error(err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(readAppendMain())
}

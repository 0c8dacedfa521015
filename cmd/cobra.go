package cmd

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/spf13/cobra"
)

// Mainify is a small utility that wraps a non-standard Cobra entry point (one
// returning an error) and generates a standard Cobra entry point. It's useful
// for entry points to be able to rely on defer-based cleanup, which doesn't
// occur if the entry point terminates the process. This method allows the entry
// point to indicate an error while still performing cleanup.
func Mainify(entry func(*cobra.Command, []string) error) func(*cobra.Command, []string) {
	return func(command *cobra.Command, arguments []string) {
		if err := entry(command, arguments); err != nil {
			Fatal(err)
		}
	}
}

// ExecuteLeaf executes a command that has no subcommands with the specified
// arguments, bypassing Cobra's command lookup. Cobra's Execute registers hidden
// shell completion commands (__complete and __completeNoDesc) on every root
// command, so a positional argument with one of those names would otherwise be
// dispatched to the completion machinery instead of the command itself.
//
// Flags are parsed unless the command disables flag parsing, in which case
// every argument is positional. The help and version flags are honored in the
// same manner as Execute, with version information printed as
// "<name> version <version>".
func ExecuteLeaf(command *cobra.Command, arguments []string) error {
	// Parse flags if necessary.
	if !command.DisableFlagParsing {
		// Register the default help and version flags. These are no-ops if
		// the command already defines them.
		command.InitDefaultHelpFlag()
		command.InitDefaultVersionFlag()

		// Parse the arguments and extract the positional arguments.
		if err := command.ParseFlags(arguments); err != nil {
			return err
		}
		arguments = command.Flags().Args()

		// Handle help requests.
		if help, err := command.Flags().GetBool("help"); err == nil && help {
			return command.Help()
		}

		// Handle version requests.
		if command.Version != "" {
			if version, err := command.Flags().GetBool("version"); err == nil && version {
				fmt.Fprintf(command.OutOrStdout(), "%s version %s\n", command.Name(), command.Version)
				return nil
			}
		}
	}

	// Validate positional arguments.
	if err := command.ValidateArgs(arguments); err != nil {
		return err
	}

	// Invoke the entry point.
	if command.RunE != nil {
		return command.RunE(command, arguments)
	} else if command.Run != nil {
		command.Run(command, arguments)
		return nil
	}
	return errors.Errorf("command %s has no entry point", command.Name())
}

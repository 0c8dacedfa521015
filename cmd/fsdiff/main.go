package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"os/signal"
	"time"

	"github.com/google/gops/agent"

	"github.com/pkg/errors"

	"github.com/spf13/cobra"

	"github.com/mutagen-io/fsprobe/cmd"

	"github.com/mutagen-io/fsprobe/pkg/filesystem"
	"github.com/mutagen-io/fsprobe/pkg/fsdiff"
	"github.com/mutagen-io/fsprobe/pkg/fsprobe"
	"github.com/mutagen-io/fsprobe/pkg/logging"
	"github.com/mutagen-io/fsprobe/pkg/must"
)

// runShell runs the user's shell inside the workspace.
func runShell(workspace *fsdiff.Workspace) error {
	// Determine the shell.
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}

	// Run the shell.
	command := exec.Command(shell)
	command.Dir = workspace.Root
	command.Stdin = os.Stdin
	command.Stdout = os.Stdout
	command.Stderr = os.Stderr
	if err := command.Run(); err != nil {
		return errors.Wrap(err, "shell failed")
	}

	// Success.
	return nil
}

// computeWeights determines the operation weights from the configuration file
// and flags.
func computeWeights(random *rand.Rand, logger *logging.Logger) (fsdiff.Weights, error) {
	// Handle random weights.
	if rootConfiguration.randomProbabilities {
		weights := fsdiff.RandomWeights(random)
		logger.Infof("Using random weights %v", weights)
		return weights, nil
	}

	// Load any configuration file.
	var configuration *fsdiff.Configuration
	if rootConfiguration.configuration != "" {
		var err error
		if configuration, err = fsdiff.LoadConfiguration(rootConfiguration.configuration); err != nil {
			return fsdiff.Weights{}, err
		}
	}

	// Compute weights.
	return configuration.Weights()
}

// rootMain is the entry point for the root command.
func rootMain(_ *cobra.Command, _ []string) error {
	// Create the logger.
	logger, err := cmd.NewLogger(rootConfiguration.logLevel)
	if err != nil {
		return err
	}

	// Start the diagnostics agent, if requested.
	if rootConfiguration.gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			return errors.Wrap(err, "unable to start diagnostics agent")
		}
		defer agent.Close()
	}

	// Determine the seed.
	seed := rootConfiguration.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Infof("Using seed %d", seed)

	// Compute operation weights. Random weights are drawn from a separate
	// source so that the operation sequence depends only on the seed and the
	// resulting weights.
	weights, err := computeWeights(rand.New(rand.NewSource(seed)), logger)
	if err != nil {
		return err
	}

	// Create the workspace and ensure its removal (unless it's being kept).
	workspace, err := fsdiff.NewWorkspace("", rootConfiguration.target)
	if err != nil {
		return err
	}
	logger.Infof("Created workspace at %s", workspace.Root)
	if format, err := filesystem.QueryFormatByPath(workspace.Target); err == nil {
		logger.Infof("Target file system format: %s", format)
	}
	if rootConfiguration.keep {
		defer logger.Infof("Keeping workspace at %s", workspace.Root)
	} else {
		defer must.OSRemoveAll(workspace.Root, logger)
	}

	// Handle shell mode.
	if rootConfiguration.shell {
		return runShell(workspace)
	}

	// Set up cancellation on termination signals.
	ctx, cancel := signal.NotifyContext(context.Background(), cmd.TerminationSignals...)
	defer cancel()

	// Set up progress reporting, if requested and possible.
	options := fsdiff.Options{
		Maximum: rootConfiguration.maximum,
		Seed:    seed,
		Weights: weights,
		Periods: rootConfiguration.periods,
		Ignores: rootConfiguration.ignores,
	}
	var statusLinePrinter *cmd.StatusLinePrinter
	if rootConfiguration.progress {
		if cmd.StandardErrorIsTerminal() {
			statusLinePrinter = &cmd.StatusLinePrinter{UseStandardError: true}
			options.Monitor = func(summary *fsdiff.Summary) {
				statusLinePrinter.Print(fmt.Sprintf("Operation %d/%d", summary.Operations, options.Maximum))
			}
		} else {
			cmd.Warning("Progress display requires standard error to be a terminal")
		}
	}

	// Perform the run.
	summary, err := fsdiff.Run(ctx, workspace.Target, workspace.Reference, options, logger.Sublogger("run"))
	if statusLinePrinter != nil {
		statusLinePrinter.Clear()
	}
	if summary != nil {
		logger.Infof("Summary: %v", summary)
	}
	if err != nil {
		return err
	}

	// Success.
	return nil
}

// rootCommand is the root command.
var rootCommand = &cobra.Command{
	Use:          "fsdiff",
	Version:      fsprobe.Version,
	Short:        "Compare a file system against a reference using random operation sequences",
	Args:         cobra.NoArgs,
	Run:          cmd.Mainify(rootMain),
	SilenceUsage: true,
}

// rootConfiguration stores configuration for the root command.
var rootConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// configuration is the path to the configuration file.
	configuration string
	// randomProbabilities indicates that operation probabilities should be
	// drawn randomly.
	randomProbabilities bool
	// maximum is the number of operations to perform.
	maximum int
	// seed is the random seed. Zero indicates a time-based seed.
	seed int64
	// periods are the tree comparison periods.
	periods fsdiff.HashPeriods
	// target is an existing directory to use as the target tree.
	target string
	// ignores are ignore patterns for tree comparisons.
	ignores []string
	// keep indicates that the workspace should be preserved.
	keep bool
	// shell indicates that a shell should be run in the workspace instead of
	// performing operations.
	shell bool
	// progress indicates that a progress status line should be displayed.
	progress bool
	// gops indicates that the gops diagnostics agent should be started.
	gops bool
	// logLevel is the log level.
	logLevel string
}

func init() {
	// Disable Cobra's command sorting behavior.
	cobra.EnableCommandSorting = false

	// Disable Cobra's use of mousetrap.
	cobra.MousetrapHelpText = ""

	// Set the template used by the version flag.
	rootCommand.SetVersionTemplate("fsdiff version {{ .Version }}\n")

	// Grab a handle for the command line flags.
	flags := rootCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&rootConfiguration.help, "help", "h", false, "Show help information")

	// Wire up operation flags.
	flags.StringVarP(&rootConfiguration.configuration, "config", "c", "", "Specify the path to a YAML or JSON configuration file")
	flags.BoolVarP(&rootConfiguration.randomProbabilities, "random-probabilities", "r", false, "Use random operation probabilities")
	flags.IntVarP(&rootConfiguration.maximum, "max", "m", fsdiff.DefaultMaximumOperations, "Set the number of operations to perform")
	flags.Int64Var(&rootConfiguration.seed, "seed", 0, "Set the random seed (0 for a time-based seed)")
	rootConfiguration.periods = fsdiff.DefaultHashPeriods
	flags.Var(&rootConfiguration.periods, "periods", "Set the metadata and contents comparison periods")

	// Wire up tree flags.
	flags.StringVar(&rootConfiguration.target, "target", "", "Use an existing (empty) directory as the target tree")
	flags.StringArrayVar(&rootConfiguration.ignores, "ignore", nil, "Ignore paths matching a pattern in tree comparisons")
	flags.BoolVar(&rootConfiguration.keep, "keep", false, "Keep the workspace after exiting")
	flags.BoolVar(&rootConfiguration.shell, "shell", false, "Run a shell in the workspace instead of performing operations")

	// Wire up diagnostic flags.
	flags.BoolVar(&rootConfiguration.progress, "progress", false, "Show a progress status line if standard error is a terminal")
	flags.BoolVar(&rootConfiguration.gops, "gops", false, "Start the gops diagnostics agent")
	flags.StringVar(&rootConfiguration.logLevel, "log-level", "info", cmd.LogLevelFlagUsage)

	// Hide Cobra's completion command.
	rootCommand.CompletionOptions.HiddenDefaultCmd = true
}

// fsdiffMain runs the root command and returns the process exit code.
func fsdiffMain() int {
	// Execute the root command.
	if err := rootCommand.Execute(); err != nil {
		return 1
	}
	return 0
}

func main() {
	os.Exit(fsdiffMain())
}

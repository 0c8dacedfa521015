package fsdiff

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/google/go-cmp/cmp"

	"github.com/pkg/errors"

	"github.com/mutagen-io/fsprobe/pkg/logging"
)

// DefaultMaximumOperations is the default number of operations in a run.
const DefaultMaximumOperations = 100

// Options configure a differential run.
type Options struct {
	// Maximum is the number of operations to perform.
	Maximum int
	// Seed is the seed for all random choices.
	Seed int64
	// Weights are the operation selection weights. If zero-valued, uniform
	// weights are used.
	Weights Weights
	// Periods are the tree comparison periods. If zero-valued,
	// DefaultHashPeriods are used.
	Periods HashPeriods
	// Ignores are doublestar patterns for paths (relative to the tree roots)
	// that are excluded from tree comparisons. Patterns prefixed with '!'
	// re-include paths excluded by earlier patterns.
	Ignores []string
	// Monitor, if non-nil, is invoked with the run summary after each verified
	// operation.
	Monitor func(*Summary)
}

// Summary records statistics about a run.
type Summary struct {
	// Operations is the number of operations performed and verified.
	Operations int
	// Counts are the per-kind operation counts.
	Counts [operationKindCount]int
	// Failed is the number of operations that failed (identically) on both
	// trees.
	Failed int
	// BytesWritten is the number of bytes written to each tree.
	BytesWritten uint64
	// BytesRead is the number of bytes read from each tree.
	BytesRead uint64
}

// record updates the summary with a verified operation.
func (s *Summary) record(operation *Operation) {
	s.Operations++
	s.Counts[operation.Kind]++
	if operation.Reference.Errno != 0 {
		s.Failed++
		return
	}
	switch operation.Kind {
	case OperationKindWrite:
		s.BytesWritten += uint64(operation.Reference.Return)
	case OperationKindRead:
		s.BytesRead += uint64(operation.Reference.Return)
	}
}

// String implements fmt.Stringer.String.
func (s *Summary) String() string {
	return fmt.Sprintf("%d operations (%d failed on both trees), %s written, %s read",
		s.Operations, s.Failed,
		humanize.Bytes(s.BytesWritten), humanize.Bytes(s.BytesRead),
	)
}

// ErrTreeMismatch indicates that the target and reference trees diverged.
var ErrTreeMismatch = errors.New("tree mismatch")

// Run performs a differential run, executing operations on the target and
// reference trees and verifying that their outcomes and resulting trees match.
// Both trees must have identical initial contents (normally both are empty).
// The run stops early if the context is cancelled. The summary is returned
// even if the run fails.
func Run(ctx context.Context, target, reference string, options Options, logger *logging.Logger) (*Summary, error) {
	// Apply defaults.
	if options.Weights == (Weights{}) {
		options.Weights = UniformWeights()
	}
	if options.Periods == (HashPeriods{}) {
		options.Periods = DefaultHashPeriods
	}

	// Validate options.
	if options.Maximum < 0 {
		return nil, errors.New("negative maximum operation count")
	} else if err := options.Periods.validate(); err != nil {
		return nil, errors.Wrap(err, "invalid hash periods")
	}
	var sum int
	for _, weight := range options.Weights {
		if weight < 0 {
			return nil, errors.New("negative operation weight")
		}
		sum += weight
	}
	if sum != 100 {
		return nil, errors.Errorf("operation weights sum to %d instead of 100", sum)
	}

	// Create the ignorer.
	ignorer, err := newIgnorer(options.Ignores)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create ignorer")
	}

	// Verify that the trees start out identical.
	if _, err := compareTrees(target, reference, true, true, ignorer, nil, logger); err != nil {
		return nil, errors.Wrap(err, "initial trees differ")
	}

	// Create the sequence and ensure that its descriptors are closed on exit.
	logger.Infof("Using seed %d and weights %v", options.Seed, options.Weights)
	sequence := newSequence(target, reference, options.Seed, options.Weights, options.Maximum, logger.Sublogger("sequence"))
	defer sequence.closeAll()

	// Perform operations.
	summary := &Summary{}
	var previous TreeDescription
	for {
		// Check for cancellation.
		if err := ctx.Err(); err != nil {
			return summary, errors.Wrap(err, "run interrupted")
		}

		// Ensure that working directories are open.
		if err := sequence.openWorkingDirectories(); err != nil {
			return summary, err
		}

		// Generate the next operation.
		operation, err := sequence.next()
		if err != nil {
			return summary, errors.Wrap(err, "unable to generate operation")
		} else if operation == nil {
			break
		}

		// Perform and verify the operation.
		sequence.execute(operation)
		logger.Debug(operation)
		if err := operation.verify(logger.Warnf); err != nil {
			logger.Errorf("Operation mismatch: %v", operation)
			return summary, errors.Wrapf(err, "operation %d", operation.Identifier)
		}
		sequence.record(operation)
		summary.record(operation)
		if options.Monitor != nil {
			options.Monitor(summary)
		}

		// Compare trees.
		description, err := compareTrees(
			target, reference,
			options.Periods.includeMetadata(operation.Identifier),
			options.Periods.includeContents(operation.Identifier),
			ignorer, previous, logger,
		)
		if err != nil {
			return summary, errors.Wrapf(err, "after operation %d", operation.Identifier)
		}
		if description != nil {
			previous = description
		}
	}

	// Success.
	return summary, nil
}

// compareTrees describes and compares the target and reference trees. On
// mismatch, the difference is logged, along with the difference between the
// target tree and its previous description (if any). It returns the target
// description.
func compareTrees(target, reference string, includeMetadata, includeContents bool, ignorer *ignorer, previous TreeDescription, logger *logging.Logger) (TreeDescription, error) {
	// Describe both trees.
	targetDescription, err := describeTree(target, includeMetadata, includeContents, ignorer)
	if err != nil {
		return nil, errors.Wrap(err, "unable to describe target tree")
	}
	referenceDescription, err := describeTree(reference, includeMetadata, includeContents, ignorer)
	if err != nil {
		return nil, errors.Wrap(err, "unable to describe reference tree")
	}

	// Compare the descriptions.
	if diff := cmp.Diff(referenceDescription, targetDescription); diff != "" {
		logger.Errorf("Tree difference between reference and target (-reference +target):")
		io.WriteString(logger.Writer(logging.LevelError), diff)
		if previous != nil {
			logger.Errorf("Tree difference between previous and current target (-previous +current):")
			io.WriteString(logger.Writer(logging.LevelError), cmp.Diff(previous, targetDescription))
		}
		return nil, ErrTreeMismatch
	}

	// Success.
	return targetDescription, nil
}

// Package must provides helpers for operations whose failure should be
// reported but shouldn't change control flow, typically deferred cleanup.
package must

import (
	"os"

	"github.com/mutagen-io/fsprobe/pkg/logging"
)

// OSRemoveAll removes the named path and any children it contains, logging a
// warning on failure.
func OSRemoveAll(path string, logger *logging.Logger) {
	err := os.RemoveAll(path)
	if err != nil {
		logger.Warnf("Unable to remove '%s': %s", path, err.Error())
	}
}

// Succeed logs a warning if err is non-nil, naming the task that failed.
func Succeed(err error, task string, logger *logging.Logger) {
	if err != nil {
		logger.Warnf("Unable to succeed at %s; %s", task, err.Error())
	}
}

package cmd

import (
	"io"
	"log"

	"github.com/fatih/color"

	"github.com/pkg/errors"

	"github.com/mutagen-io/fsprobe/pkg/logging"
)

func init() {
	// Silence the default logger. Everything that the executables log goes
	// through loggers created by NewLogger.
	log.SetOutput(io.Discard)
}

// LogLevelFlagUsage is the usage string for log level flags.
const LogLevelFlagUsage = "Set the log level (disabled|error|warn|info|debug|trace)"

// NewLogger creates a root logger writing to standard error at the named log
// level.
func NewLogger(levelName string) (*logging.Logger, error) {
	level, ok := logging.NameToLevel(levelName)
	if !ok {
		return nil, errors.Errorf("invalid log level: %s", levelName)
	}
	return logging.NewLogger(level, color.Error), nil
}

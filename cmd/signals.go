package cmd

import (
	"os"
	"syscall"
)

// TerminationSignals are those signals which fsprobe executables consider to
// be requesting termination. SIGABRT is intentionally excluded because it's
// handled by the Go runtime.
var TerminationSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
}

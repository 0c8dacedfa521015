package probe

import (
	"golang.org/x/sys/unix"

	"github.com/mutagen-io/fsprobe/pkg/filesystem"
	"github.com/mutagen-io/fsprobe/pkg/logging"
	"github.com/mutagen-io/fsprobe/pkg/sysraw"
)

// DoubleClose verifies that closing an already-closed descriptor is an error
// rather than a no-op. It opens the file at the specified path for reading,
// closes the resulting descriptor, and then closes it again, expecting the
// second close to fail with EBADF.
func DoubleClose(path string, logger *logging.Logger) error {
	// Log the filesystem format, if it can be determined.
	if format, err := filesystem.QueryFormatByPath(path); err == nil {
		logger.Debugf("Probing %s on %s filesystem", path, format)
	}

	// Open the file for reading.
	opened := sysraw.Open(path, unix.O_RDONLY, 0)
	logger.Debugf("open(%q, O_RDONLY) -> %v", path, opened)
	if opened.Return < 0 {
		return &AssertionError{Assertion: "fd >= 0", Observed: opened}
	}
	descriptor := int(opened.Return)

	// Close the descriptor.
	first := sysraw.Close(descriptor)
	logger.Debugf("close(%d) -> %v", descriptor, first)
	if err := expectReturn(first, 0, "close(fd) == 0"); err != nil {
		return err
	}

	// Close the descriptor again.
	second := sysraw.Close(descriptor)
	logger.Debugf("close(%d) -> %v", descriptor, second)
	if err := expectReturn(second, -1, "close(fd) == -1"); err != nil {
		return err
	}
	if second.Errno != unix.EBADF {
		return &AssertionError{Assertion: "errno == EBADF", Observed: second}
	}

	// Success.
	return nil
}

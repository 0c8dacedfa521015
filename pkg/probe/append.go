package probe

import (
	"io"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/mutagen-io/fsprobe/pkg/filesystem"
	"github.com/mutagen-io/fsprobe/pkg/logging"
	"github.com/mutagen-io/fsprobe/pkg/sysraw"
)

const (
	// AppendProbeFileName is the name of the file that the append-mode offset
	// probe creates (or truncates) in its directory.
	AppendProbeFileName = "testfile"

	// appendInitialContents is written when creating the probe file.
	appendInitialContents = "Initial contents.\n"
	// appendSecondLine is appended after reopening the probe file.
	appendSecondLine = "Second line.\n"
	// appendFinalLine is the single byte appended at the end of the probe.
	appendFinalLine = "\n"
	// appendReadSize is the size of each read performed by the probe.
	appendReadSize = 4
)

// AppendOffset verifies the interaction between append-mode writes and the
// file offset, operating on AppendProbeFileName inside the specified
// directory. It checks that opening in append mode leaves the offset at the
// start of the file, that every non-empty write repositions the offset to the
// end of the file before writing, that the offset can be moved backward with
// an absolute seek, and that a zero-length write leaves the offset untouched.
func AppendOffset(directory string, logger *logging.Logger) error {
	// Compute the probe file path.
	path := filepath.Join(directory, AppendProbeFileName)

	// Log the filesystem format, if it can be determined.
	if format, err := filesystem.QueryFormatByPath(directory); err == nil {
		logger.Debugf("Probing %s on %s filesystem", path, format)
	}

	// Create the file with known contents.
	if err := appendCreate(path, logger); err != nil {
		return err
	}

	// Reopen the file in append mode.
	opened := sysraw.Open(path, unix.O_APPEND|unix.O_RDWR, 0)
	logger.Debugf("open(%q, O_APPEND|O_RDWR) -> %v", path, opened)
	if opened.Return < 0 {
		return &AssertionError{Assertion: "fd >= 0", Observed: opened}
	}
	descriptor := int(opened.Return)
	open := true
	defer func() {
		if open {
			sysraw.Close(descriptor)
		}
	}()
	buffer := make([]byte, appendReadSize)

	// read and write are small helpers that perform and log the system calls
	// under test.
	read := func() sysraw.Result {
		result := sysraw.Read(descriptor, buffer)
		logger.Debugf("read(%d, %d) -> %v", descriptor, len(buffer), result)
		return result
	}
	write := func(data string) sysraw.Result {
		result := sysraw.Write(descriptor, []byte(data))
		logger.Debugf("write(%d, %q) -> %v", descriptor, data, result)
		return result
	}

	// Opening in append mode doesn't move the file offset.
	logger.Info("Verifying that opening in append mode doesn't move the offset")
	if err := expectRead(read(), buffer, "Init", `read(fd, buf, 4) == 4 && buf == "Init"`); err != nil {
		return err
	}

	// A write moves the file offset to the end of the file before writing.
	logger.Info("Verifying that a write moves the offset to end-of-file")
	if err := expectReturn(write(appendSecondLine), int64(len(appendSecondLine)), "write(fd, \"Second line.\\n\", 13) == 13"); err != nil {
		return err
	}
	if err := expectReturn(read(), 0, "read(fd, buf, 4) == 0"); err != nil {
		return err
	}

	// The offset can still be moved backward with an absolute seek.
	logger.Info("Verifying that an absolute seek moves the offset backward")
	offset := int64(len(appendInitialContents))
	seeked := sysraw.Seek(descriptor, offset, io.SeekStart)
	logger.Debugf("lseek(%d, %d, SEEK_SET) -> %v", descriptor, offset, seeked)
	if err := expectReturn(seeked, offset, "lseek(fd, 18, SEEK_SET) == 18"); err != nil {
		return err
	}
	if err := expectRead(read(), buffer, "Seco", `read(fd, buf, 4) == 4 && buf == "Seco"`); err != nil {
		return err
	}

	// A zero-length write doesn't move the file offset.
	logger.Info("Verifying that a zero-length write doesn't move the offset")
	if err := expectReturn(write(""), 0, "write(fd, \"\", 0) == 0"); err != nil {
		return err
	}
	if err := expectRead(read(), buffer, "nd l", `read(fd, buf, 4) == 4 && buf == "nd l"`); err != nil {
		return err
	}

	// A one-byte write still moves the file offset to the end of the file.
	logger.Info("Verifying that a one-byte write moves the offset to end-of-file")
	if err := expectReturn(write(appendFinalLine), int64(len(appendFinalLine)), "write(fd, \"\\n\", 1) == 1"); err != nil {
		return err
	}
	if err := expectReturn(read(), 0, "read(fd, buf, 4) == 0"); err != nil {
		return err
	}

	// Close the file.
	closed := sysraw.Close(descriptor)
	open = false
	logger.Debugf("close(%d) -> %v", descriptor, closed)
	if err := expectReturn(closed, 0, "close(fd) == 0"); err != nil {
		return err
	}

	// Success.
	return nil
}

// appendCreate creates (or truncates) the probe file and writes its initial
// contents.
func appendCreate(path string, logger *logging.Logger) error {
	// Create the file.
	opened := sysraw.Open(path, unix.O_CREAT|unix.O_TRUNC|unix.O_WRONLY, 0666)
	logger.Debugf("open(%q, O_CREAT|O_TRUNC|O_WRONLY, 0666) -> %v", path, opened)
	if opened.Return < 0 {
		return &AssertionError{Assertion: "fd >= 0", Observed: opened}
	}
	descriptor := int(opened.Return)
	open := true
	defer func() {
		if open {
			sysraw.Close(descriptor)
		}
	}()

	// Write the initial contents.
	written := sysraw.Write(descriptor, []byte(appendInitialContents))
	logger.Debugf("write(%d, %q) -> %v", descriptor, appendInitialContents, written)
	if err := expectReturn(written, int64(len(appendInitialContents)), "write(fd, \"Initial contents.\\n\", 18) == 18"); err != nil {
		return err
	}

	// Close the file.
	closed := sysraw.Close(descriptor)
	open = false
	logger.Debugf("close(%d) -> %v", descriptor, closed)
	return expectReturn(closed, 0, "close(fd) == 0")
}

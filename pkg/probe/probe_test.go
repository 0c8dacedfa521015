package probe

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"golang.org/x/sys/unix"

	"github.com/mutagen-io/fsprobe/pkg/logging"
	"github.com/mutagen-io/fsprobe/pkg/sysraw"
)

// TestDoubleClose tests that the double-close probe succeeds on a readable
// file.
func TestDoubleClose(t *testing.T) {
	// Create a readable file.
	path := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(path, []byte("contents"), 0600); err != nil {
		t.Fatal("unable to create test file:", err)
	}

	// Run the probe with debug logging.
	buffer := &bytes.Buffer{}
	if err := DoubleClose(path, logging.NewLogger(logging.LevelDebug, buffer)); err != nil {
		t.Fatal("double-close probe failed:", err)
	}

	// Ensure that the second close was logged with EBADF.
	expected := "ret=-1 errno=" + strconvErrno(unix.EBADF)
	if !strings.Contains(buffer.String(), expected) {
		t.Errorf("log does not contain %q: %q", expected, buffer.String())
	}
}

// TestDoubleCloseNonExistent tests that the double-close probe reports a failed
// open as an assertion failure.
func TestDoubleCloseNonExistent(t *testing.T) {
	err := DoubleClose(filepath.Join(t.TempDir(), "missing"), nil)
	var assertionErr *AssertionError
	if !errors.As(err, &assertionErr) {
		t.Fatal("probe did not return an assertion error:", err)
	}
	if assertionErr.Assertion != "fd >= 0" {
		t.Error("unexpected failed assertion:", assertionErr.Assertion)
	}
	if assertionErr.Observed.Errno != unix.ENOENT {
		t.Error("unexpected observed errno:", assertionErr.Observed.Errno)
	}
}

// TestAppendOffset tests that the append-mode offset probe succeeds and leaves
// the expected file contents behind, and that repeated runs reproduce the same
// results.
func TestAppendOffset(t *testing.T) {
	directory := t.TempDir()
	for i := 0; i < 3; i++ {
		// Run the probe.
		if err := AppendOffset(directory, nil); err != nil {
			t.Fatalf("append-mode probe failed on run %d: %v", i, err)
		}

		// Verify the resulting contents.
		contents, err := os.ReadFile(filepath.Join(directory, AppendProbeFileName))
		if err != nil {
			t.Fatal("unable to read probe file:", err)
		}
		if expected := "Initial contents.\nSecond line.\n\n"; string(contents) != expected {
			t.Errorf("probe file contents (%q) do not match expected (%q)", contents, expected)
		}
	}
}

// TestAppendOffsetLogging tests that the append-mode offset probe logs each
// system call at the debug level.
func TestAppendOffsetLogging(t *testing.T) {
	buffer := &bytes.Buffer{}
	if err := AppendOffset(t.TempDir(), logging.NewLogger(logging.LevelDebug, buffer)); err != nil {
		t.Fatal("append-mode probe failed:", err)
	}
	for _, fragment := range []string{"O_APPEND|O_RDWR", `"Second line.\n"`, "SEEK_SET", "ret=0 errno=0"} {
		if !strings.Contains(buffer.String(), fragment) {
			t.Errorf("log does not contain %q", fragment)
		}
	}
}

// TestAppendOffsetUnwritableDirectory tests that the append-mode offset probe
// reports a failed creation as an assertion failure.
func TestAppendOffsetUnwritableDirectory(t *testing.T) {
	err := AppendOffset(filepath.Join(t.TempDir(), "missing"), nil)
	var assertionErr *AssertionError
	if !errors.As(err, &assertionErr) {
		t.Fatal("probe did not return an assertion error:", err)
	} else if assertionErr.Observed.Errno != unix.ENOENT {
		t.Error("unexpected observed errno:", assertionErr.Observed.Errno)
	}
}

// openDescriptorCount returns the number of descriptors open in the current
// process, skipping the test if that can't be determined.
func openDescriptorCount(t *testing.T) int {
	t.Helper()
	entries, err := os.ReadDir("/proc/self/fd")
	if err != nil {
		t.Skip("unable to list open descriptors:", err)
	}
	return len(entries)
}

// TestAppendOffsetClosesOnFailure tests that the append-mode offset probe
// closes its descriptor when an assertion fails, both while creating the file
// and after reopening it.
func TestAppendOffsetClosesOnFailure(t *testing.T) {
	testCases := []struct {
		device   string
		expected string
	}{
		{"/dev/full", "write(fd, \"Initial contents.\\n\", 18) == 18"},
		{"/dev/zero", `read(fd, buf, 4) == 4 && buf == "Init"`},
	}
	for _, testCase := range testCases {
		if _, err := os.Stat(testCase.device); err != nil {
			t.Skip("device unavailable:", testCase.device)
		}

		// Redirect the probe file to the device.
		directory := t.TempDir()
		if err := os.Symlink(testCase.device, filepath.Join(directory, AppendProbeFileName)); err != nil {
			t.Fatal("unable to create symbolic link:", err)
		}

		// Run the probe and verify that it fails at the expected assertion
		// without leaking its descriptor.
		before := openDescriptorCount(t)
		err := AppendOffset(directory, nil)
		after := openDescriptorCount(t)
		var assertionErr *AssertionError
		if !errors.As(err, &assertionErr) {
			t.Errorf("%s: probe did not return an assertion error: %v", testCase.device, err)
		} else if assertionErr.Assertion != testCase.expected {
			t.Errorf("%s: assertion (%s) does not match expected (%s)", testCase.device, assertionErr.Assertion, testCase.expected)
		}
		if after != before {
			t.Errorf("%s: descriptor count changed from %d to %d", testCase.device, before, after)
		}
	}
}

// TestExpectRead tests read verification, including the data reported on
// mismatch.
func TestExpectRead(t *testing.T) {
	buffer := []byte("Inix")
	if err := expectRead(sysraw.Result{Return: 4}, buffer, "Inix", "match"); err != nil {
		t.Error("matching read reported failure:", err)
	}
	err := expectRead(sysraw.Result{Return: 4}, buffer, "Init", "mismatch")
	if err == nil {
		t.Fatal("mismatching read reported success")
	}
	if !strings.Contains(err.Error(), `data="Inix"`) {
		t.Error("error does not include observed data:", err)
	}
	if err := expectRead(sysraw.Result{Return: 2}, buffer, "Inix", "short"); err == nil {
		t.Error("short read reported success")
	}
}

// TestRename tests rename reports for successful and failed renames.
func TestRename(t *testing.T) {
	// Create a source file.
	directory := t.TempDir()
	source := filepath.Join(directory, "source")
	target := filepath.Join(directory, "target")
	if err := os.WriteFile(source, nil, 0600); err != nil {
		t.Fatal("unable to create source file:", err)
	}

	// Perform a successful rename.
	if report := Rename(source, target); report.String() != "ret=0 errno=0 errstr=success" {
		t.Error("unexpected report for successful rename:", report)
	}

	// Perform a failed rename.
	report := Rename(source, target)
	expected := "ret=-1 errno=" + strconvErrno(unix.ENOENT) + " errstr=" + unix.ENOENT.Error()
	if report.String() != expected {
		t.Errorf("report (%s) does not match expected (%s)", report, expected)
	}
}

package main

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/mutagen-io/fsprobe/cmd"
)

// abortPathEnvironmentVariable names the environment variable that instructs
// the test binary to run the probe on the specified path instead of running
// tests.
const abortPathEnvironmentVariable = "REPRO_DOUBLE_CLOSE_TEST_PATH"

func TestMain(m *testing.M) {
	// If requested, act as the executable.
	if path := os.Getenv(abortPathEnvironmentVariable); path != "" {
		os.Args = []string{"repro-double-close", path}
		os.Exit(doubleCloseMain())
	}

	os.Exit(testscript.RunMain(m, map[string]func() int{
		"repro-double-close": doubleCloseMain,
	}))
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata",
	})
}

// TestAbortExitCode tests that a failed assertion terminates the process with
// the exit status that a shell reports for SIGABRT.
func TestAbortExitCode(t *testing.T) {
	// Run the test binary as the executable on a path that doesn't exist.
	path := filepath.Join(t.TempDir(), "missing")
	process := exec.Command(os.Args[0])
	process.Env = append(os.Environ(), abortPathEnvironmentVariable+"="+path)
	stderr := &bytes.Buffer{}
	process.Stderr = stderr

	// Verify the exit status and message.
	err := process.Run()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatal("process did not exit with an error status:", err)
	}
	if code := exitErr.ExitCode(); code != cmd.AbortExitCode {
		t.Errorf("exit code (%d) does not match expected (%d)", code, cmd.AbortExitCode)
	}
	if !strings.Contains(stderr.String(), "Aborted: assertion failed: fd >= 0 (ret=-1 errno=2)") {
		t.Error("abort message not found in standard error:", stderr.String())
	}
}

// TestSuccessExitCode tests that a passing probe exits with status 0.
func TestSuccessExitCode(t *testing.T) {
	// Create a readable file.
	path := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(path, []byte("contents"), 0600); err != nil {
		t.Fatal("unable to create file:", err)
	}

	// Run the test binary as the executable on the file.
	process := exec.Command(os.Args[0])
	process.Env = append(os.Environ(), abortPathEnvironmentVariable+"="+path)
	if output, err := process.CombinedOutput(); err != nil {
		t.Fatalf("probe failed: %v: %s", err, output)
	}
}

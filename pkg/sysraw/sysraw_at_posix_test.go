//go:build !windows

package sysraw

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/sys/unix"
)

// TestDirectoryRelativeCalls tests the directory-relative passthroughs against
// a directory descriptor.
func TestDirectoryRelativeCalls(t *testing.T) {
	// Open a directory.
	root := t.TempDir()
	opened := Open(root, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
	if opened.Return < 0 {
		t.Fatal("unable to open directory:", opened)
	}
	directory := int(opened.Return)
	defer Close(directory)

	// Create a subdirectory, twice.
	if result := Mkdirat(directory, "child", 0700); result.Failed() {
		t.Fatal("unable to create subdirectory:", result)
	}
	if result := Mkdirat(directory, "child", 0700); result.Errno != unix.EEXIST {
		t.Error("second mkdirat did not report EEXIST:", result)
	}

	// Create a file inside the subdirectory and grow it.
	created := Openat(directory, "child/file", unix.O_CREAT|unix.O_WRONLY|unix.O_TRUNC, 0600)
	if created.Return < 0 {
		t.Fatal("unable to create file:", created)
	}
	if result := Ftruncate(int(created.Return), 10); result.Failed() {
		t.Error("unable to extend file:", result)
	}
	Close(int(created.Return))
	if result := Truncate(filepath.Join(root, "child", "file"), 3); result.Failed() {
		t.Error("unable to shrink file:", result)
	}
	if info, err := os.Stat(filepath.Join(root, "child", "file")); err != nil {
		t.Fatal("unable to query file:", err)
	} else if info.Size() != 3 {
		t.Error("unexpected file size:", info.Size())
	}

	// A non-empty directory can't be removed.
	if result := Unlinkat(directory, "child", unix.AT_REMOVEDIR); result.Errno != unix.ENOTEMPTY && result.Errno != unix.EEXIST {
		t.Error("removal of non-empty directory did not fail as expected:", result)
	}

	// Remove the file and then the directory.
	if result := Unlinkat(directory, "child/file", 0); result.Failed() {
		t.Error("unable to remove file:", result)
	}
	if result := Unlinkat(directory, "child", unix.AT_REMOVEDIR); result.Failed() {
		t.Error("unable to remove directory:", result)
	}
}

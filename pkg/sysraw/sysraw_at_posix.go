//go:build !windows

package sysraw

import (
	"golang.org/x/sys/unix"
)

// Openat invokes openat(2), resolving relative paths against the directory
// referenced by the specified descriptor. On success, the result's Return field
// holds the new file descriptor.
func Openat(directory int, path string, flags int, mode uint32) Result {
	descriptor, err := unix.Openat(directory, path, flags, mode)
	return resultFromValue(int64(descriptor), err)
}

// Unlinkat invokes unlinkat(2). Passing unix.AT_REMOVEDIR as flags makes it
// equivalent to rmdir(2).
func Unlinkat(directory int, path string, flags int) Result {
	return resultFromValue(0, unix.Unlinkat(directory, path, flags))
}

// Mkdirat invokes mkdirat(2).
func Mkdirat(directory int, path string, mode uint32) Result {
	return resultFromValue(0, unix.Mkdirat(directory, path, mode))
}

// Truncate invokes truncate(2).
func Truncate(path string, length int64) Result {
	return resultFromValue(0, unix.Truncate(path, length))
}

// Ftruncate invokes ftruncate(2).
func Ftruncate(descriptor int, length int64) Result {
	return resultFromValue(0, unix.Ftruncate(descriptor, length))
}

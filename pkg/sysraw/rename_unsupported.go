//go:build !windows && !darwin && !freebsd && !linux

package sysraw

import (
	"golang.org/x/sys/unix"
)

// Rename reports ENOSYS on platforms where the rename system call can't be
// invoked directly.
func Rename(_, _ string) Result {
	return Result{Return: -1, Errno: unix.ENOSYS}
}

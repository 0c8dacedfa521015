//go:build darwin || freebsd || (linux && !arm64 && !riscv64 && !loong64)

package sysraw

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// Rename invokes the rename system call directly, bypassing the x/sys and
// standard library wrappers.
func Rename(source, target string) Result {
	// Convert the paths to NUL-terminated byte strings.
	sourceBytes, err := unix.BytePtrFromString(source)
	if err != nil {
		return Result{Return: -1, Errno: unix.EINVAL}
	}
	targetBytes, err := unix.BytePtrFromString(target)
	if err != nil {
		return Result{Return: -1, Errno: unix.EINVAL}
	}

	// Perform the system call.
	value, _, errno := unix.Syscall(
		unix.SYS_RENAME,
		uintptr(unsafe.Pointer(sourceBytes)),
		uintptr(unsafe.Pointer(targetBytes)),
		0,
	)
	if errno != 0 {
		return Result{Return: -1, Errno: errno}
	}
	return Result{Return: int64(value)}
}

//go:build linux && (arm64 || riscv64 || loong64)

package sysraw

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// Rename invokes the rename system call directly, bypassing the x/sys and
// standard library wrappers. These architectures don't provide a rename system
// call, so renameat2 is used with both paths resolved relative to the current
// working directory and no flags, which the kernel treats identically.
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
	workingDirectory := unix.AT_FDCWD
	value, _, errno := unix.Syscall6(
		unix.SYS_RENAMEAT2,
		uintptr(workingDirectory),
		uintptr(unsafe.Pointer(sourceBytes)),
		uintptr(workingDirectory),
		uintptr(unsafe.Pointer(targetBytes)),
		0,
		0,
	)
	if errno != 0 {
		return Result{Return: -1, Errno: errno}
	}
	return Result{Return: int64(value)}
}

//go:build !windows

package sysraw

import (
	"golang.org/x/sys/unix"
)

// Open invokes open(2) with the specified flags and mode. On success, the
// result's Return field holds the new file descriptor.
func Open(path string, flags int, mode uint32) Result {
	descriptor, err := unix.Open(path, flags, mode)
	return resultFromValue(int64(descriptor), err)
}

// Close invokes close(2) on the specified descriptor.
func Close(descriptor int) Result {
	return resultFromValue(0, unix.Close(descriptor))
}

// Read invokes read(2), reading at most len(buffer) bytes. On success, the
// result's Return field holds the number of bytes read, which is 0 at
// end-of-file.
func Read(descriptor int, buffer []byte) Result {
	count, err := unix.Read(descriptor, buffer)
	return resultFromValue(int64(count), err)
}

// Write invokes write(2). An empty buffer still results in a system call with
// a zero length. On success, the result's Return field holds the number of
// bytes written.
func Write(descriptor int, data []byte) Result {
	count, err := unix.Write(descriptor, data)
	return resultFromValue(int64(count), err)
}

// Seek invokes lseek(2). On success, the result's Return field holds the
// resulting offset.
func Seek(descriptor int, offset int64, whence int) Result {
	position, err := unix.Seek(descriptor, offset, whence)
	return resultFromValue(position, err)
}

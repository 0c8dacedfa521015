package sysraw

import (
	"fmt"
	"syscall"
)

// Result is the outcome of a single system call.
type Result struct {
	// Return is the raw return value of the call. It is -1 if the call failed.
	Return int64
	// Errno is the error number set by the call. It is 0 if the call succeeded.
	Errno syscall.Errno
}

// Failed indicates whether or not the call reported failure.
func (r Result) Failed() bool {
	return r.Return == -1 && r.Errno != 0
}

// Err returns the call's errno as an error, or nil if the call succeeded.
func (r Result) Err() error {
	if r.Errno == 0 {
		return nil
	}
	return r.Errno
}

// String implements fmt.Stringer.String.
func (r Result) String() string {
	return fmt.Sprintf("ret=%d errno=%d", r.Return, int(r.Errno))
}

// Describe returns the human-readable description of an errno value, in the
// spirit of strerror(3). Errno 0 is described as "success".
func Describe(errno syscall.Errno) string {
	if errno == 0 {
		return "success"
	}
	return errno.Error()
}

// resultFromValue converts the conventional (value, error) pair returned by
// the x/sys wrappers into a Result.
func resultFromValue(value int64, err error) Result {
	// Handle success.
	if err == nil {
		return Result{Return: value}
	}

	// The x/sys wrappers only ever return raw errno values, but guard against
	// anything else by reporting it as an invalid argument.
	if errno, ok := err.(syscall.Errno); ok {
		return Result{Return: -1, Errno: errno}
	}
	return Result{Return: -1, Errno: syscall.EINVAL}
}

package probe

import (
	"strconv"
	"syscall"
)

// strconvErrno formats an errno value as a decimal integer.
func strconvErrno(errno syscall.Errno) string {
	return strconv.Itoa(int(errno))
}

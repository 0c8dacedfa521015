package fsdiff

import (
	"fmt"
	"math/rand"
	"strings"

	"golang.org/x/sys/unix"
)

// OpenFlags are the flags passed to open(2).
type OpenFlags int

// createFlags are the flags that make open(2) equivalent to creat(2).
const createFlags = OpenFlags(unix.O_CREAT | unix.O_WRONLY | unix.O_TRUNC)

// openFlagName associates a named flag with its value. Flags that are
// supersets of other flags must be listed before those flags.
type openFlagName struct {
	flag OpenFlags
	name string
}

// String implements fmt.Stringer.String, rendering the flags in the form
// O_RDWR|O_CREAT|... with any unrecognized bits rendered numerically.
func (f OpenFlags) String() string {
	// Render the access mode, which isn't a bit flag.
	var names []string
	switch f & unix.O_ACCMODE {
	case unix.O_RDONLY:
		names = append(names, "O_RDONLY")
	case unix.O_WRONLY:
		names = append(names, "O_WRONLY")
	case unix.O_RDWR:
		names = append(names, "O_RDWR")
	default:
		names = append(names, "O_ACCMODE")
	}

	// Render the remaining flags.
	remaining := f &^ unix.O_ACCMODE
	for _, n := range openFlagNames {
		if n.flag != 0 && remaining&n.flag == n.flag {
			names = append(names, n.name)
			remaining &^= n.flag
		}
	}
	if remaining != 0 {
		names = append(names, fmt.Sprintf("%#x", int(remaining)))
	}

	// Done.
	return strings.Join(names, "|")
}

// randomOpenFlags generates flags for an open operation. Most opens are
// read-write, since descriptors opened otherwise make most subsequent reads or
// writes fail with EBADF.
func randomOpenFlags(random *rand.Rand) OpenFlags {
	if random.Intn(10) < 9 {
		return OpenFlags(unix.O_RDWR)
	}
	return OpenFlags(random.Int()) & supportedOpenFlags
}

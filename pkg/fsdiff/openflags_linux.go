package fsdiff

import (
	"golang.org/x/sys/unix"
)

// supportedOpenFlags are the flags from which random open flags are drawn.
// Flags that depend on the storage device (such as O_DIRECT) or that change
// what kind of descriptor is created (such as O_PATH) are excluded.
const supportedOpenFlags = OpenFlags(unix.O_APPEND | unix.O_ASYNC | unix.O_CLOEXEC |
	unix.O_CREAT | unix.O_DIRECTORY | unix.O_EXCL | unix.O_NOATIME | unix.O_NOCTTY |
	unix.O_NOFOLLOW | unix.O_NONBLOCK | unix.O_RDWR | unix.O_TRUNC | unix.O_WRONLY)

// openFlagNames are the flag names recognized by OpenFlags.String.
var openFlagNames = []openFlagName{
	{unix.O_TMPFILE, "O_TMPFILE"},
	{unix.O_CLOEXEC, "O_CLOEXEC"},
	{unix.O_CREAT, "O_CREAT"},
	{unix.O_DIRECTORY, "O_DIRECTORY"},
	{unix.O_EXCL, "O_EXCL"},
	{unix.O_NOCTTY, "O_NOCTTY"},
	{unix.O_NOFOLLOW, "O_NOFOLLOW"},
	{unix.O_TRUNC, "O_TRUNC"},
	{unix.O_APPEND, "O_APPEND"},
	{unix.O_ASYNC, "O_ASYNC"},
	{unix.O_DIRECT, "O_DIRECT"},
	{unix.O_SYNC, "O_SYNC"},
	{unix.O_DSYNC, "O_DSYNC"},
	{unix.O_LARGEFILE, "O_LARGEFILE"},
	{unix.O_NOATIME, "O_NOATIME"},
	{unix.O_NONBLOCK, "O_NONBLOCK"},
	{unix.O_PATH, "O_PATH"},
}

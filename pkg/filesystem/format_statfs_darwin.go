package filesystem

import (
	"strings"

	"golang.org/x/sys/unix"
)

// formatFromStatfs extracts the filesystem format from the filesystem metadata.
func formatFromStatfs(metadata *unix.Statfs_t) Format {
	// Extract the filesystem type name.
	name := unix.ByteSliceToString(metadata.Fstypename[:])

	// Check if this is a well-known filesystem format.
	switch {
	case name == "apfs":
		return FormatAPFS
	case strings.HasPrefix(name, "hfs"):
		return FormatHFS
	case name == "msdos":
		return FormatFAT32
	case name == "exfat":
		return FormatExFAT
	case name == "nfs":
		return FormatNFS
	case strings.HasPrefix(name, "macfuse"), strings.HasPrefix(name, "osxfuse"):
		return FormatFUSE
	}

	// Otherwise classify it as unknown.
	return FormatUnknown
}

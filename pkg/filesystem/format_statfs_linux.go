package filesystem

import (
	"golang.org/x/sys/unix"
)

// formatFromStatfs extracts the filesystem format from the filesystem
// metadata. The magic number is truncated to 32 bits because the width and
// signedness of the type field vary by architecture.
func formatFromStatfs(metadata *unix.Statfs_t) Format {
	switch uint32(metadata.Type) {
	case unix.EXT4_SUPER_MAGIC:
		return FormatEXT
	case unix.NFS_SUPER_MAGIC:
		return FormatNFS
	case unix.TMPFS_MAGIC:
		return FormatTmpfs
	case unix.BTRFS_SUPER_MAGIC:
		return FormatBtrfs
	case unix.XFS_SUPER_MAGIC:
		return FormatXFS
	case unix.OVERLAYFS_SUPER_MAGIC:
		return FormatOverlay
	case unix.V9FS_MAGIC:
		return Format9P
	case unix.FUSE_SUPER_MAGIC:
		return FormatFUSE
	default:
		return FormatUnknown
	}
}

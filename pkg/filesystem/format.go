package filesystem

// Format represents a filesystem volume format.
type Format uint8

const (
	// FormatUnknown represents an unknown volume format. It is supported on all
	// platforms.
	FormatUnknown Format = iota
	// FormatEXT represents an EXT2, EXT3, or EXT4 filesystem format.
	FormatEXT
	// FormatNFS represents an NFS filesystem format.
	FormatNFS
	// FormatTmpfs represents a tmpfs filesystem format.
	FormatTmpfs
	// FormatBtrfs represents a Btrfs filesystem format.
	FormatBtrfs
	// FormatXFS represents an XFS filesystem format.
	FormatXFS
	// FormatOverlay represents an overlay filesystem format.
	FormatOverlay
	// Format9P represents a 9P (v9fs) mount.
	Format9P
	// FormatFUSE represents a FUSE mount.
	FormatFUSE
	// FormatAPFS represents an APFS filesystem format.
	FormatAPFS
	// FormatHFS represents an HFS (or variant thereof) filesystem format.
	FormatHFS
	// FormatFAT32 represents a FAT32 filesystem format.
	FormatFAT32
	// FormatExFAT represents a ExFAT filesystem format.
	FormatExFAT
)

// String provides a human-readable representation of a filesystem format.
func (f Format) String() string {
	switch f {
	case FormatEXT:
		return "ext"
	case FormatNFS:
		return "nfs"
	case FormatTmpfs:
		return "tmpfs"
	case FormatBtrfs:
		return "btrfs"
	case FormatXFS:
		return "xfs"
	case FormatOverlay:
		return "overlay"
	case Format9P:
		return "9p"
	case FormatFUSE:
		return "fuse"
	case FormatAPFS:
		return "apfs"
	case FormatHFS:
		return "hfs"
	case FormatFAT32:
		return "fat32"
	case FormatExFAT:
		return "exfat"
	default:
		return "unknown"
	}
}

//go:build !windows

package cmd

// statusLineFormat is the format string to use for status line printing. On
// POSIX systems, we truncate and pad messages (with spaces) so that the
// printed content is exactly 80 characters, which overwrites any previous
// content without overflowing a VT100-sized terminal.
const statusLineFormat = "\r%-80.80s"

// Package fsprobe carries build-wide information shared by the fsprobe
// executables.
package fsprobe

import (
	"fmt"
)

const (
	// VersionMajor represents the current major version of fsprobe.
	VersionMajor = 0
	// VersionMinor represents the current minor version of fsprobe.
	VersionMinor = 1
	// VersionPatch represents the current patch version of fsprobe.
	VersionPatch = 0
	// VersionTag represents a tag to be appended to the fsprobe version string.
	// It must not contain spaces. If empty, no tag is appended to the version
	// string.
	VersionTag = ""
)

// Version provides a stringified version of the current fsprobe version.
var Version string

// init performs global initialization.
func init() {
	// Compute the stringified version.
	if VersionTag != "" {
		Version = fmt.Sprintf("%d.%d.%d-%s", VersionMajor, VersionMinor, VersionPatch, VersionTag)
	} else {
		Version = fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionPatch)
	}
}

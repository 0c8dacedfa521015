package fsprobe

import (
	"fmt"
	"strings"
	"testing"
)

// TestVersion tests that the version string is composed from its components.
func TestVersion(t *testing.T) {
	expected := fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionPatch)
	if VersionTag != "" {
		expected += "-" + VersionTag
	}
	if Version != expected {
		t.Errorf("version (%s) does not match expected (%s)", Version, expected)
	}
	if strings.ContainsAny(Version, " \t\n") {
		t.Error("version contains whitespace")
	}
}

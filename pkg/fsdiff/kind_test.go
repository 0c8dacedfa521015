package fsdiff

import (
	"testing"
)

// TestOperationKindNames tests that every operation kind round-trips through
// its name.
func TestOperationKindNames(t *testing.T) {
	for k := OperationKind(0); k < operationKindCount; k++ {
		parsed, err := ParseOperationKind(k.String())
		if err != nil {
			t.Errorf("unable to parse name of kind %d: %v", k, err)
		} else if parsed != k {
			t.Errorf("kind %d parsed as %d", k, parsed)
		}
	}
}

// TestParseOperationKindUnknown tests that unknown operation names are
// rejected.
func TestParseOperationKindUnknown(t *testing.T) {
	for _, name := range []string{"", "unlink1", "Create", "swapclients"} {
		if _, err := ParseOperationKind(name); err == nil {
			t.Errorf("unknown name %q parsed successfully", name)
		}
	}
	if name := operationKindCount.String(); name != "unknown" {
		t.Error("out-of-range kind has unexpected name:", name)
	}
}

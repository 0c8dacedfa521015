package filesystem

import (
	"runtime"
	"testing"
)

// TestQueryFormatByPath tests that format queries succeed on supported
// platforms and fail for non-existent paths.
func TestQueryFormatByPath(t *testing.T) {
	if runtime.GOOS != "linux" && runtime.GOOS != "darwin" {
		t.Skip()
	}
	if _, err := QueryFormatByPath(t.TempDir()); err != nil {
		t.Error("unable to query format of temporary directory:", err)
	}
	if _, err := QueryFormatByPath("/this/does/not/exist"); err == nil {
		t.Error("format query succeeded for non-existent path")
	}
}

// TestFormatString tests that every format has a distinct name.
func TestFormatString(t *testing.T) {
	names := make(map[string]Format)
	for f := FormatUnknown; f <= FormatExFAT; f++ {
		name := f.String()
		if other, ok := names[name]; ok {
			t.Errorf("formats %d and %d share name %q", other, f, name)
		}
		names[name] = f
	}
	if (FormatExFAT + 1).String() != "unknown" {
		t.Error("out-of-range format has unexpected name")
	}
}

package encoding

import (
	"os"
	"path/filepath"
	"testing"
)

// testMessageYAML is a test structure to use for encoding tests using YAML.
type testMessageYAML struct {
	Probabilities map[string]int `yaml:"probabilities"`
}

// writeTestFile writes the specified contents to a file in a temporary
// directory and returns its path.
func writeTestFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "configuration")
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatal("unable to write test file:", err)
	}
	return path
}

// TestLoadAndUnmarshalYAML tests that loading and unmarshaling YAML data
// succeeds.
func TestLoadAndUnmarshalYAML(t *testing.T) {
	path := writeTestFile(t, "probabilities:\n  create: 10\n  write: 30\n")

	// Attempt to load and unmarshal.
	value := &testMessageYAML{}
	if err := LoadAndUnmarshalYAML(path, value); err != nil {
		t.Fatal("LoadAndUnmarshalYAML failed:", err)
	}

	// Verify values.
	if value.Probabilities["create"] != 10 || value.Probabilities["write"] != 30 {
		t.Error("decoded probabilities do not match expected:", value.Probabilities)
	}
}

// TestLoadAndUnmarshalYAMLJSON tests that JSON documents are accepted.
func TestLoadAndUnmarshalYAMLJSON(t *testing.T) {
	path := writeTestFile(t, `{"probabilities": {"read": 5}}`)
	value := &testMessageYAML{}
	if err := LoadAndUnmarshalYAML(path, value); err != nil {
		t.Fatal("LoadAndUnmarshalYAML failed on JSON:", err)
	} else if value.Probabilities["read"] != 5 {
		t.Error("decoded probabilities do not match expected:", value.Probabilities)
	}
}

// TestLoadAndUnmarshalYAMLEmpty tests that an empty document leaves the value
// untouched.
func TestLoadAndUnmarshalYAMLEmpty(t *testing.T) {
	path := writeTestFile(t, "")
	value := &testMessageYAML{}
	if err := LoadAndUnmarshalYAML(path, value); err != nil {
		t.Fatal("LoadAndUnmarshalYAML failed on empty document:", err)
	} else if value.Probabilities != nil {
		t.Error("empty document populated probabilities")
	}
}

// TestLoadAndUnmarshalYAMLUnknownField tests that unknown fields are rejected.
func TestLoadAndUnmarshalYAMLUnknownField(t *testing.T) {
	path := writeTestFile(t, "probabilites:\n  create: 10\n")
	if LoadAndUnmarshalYAML(path, &testMessageYAML{}) == nil {
		t.Error("expected unknown field to be rejected")
	}
}

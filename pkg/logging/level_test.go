package logging

import (
	"testing"
)

// TestNameToLevel tests that log level names are converted as expected.
func TestNameToLevel(t *testing.T) {
	// Set up test cases.
	testCases := []struct {
		name          string
		expectedLevel Level
		expectedOK    bool
	}{
		{"", LevelDisabled, false},
		{"verbose", LevelDisabled, false},
		{"disabled", LevelDisabled, true},
		{"error", LevelError, true},
		{"warn", LevelWarn, true},
		{"info", LevelInfo, true},
		{"debug", LevelDebug, true},
		{"trace", LevelTrace, true},
	}

	// Process test cases.
	for _, testCase := range testCases {
		level, ok := NameToLevel(testCase.name)
		if ok != testCase.expectedOK {
			t.Errorf("validity (%t) for name %q does not match expected (%t)", ok, testCase.name, testCase.expectedOK)
		}
		if level != testCase.expectedLevel {
			t.Errorf("level (%s) for name %q does not match expected (%s)", level, testCase.name, testCase.expectedLevel)
		}
		if ok && level.String() != testCase.name {
			t.Errorf("level name (%s) does not round trip (%s)", level, testCase.name)
		}
	}
}

// TestLevelOrdering tests that levels are ordered by verbosity.
func TestLevelOrdering(t *testing.T) {
	levels := []Level{LevelDisabled, LevelError, LevelWarn, LevelInfo, LevelDebug, LevelTrace}
	for i := 1; i < len(levels); i++ {
		if levels[i-1] >= levels[i] {
			t.Errorf("level %s is not less verbose than %s", levels[i-1], levels[i])
		}
	}
	if (LevelTrace + 1).String() != "unknown" {
		t.Error("out-of-range level has unexpected name")
	}
}

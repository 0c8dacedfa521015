package cmd

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/spf13/cobra"
)

// newLeafCommand creates a leaf command that records its positional arguments
// and a string flag.
func newLeafCommand(received *[]string, value *string, disableFlagParsing bool) *cobra.Command {
	command := &cobra.Command{
		Use:                "leaf <path>",
		Version:            "1.2.3",
		Args:               cobra.ExactArgs(1),
		DisableFlagParsing: disableFlagParsing,
		RunE: func(_ *cobra.Command, arguments []string) error {
			*received = arguments
			return nil
		},
	}
	command.Flags().StringVar(value, "value", "default", "A value")
	return command
}

// TestExecuteLeaf tests that leaf commands receive their positional arguments,
// including those named like Cobra's completion commands.
func TestExecuteLeaf(t *testing.T) {
	testCases := []struct {
		arguments          []string
		disableFlagParsing bool
		expected           []string
		expectedValue      string
		expectFailure      bool
	}{
		{[]string{"path"}, false, []string{"path"}, "default", false},
		{[]string{"__complete"}, false, []string{"__complete"}, "default", false},
		{[]string{"__completeNoDesc"}, false, []string{"__completeNoDesc"}, "default", false},
		{[]string{"--value", "set", "path"}, false, []string{"path"}, "set", false},
		{[]string{"--value", "set", "path"}, true, nil, "default", true},
		{[]string{"--value", "path"}, true, nil, "default", true},
		{[]string{"-h"}, true, []string{"-h"}, "default", false},
		{[]string{"--unknown", "path"}, false, nil, "default", true},
		{nil, false, nil, "default", true},
		{[]string{"a", "b"}, false, nil, "default", true},
	}
	for i, testCase := range testCases {
		var received []string
		var value string
		command := newLeafCommand(&received, &value, testCase.disableFlagParsing)
		command.SetOut(&bytes.Buffer{})
		err := ExecuteLeaf(command, testCase.arguments)
		if testCase.expectFailure {
			if err == nil {
				t.Errorf("test case %d: execution succeeded unexpectedly", i)
			}
			continue
		} else if err != nil {
			t.Errorf("test case %d: execution failed: %v", i, err)
			continue
		}
		if !reflect.DeepEqual(received, testCase.expected) {
			t.Errorf("test case %d: arguments (%v) do not match expected (%v)", i, received, testCase.expected)
		}
		if value != testCase.expectedValue {
			t.Errorf("test case %d: flag value (%q) does not match expected (%q)", i, value, testCase.expectedValue)
		}
	}
}

// TestExecuteLeafVersionAndHelp tests that the version and help flags are
// handled without invoking the entry point.
func TestExecuteLeafVersionAndHelp(t *testing.T) {
	for _, flag := range []string{"--version", "--help"} {
		var received []string
		var value string
		command := newLeafCommand(&received, &value, false)
		output := &bytes.Buffer{}
		command.SetOut(output)
		if err := ExecuteLeaf(command, []string{flag}); err != nil {
			t.Errorf("execution with %s failed: %v", flag, err)
		}
		if received != nil {
			t.Errorf("entry point invoked with %s", flag)
		}
		if flag == "--version" && output.String() != "leaf version 1.2.3\n" {
			t.Errorf("unexpected version output: %q", output.String())
		}
		if flag == "--help" && output.Len() == 0 {
			t.Error("no help output")
		}
	}
}

package sysraw

import (
	"errors"
	"syscall"
	"testing"
)

// TestDescribe tests errno descriptions.
func TestDescribe(t *testing.T) {
	if description := Describe(0); description != "success" {
		t.Errorf("unexpected description for errno 0: %q", description)
	}
	if description := Describe(syscall.ENOENT); description != syscall.ENOENT.Error() {
		t.Errorf("unexpected description for ENOENT: %q", description)
	}
}

// TestResultFromValue tests conversion of wrapper return values.
func TestResultFromValue(t *testing.T) {
	// Set up test cases.
	testCases := []struct {
		value    int64
		err      error
		expected Result
	}{
		{3, nil, Result{Return: 3}},
		{-1, syscall.EBADF, Result{Return: -1, Errno: syscall.EBADF}},
		{0, errors.New("not an errno"), Result{Return: -1, Errno: syscall.EINVAL}},
	}

	// Process test cases.
	for _, testCase := range testCases {
		if result := resultFromValue(testCase.value, testCase.err); result != testCase.expected {
			t.Errorf("result (%v) does not match expected (%v)", result, testCase.expected)
		}
	}
}

// TestResultString tests result formatting.
func TestResultString(t *testing.T) {
	result := Result{Return: -1, Errno: syscall.Errno(9)}
	if s := result.String(); s != "ret=-1 errno=9" {
		t.Errorf("unexpected result string: %q", s)
	}
	if !result.Failed() {
		t.Error("failed result not reported as failed")
	}
	if (Result{}).Failed() {
		t.Error("zero result reported as failed")
	}
	if result.Err() != syscall.Errno(9) {
		t.Error("failed result error does not match errno:", result.Err())
	}
	if (Result{}).Err() != nil {
		t.Error("zero result reported an error")
	}
}

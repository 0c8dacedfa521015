package probe

import (
	"fmt"

	"github.com/mutagen-io/fsprobe/pkg/sysraw"
)

// AssertionError indicates that an observed system call outcome did not match
// the documented kernel behavior.
type AssertionError struct {
	// Assertion is the expectation that failed, written as a C-like
	// expression.
	Assertion string
	// Observed is the outcome of the system call under test.
	Observed sysraw.Result
	// Data is the data observed by a read call, if relevant.
	Data []byte
}

// Error implements error.Error.
func (e *AssertionError) Error() string {
	if e.Data != nil {
		return fmt.Sprintf("assertion failed: %s (%v, data=%q)", e.Assertion, e.Observed, e.Data)
	}
	return fmt.Sprintf("assertion failed: %s (%v)", e.Assertion, e.Observed)
}

// expectReturn verifies that a result holds the expected return value.
func expectReturn(result sysraw.Result, expected int64, assertion string) error {
	if result.Return != expected {
		return &AssertionError{Assertion: assertion, Observed: result}
	}
	return nil
}

// expectRead verifies that a read result holds the expected byte count and
// that the buffer holds the expected data.
func expectRead(result sysraw.Result, buffer []byte, expected string, assertion string) error {
	if result.Return != int64(len(expected)) || string(buffer[:len(expected)]) != expected {
		observed := buffer
		if result.Return >= 0 && result.Return <= int64(len(buffer)) {
			observed = buffer[:result.Return]
		}
		return &AssertionError{Assertion: assertion, Observed: result, Data: observed}
	}
	return nil
}

package fsdiff

import (
	"github.com/pkg/errors"
)

// OperationKind identifies the type of a file system operation.
type OperationKind uint8

const (
	// OperationKindCreate creates (or truncates) a file with creat semantics.
	OperationKindCreate OperationKind = iota
	// OperationKindOpen opens a path with random flags.
	OperationKindOpen
	// OperationKindSeek repositions the offset of an open descriptor.
	OperationKindSeek
	// OperationKindRead reads from an open descriptor.
	OperationKindRead
	// OperationKindWrite writes random data to an open descriptor.
	OperationKindWrite
	// OperationKindClose closes an open descriptor.
	OperationKindClose
	// OperationKindUnlink removes a path with unlink semantics.
	OperationKindUnlink
	// OperationKindTruncate truncates a path to a random length.
	OperationKindTruncate
	// OperationKindFtruncate truncates an open descriptor to a random length.
	OperationKindFtruncate
	// OperationKindMkdir creates a directory.
	OperationKindMkdir
	// OperationKindRmdir removes a directory.
	OperationKindRmdir
	// OperationKindRename renames a path within its parent directory.
	OperationKindRename
	// OperationKindChdir changes the working directory used to resolve
	// relative paths.
	OperationKindChdir

	// operationKindCount is the number of operation kinds.
	operationKindCount
)

// operationKindNames are the configuration names of the operation kinds,
// indexed by kind.
var operationKindNames = [operationKindCount]string{
	"create",
	"open",
	"seek",
	"read",
	"write",
	"close",
	"unlink",
	"truncate",
	"ftruncate",
	"mkdir",
	"rmdir",
	"rename",
	"chdir",
}

// String implements fmt.Stringer.String.
func (k OperationKind) String() string {
	if k < operationKindCount {
		return operationKindNames[k]
	}
	return "unknown"
}

// ParseOperationKind converts a configuration name into an operation kind.
func ParseOperationKind(name string) (OperationKind, error) {
	for k, n := range operationKindNames {
		if n == name {
			return OperationKind(k), nil
		}
	}
	return 0, errors.Errorf("unknown operation: %s", name)
}

// requiresDescriptor indicates whether or not operations of this kind act on
// a descriptor created by a previous create or open operation.
func (k OperationKind) requiresDescriptor() bool {
	switch k {
	case OperationKindSeek, OperationKindRead, OperationKindWrite,
		OperationKindClose, OperationKindFtruncate:
		return true
	default:
		return false
	}
}

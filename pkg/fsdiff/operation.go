package fsdiff

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/pkg/errors"

	"golang.org/x/sys/unix"

	"github.com/mutagen-io/fsprobe/pkg/sysraw"
)

// Outcome is the observed outcome of an operation on one side of the
// comparison.
type Outcome struct {
	// Result is the raw result of the system call. For create and open
	// operations, its Return field holds the new descriptor. For chdir
	// operations, it holds the new working directory descriptor.
	sysraw.Result
	// Data is the data returned by a read operation.
	Data []byte
}

// Operation is a single file system operation together with its outcomes on
// the target and reference trees.
type Operation struct {
	// Identifier is the zero-based index of the operation in its sequence.
	Identifier int
	// Kind is the operation kind.
	Kind OperationKind
	// Parent is the create or open operation whose descriptors the operation
	// acts upon. It is only set for kinds that require a descriptor.
	Parent *Operation
	// Path is the subject path, relative to the tree root.
	Path string
	// NewPath is the destination path of a rename operation, relative to the
	// tree root.
	NewPath string
	// Flags are the open flags.
	Flags OpenFlags
	// Mode is the permission mode used by create, open, and mkdir operations.
	Mode uint32
	// Length is the read size or the truncation length.
	Length int
	// Data is the data written by a write operation.
	Data []byte
	// Offset is the seek offset.
	Offset int64
	// Whence is the seek origin.
	Whence int

	// Target is the outcome on the target tree.
	Target Outcome
	// Reference is the outcome on the reference tree.
	Reference Outcome
}

// String implements fmt.Stringer.String.
func (o *Operation) String() string {
	var parent interface{}
	if o.Parent != nil {
		parent = o.Parent.Identifier
	}
	return fmt.Sprintf(
		"[op id=%d kind=%v parent=%v path=%q newpath=%q flags=%v mode=0%o len(data)=%d length=%d offset=%d whence=%d target={%v len(data)=%d} reference={%v len(data)=%d}]",
		o.Identifier, o.Kind, parent, o.Path, o.NewPath, o.Flags, o.Mode,
		len(o.Data), o.Length, o.Offset, o.Whence,
		o.Target.Result, len(o.Target.Data), o.Reference.Result, len(o.Reference.Data),
	)
}

// side holds the per-tree execution state.
type side struct {
	// root is the tree root.
	root string
	// workingDirectory is the descriptor of the working directory, or -1 if
	// it needs to be reopened.
	workingDirectory int
}

// perform executes the operation on a single tree. The relative path is the
// operation's path expressed relative to the working directory, and parent is
// the outcome of the parent operation on the same tree.
func (o *Operation) perform(s *side, relative string, parent *Outcome) Outcome {
	// Extract the parent descriptor, if any.
	var descriptor int
	if parent != nil {
		descriptor = int(parent.Return)
	}

	// Perform the operation.
	switch o.Kind {
	case OperationKindCreate:
		return Outcome{Result: sysraw.Openat(s.workingDirectory, relative, int(createFlags), o.Mode)}
	case OperationKindOpen:
		return Outcome{Result: sysraw.Openat(s.workingDirectory, relative, int(o.Flags), o.Mode)}
	case OperationKindSeek:
		return Outcome{Result: sysraw.Seek(descriptor, o.Offset, o.Whence)}
	case OperationKindRead:
		buffer := make([]byte, o.Length)
		result := sysraw.Read(descriptor, buffer)
		if result.Return < 0 {
			return Outcome{Result: result}
		}
		return Outcome{Result: result, Data: buffer[:result.Return]}
	case OperationKindWrite:
		return Outcome{Result: sysraw.Write(descriptor, o.Data)}
	case OperationKindClose:
		return Outcome{Result: sysraw.Close(descriptor)}
	case OperationKindUnlink:
		return Outcome{Result: sysraw.Unlinkat(s.workingDirectory, relative, 0)}
	case OperationKindTruncate:
		return Outcome{Result: sysraw.Truncate(filepath.Join(s.root, o.Path), int64(o.Length))}
	case OperationKindFtruncate:
		return Outcome{Result: sysraw.Ftruncate(descriptor, int64(o.Length))}
	case OperationKindMkdir:
		return Outcome{Result: sysraw.Mkdirat(s.workingDirectory, relative, o.Mode)}
	case OperationKindRmdir:
		return Outcome{Result: sysraw.Unlinkat(s.workingDirectory, relative, unix.AT_REMOVEDIR)}
	case OperationKindRename:
		return Outcome{Result: sysraw.Rename(filepath.Join(s.root, o.Path), filepath.Join(s.root, o.NewPath))}
	case OperationKindChdir:
		// Close the current working directory. If that fails, the descriptor
		// is still considered invalid and will be reopened.
		closed := sysraw.Close(s.workingDirectory)
		s.workingDirectory = -1
		if closed.Failed() {
			return Outcome{Result: closed}
		}

		// Open the new working directory.
		opened := sysraw.Open(filepath.Join(s.root, o.Path), workingDirectoryFlags, 0)
		if opened.Return >= 0 {
			s.workingDirectory = int(opened.Return)
		}
		return Outcome{Result: opened}
	default:
		panic("unhandled operation kind")
	}
}

// errorsMatch determines whether or not the target and reference failed in
// the same way. Seeks that the reference rejects with EINVAL are allowed to
// succeed on the target, since some network file system clients don't validate
// seek offsets.
func (o *Operation) errorsMatch() bool {
	target, reference := o.Target.Errno, o.Reference.Errno
	if o.Kind == OperationKindSeek && target == 0 && reference == unix.EINVAL {
		return true
	}
	return target.Error() == reference.Error()
}

// errMismatch is the sentinel cause of all verification failures.
var errMismatch = errors.New("outcome mismatch")

// verify checks that the target outcome matches the reference outcome. Seek
// offset differences are reported as warnings through the callback since
// seeks never reach some file system implementations.
func (o *Operation) verify(warn func(string, ...interface{})) error {
	// Check that the errors match.
	if !o.errorsMatch() {
		return errors.Wrapf(errMismatch, "%v: target errno %d (%s), reference errno %d (%s)",
			o.Kind,
			int(o.Target.Errno), sysraw.Describe(o.Target.Errno),
			int(o.Reference.Errno), sysraw.Describe(o.Reference.Errno),
		)
	}

	// If the operation failed, then there's nothing else to compare.
	if o.Reference.Errno != 0 {
		return nil
	}

	// Perform kind-specific checks.
	switch o.Kind {
	case OperationKindCreate, OperationKindOpen:
		if o.Target.Return < 0 || o.Reference.Return < 0 {
			return errors.Wrapf(errMismatch, "%v: negative descriptor(s)", o.Kind)
		}
	case OperationKindSeek:
		if o.Target.Return != o.Reference.Return {
			warn("Different offsets after seek: target %d, reference %d", o.Target.Return, o.Reference.Return)
		}
	case OperationKindRead:
		if o.Target.Return != o.Reference.Return {
			return errors.Wrapf(errMismatch, "read: byte count %d on target, %d on reference", o.Target.Return, o.Reference.Return)
		} else if !bytes.Equal(o.Target.Data, o.Reference.Data) {
			return errors.Wrapf(errMismatch, "read: target data %q, reference data %q", o.Target.Data, o.Reference.Data)
		}
	case OperationKindWrite:
		if o.Target.Return != o.Reference.Return {
			return errors.Wrapf(errMismatch, "write: byte count %d on target, %d on reference", o.Target.Return, o.Reference.Return)
		}
	}

	// Success.
	return nil
}

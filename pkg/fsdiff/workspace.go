package fsdiff

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/pkg/errors"
)

const (
	// workspacePrefix is the name prefix of workspace directories.
	workspacePrefix = "fsdiff-"
	// referenceDirectoryName is the name of the reference tree within a
	// workspace.
	referenceDirectoryName = "ref"
	// targetDirectoryName is the name of the default target tree within a
	// workspace.
	targetDirectoryName = "target"
)

// Workspace is the directory holding the trees for a run.
type Workspace struct {
	// Identifier is the unique run identifier.
	Identifier string
	// Root is the workspace directory.
	Root string
	// Reference is the reference tree.
	Reference string
	// Target is the target tree. It's inside the workspace unless an external
	// target was specified.
	Target string
}

// NewWorkspace creates a new workspace inside the specified parent directory
// (or the default temporary directory if parent is empty). If target is
// non-empty, then it's used as the target tree and must be an existing
// directory, otherwise a target tree is created inside the workspace.
func NewWorkspace(parent, target string) (*Workspace, error) {
	// Verify that any external target is a directory.
	if target != "" {
		if metadata, err := os.Stat(target); err != nil {
			return nil, errors.Wrap(err, "unable to query target")
		} else if !metadata.IsDir() {
			return nil, errors.New("target is not a directory")
		}
	}

	// Compute the workspace path.
	if parent == "" {
		parent = os.TempDir()
	}
	identifierUUID, err := uuid.NewRandom()
	if err != nil {
		return nil, errors.Wrap(err, "unable to generate run identifier")
	}
	identifier := identifierUUID.String()
	root := filepath.Join(parent, workspacePrefix+identifier)

	// Create the workspace and the reference tree.
	if err := os.Mkdir(root, 0700); err != nil {
		return nil, errors.Wrap(err, "unable to create workspace")
	}
	reference := filepath.Join(root, referenceDirectoryName)
	if err := os.Mkdir(reference, 0700); err != nil {
		os.RemoveAll(root)
		return nil, errors.Wrap(err, "unable to create reference tree")
	}

	// Create the target tree, if necessary.
	if target == "" {
		target = filepath.Join(root, targetDirectoryName)
		if err := os.Mkdir(target, 0700); err != nil {
			os.RemoveAll(root)
			return nil, errors.Wrap(err, "unable to create target tree")
		}
	}

	// Success.
	return &Workspace{
		Identifier: identifier,
		Root:       root,
		Reference:  reference,
		Target:     target,
	}, nil
}

// Remove removes the workspace. External targets are left in place.
func (w *Workspace) Remove() error {
	return os.RemoveAll(w.Root)
}

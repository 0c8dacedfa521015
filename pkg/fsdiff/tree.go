package fsdiff

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// TreeDescription is a deterministic, line-oriented description of a
// directory tree. Entries are produced in depth-first order with children
// sorted by name.
type TreeDescription []string

// describeTree describes the tree rooted at the specified path. Metadata lines
// record each entry's path and mode (and size for files), excluding the root
// itself. Contents lines
// record the SHA-256 digest of each file. Ignored paths, and the contents of
// ignored directories, are omitted. If neither metadata nor contents are
// requested, then the description is empty.
func describeTree(root string, includeMetadata, includeContents bool, ignorer *ignorer) (TreeDescription, error) {
	// Handle the trivial case.
	if !includeMetadata && !includeContents {
		return nil, nil
	}

	// Perform the description.
	var description TreeDescription
	if err := describeEntry(&description, root, "", includeMetadata, includeContents, ignorer); err != nil {
		return nil, err
	}

	// Success.
	return description, nil
}

// describeEntry appends the description of a single entry (and its children,
// if it's a directory) to the description.
func describeEntry(description *TreeDescription, root, path string, includeMetadata, includeContents bool, ignorer *ignorer) error {
	// Query the entry's metadata.
	fullPath := filepath.Join(root, path)
	metadata, err := os.Lstat(fullPath)
	if err != nil {
		return errors.Wrap(err, "unable to query entry metadata")
	}

	// Handle non-directory entries.
	if !metadata.IsDir() {
		if includeMetadata {
			*description = append(*description,
				fmt.Sprintf("path=%q size=%d mode=%v", path, metadata.Size(), metadata.Mode()),
			)
		}
		if includeContents && metadata.Mode().IsRegular() {
			contents, err := os.ReadFile(fullPath)
			if err != nil {
				return errors.Wrap(err, "unable to read file contents")
			}
			*description = append(*description,
				fmt.Sprintf("path=%q sha256=%x", path, sha256.Sum256(contents)),
			)
		}
		return nil
	}

	// Describe the directory itself. The root is excluded since its
	// permissions are set by whoever created it.
	if includeMetadata && path != "" {
		*description = append(*description, fmt.Sprintf("path=%q mode=%v", path, metadata.Mode()))
	}

	// Read directory contents. These are returned sorted by name.
	children, err := os.ReadDir(fullPath)
	if err != nil {
		return errors.Wrap(err, "unable to read directory contents")
	}

	// Describe children.
	for _, child := range children {
		childPath := child.Name()
		if path != "" {
			childPath = path + "/" + childPath
		}
		if ignorer.ignored(childPath) {
			continue
		}
		if err := describeEntry(description, root, childPath, includeMetadata, includeContents, ignorer); err != nil {
			return err
		}
	}

	// Success.
	return nil
}

// Package fsdiff implements a sequential differential tester for file systems.
// It generates a random but reproducible sequence of file system operations,
// executes each operation on both a target directory (typically on the file
// system under test) and a reference directory, and verifies after every
// operation that the observed outcomes and the resulting directory trees are
// identical.
package fsdiff

// Package filesystem provides file system classification used to annotate
// probe and differential test output.
package filesystem

package fsdiff

import (
	"github.com/pkg/errors"

	"github.com/bmatcuk/doublestar/v4"
)

// ignorePattern is a single parsed ignore pattern.
type ignorePattern struct {
	// negated indicates whether or not the pattern re-includes paths matched
	// by earlier patterns.
	negated bool
	// pattern is the doublestar glob.
	pattern string
}

// newIgnorePattern parses an ignore pattern. A leading '!' negates the
// pattern.
func newIgnorePattern(pattern string) (*ignorePattern, error) {
	// If the pattern is empty, it's invalid.
	if pattern == "" {
		return nil, errors.New("empty pattern")
	}

	// Check if this is a negated pattern. If so, strip off but record the
	// negation.
	negated := false
	if pattern[0] == '!' {
		negated = true
		pattern = pattern[1:]
		if pattern == "" {
			return nil, errors.New("empty negated pattern")
		}
	}

	// Attempt to do a match with the pattern to ensure validity. We have to
	// match against a non-empty path, otherwise bad pattern errors won't be
	// detected.
	if _, err := doublestar.Match(pattern, "a"); err != nil {
		return nil, errors.Wrap(err, "unable to validate pattern")
	}

	// Success.
	return &ignorePattern{negated, pattern}, nil
}

// matches indicates whether or not the pattern matches the specified
// slash-separated path.
func (i *ignorePattern) matches(path string) bool {
	// The pattern was validated on creation, so matching can't fail.
	match, _ := doublestar.Match(i.pattern, path)
	return match
}

// ignorer determines which tree paths are excluded from tree descriptions.
type ignorer struct {
	// patterns are the ignore patterns, in order of increasing precedence.
	patterns []*ignorePattern
}

// newIgnorer creates a new ignorer from a list of patterns.
func newIgnorer(patterns []string) (*ignorer, error) {
	// Parse patterns.
	ignorePatterns := make([]*ignorePattern, len(patterns))
	for i, p := range patterns {
		if ip, err := newIgnorePattern(p); err != nil {
			return nil, errors.Wrapf(err, "unable to parse pattern %q", p)
		} else {
			ignorePatterns[i] = ip
		}
	}

	// Success.
	return &ignorer{ignorePatterns}, nil
}

// ignored indicates whether or not the specified slash-separated path,
// relative to the tree root, is ignored. A nil ignorer ignores nothing.
func (i *ignorer) ignored(path string) bool {
	// Handle the trivial case.
	if i == nil {
		return false
	}

	// Run through patterns, keeping track of the ignored state as we reach
	// more specific rules.
	ignored := false
	for _, p := range i.patterns {
		if p.matches(path) {
			ignored = !p.negated
		}
	}

	// Done.
	return ignored
}

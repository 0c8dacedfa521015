package fsdiff

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// HashPeriods control how often the target and reference trees are compared,
// measured in operations. Metadata (paths, modes, and sizes) is compared every
// Metadata operations and file contents every Contents operations. It
// implements pflag.Value in the form "<metadata>,<contents>".
type HashPeriods struct {
	// Metadata is the metadata comparison period.
	Metadata int
	// Contents is the contents comparison period. It must be a multiple of
	// Metadata.
	Contents int
}

// DefaultHashPeriods are the default hash periods.
var DefaultHashPeriods = HashPeriods{Metadata: 1, Contents: 250}

// String implements fmt.Stringer.String and pflag.Value.String.
func (p *HashPeriods) String() string {
	return fmt.Sprintf("%d,%d", p.Metadata, p.Contents)
}

// Set implements pflag.Value.Set.
func (p *HashPeriods) Set(value string) error {
	// Split the value.
	tokens := strings.Split(value, ",")
	if len(tokens) != 2 {
		return errors.Errorf("invalid token count (%d), expected 2 comma-separated integers", len(tokens))
	}

	// Parse the periods.
	metadata, err := strconv.Atoi(strings.TrimSpace(tokens[0]))
	if err != nil {
		return errors.Wrap(err, "unable to parse metadata period")
	}
	contents, err := strconv.Atoi(strings.TrimSpace(tokens[1]))
	if err != nil {
		return errors.Wrap(err, "unable to parse contents period")
	}

	// Validate and store the periods.
	periods := HashPeriods{Metadata: metadata, Contents: contents}
	if err := periods.validate(); err != nil {
		return err
	}
	*p = periods

	// Success.
	return nil
}

// validate ensures that both periods are positive and that the contents period
// is a multiple of the metadata period.
func (p *HashPeriods) validate() error {
	if p.Metadata <= 0 || p.Contents <= 0 {
		return errors.New("periods must be positive integers")
	} else if p.Contents%p.Metadata != 0 {
		return errors.New("contents period must be a multiple of metadata period")
	}
	return nil
}

// Type implements pflag.Value.Type.
func (p *HashPeriods) Type() string {
	return "periods"
}

// includeMetadata indicates whether or not metadata should be compared after
// the operation with the specified identifier.
func (p *HashPeriods) includeMetadata(identifier int) bool {
	return identifier%p.Metadata == 0
}

// includeContents indicates whether or not contents should be compared after
// the operation with the specified identifier.
func (p *HashPeriods) includeContents(identifier int) bool {
	return identifier%p.Contents == 0
}

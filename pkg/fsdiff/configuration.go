package fsdiff

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/pkg/errors"

	"github.com/mutagen-io/fsprobe/pkg/encoding"
)

// Configuration is the on-disk fsdiff configuration. It may be encoded as
// YAML or JSON.
type Configuration struct {
	// Probabilities maps operation names to relative selection weights. If
	// omitted, all operations are equally likely. If present, every operation
	// must be listed.
	Probabilities map[string]int `yaml:"probabilities"`
}

// LoadConfiguration loads and validates a configuration from the specified
// path.
func LoadConfiguration(path string) (*Configuration, error) {
	// Decode the configuration.
	configuration := &Configuration{}
	if err := encoding.LoadAndUnmarshalYAML(path, configuration); err != nil {
		return nil, errors.Wrap(err, "unable to load configuration")
	}

	// Validate the configuration.
	if _, err := configuration.Weights(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	// Success.
	return configuration, nil
}

// Weights computes the rescaled operation weights from the configuration. A
// nil configuration yields uniform weights.
func (c *Configuration) Weights() (Weights, error) {
	// Handle the default case.
	if c == nil || c.Probabilities == nil {
		return UniformWeights(), nil
	}

	// Convert the probabilities.
	var weights Weights
	for name, probability := range c.Probabilities {
		kind, err := ParseOperationKind(name)
		if err != nil {
			return Weights{}, err
		} else if probability < 0 {
			return Weights{}, errors.Errorf("negative probability for %s", name)
		}
		weights[kind] = probability
	}

	// Ensure that every operation has been specified.
	if len(c.Probabilities) != int(operationKindCount) {
		return Weights{}, errors.Errorf("incomplete probabilities: %d/%d", len(c.Probabilities), operationKindCount)
	}

	// Rescale the weights.
	if err := weights.rescale(); err != nil {
		return Weights{}, err
	}

	// Success.
	return weights, nil
}

// Weights are per-operation selection probabilities, in percent, indexed by
// operation kind. Rescaled weights always sum to 100.
type Weights [operationKindCount]int

// UniformWeights returns weights under which all operations are (up to
// rounding) equally likely.
func UniformWeights() Weights {
	var weights Weights
	for k := range weights {
		weights[k] = 1
	}
	weights.rescale()
	return weights
}

// RandomWeights returns randomly drawn weights.
func RandomWeights(random *rand.Rand) Weights {
	var weights Weights
	for k := range weights {
		weights[k] = random.Intn(100)
	}
	if weights.rescale() != nil {
		return UniformWeights()
	}
	return weights
}

// rescale scales the weights so that they add up to 100. Any rounding
// remainder is assigned to the largest weight (the first one in kind order in
// the event of a tie), so that operations with zero weight are never selected.
func (w *Weights) rescale() error {
	// Compute the current sum.
	var sum int
	for _, weight := range w {
		sum += weight
	}
	if sum == 0 {
		return errors.New("probabilities sum to zero")
	}

	// Scale each weight, tracking the largest.
	var scaled, largest int
	for k, weight := range w {
		w[k] = weight * 100 / sum
		scaled += w[k]
		if w[k] > w[largest] {
			largest = k
		}
	}

	// Distribute the remainder.
	w[largest] += 100 - scaled

	// Success.
	return nil
}

// choose maps a value in [0, 100) to an operation kind. Kinds occupy
// consecutive ranges in kind order, with sizes equal to their weights.
func (w *Weights) choose(value int) OperationKind {
	var upper int
	for k, weight := range w {
		upper += weight
		if value < upper {
			return OperationKind(k)
		}
	}
	panic("weights do not cover selection value")
}

// String implements fmt.Stringer.String.
func (w Weights) String() string {
	var builder strings.Builder
	builder.WriteString("{")
	for k, weight := range w {
		if k > 0 {
			builder.WriteString(", ")
		}
		fmt.Fprintf(&builder, "%s: %d", OperationKind(k), weight)
	}
	builder.WriteString("}")
	return builder.String()
}

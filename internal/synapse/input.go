package synapse

import (
	"slices"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/protobrain/protobrain/internal/tensor"
)

// Main is the name of the input every unit is created with.
const Main = "main"

// Input is a named connection with synapses.
//
// Inputs set up their synapses when connected to an output. The synapse
// tensor has shape output.Shape()+input.Shape(): entry (i, j) weighs the
// signal from producer element i into consumer element j.
type Input struct {
	name     string
	shape    tensor.Shape
	synapses *tensor.Tensor
	source   Output
}

// NewInput creates an unconnected input feeding a consumer of the given shape.
func NewInput(name string, shape tensor.Shape) *Input {
	return &Input{name: name, shape: shape.Clone()}
}

// Name returns the input name.
func (in *Input) Name() string {
	return in.name
}

// Shape returns the shape of the consumer this input feeds.
func (in *Input) Shape() tensor.Shape {
	return in.shape
}

// Connected reports whether the input has been connected to an output.
func (in *Input) Connected() bool {
	return in.source != nil
}

// Source returns the connected output, or nil.
func (in *Input) Source() Output {
	return in.source
}

// Synapses returns the weight tensor, or nil while unconnected.
// Learning rules update it in place.
func (in *Input) Synapses() *tensor.Tensor {
	return in.synapses
}

// Connect connects this input to out, creating synapses with fn.
// A nil fn uses Uniform.
//
// Reconnecting to the same output keeps the existing synapses.
func (in *Input) Connect(out Output, fn SynapseFunc) error {
	if in.source != nil && in.source == out {
		klog.Warningf("Skipping reconnection of input %q to the same output", in.name)
		return nil
	}
	if fn == nil {
		fn = Uniform
	}

	want := out.Shape().Concat(in.shape)
	synapses, err := fn(out.Shape(), in.shape)
	if err != nil {
		return errors.Wrapf(err, "failed to create synapses for input %q", in.name)
	}
	if !synapses.Shape().Equal(want) {
		return errors.Wrapf(tensor.ErrShapeMismatch, "synapses for input %q have shape %v, expected %v",
			in.name, synapses.Shape(), want)
	}

	in.synapses = synapses
	in.source = out
	return nil
}

// Values returns the current values of the connected output.
//
// Nothing is cached: a read always observes the producer's latest write.
func (in *Input) Values() (*tensor.Tensor, error) {
	if in.source == nil {
		return nil, errors.Wrapf(ErrNotConnected, "no output set for input %q", in.name)
	}
	return in.source.Values(), nil
}

// Inputs maps input names to inputs.
type Inputs map[string]*Input

// Names returns the input names in sorted order.
func (ins Inputs) Names() []string {
	names := make([]string, 0, len(ins))
	for name := range ins {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

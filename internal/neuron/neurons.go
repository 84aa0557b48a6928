package neuron

import (
	"github.com/pkg/errors"

	"github.com/protobrain/protobrain/internal/computation"
	"github.com/protobrain/protobrain/internal/learning"
	"github.com/protobrain/protobrain/internal/synapse"
	"github.com/protobrain/protobrain/internal/tensor"
)

// Neurons is a group of units sharing one output and a set of named inputs.
//
// Example:
//
//	n1, _ := neuron.New(tensor.Shape{3})
//	n2, _ := neuron.New(tensor.Shape{2}, neuron.WithComputation(computation.NewSparse(1)))
//	_ = n2.SetInput(n1)
//	out, err := n2.Compute()
type Neurons struct {
	inputs      synapse.Inputs
	output      *synapse.Dense
	computation computation.Computation
	learning    learning.Learning
}

// Option configures Neurons at construction.
type Option func(*Neurons)

// WithComputation sets the computation strategy.
func WithComputation(c computation.Computation) Option {
	return func(n *Neurons) { n.computation = c }
}

// WithLearning sets the learning strategy.
func WithLearning(l learning.Learning) Option {
	return func(n *Neurons) { n.learning = l }
}

// New creates neurons of the given shape with an unconnected main input.
func New(shape tensor.Shape, opts ...Option) (*Neurons, error) {
	output, err := synapse.NewOutput(shape)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create neurons")
	}
	n := &Neurons{
		inputs: synapse.Inputs{MainInput: synapse.NewInput(MainInput, shape)},
		output: output,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

// Compute implements Unit.
//
// All inputs are read before the output is written, so an input looping back
// to this unit observes the previous step's values.
func (n *Neurons) Compute() (*tensor.Tensor, error) {
	if n.computation == nil {
		return nil, ErrNoComputation
	}
	values, err := n.computation.Compute(n.inputs)
	if err != nil {
		return nil, err
	}
	if err := n.output.SetValues(values); err != nil {
		return nil, err
	}
	return n.Values(), nil
}

// Learn implements Unit.
func (n *Neurons) Learn() error {
	if n.learning == nil {
		return ErrNoLearning
	}
	return n.learning.Learn(n)
}

// Inputs implements Unit.
func (n *Neurons) Inputs() synapse.Inputs {
	return n.inputs
}

// Output implements Unit.
func (n *Neurons) Output() *synapse.Dense {
	return n.output
}

// Values implements synapse.Output.
func (n *Neurons) Values() *tensor.Tensor {
	return n.output.Values()
}

// Shape implements synapse.Output.
func (n *Neurons) Shape() tensor.Shape {
	return n.output.Shape()
}

// Input implements Unit.
func (n *Neurons) Input() *synapse.Input {
	return n.inputs[MainInput]
}

// SetInput implements Unit.
func (n *Neurons) SetInput(out synapse.Output) error {
	return n.Set(MainInput, out, nil)
}

// Get implements Unit.
func (n *Neurons) Get(name string) (*synapse.Input, error) {
	in, ok := n.inputs[name]
	if !ok {
		return nil, errors.Wrapf(ErrNoInput, "%q not set as an input", name)
	}
	return in, nil
}

// Set implements Unit. Prior synapses under name are discarded.
func (n *Neurons) Set(name string, out synapse.Output, fn synapse.SynapseFunc) error {
	in := synapse.NewInput(name, n.Shape())
	if err := in.Connect(out, fn); err != nil {
		return err
	}
	n.inputs[name] = in
	return nil
}

// Computation returns the computation strategy, or nil.
func (n *Neurons) Computation() computation.Computation {
	return n.computation
}

// SetComputation implements Unit.
func (n *Neurons) SetComputation(c computation.Computation) {
	n.computation = c
}

// Learning returns the learning strategy, or nil.
func (n *Neurons) Learning() learning.Learning {
	return n.learning
}

// SetLearning implements Unit.
func (n *Neurons) SetLearning(l learning.Learning) {
	n.learning = l
}

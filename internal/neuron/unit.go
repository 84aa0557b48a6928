// Package neuron implements neural units and their composition.
//
// This package provides:
//   - Unit interface: what every neural unit can do
//   - Neurons: a single group of units with named inputs
//   - Layered: an ordered stack of units acting as one
//   - FeedForward, FeedBackward, LoopBack: topology builders
//
// Units pull their inputs when computing. Evaluation order inside a Layered is
// the stored layer order; the topology builders are responsible for making
// that order match the data dependencies.
package neuron

import (
	"github.com/pkg/errors"

	"github.com/protobrain/protobrain/internal/computation"
	"github.com/protobrain/protobrain/internal/learning"
	"github.com/protobrain/protobrain/internal/synapse"
	"github.com/protobrain/protobrain/internal/tensor"
)

// MainInput is the name of the input every unit is created with.
const MainInput = synapse.Main

// Common errors.
var (
	ErrNoInput       = errors.New("no such input")
	ErrNoComputation = errors.New("computation not set")
	ErrNoLearning    = errors.New("learning not set")
	ErrNoLayers      = errors.New("no layers")
	ErrLayerCount    = errors.New("one strategy per layer required")
)

// Unit is the interface shared by Neurons and Layered.
//
// Every Unit is also a synapse.Output publishing its latest values, so units
// can be connected directly to each other's inputs:
//
//	n2.Set(neuron.MainInput, n1, nil)
type Unit interface {
	synapse.Output

	// Compute reads the inputs, stores the new output and returns it.
	Compute() (*tensor.Tensor, error)

	// Learn adapts the synapses after a Compute.
	Learn() error

	// Inputs returns the named inputs.
	Inputs() synapse.Inputs

	// Output returns the buffer holding the unit's values.
	Output() *synapse.Dense

	// Input returns the main input.
	Input() *synapse.Input

	// SetInput connects the main input to out with default synapses.
	SetInput(out synapse.Output) error

	// Get returns the input registered under name.
	Get(name string) (*synapse.Input, error)

	// Set replaces the input under name with a new one connected to out.
	// A nil fn uses synapse.Uniform.
	Set(name string, out synapse.Output, fn synapse.SynapseFunc) error

	// SetComputation attaches a computation strategy (nil detaches it).
	SetComputation(c computation.Computation)

	// SetLearning attaches a learning strategy (nil detaches it).
	SetLearning(l learning.Learning)
}

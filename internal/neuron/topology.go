package neuron

import (
	"github.com/pkg/errors"

	"github.com/protobrain/protobrain/internal/synapse"
)

// FeedForward connects each layer's output to the next layer's input named
// inputName (MainInput when empty) and returns the stack.
//
// A nil fn uses synapse.Uniform.
func FeedForward(layers []Unit, inputName string, fn synapse.SynapseFunc) (*Layered, error) {
	inputName = orMain(inputName)
	for i := 1; i < len(layers); i++ {
		if err := layers[i].Set(inputName, layers[i-1], fn); err != nil {
			return nil, errors.Wrapf(err, "feed forward from layer %d to %d", i-1, i)
		}
	}
	return NewLayered(layers...)
}

// FeedBackward connects each layer's output to the previous layer's input
// named inputName.
//
// Layers still compute first to last, so a feedback input reads the next
// layer's output from the previous step.
func FeedBackward(layers []Unit, inputName string, fn synapse.SynapseFunc) (*Layered, error) {
	inputName = orMain(inputName)
	for i := 0; i < len(layers)-1; i++ {
		if err := layers[i].Set(inputName, layers[i+1], fn); err != nil {
			return nil, errors.Wrapf(err, "feed backward from layer %d to %d", i+1, i)
		}
	}
	return NewLayered(layers...)
}

// LoopBack connects each layer's output to its own input named inputName.
//
// Compute reads inputs before writing the output, so the loop-back input
// always observes the previous step's output.
func LoopBack(layers []Unit, inputName string, fn synapse.SynapseFunc) (*Layered, error) {
	inputName = orMain(inputName)
	for i, layer := range layers {
		if err := layer.Set(inputName, layer, fn); err != nil {
			return nil, errors.Wrapf(err, "loop back on layer %d", i)
		}
	}
	return NewLayered(layers...)
}

func orMain(name string) string {
	if name == "" {
		return MainInput
	}
	return name
}

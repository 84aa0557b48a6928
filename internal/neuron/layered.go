package neuron

import (
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/protobrain/protobrain/internal/computation"
	"github.com/protobrain/protobrain/internal/learning"
	"github.com/protobrain/protobrain/internal/synapse"
	"github.com/protobrain/protobrain/internal/tensor"
)

// Layered is a unit made of an ordered sequence of units.
//
// Its inputs are the first layer's inputs and its output is the last layer's
// output. Layers may themselves be Layered.
//
// Example:
//
//	cortex, _ := neuron.NewLayered(l1, l2, l3)
//	_ = cortex.SetInput(sensor) // connects l1's main input
//	out, _ := cortex.Compute()  // l1, l2, l3 in order; returns l3's values
type Layered struct {
	layers []Unit
}

// NewLayered creates a Layered over layers, kept in the given order.
//
// A first layer whose main input is already connected is accepted with a
// warning: whatever connects the Layered later replaces that connection.
func NewLayered(layers ...Unit) (*Layered, error) {
	if len(layers) == 0 {
		return nil, ErrNoLayers
	}
	if layers[0].Input().Connected() {
		klog.Warningf("Creating layers with pre-connected input")
	}
	return &Layered{layers: layers}, nil
}

// Layers returns the layers in evaluation order.
func (l *Layered) Layers() []Unit {
	return l.layers
}

// Len returns the number of layers.
func (l *Layered) Len() int {
	return len(l.layers)
}

func (l *Layered) first() Unit {
	return l.layers[0]
}

func (l *Layered) last() Unit {
	return l.layers[len(l.layers)-1]
}

// Compute implements Unit. Layers compute in stored order.
func (l *Layered) Compute() (*tensor.Tensor, error) {
	for _, layer := range l.layers {
		if _, err := layer.Compute(); err != nil {
			return nil, err
		}
	}
	return l.Values(), nil
}

// Learn implements Unit. Layers learn in stored order.
func (l *Layered) Learn() error {
	for _, layer := range l.layers {
		if err := layer.Learn(); err != nil {
			return err
		}
	}
	return nil
}

// Inputs implements Unit.
func (l *Layered) Inputs() synapse.Inputs {
	return l.first().Inputs()
}

// Output implements Unit.
func (l *Layered) Output() *synapse.Dense {
	return l.last().Output()
}

// Values implements synapse.Output.
func (l *Layered) Values() *tensor.Tensor {
	return l.last().Values()
}

// Shape implements synapse.Output.
func (l *Layered) Shape() tensor.Shape {
	return l.last().Shape()
}

// Input implements Unit.
func (l *Layered) Input() *synapse.Input {
	return l.first().Input()
}

// SetInput implements Unit.
func (l *Layered) SetInput(out synapse.Output) error {
	return l.first().SetInput(out)
}

// Get implements Unit.
func (l *Layered) Get(name string) (*synapse.Input, error) {
	return l.first().Get(name)
}

// Set implements Unit.
func (l *Layered) Set(name string, out synapse.Output, fn synapse.SynapseFunc) error {
	return l.first().Set(name, out, fn)
}

// SetComputation implements Unit. The strategy is shared by every layer.
func (l *Layered) SetComputation(c computation.Computation) {
	for _, layer := range l.layers {
		layer.SetComputation(c)
	}
}

// SetComputations sets one strategy per layer. Nothing changes if the
// counts differ.
func (l *Layered) SetComputations(cs ...computation.Computation) error {
	if len(cs) != len(l.layers) {
		return errors.Wrapf(ErrLayerCount, "got %d computations for %d layers", len(cs), len(l.layers))
	}
	for i, layer := range l.layers {
		layer.SetComputation(cs[i])
	}
	return nil
}

// SetLearning implements Unit. The strategy is shared by every layer.
func (l *Layered) SetLearning(lr learning.Learning) {
	for _, layer := range l.layers {
		layer.SetLearning(lr)
	}
}

// SetLearnings sets one strategy per layer. Nothing changes if the counts
// differ.
func (l *Layered) SetLearnings(ls ...learning.Learning) error {
	if len(ls) != len(l.layers) {
		return errors.Wrapf(ErrLayerCount, "got %d learning rules for %d layers", len(ls), len(l.layers))
	}
	for i, layer := range l.layers {
		layer.SetLearning(ls[i])
	}
	return nil
}

// Copyright 2025 Protobrain Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package brain

import (
	"github.com/protobrain/protobrain/internal/brain"
	"github.com/protobrain/protobrain/internal/computation"
	"github.com/protobrain/protobrain/internal/encoder"
	"github.com/protobrain/protobrain/internal/learning"
	"github.com/protobrain/protobrain/internal/neuron"
	"github.com/protobrain/protobrain/internal/sensor"
	"github.com/protobrain/protobrain/internal/synapse"
	"github.com/protobrain/protobrain/internal/tensor"
)

// Shape is the size of each axis of a tensor.
type Shape = tensor.Shape

// Brain drives a network of neurons from a sensor.
type Brain[T any] = brain.Brain[T]

// Option configures a Brain.
type Option = brain.Option

// New connects the sensor to the main input of neurons.
func New[T any](neurons Unit, s *Sensor[T], opts ...Option) (*Brain[T], error) {
	return brain.New(neurons, s, opts...)
}

// WithComputation overrides the computation of every layer.
func WithComputation(c Computation) Option {
	return brain.WithComputation(c)
}

// WithLearning overrides the learning rule of every layer.
func WithLearning(l Learning) Option {
	return brain.WithLearning(l)
}

// WithSynapses creates the sensor synapses with fn.
func WithSynapses(fn SynapseFunc) Option {
	return brain.WithSynapses(fn)
}

// Synapses

// Output is a signal source an Input can connect to.
type Output = synapse.Output

// Dense is an Output owning a fixed-shape tensor.
type Dense = synapse.Dense

// Input is a named weighted connection reading an Output.
type Input = synapse.Input

// SynapseFunc creates connection weights.
type SynapseFunc = synapse.SynapseFunc

// NewOutput creates a zero-initialized output.
func NewOutput(shape Shape) (*Dense, error) {
	return synapse.NewOutput(shape)
}

// SliceOf views a sub-range of out.
func SliceOf(out Output, ranges ...tensor.Range) (*synapse.Slice, error) {
	return synapse.SliceOf(out, ranges...)
}

// Merge concatenates outputs along the first axis where their shapes agree.
func Merge(outputs ...Output) (*synapse.Merge, error) {
	return synapse.NewMerge(outputs...)
}

// Uniform draws every weight from U(0, 1).
func Uniform(outputShape, inputShape Shape) (*tensor.Tensor, error) {
	return synapse.Uniform(outputShape, inputShape)
}

// Symmetric averages the weights of gen with their transpose.
func Symmetric(gen SynapseFunc) SynapseFunc {
	return synapse.Symmetric(gen)
}

// Neurons

// MainInput is the name of the input every unit is created with.
const MainInput = neuron.MainInput

// Unit is the interface shared by Neurons and Layered.
type Unit = neuron.Unit

// Neurons is a single group of neurons with named inputs.
type Neurons = neuron.Neurons

// Layered is an ordered stack of units acting as one.
type Layered = neuron.Layered

// NeuronsOption configures Neurons.
type NeuronsOption = neuron.Option

// NeuronsWithComputation sets the computation of new Neurons.
func NeuronsWithComputation(c Computation) NeuronsOption {
	return neuron.WithComputation(c)
}

// NeuronsWithLearning sets the learning rule of new Neurons.
func NeuronsWithLearning(l Learning) NeuronsOption {
	return neuron.WithLearning(l)
}

// NewNeurons creates a group of neurons of the given shape.
func NewNeurons(shape Shape, opts ...NeuronsOption) (*Neurons, error) {
	return neuron.New(shape, opts...)
}

// NewLayered stacks units.
func NewLayered(layers ...Unit) (*Layered, error) {
	return neuron.NewLayered(layers...)
}

// FeedForward connects each layer to the next one.
func FeedForward(layers []Unit, inputName string, fn SynapseFunc) (*Layered, error) {
	return neuron.FeedForward(layers, inputName, fn)
}

// FeedBackward connects each layer to the previous one.
func FeedBackward(layers []Unit, inputName string, fn SynapseFunc) (*Layered, error) {
	return neuron.FeedBackward(layers, inputName, fn)
}

// LoopBack connects each layer to itself.
func LoopBack(layers []Unit, inputName string, fn SynapseFunc) (*Layered, error) {
	return neuron.LoopBack(layers, inputName, fn)
}

// Strategies

// Computation turns inputs into a new output.
type Computation = computation.Computation

// Learning adapts the synapses of a unit.
type Learning = learning.Learning

// NewStandard creates a thresholded computation.
func NewStandard(threshold float64) *computation.Standard {
	return computation.NewStandard(threshold)
}

// NewSparse creates a computation activating the n strongest neurons.
func NewSparse(n int) *computation.Sparse {
	return computation.NewSparse(n)
}

// NewSparseFraction creates a computation activating a fraction of neurons.
func NewSparseFraction(fraction float64) *computation.Sparse {
	return computation.NewSparseFraction(fraction)
}

// NewHebbian creates a Hebbian learning rule.
func NewHebbian(increase, decrease float64) *learning.Hebbian {
	return learning.NewHebbian(increase, decrease)
}

// DefaultHebbian creates a Hebbian rule with the default rates.
func DefaultHebbian() *learning.Hebbian {
	return learning.DefaultHebbian()
}

// Sensors

// DefaultSparsity is the default fraction of active bits of an encoding.
const DefaultSparsity = encoder.DefaultSparsity

// Encoder converts values into fixed-shape representations.
type Encoder[T any] = sensor.Encoder[T]

// Sensor publishes the encoding of its latest value.
type Sensor[T any] = sensor.Sensor[T]

// NewSensor creates a sensor reading through enc.
func NewSensor[T any](enc Encoder[T]) (*Sensor[T], error) {
	return sensor.New(enc)
}

// NewSimple creates a numerical encoder sliding from min to max without wrapping.
func NewSimple(minValue, maxValue float64, length int, sparsity float64) (*encoder.Simple, error) {
	return encoder.NewSimple(minValue, maxValue, length, sparsity)
}

// NewCyclic creates a numerical encoder wrapping around.
func NewCyclic(minValue, maxValue float64, length int, sparsity float64) (*encoder.Cyclic, error) {
	return encoder.NewCyclic(minValue, maxValue, length, sparsity)
}

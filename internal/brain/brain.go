// Package brain binds a sensor to a network of neurons.
package brain

import (
	"github.com/pkg/errors"

	"github.com/protobrain/protobrain/internal/computation"
	"github.com/protobrain/protobrain/internal/learning"
	"github.com/protobrain/protobrain/internal/neuron"
	"github.com/protobrain/protobrain/internal/sensor"
	"github.com/protobrain/protobrain/internal/synapse"
	"github.com/protobrain/protobrain/internal/tensor"
)

// Brain drives a network of neurons from a sensor.
//
// A typical step:
//
//	_ = b.Sensor().Feed(value)
//	_, _ = b.Compute()
//	_ = b.Learn()
type Brain[T any] struct {
	neurons neuron.Unit
	sensor  *sensor.Sensor[T]
}

type options struct {
	computation computation.Computation
	learning    learning.Learning
	synapses    synapse.SynapseFunc
}

// Option configures a Brain.
type Option func(*options)

// WithComputation overrides the computation of every layer.
func WithComputation(c computation.Computation) Option {
	return func(o *options) {
		o.computation = c
	}
}

// WithLearning overrides the learning rule of every layer.
func WithLearning(l learning.Learning) Option {
	return func(o *options) {
		o.learning = l
	}
}

// WithSynapses creates the sensor synapses with fn instead of synapse.Uniform.
func WithSynapses(fn synapse.SynapseFunc) Option {
	return func(o *options) {
		o.synapses = fn
	}
}

// New connects the sensor to the main input of neurons.
//
// Nil strategies leave the ones already set on the layers untouched.
func New[T any](neurons neuron.Unit, s *sensor.Sensor[T], opts ...Option) (*Brain[T], error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if err := neurons.Set(neuron.MainInput, s, o.synapses); err != nil {
		return nil, errors.Wrap(err, "failed to connect sensor")
	}
	b := &Brain[T]{neurons: neurons, sensor: s}
	b.SetComputation(o.computation)
	b.SetLearning(o.learning)
	return b, nil
}

// Neurons returns the root unit.
func (b *Brain[T]) Neurons() neuron.Unit {
	return b.neurons
}

// Sensor returns the sensor feeding the neurons.
func (b *Brain[T]) Sensor() *sensor.Sensor[T] {
	return b.sensor
}

// Feed feeds value to the sensor.
func (b *Brain[T]) Feed(value T) error {
	return b.sensor.Feed(value)
}

// SetComputation overrides the computation of every layer. Nil is ignored.
func (b *Brain[T]) SetComputation(c computation.Computation) {
	if c != nil {
		b.neurons.SetComputation(c)
	}
}

// SetLearning overrides the learning rule of every layer. Nil is ignored.
func (b *Brain[T]) SetLearning(l learning.Learning) {
	if l != nil {
		b.neurons.SetLearning(l)
	}
}

// Compute computes the next brain state and returns the root output.
func (b *Brain[T]) Compute() (*tensor.Tensor, error) {
	return b.neurons.Compute()
}

// Learn adapts the connections. It fails if a layer has no learning rule.
func (b *Brain[T]) Learn() error {
	return b.neurons.Learn()
}

// Package sensor feeds external values into a network.
//
// An Encoder turns a value into a fixed-shape binary tensor; a Sensor owns an
// Encoder and publishes the encoding of the last value fed as a
// synapse.Output.
package sensor

import (
	"github.com/pkg/errors"

	"github.com/protobrain/protobrain/internal/synapse"
	"github.com/protobrain/protobrain/internal/tensor"
)

// Encoder converts values of type T into binary tensors.
type Encoder[T any] interface {
	// DefaultValue is the value a sensor reports before anything is fed.
	DefaultValue() T

	// Shape is the shape of every encoding.
	Shape() tensor.Shape

	// Encode returns the binary representation of value.
	Encode(value T) (*tensor.Tensor, error)
}

// Sensor publishes encoded values.
type Sensor[T any] struct {
	encoder Encoder[T]
	value   T
	output  *synapse.Dense
}

// New creates a sensor whose output has the encoder's shape.
func New[T any](encoder Encoder[T]) (*Sensor[T], error) {
	output, err := synapse.NewOutput(encoder.Shape())
	if err != nil {
		return nil, errors.Wrap(err, "failed to create sensor")
	}
	return &Sensor[T]{
		encoder: encoder,
		value:   encoder.DefaultValue(),
		output:  output,
	}, nil
}

// Feed encodes value and publishes the encoding.
//
// An encoding whose shape differs from the sensor's output is rejected, and
// the sensor keeps its previous value.
func (s *Sensor[T]) Feed(value T) error {
	encoded, err := s.encoder.Encode(value)
	if err != nil {
		return err
	}
	if err := s.output.SetValues(encoded); err != nil {
		return errors.Wrap(err, "encoder produced a value of the wrong shape")
	}
	s.value = value
	return nil
}

// Value returns the last value fed.
func (s *Sensor[T]) Value() T {
	return s.value
}

// SetValue is Feed.
func (s *Sensor[T]) SetValue(value T) error {
	return s.Feed(value)
}

// Encoder returns the sensor's encoder.
func (s *Sensor[T]) Encoder() Encoder[T] {
	return s.encoder
}

// Output returns the buffer holding the encoding.
func (s *Sensor[T]) Output() *synapse.Dense {
	return s.output
}

// Values implements synapse.Output.
func (s *Sensor[T]) Values() *tensor.Tensor {
	return s.output.Values()
}

// Shape implements synapse.Output.
func (s *Sensor[T]) Shape() tensor.Shape {
	return s.output.Shape()
}

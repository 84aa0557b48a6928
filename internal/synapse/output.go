// Package synapse implements the dataflow edges between neural units.
//
// An Output holds the signal a producer (neurons or a sensor) publishes. An
// Input is a named, weighted connection that reads an Output on demand:
//
//	out, _ := synapse.NewOutput(tensor.Shape{3})
//	in := synapse.NewInput("main", tensor.Shape{2})
//	_ = in.Connect(out, nil) // (3, 2) uniform random weights
//	v, _ := in.Values()      // current values of out
//
// Reads are never cached. Slices and merges recompute their values from the
// underlying outputs on each access.
package synapse

import (
	"github.com/pkg/errors"

	"github.com/protobrain/protobrain/internal/tensor"
)

// Common errors.
var (
	ErrNotConnected = errors.New("input not connected")
	ErrNoOutputs    = errors.New("no outputs to merge")
)

// Output is a signal source an Input can connect to.
type Output interface {
	// Shape returns the shape of the values.
	Shape() tensor.Shape

	// Values returns the current values.
	// Callers must not keep the result across writes by the producer.
	Values() *tensor.Tensor
}

// Dense is an Output owning a fixed-shape tensor.
type Dense struct {
	values *tensor.Tensor
}

// NewOutput creates a zero-initialized output.
func NewOutput(shape tensor.Shape) (*Dense, error) {
	values, err := tensor.New(shape)
	if err != nil {
		return nil, err
	}
	return &Dense{values: values}, nil
}

// Shape implements Output.
func (o *Dense) Shape() tensor.Shape {
	return o.values.Shape()
}

// Values implements Output.
func (o *Dense) Values() *tensor.Tensor {
	return o.values
}

// SetValues replaces the values, which must match the output's shape exactly.
func (o *Dense) SetValues(values *tensor.Tensor) error {
	if !values.Shape().Equal(o.Shape()) {
		return errors.Wrapf(tensor.ErrShapeMismatch,
			"dimension mismatch when specifying output values: expected %v, but got %v",
			o.Shape(), values.Shape())
	}
	o.values = values
	return nil
}

// Slice is a view on part of another Output.
type Slice struct {
	source Output
	ranges []tensor.Range
}

// SliceOf creates a view selecting ranges of out, one per leading axis.
//
//	last2, _ := synapse.SliceOf(out, tensor.From(-2))
func SliceOf(out Output, ranges ...tensor.Range) (*Slice, error) {
	if _, err := tensor.SliceShape(out.Shape(), ranges...); err != nil {
		return nil, errors.Wrap(err, "invalid slicing of an output")
	}
	return &Slice{source: out, ranges: append([]tensor.Range(nil), ranges...)}, nil
}

// Shape implements Output. It is derived from the current source shape.
func (s *Slice) Shape() tensor.Shape {
	shape, err := tensor.SliceShape(s.source.Shape(), s.ranges...)
	if err != nil {
		panic(err) // rank checked by SliceOf
	}
	return shape
}

// Values implements Output.
func (s *Slice) Values() *tensor.Tensor {
	values, err := s.source.Values().Slice(s.ranges...)
	if err != nil {
		panic(err) // rank checked by SliceOf
	}
	return values
}

// Merge is a virtual Output concatenating other outputs along one axis.
type Merge struct {
	outputs []Output
	axis    int
}

// NewMerge merges outputs along the first axis on which their shapes can be
// concatenated.
func NewMerge(outputs ...Output) (*Merge, error) {
	if len(outputs) == 0 {
		return nil, ErrNoOutputs
	}
	shapes := shapesOf(outputs)
	for axis := range shapes[0] {
		if _, err := tensor.ConcatShapes(axis, shapes...); err == nil {
			return &Merge{outputs: outputs, axis: axis}, nil
		}
	}
	return nil, errors.Wrapf(tensor.ErrShapeMismatch,
		"no single axis can be used to merge outputs of shapes %v", shapes)
}

// NewMergeOnAxis merges outputs along the given axis.
func NewMergeOnAxis(axis int, outputs ...Output) (*Merge, error) {
	if len(outputs) == 0 {
		return nil, ErrNoOutputs
	}
	if _, err := tensor.ConcatShapes(axis, shapesOf(outputs)...); err != nil {
		return nil, err
	}
	return &Merge{outputs: outputs, axis: axis}, nil
}

// Axis returns the concatenation axis.
func (m *Merge) Axis() int {
	return m.axis
}

// Shape implements Output.
func (m *Merge) Shape() tensor.Shape {
	shape, err := tensor.ConcatShapes(m.axis, shapesOf(m.outputs)...)
	if err != nil {
		panic(err) // member shapes are fixed once merged
	}
	return shape
}

// Values implements Output.
func (m *Merge) Values() *tensor.Tensor {
	values := make([]*tensor.Tensor, len(m.outputs))
	for i, out := range m.outputs {
		values[i] = out.Values()
	}
	merged, err := tensor.Concat(m.axis, values...)
	if err != nil {
		panic(err) // member shapes are fixed once merged
	}
	return merged
}

func shapesOf(outputs []Output) []tensor.Shape {
	shapes := make([]tensor.Shape, len(outputs))
	for i, out := range outputs {
		shapes[i] = out.Shape()
	}
	return shapes
}

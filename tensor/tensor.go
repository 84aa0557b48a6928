// Copyright 2025 Protobrain Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/protobrain/protobrain/internal/tensor"

// Shape is the size of each axis of a tensor.
type Shape = tensor.Shape

// Tensor is a dense row-major array of float64.
type Tensor = tensor.Tensor

// Range selects [Start, Stop) on one axis, with Python slice semantics.
type Range = tensor.Range

// End stands for the size of the axis in a Range.
const End = tensor.End

// Errors.
var (
	ErrShapeMismatch = tensor.ErrShapeMismatch
	ErrIndex         = tensor.ErrIndex
)

// New creates a zero tensor, failing on invalid shapes.
func New(shape Shape) (*Tensor, error) {
	return tensor.New(shape)
}

// Zeros creates a zero tensor. It panics on invalid shapes.
func Zeros(shape Shape) *Tensor {
	return tensor.Zeros(shape)
}

// FromSlice copies data into a tensor of the given shape.
func FromSlice(data []float64, shape Shape) (*Tensor, error) {
	return tensor.FromSlice(data, shape)
}

// Vector creates a 1-D tensor.
func Vector(values ...float64) *Tensor {
	return tensor.Vector(values...)
}

// Matrix creates a 2-D tensor from equally long rows.
func Matrix(rows [][]float64) (*Tensor, error) {
	return tensor.Matrix(rows)
}

// FromBools creates a 1-D tensor of ones and zeros.
func FromBools(mask []bool) *Tensor {
	return tensor.FromBools(mask)
}

// Span selects [start, stop).
func Span(start, stop int) Range {
	return tensor.Span(start, stop)
}

// From selects [start, End).
func From(start int) Range {
	return tensor.From(start)
}

// Upto selects [0, stop).
func Upto(stop int) Range {
	return tensor.Upto(stop)
}

// All selects a whole axis.
func All() Range {
	return tensor.All()
}

// Concat joins tensors along axis.
func Concat(axis int, tensors ...*Tensor) (*Tensor, error) {
	return tensor.Concat(axis, tensors...)
}

// Contract weighs values of shape P through weights of shape P+Q into a
// tensor of shape Q.
func Contract(values, weights *Tensor) (*Tensor, error) {
	return tensor.Contract(values, weights)
}

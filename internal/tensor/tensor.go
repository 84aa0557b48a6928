// Package tensor provides the dense real-valued tensors that flow through
// outputs, inputs and synapses.
//
// Tensors are row-major float64 arrays with a fixed shape. Binary signals
// (spikes, encoder outputs) are stored as 0 and 1.
package tensor

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// Common errors.
var (
	ErrShapeMismatch = errors.New("shape mismatch")
	ErrIndex         = errors.New("invalid index")
)

// Tensor is a dense row-major float64 tensor.
//
// Example:
//
//	t := tensor.Zeros(tensor.Shape{3, 4})
//	t.Set(1, 2, 0)
//	v := t.At(2, 0) // 1
type Tensor struct {
	shape Shape
	data  []float64
}

// New creates a zero-filled tensor with the given shape.
func New(shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid shape")
	}
	return &Tensor{
		shape: shape.Clone(),
		data:  make([]float64, shape.NumElements()),
	}, nil
}

// Zeros creates a zero-filled tensor.
// Panics if the shape is invalid.
func Zeros(shape Shape) *Tensor {
	t, err := New(shape)
	if err != nil {
		panic(err)
	}
	return t
}

// FromSlice creates a tensor from a Go slice.
// The slice is copied into the tensor's memory.
func FromSlice(data []float64, shape Shape) (*Tensor, error) {
	if shape.NumElements() != len(data) {
		return nil, errors.Wrapf(ErrShapeMismatch, "shape %v requires %d elements, but got %d",
			shape, shape.NumElements(), len(data))
	}
	t := &Tensor{shape: shape.Clone(), data: make([]float64, len(data))}
	copy(t.data, data)
	return t, nil
}

// Vector creates a 1-D tensor holding a copy of values.
func Vector(values ...float64) *Tensor {
	t := &Tensor{shape: Shape{len(values)}, data: make([]float64, len(values))}
	copy(t.data, values)
	return t
}

// Matrix creates a 2-D tensor from rows, which must all have the same length.
func Matrix(rows [][]float64) (*Tensor, error) {
	if len(rows) == 0 {
		return nil, errors.Wrap(ErrShapeMismatch, "matrix needs at least one row")
	}
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, errors.Wrapf(ErrShapeMismatch, "row %d has %d columns, expected %d", i, len(row), cols)
		}
		data = append(data, row...)
	}
	return &Tensor{shape: Shape{len(rows), cols}, data: data}, nil
}

// FromBools creates a 1-D tensor with 1 where mask is true and 0 elsewhere.
func FromBools(mask []bool) *Tensor {
	t := &Tensor{shape: Shape{len(mask)}, data: make([]float64, len(mask))}
	for i, b := range mask {
		if b {
			t.data[i] = 1
		}
	}
	return t
}

// Shape returns the tensor's shape.
func (t *Tensor) Shape() Shape {
	return t.shape
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	return len(t.data)
}

// Data returns the underlying row-major storage.
// Writes through the returned slice mutate the tensor.
func (t *Tensor) Data() []float64 {
	return t.data
}

// Clone returns a deep copy.
func (t *Tensor) Clone() *Tensor {
	data := make([]float64, len(t.data))
	copy(data, t.data)
	return &Tensor{shape: t.shape.Clone(), data: data}
}

// offset converts a multi-index into a flat position.
func (t *Tensor) offset(indices []int) int {
	if len(indices) != len(t.shape) {
		panic(fmt.Sprintf("tensor: %d indices for rank %d", len(indices), len(t.shape)))
	}
	strides := t.shape.ComputeStrides()
	pos := 0
	for i, idx := range indices {
		if idx < 0 || idx >= t.shape[i] {
			panic(fmt.Sprintf("tensor: index %d out of range for axis %d of size %d", idx, i, t.shape[i]))
		}
		pos += idx * strides[i]
	}
	return pos
}

// At returns the element at the given multi-index.
// Panics on a wrong number of indices or an out-of-range index.
func (t *Tensor) At(indices ...int) float64 {
	return t.data[t.offset(indices)]
}

// Set stores value at the given multi-index.
func (t *Tensor) Set(value float64, indices ...int) {
	t.data[t.offset(indices)] = value
}

// Fill sets every element in [start, stop) of the flat storage to value.
func (t *Tensor) Fill(value float64, start, stop int) {
	for i := max(start, 0); i < min(stop, len(t.data)); i++ {
		t.data[i] = value
	}
}

// Equal reports whether both tensors have the same shape and elements.
func (t *Tensor) Equal(other *Tensor) bool {
	if other == nil || !t.shape.Equal(other.shape) {
		return false
	}
	for i, v := range t.data {
		if v != other.data[i] {
			return false
		}
	}
	return true
}

// Clip limits every element to [lo, hi] in place.
func (t *Tensor) Clip(lo, hi float64) {
	for i, v := range t.data {
		t.data[i] = math.Min(math.Max(v, lo), hi)
	}
}

// Transpose returns a copy with the order of all axes reversed.
// For a matrix this is the usual transpose.
func (t *Tensor) Transpose() *Tensor {
	rank := len(t.shape)
	out := &Tensor{shape: t.shape.Reverse(), data: make([]float64, len(t.data))}
	if rank < 2 {
		copy(out.data, t.data)
		return out
	}

	srcStrides := t.shape.ComputeStrides()
	dstStrides := out.shape.ComputeStrides()
	for pos := range t.data {
		rem, dst := pos, 0
		for axis := 0; axis < rank; axis++ {
			idx := rem / srcStrides[axis]
			rem %= srcStrides[axis]
			dst += idx * dstStrides[rank-1-axis]
		}
		out.data[dst] = t.data[pos]
	}
	return out
}

// String implements fmt.Stringer.
func (t *Tensor) String() string {
	return fmt.Sprintf("Tensor%v%v", []int(t.shape), t.data)
}

package tensor

import (
	"github.com/pkg/errors"
)

// Shape represents the dimensions of a tensor.
type Shape []int

// NumElements returns the total number of elements in the tensor.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 1 // Scalar has 1 element
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Rank returns the number of axes.
func (s Shape) Rank() int {
	return len(s)
}

// Validate checks if the shape is valid (all dimensions > 0).
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return errors.Errorf("invalid dimension at index %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// Concat returns a new shape made of s followed by other.
//
// Synapse tensors use this to lay out their weights: a producer of shape
// (3,) feeding a consumer of shape (2,) is connected by a (3, 2) tensor.
func (s Shape) Concat(other Shape) Shape {
	out := make(Shape, 0, len(s)+len(other))
	out = append(out, s...)
	return append(out, other...)
}

// Reverse returns the shape with its axes in reverse order.
func (s Shape) Reverse() Shape {
	out := make(Shape, len(s))
	for i, dim := range s {
		out[len(s)-1-i] = dim
	}
	return out
}

// ComputeStrides calculates row-major strides for the shape.
// Strides define memory layout: stride[i] = product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// ConcatShapes computes the shape obtained by joining shapes along axis.
//
// All shapes must have the same rank, and agree on every dimension except axis.
//
// Examples:
//
//	(5,) + (8,) on axis 0 → (13,)
//	(2, 3) + (2, 4) on axis 1 → (2, 7)
//	(2, 3) + (2, 4) on axis 0 → Error
func ConcatShapes(axis int, shapes ...Shape) (Shape, error) {
	if len(shapes) == 0 {
		return nil, errors.Wrap(ErrShapeMismatch, "nothing to concatenate")
	}
	rank := len(shapes[0])
	if axis < 0 || axis >= rank {
		return nil, errors.Wrapf(ErrShapeMismatch, "axis %d out of range for rank %d", axis, rank)
	}

	result := shapes[0].Clone()
	for _, s := range shapes[1:] {
		if len(s) != rank {
			return nil, errors.Wrapf(ErrShapeMismatch, "cannot concatenate %v with %v: rank differs", shapes[0], s)
		}
		for i := range s {
			if i == axis {
				continue
			}
			if s[i] != result[i] {
				return nil, errors.Wrapf(ErrShapeMismatch,
					"cannot concatenate %v with %v along axis %d (dimension %d: %d vs %d)",
					shapes[0], s, axis, i, result[i], s[i])
			}
		}
		result[axis] += s[axis]
	}
	return result, nil
}

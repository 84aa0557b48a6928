package synapse

import (
	"math/rand/v2"

	"github.com/pkg/errors"

	"github.com/protobrain/protobrain/internal/tensor"
)

// SynapseFunc creates the weights connecting a producer of outputShape to a
// consumer of inputShape. The result must have shape outputShape+inputShape.
type SynapseFunc func(outputShape, inputShape tensor.Shape) (*tensor.Tensor, error)

// Uniform draws every weight independently from U(0, 1).
//
// This is the default used by Input.Connect.
func Uniform(outputShape, inputShape tensor.Shape) (*tensor.Tensor, error) {
	return uniform(outputShape, inputShape, rand.Float64)
}

// UniformFrom is Uniform drawing from rng, for reproducible networks.
func UniformFrom(rng *rand.Rand) SynapseFunc {
	return func(outputShape, inputShape tensor.Shape) (*tensor.Tensor, error) {
		return uniform(outputShape, inputShape, rng.Float64)
	}
}

func uniform(outputShape, inputShape tensor.Shape, next func() float64) (*tensor.Tensor, error) {
	t, err := tensor.New(outputShape.Concat(inputShape))
	if err != nil {
		return nil, err
	}
	data := t.Data()
	for i := range data {
		data[i] = next()
	}
	return t, nil
}

// Symmetric wraps gen so the weights are averaged with their transpose.
//
// The weight shape must read the same reversed, e.g. (n, n).
func Symmetric(gen SynapseFunc) SynapseFunc {
	return func(outputShape, inputShape tensor.Shape) (*tensor.Tensor, error) {
		w, err := gen(outputShape, inputShape)
		if err != nil {
			return nil, err
		}
		if !w.Shape().Equal(w.Shape().Reverse()) {
			return nil, errors.Wrapf(tensor.ErrShapeMismatch, "symmetric weights need a square shape, got %v", w.Shape())
		}
		tr := w.Transpose().Data()
		data := w.Data()
		for i := range data {
			data[i] = (data[i] + tr[i]) / 2
		}
		return w, nil
	}
}

// Fixed always returns a copy of weights, whatever the shapes requested.
// Input.Connect still checks the copy against the connection shape.
func Fixed(weights *tensor.Tensor) SynapseFunc {
	return func(_, _ tensor.Shape) (*tensor.Tensor, error) {
		return weights.Clone(), nil
	}
}

// Constant fills every weight with value.
func Constant(value float64) SynapseFunc {
	return func(outputShape, inputShape tensor.Shape) (*tensor.Tensor, error) {
		return uniform(outputShape, inputShape, func() float64 { return value })
	}
}

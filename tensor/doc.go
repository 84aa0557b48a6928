// Copyright 2025 Protobrain Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the dense float64 arrays protobrain computes on.
//
// # Overview
//
// Tensors hold neuron outputs, sensor representations and synapse weights.
// This package provides:
//   - Row-major tensors of any rank (Tensor)
//   - Python-style ranges for slicing (Range, Span, From, Upto, All)
//   - Concatenation along an axis (Concat)
//   - The contraction used to weigh inputs through synapses (Contract)
//
// # Basic Usage
//
//	values := tensor.Vector(1, 0, 1)
//	weights := tensor.Zeros(tensor.Shape{3, 2})
//	weights.Set(0.5, 0, 1)
//	activations, _ := tensor.Contract(values, weights) // shape (2)
//
//	head, _ := values.Slice(tensor.Upto(2)) // [1, 0]
package tensor

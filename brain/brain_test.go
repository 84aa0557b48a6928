// Copyright 2025 Protobrain Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package brain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protobrain/protobrain/brain"
	"github.com/protobrain/protobrain/tensor"
)

func TestPublicAPI(t *testing.T) {
	enc, err := brain.NewCyclic(0, 1000, 1024, brain.DefaultSparsity)
	require.NoError(t, err)
	s, err := brain.NewSensor[float64](enc)
	require.NoError(t, err)

	layers := make([]brain.Unit, 3)
	for i := range layers {
		layers[i], err = brain.NewNeurons(brain.Shape{10})
		require.NoError(t, err)
	}
	cortex, err := brain.FeedForward(layers, brain.MainInput, nil)
	require.NoError(t, err)

	b, err := brain.New(cortex, s,
		brain.WithComputation(brain.NewSparseFraction(0.02)),
		brain.WithLearning(brain.DefaultHebbian()))
	require.NoError(t, err)

	for v := range 20 {
		require.NoError(t, b.Feed(float64(v*50)))
		out, err := b.Compute()
		require.NoError(t, err)
		assert.Equal(t, tensor.Shape{10}, out.Shape())
		require.NoError(t, b.Learn())
	}
}

func TestPublicSynapses(t *testing.T) {
	a, err := brain.NewOutput(brain.Shape{2})
	require.NoError(t, err)
	c, err := brain.NewOutput(brain.Shape{3})
	require.NoError(t, err)

	merged, err := brain.Merge(a, c)
	require.NoError(t, err)
	assert.Equal(t, brain.Shape{5}, merged.Shape())

	head, err := brain.SliceOf(merged, tensor.Upto(4))
	require.NoError(t, err)
	assert.Equal(t, brain.Shape{4}, head.Shape())

	n, err := brain.NewNeurons(brain.Shape{4}, brain.NeuronsWithComputation(brain.NewSparse(1)))
	require.NoError(t, err)
	require.NoError(t, n.Set(brain.MainInput, head, brain.Symmetric(brain.Uniform)))
	out, err := n.Compute()
	require.NoError(t, err)
	assert.Equal(t, 1.0, out.Data()[0]+out.Data()[1]+out.Data()[2]+out.Data()[3])
}

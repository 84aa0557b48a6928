package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protobrain/protobrain/internal/metrics"
	"github.com/protobrain/protobrain/internal/neuron"
	"github.com/protobrain/protobrain/internal/tensor"
)

func newNeurons(t *testing.T) *neuron.Neurons {
	t.Helper()
	n, err := neuron.New(tensor.Shape{4})
	require.NoError(t, err)
	return n
}

// newLayers builds a feed forward stack of four 4-neuron layers.
func newLayers(t *testing.T) (*neuron.Layered, []*neuron.Neurons) {
	t.Helper()
	leaves := make([]*neuron.Neurons, 4)
	units := make([]neuron.Unit, 4)
	for i := range leaves {
		leaves[i] = newNeurons(t)
		units[i] = leaves[i]
	}
	layered, err := neuron.FeedForward(units, "", nil)
	require.NoError(t, err)
	return layered, leaves
}

// newNonUniform nests the four-layer stack in front of one more layer.
func newNonUniform(t *testing.T) (*neuron.Layered, []*neuron.Neurons, *neuron.Neurons) {
	t.Helper()
	inner, leaves := newLayers(t)
	last := newNeurons(t)
	outer, err := neuron.FeedForward([]neuron.Unit{inner, last}, "", nil)
	require.NoError(t, err)
	return outer, leaves, last
}

func set(t *testing.T, n *neuron.Neurons, values ...float64) {
	t.Helper()
	require.NoError(t, n.Output().SetValues(tensor.Vector(values...)))
}

func setAll(t *testing.T, leaves []*neuron.Neurons, values ...float64) {
	t.Helper()
	for _, leaf := range leaves {
		set(t, leaf, values...)
	}
}

func TestNoSteps(t *testing.T) {
	_, err := metrics.NewSpikeCount().Compute()
	assert.ErrorIs(t, err, metrics.ErrNoSteps)

	_, err = metrics.NewSpikeDensity().Summary()
	assert.ErrorIs(t, err, metrics.ErrNoSteps)
}

func TestSpikeCount_ConstantNeurons(t *testing.T) {
	n := newNeurons(t)
	m := metrics.NewSpikeCount()
	set(t, n, 1, 0, 0, 0)
	require.NoError(t, m.Next(n))
	require.NoError(t, m.Next(n))

	r, err := m.Compute()
	require.NoError(t, err)
	assert.Equal(t, "spike_count", r.MetricName())
	assert.Equal(t, metrics.Histogram{0: 3, 2: 1}, r.Global)
	assert.Equal(t, metrics.Histogram{0: 3, 2: 1}, r.PerLayer.Counts)
	assert.Nil(t, r.PerLayer.Layers)
}

func TestSpikeCount_ChangingLayers(t *testing.T) {
	layers, leaves := newLayers(t)
	m := metrics.NewSpikeCount()

	setAll(t, leaves, 1, 0, 0, 0)
	require.NoError(t, m.Next(layers))
	setAll(t, leaves, 1, 1, 0, 0)
	require.NoError(t, m.Next(layers))

	r, err := m.Compute()
	require.NoError(t, err)
	assert.Equal(t, metrics.Histogram{0: 8, 1: 4, 2: 4}, r.Global)
	require.Len(t, r.PerLayer.Layers, 4)
	for _, layer := range r.PerLayer.Layers {
		assert.Equal(t, metrics.Histogram{0: 2, 1: 1, 2: 1}, layer.Counts)
	}
}

func TestSpikeCount_NonUniformLayers(t *testing.T) {
	root, leaves, last := newNonUniform(t)
	m := metrics.NewSpikeCount()

	setAll(t, leaves, 1, 0, 0, 0)
	set(t, last, 1, 1, 0, 0)
	require.NoError(t, m.Next(root))
	setAll(t, leaves, 1, 0, 1, 0)
	set(t, last, 1, 1, 0, 1)
	require.NoError(t, m.Next(root))

	r, err := m.Compute()
	require.NoError(t, err)
	assert.Equal(t, metrics.Histogram{0: 9, 1: 5, 2: 6}, r.Global)
	require.Len(t, r.PerLayer.Layers, 2)
	inner := r.PerLayer.Layers[0]
	require.Len(t, inner.Layers, 4)
	for _, layer := range inner.Layers {
		assert.Equal(t, metrics.Histogram{0: 2, 1: 1, 2: 1}, layer.Counts)
	}
	assert.Equal(t, metrics.Histogram{0: 1, 1: 1, 2: 2}, r.PerLayer.Layers[1].Counts)
	assert.Equal(t, "[[{0: 2, 1: 1, 2: 1}, {0: 2, 1: 1, 2: 1}, {0: 2, 1: 1, 2: 1}, {0: 2, 1: 1, 2: 1}], {0: 1, 1: 1, 2: 2}]",
		r.PerLayer.String())
}

func TestSpikeCount_Reset(t *testing.T) {
	n := newNeurons(t)
	m := metrics.NewSpikeCount()
	require.NoError(t, m.Next(n))
	m.Reset()
	_, err := m.Compute()
	assert.ErrorIs(t, err, metrics.ErrNoSteps)
}

func TestSpikeCount_TopologyChanged(t *testing.T) {
	layers, _ := newLayers(t)
	m := metrics.NewSpikeCount()
	require.NoError(t, m.Next(layers))
	assert.ErrorIs(t, m.Next(newNeurons(t)), metrics.ErrTopologyChanged)
}

func TestSpikeCount_RejectedStepIsNotCounted(t *testing.T) {
	layered := func(sizes ...int) (*neuron.Layered, []*neuron.Neurons) {
		leaves := make([]*neuron.Neurons, len(sizes))
		units := make([]neuron.Unit, len(sizes))
		for i, size := range sizes {
			n, err := neuron.New(tensor.Shape{size})
			require.NoError(t, err)
			leaves[i], units[i] = n, n
		}
		l, err := neuron.NewLayered(units...)
		require.NoError(t, err)
		return l, leaves
	}

	first, leaves := layered(2, 2)
	setAll(t, leaves, 1, 1)
	m := metrics.NewSpikeCount()
	require.NoError(t, m.Next(first))

	second, leaves := layered(2, 3)
	set(t, leaves[0], 1, 1)
	set(t, leaves[1], 1, 1, 1)
	assert.ErrorIs(t, m.Next(second), metrics.ErrTopologyChanged)

	r, err := m.Compute()
	require.NoError(t, err)
	assert.Equal(t, metrics.Histogram{0: 0, 1: 2}, r.PerLayer.Layers[0].Counts)
	assert.Equal(t, metrics.Histogram{0: 0, 1: 4}, r.Global)
}

func TestSpikeDensity_ChangingNeurons(t *testing.T) {
	n := newNeurons(t)
	m := metrics.NewSpikeDensity()
	set(t, n, 1, 0, 0, 0)
	require.NoError(t, m.Next(n))
	set(t, n, 1, 1, 0, 0)
	require.NoError(t, m.Next(n))

	r, err := m.Compute()
	require.NoError(t, err)
	assert.Equal(t, "spike_density", r.MetricName())
	assert.InDelta(t, 0.375, r.Global, 1e-12)
	assert.InDelta(t, 0.375, r.PerLayer.Density, 1e-12)
	assert.Equal(t, []float64{0.25, 0.5}, r.PerStep)
	require.Len(t, r.PerLayerPerStep, 2)
	assert.Equal(t, 0.25, r.PerLayerPerStep[0].Density)
	assert.Equal(t, 0.5, r.PerLayerPerStep[1].Density)
}

func TestSpikeDensity_ConstantLayers(t *testing.T) {
	layers, leaves := newLayers(t)
	m := metrics.NewSpikeDensity()
	setAll(t, leaves, 1, 0, 0, 0)
	require.NoError(t, m.Next(layers))
	require.NoError(t, m.Next(layers))

	r, err := m.Compute()
	require.NoError(t, err)
	assert.Equal(t, 0.25, r.Global)
	assert.Equal(t, []float64{0.25, 0.25}, r.PerStep)
	assert.Equal(t, 16, r.PerLayer.Size)
	for _, layer := range r.PerLayer.Layers {
		assert.Equal(t, 0.25, layer.Density)
	}
}

func TestSpikeDensity_NonUniformLayers(t *testing.T) {
	root, leaves, last := newNonUniform(t)
	m := metrics.NewSpikeDensity()

	setAll(t, leaves, 1, 0, 0, 0)
	set(t, last, 1, 1, 0, 0)
	require.NoError(t, m.Next(root))
	setAll(t, leaves, 1, 0, 1, 0)
	set(t, last, 1, 1, 0, 1)
	require.NoError(t, m.Next(root))

	r, err := m.Compute()
	require.NoError(t, err)
	assert.InDelta(t, 0.425, r.Global, 1e-12)
	assert.InDeltaSlice(t, []float64{0.3, 0.55}, r.PerStep, 1e-12)

	require.Len(t, r.PerLayer.Layers, 2)
	for _, layer := range r.PerLayer.Layers[0].Layers {
		assert.InDelta(t, 0.375, layer.Density, 1e-12)
	}
	assert.InDelta(t, 0.625, r.PerLayer.Layers[1].Density, 1e-12)
	assert.Equal(t, 20, r.PerLayer.Size)

	first := r.PerLayerPerStep[0]
	assert.Equal(t, "[[0.25, 0.25, 0.25, 0.25], 0.5]", first.String())
	assert.Equal(t, "[[0.5, 0.5, 0.5, 0.5], 0.75]", r.PerLayerPerStep[1].String())
}

func TestSpikeDensity_TopologyChanged(t *testing.T) {
	m := metrics.NewSpikeDensity()
	require.NoError(t, m.Next(newNeurons(t)))
	layers, _ := newLayers(t)
	assert.ErrorIs(t, m.Next(layers), metrics.ErrTopologyChanged)
}

func TestMetricInterface(t *testing.T) {
	n := newNeurons(t)
	for _, m := range []metrics.Metric{metrics.NewSpikeCount(), metrics.NewSpikeDensity()} {
		require.NoError(t, m.Next(n))
		s, err := m.Summary()
		require.NoError(t, err)
		assert.Equal(t, m.Name(), s.MetricName())
		assert.Contains(t, s.String(), m.Name()+":")

		clone := m.Clone()
		assert.Equal(t, m.Name(), clone.Name())
		_, err = clone.Summary()
		assert.ErrorIs(t, err, metrics.ErrNoSteps)
	}
}

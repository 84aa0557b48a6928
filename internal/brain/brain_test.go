package brain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protobrain/protobrain/internal/brain"
	"github.com/protobrain/protobrain/internal/computation"
	"github.com/protobrain/protobrain/internal/encoder"
	"github.com/protobrain/protobrain/internal/learning"
	"github.com/protobrain/protobrain/internal/neuron"
	"github.com/protobrain/protobrain/internal/sensor"
	"github.com/protobrain/protobrain/internal/synapse"
	"github.com/protobrain/protobrain/internal/tensor"
)

func newSensor(t *testing.T) *sensor.Sensor[float64] {
	t.Helper()
	enc, err := encoder.NewCyclic(0, 100, 64, 0.1)
	require.NoError(t, err)
	s, err := sensor.New[float64](enc)
	require.NoError(t, err)
	return s
}

func newCortex(t *testing.T, sizes ...int) (*neuron.Layered, []*neuron.Neurons) {
	t.Helper()
	units := make([]neuron.Unit, len(sizes))
	leaves := make([]*neuron.Neurons, len(sizes))
	for i, size := range sizes {
		n, err := neuron.New(tensor.Shape{size})
		require.NoError(t, err)
		units[i], leaves[i] = n, n
	}
	cortex, err := neuron.FeedForward(units, "", nil)
	require.NoError(t, err)
	return cortex, leaves
}

func TestNew_ConnectsSensor(t *testing.T) {
	s := newSensor(t)
	cortex, leaves := newCortex(t, 10, 10, 10)

	b, err := brain.New(cortex, s)
	require.NoError(t, err)

	assert.Same(t, s, leaves[0].Input().Source())
	assert.Equal(t, tensor.Shape{64, 10}, leaves[0].Input().Synapses().Shape())
	assert.Same(t, cortex, b.Neurons())
	assert.Same(t, s, b.Sensor())
}

func TestStrategiesPropagate(t *testing.T) {
	cortex, leaves := newCortex(t, 8, 8, 8)
	comp := computation.NewSparse(2)
	hebb := learning.DefaultHebbian()

	b, err := brain.New(cortex, newSensor(t), brain.WithComputation(comp), brain.WithLearning(hebb))
	require.NoError(t, err)
	for _, leaf := range leaves {
		assert.Same(t, comp, leaf.Computation())
		assert.Same(t, hebb, leaf.Learning())
	}

	// Nil keeps what is set.
	b.SetComputation(nil)
	b.SetLearning(nil)
	for _, leaf := range leaves {
		assert.Same(t, comp, leaf.Computation())
		assert.Same(t, hebb, leaf.Learning())
	}

	other := computation.NewStandard(0.5)
	b.SetComputation(other)
	for _, leaf := range leaves {
		assert.Same(t, other, leaf.Computation())
	}
}

func TestWithSynapses(t *testing.T) {
	cortex, leaves := newCortex(t, 3)
	_, err := brain.New(cortex, newSensor(t), brain.WithSynapses(synapse.Constant(0.5)))
	require.NoError(t, err)

	w := leaves[0].Input().Synapses()
	assert.Equal(t, tensor.Shape{64, 3}, w.Shape())
	for _, v := range w.Data() {
		assert.Equal(t, 0.5, v)
	}
}

func TestComputeAndLearn(t *testing.T) {
	cortex, leaves := newCortex(t, 20, 10)
	b, err := brain.New(cortex, newSensor(t),
		brain.WithComputation(computation.NewSparse(3)),
		brain.WithLearning(learning.NewHebbian(0.1, 0.05)))
	require.NoError(t, err)

	require.NoError(t, b.Feed(42))
	out, err := b.Compute()
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{10}, out.Shape())
	assert.Equal(t, 3.0, sum(out.Data()))
	assert.Equal(t, 3.0, sum(leaves[0].Values().Data()))

	before := leaves[1].Input().Synapses().Clone()
	require.NoError(t, b.Learn())
	assert.False(t, before.Equal(leaves[1].Input().Synapses()))
}

func TestLearnWithoutLearning(t *testing.T) {
	cortex, _ := newCortex(t, 4)
	b, err := brain.New(cortex, newSensor(t), brain.WithComputation(computation.NewSparse(1)))
	require.NoError(t, err)

	require.NoError(t, b.Feed(1))
	_, err = b.Compute()
	require.NoError(t, err)
	assert.ErrorIs(t, b.Learn(), neuron.ErrNoLearning)
}

func TestComputeWithoutComputation(t *testing.T) {
	cortex, _ := newCortex(t, 4)
	b, err := brain.New(cortex, newSensor(t))
	require.NoError(t, err)

	_, err = b.Compute()
	assert.ErrorIs(t, err, neuron.ErrNoComputation)
}

func TestSingleNeurons(t *testing.T) {
	n, err := neuron.New(tensor.Shape{5}, neuron.WithComputation(computation.NewStandard(100)))
	require.NoError(t, err)
	b, err := brain.New(n, newSensor(t))
	require.NoError(t, err)

	require.NoError(t, b.Feed(0))
	out, err := b.Compute()
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0, 0, 0}, out.Data())
}

func sum(data []float64) float64 {
	total := 0.0
	for _, v := range data {
		total += v
	}
	return total
}

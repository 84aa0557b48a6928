package sensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protobrain/protobrain/internal/encoder"
	"github.com/protobrain/protobrain/internal/sensor"
	"github.com/protobrain/protobrain/internal/synapse"
	"github.com/protobrain/protobrain/internal/tensor"
)

// badEncoder declares one shape and produces another.
type badEncoder struct{}

func (badEncoder) DefaultValue() string { return "" }
func (badEncoder) Shape() tensor.Shape { return tensor.Shape{4} }
func (badEncoder) Encode(string) (*tensor.Tensor, error) {
	return tensor.Vector(1, 0, 1), nil
}

func TestSensor_Feed(t *testing.T) {
	enc, err := encoder.NewCyclic(1, 5, 5, 0.4)
	require.NoError(t, err)
	s, err := sensor.New[float64](enc)
	require.NoError(t, err)

	assert.Equal(t, tensor.Shape{5}, s.Shape())
	assert.Zero(t, s.Value())
	assert.Equal(t, []float64{0, 0, 0, 0, 0}, s.Values().Data())

	require.NoError(t, s.Feed(5))
	assert.Equal(t, 5.0, s.Value())
	assert.Equal(t, []float64{1, 0, 0, 0, 1}, s.Values().Data())

	require.NoError(t, s.SetValue(2))
	assert.Equal(t, 2.0, s.Value())
	assert.Equal(t, []float64{0, 1, 1, 0, 0}, s.Output().Values().Data())
}

func TestSensor_FeedOutOfRange(t *testing.T) {
	enc, err := encoder.NewSimple(1, 4, 5, 0.4)
	require.NoError(t, err)
	s, err := sensor.New[float64](enc)
	require.NoError(t, err)
	require.NoError(t, s.Feed(3))

	assert.ErrorIs(t, s.Feed(10), encoder.ErrOutOfRange)
	assert.Equal(t, 3.0, s.Value())
	assert.Equal(t, []float64{0, 0, 1, 1, 0}, s.Values().Data())
}

func TestSensor_ShapeMismatchSurfaces(t *testing.T) {
	s, err := sensor.New[string](badEncoder{})
	require.NoError(t, err)

	err = s.Feed("x")
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
	assert.Equal(t, "", s.Value())
}

func TestSensor_IsAnOutput(t *testing.T) {
	enc, err := encoder.NewSimple(0, 10, 20, 0.1)
	require.NoError(t, err)
	s, err := sensor.New[float64](enc)
	require.NoError(t, err)

	in := synapse.NewInput(synapse.Main, tensor.Shape{3})
	require.NoError(t, in.Connect(s, nil))
	assert.Equal(t, tensor.Shape{20, 3}, in.Synapses().Shape())

	require.NoError(t, s.Feed(10))
	values, err := in.Values()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1}, values.Data()[18:])
}

package encoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimple(t *testing.T) {
	enc, err := NewSimple(1, 4, 5, 0.4)
	require.NoError(t, err)

	tests := []struct {
		value float64
		want  []float64
	}{
		{1, []float64{1, 1, 0, 0, 0}},
		{2, []float64{0, 1, 1, 0, 0}},
		{3, []float64{0, 0, 1, 1, 0}},
		{4, []float64{0, 0, 0, 1, 1}},
	}
	for _, tt := range tests {
		got, err := enc.Encode(tt.value)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got.Data(), "encode(%g)", tt.value)
	}
}

func TestCyclic(t *testing.T) {
	enc, err := NewCyclic(1, 5, 5, 0.4)
	require.NoError(t, err)

	tests := []struct {
		value float64
		want  []float64
	}{
		{1, []float64{1, 1, 0, 0, 0}},
		{2, []float64{0, 1, 1, 0, 0}},
		{3, []float64{0, 0, 1, 1, 0}},
		{4, []float64{0, 0, 0, 1, 1}},
		{5, []float64{1, 0, 0, 0, 1}},
	}
	for _, tt := range tests {
		got, err := enc.Encode(tt.value)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got.Data(), "encode(%g)", tt.value)
	}
}

func TestSignalLengthIsConstant(t *testing.T) {
	simple, err := NewSimple(0, 1000, 1024, DefaultSparsity)
	require.NoError(t, err)
	cyclic, err := NewCyclic(0, 1000, 1024, DefaultSparsity)
	require.NoError(t, err)
	assert.Equal(t, 21, simple.SignalLength())

	for v := 0.0; v <= 1000; v += 7.5 {
		s, err := simple.Encode(v)
		require.NoError(t, err)
		c, err := cyclic.Encode(v)
		require.NoError(t, err)
		assert.Equal(t, 21, countOnes(s.Data()), "simple(%g)", v)
		assert.Equal(t, 21, countOnes(c.Data()), "cyclic(%g)", v)
	}
}

func TestOutOfRange(t *testing.T) {
	simple, err := NewSimple(1, 4, 5, 0.4)
	require.NoError(t, err)
	cyclic, err := NewCyclic(1, 5, 5, 0.4)
	require.NoError(t, err)

	for _, v := range []float64{0.99, 5.01, -3} {
		_, err = cyclic.Encode(v)
		assert.ErrorIs(t, err, ErrOutOfRange)
	}
	for _, v := range []float64{0.99, 4.01} {
		_, err = simple.Encode(v)
		assert.ErrorIs(t, err, ErrOutOfRange)
	}
}

func TestInvalidParameters(t *testing.T) {
	tests := []struct {
		name     string
		min, max float64
		length   int
		sparsity float64
	}{
		{"zero length", 0, 1, 0, 0.1},
		{"empty range", 3, 3, 10, 0.1},
		{"reversed range", 4, 1, 10, 0.1},
		{"zero sparsity", 0, 1, 10, 0},
		{"sparsity above one", 0, 1, 10, 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSimple(tt.min, tt.max, tt.length, tt.sparsity)
			assert.ErrorIs(t, err, ErrInvalid)
			_, err = NewCyclic(tt.min, tt.max, tt.length, tt.sparsity)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestAccessors(t *testing.T) {
	enc, err := NewCyclic(-10, 30, 64, 0.25)
	require.NoError(t, err)
	assert.Equal(t, -10.0, enc.Min())
	assert.Equal(t, 30.0, enc.Max())
	assert.Equal(t, 40.0, enc.Range())
	assert.Equal(t, 64, enc.Length())
	assert.Equal(t, 0.25, enc.Sparsity())
	assert.Equal(t, 16, enc.SignalLength())
	assert.Zero(t, enc.DefaultValue())
	assert.Equal(t, []int{64}, []int(enc.Shape()))
}

func countOnes(data []float64) int {
	n := 0
	for _, v := range data {
		if v == 1 {
			n++
		}
	}
	return n
}

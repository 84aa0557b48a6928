// Package encoder provides encoders producing sparse distributed
// representations (SDRs) of numbers.
//
// A numerical encoding is a block of consecutive active bits whose position
// tracks the value, so close values share active bits:
//
//	enc, _ := encoder.NewSimple(1, 4, 5, 0.4)
//	enc.Encode(1) // [1 1 0 0 0]
//	enc.Encode(4) // [0 0 0 1 1]
//
// The cyclic variant wraps around, so the ends of the range overlap.
package encoder

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/protobrain/protobrain/internal/tensor"
)

// DefaultSparsity is the fraction of active bits when none is given.
const DefaultSparsity = 0.02

// Common errors.
var (
	ErrOutOfRange = errors.New("value outside of the range of the encoder")
	ErrInvalid    = errors.New("invalid encoder parameters")
)

// Numerical holds the parameters shared by the numerical encoders.
type Numerical struct {
	min, max float64
	length   int
	sparsity float64
}

func newNumerical(minValue, maxValue float64, length int, sparsity float64) (Numerical, error) {
	switch {
	case length <= 0:
		return Numerical{}, errors.Wrapf(ErrInvalid, "length must be positive, got %d", length)
	case !(maxValue > minValue):
		return Numerical{}, errors.Wrapf(ErrInvalid, "empty range [%g, %g]", minValue, maxValue)
	case !(sparsity > 0 && sparsity <= 1):
		return Numerical{}, errors.Wrapf(ErrInvalid, "sparsity must be in (0, 1], got %g", sparsity)
	}
	return Numerical{min: minValue, max: maxValue, length: length, sparsity: sparsity}, nil
}

// Min returns the smallest encodable value.
func (n *Numerical) Min() float64 { return n.min }

// Max returns the largest encodable value.
func (n *Numerical) Max() float64 { return n.max }

// Range returns Max - Min.
func (n *Numerical) Range() float64 { return n.max - n.min }

// Length returns the number of bits of an encoding.
func (n *Numerical) Length() int { return n.length }

// Sparsity returns the fraction of active bits.
func (n *Numerical) Sparsity() float64 { return n.sparsity }

// DefaultValue implements sensor.Encoder.
func (n *Numerical) DefaultValue() float64 { return 0 }

// Shape implements sensor.Encoder.
func (n *Numerical) Shape() tensor.Shape { return tensor.Shape{n.length} }

// SignalLength returns the number of active bits.
func (n *Numerical) SignalLength() int {
	return int(math.Ceil(n.sparsity * float64(n.length)))
}

func (n *Numerical) check(value float64) error {
	if !(n.min <= value && value <= n.max) {
		return errors.Wrapf(ErrOutOfRange, "%g not in [%g, %g]", value, n.min, n.max)
	}
	return nil
}

// start places value on [0, signalRange].
func (n *Numerical) start(value float64, signalRange int) int {
	return int(math.Floor((value - n.min) / n.Range() * float64(signalRange)))
}

// Simple encodes values as a block that slides from the first bit (Min) to
// the last bit (Max) without wrapping.
type Simple struct {
	Numerical
}

// NewSimple creates a Simple encoder.
func NewSimple(minValue, maxValue float64, length int, sparsity float64) (*Simple, error) {
	n, err := newNumerical(minValue, maxValue, length, sparsity)
	if err != nil {
		return nil, err
	}
	return &Simple{Numerical: n}, nil
}

// Encode implements sensor.Encoder.
func (s *Simple) Encode(value float64) (*tensor.Tensor, error) {
	if err := s.check(value); err != nil {
		return nil, err
	}
	signalLength := s.SignalLength()
	start := s.start(value, s.length-signalLength)

	encoded := tensor.Zeros(s.Shape())
	encoded.Fill(1, start, start+signalLength)
	return encoded, nil
}

func (s *Simple) String() string {
	return fmt.Sprintf("SimpleEncoder(min=%g, max=%g, length=%d, sparsity=%g)", s.min, s.max, s.length, s.sparsity)
}

// Cyclic encodes values on a circle: the block can start on any bit and
// wraps past the end, so Min and Max share active bits. Suited to periodic
// quantities such as time of day.
type Cyclic struct {
	Numerical
}

// NewCyclic creates a Cyclic encoder.
func NewCyclic(minValue, maxValue float64, length int, sparsity float64) (*Cyclic, error) {
	n, err := newNumerical(minValue, maxValue, length, sparsity)
	if err != nil {
		return nil, err
	}
	return &Cyclic{Numerical: n}, nil
}

// Encode implements sensor.Encoder.
func (c *Cyclic) Encode(value float64) (*tensor.Tensor, error) {
	if err := c.check(value); err != nil {
		return nil, err
	}
	signalLength := c.SignalLength()
	start := c.start(value, c.length-1)

	encoded := tensor.Zeros(c.Shape())
	encoded.Fill(1, start, start+signalLength)
	if end := start + signalLength; end > c.length {
		encoded.Fill(1, 0, end%c.length)
	}
	return encoded, nil
}

func (c *Cyclic) String() string {
	return fmt.Sprintf("CyclicEncoder(min=%g, max=%g, length=%d, sparsity=%g)", c.min, c.max, c.length, c.sparsity)
}

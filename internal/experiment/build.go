package experiment

import (
	"math/rand/v2"

	"github.com/pkg/errors"

	"github.com/protobrain/protobrain/internal/brain"
	"github.com/protobrain/protobrain/internal/computation"
	"github.com/protobrain/protobrain/internal/encoder"
	"github.com/protobrain/protobrain/internal/learning"
	"github.com/protobrain/protobrain/internal/neuron"
	"github.com/protobrain/protobrain/internal/sensor"
	"github.com/protobrain/protobrain/internal/synapse"
	"github.com/protobrain/protobrain/internal/tensor"
)

// Experiment is a built brain with the inputs to drive it with.
type Experiment struct {
	Name   string
	Brain  *brain.Brain[float64]
	Inputs []float64
}

// Build creates the brain described by c.
func (c *Config) Build() (*Experiment, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	enc, err := c.Encoder.build()
	if err != nil {
		return nil, errors.WithMessage(err, "encoder")
	}
	s, err := sensor.New[float64](enc)
	if err != nil {
		return nil, err
	}

	var fn synapse.SynapseFunc = synapse.Uniform
	if c.Seed != nil {
		fn = synapse.UniformFrom(rand.New(rand.NewPCG(*c.Seed, *c.Seed)))
	}
	cortex, err := c.Cortex.build(fn)
	if err != nil {
		return nil, errors.WithMessage(err, "cortex")
	}

	b, err := brain.New(cortex, s,
		brain.WithComputation(c.Computation.build()),
		brain.WithLearning(c.Learning.build()),
		brain.WithSynapses(fn))
	if err != nil {
		return nil, err
	}
	return &Experiment{Name: c.Name, Brain: b, Inputs: c.Inputs.build()}, nil
}

func (e EncoderConfig) build() (sensor.Encoder[float64], error) {
	if e.Type == EncoderSimple {
		return encoder.NewSimple(e.Min, e.Max, e.Length, e.Sparsity)
	}
	return encoder.NewCyclic(e.Min, e.Max, e.Length, e.Sparsity)
}

func (c CortexConfig) build(fn synapse.SynapseFunc) (neuron.Unit, error) {
	layers := make([]neuron.Unit, len(c.Layers))
	for i, size := range c.Layers {
		n, err := neuron.New(tensor.Shape{size})
		if err != nil {
			return nil, err
		}
		layers[i] = n
	}

	cortex, err := neuron.FeedForward(layers, neuron.MainInput, fn)
	if err != nil {
		return nil, err
	}
	if c.Feedback {
		if _, err := neuron.FeedBackward(layers, FeedbackInput, fn); err != nil {
			return nil, err
		}
	}
	if c.Loopback {
		if _, err := neuron.LoopBack(layers, LoopbackInput, fn); err != nil {
			return nil, err
		}
	}
	return cortex, nil
}

func (c ComputationConfig) build() computation.Computation {
	switch {
	case c.Type == ComputationStandard:
		return computation.NewStandard(c.Threshold)
	case c.Count > 0:
		return computation.NewSparse(c.Count)
	default:
		return computation.NewSparseFraction(c.Fraction)
	}
}

func (l LearningConfig) build() learning.Learning {
	if l.Type != LearningHebbian {
		return nil
	}
	return learning.NewHebbian(l.Increase, l.Decrease)
}

func (in InputsConfig) build() []float64 {
	if len(in.Values) > 0 {
		return append([]float64(nil), in.Values...)
	}
	var values []float64
	for i := 0; ; i++ {
		v := in.Start + float64(i)*in.Step
		if v >= in.Stop {
			return values
		}
		values = append(values, v)
	}
}

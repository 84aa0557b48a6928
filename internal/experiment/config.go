// Package experiment describes brain experiments in YAML and builds them.
//
// An experiment names an encoder, a cortex made of layer sizes, the
// computation and learning strategies and the input sequence:
//
//	name: cyclic-3x10
//	seed: 7
//	encoder:
//	  type: cyclic
//	  min: 0
//	  max: 1000
//	  length: 1024
//	cortex:
//	  layers: [10, 10, 10]
//	computation:
//	  type: sparse
//	  fraction: 0.02
//	learning:
//	  type: hebbian
//	inputs:
//	  start: 0
//	  stop: 1000
package experiment

import (
	"bytes"
	"io"
	"math"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/protobrain/protobrain/internal/encoder"
	"github.com/protobrain/protobrain/internal/learning"
)

// ErrInvalidConfig is returned for experiments that cannot be built.
var ErrInvalidConfig = errors.New("invalid experiment configuration")

// Encoder types.
const (
	EncoderCyclic = "cyclic"
	EncoderSimple = "simple"
)

// Computation types.
const (
	ComputationSparse   = "sparse"
	ComputationStandard = "standard"
)

// Learning types.
const (
	LearningHebbian = "hebbian"
	LearningNone    = "none"
)

// Input names used by the optional cortex connections.
const (
	FeedbackInput = "feedback"
	LoopbackInput = "loopback"
)

// MaxInputs bounds the number of inputs a start/stop/step range may generate.
const MaxInputs = 10_000_000

// Config is a decoded experiment.
type Config struct {
	Name        string            `yaml:"name"`
	Seed        *uint64           `yaml:"seed,omitempty"`
	Encoder     EncoderConfig     `yaml:"encoder"`
	Cortex      CortexConfig      `yaml:"cortex"`
	Computation ComputationConfig `yaml:"computation"`
	Learning    LearningConfig    `yaml:"learning"`
	Inputs      InputsConfig      `yaml:"inputs"`
}

// EncoderConfig selects a numerical encoder.
type EncoderConfig struct {
	Type     string  `yaml:"type"`
	Min      float64 `yaml:"min"`
	Max      float64 `yaml:"max"`
	Length   int     `yaml:"length"`
	Sparsity float64 `yaml:"sparsity,omitempty"`
}

// CortexConfig lists the layer sizes of a feed forward cortex.
//
// Feedback also connects every layer to the previous one through the
// "feedback" input, and Loopback connects every layer to itself through the
// "loopback" input.
type CortexConfig struct {
	Layers   []int `yaml:"layers"`
	Feedback bool  `yaml:"feedback,omitempty"`
	Loopback bool  `yaml:"loopback,omitempty"`
}

// ComputationConfig selects the computation of every layer.
//
// A sparse computation uses Count winners when set, Fraction otherwise.
type ComputationConfig struct {
	Type      string  `yaml:"type"`
	Count     int     `yaml:"count,omitempty"`
	Fraction  float64 `yaml:"fraction,omitempty"`
	Threshold float64 `yaml:"threshold,omitempty"`
}

// LearningConfig selects the learning rule of every layer.
type LearningConfig struct {
	Type     string  `yaml:"type"`
	Increase float64 `yaml:"increase,omitempty"`
	Decrease float64 `yaml:"decrease,omitempty"`
}

// InputsConfig is an explicit list of values or the range [Start, Stop)
// walked by Step.
type InputsConfig struct {
	Values []float64 `yaml:"values,omitempty,flow"`
	Start  float64   `yaml:"start,omitempty"`
	Stop   float64   `yaml:"stop,omitempty"`
	Step   float64   `yaml:"step,omitempty"`
}

// Load reads and validates the experiment at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open experiment %q", path)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return nil, errors.WithMessagef(err, "experiment %q", path)
	}
	return cfg, nil
}

// Parse decodes and validates an experiment from data.
func Parse(data []byte) (*Config, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads one YAML document from r. Unknown fields are rejected.
func Decode(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, errors.Wrapf(ErrInvalidConfig, "decode: %v", err)
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Marshal encodes cfg as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func (c *Config) setDefaults() {
	if c.Encoder.Sparsity == 0 {
		c.Encoder.Sparsity = encoder.DefaultSparsity
	}
	if c.Computation.Type == "" {
		c.Computation.Type = ComputationSparse
	}
	if c.Computation.Type == ComputationSparse && c.Computation.Count == 0 && c.Computation.Fraction == 0 {
		c.Computation.Fraction = encoder.DefaultSparsity
	}
	if c.Learning.Type == "" {
		c.Learning.Type = LearningNone
	}
	if c.Learning.Type == LearningHebbian {
		if c.Learning.Increase == 0 {
			c.Learning.Increase = learning.DefaultIncrease
		}
		if c.Learning.Decrease == 0 {
			c.Learning.Decrease = learning.DefaultDecrease
		}
	}
	if len(c.Inputs.Values) == 0 && c.Inputs.Step == 0 {
		c.Inputs.Step = 1
	}
}

func invalid(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidConfig, format, args...)
}

// Validate checks the parts Build cannot recover from.
func (c *Config) Validate() error {
	switch c.Encoder.Type {
	case EncoderCyclic, EncoderSimple:
	default:
		return invalid("unknown encoder type %q", c.Encoder.Type)
	}
	if c.Encoder.Length <= 0 {
		return invalid("encoder length must be positive, got %d", c.Encoder.Length)
	}

	if len(c.Cortex.Layers) == 0 {
		return invalid("cortex has no layers")
	}
	for i, size := range c.Cortex.Layers {
		if size <= 0 {
			return invalid("layer %d has size %d", i, size)
		}
	}

	switch c.Computation.Type {
	case ComputationSparse:
		if c.Computation.Count < 0 || c.Computation.Fraction < 0 || c.Computation.Fraction > 1 {
			return invalid("sparse computation needs a positive count or a fraction in (0, 1]")
		}
	case ComputationStandard:
	default:
		return invalid("unknown computation type %q", c.Computation.Type)
	}

	switch c.Learning.Type {
	case LearningHebbian, LearningNone:
	default:
		return invalid("unknown learning type %q", c.Learning.Type)
	}

	if len(c.Inputs.Values) == 0 {
		if c.Inputs.Step <= 0 {
			return invalid("input step must be positive, got %g", c.Inputs.Step)
		}
		if c.Inputs.Stop <= c.Inputs.Start {
			return invalid("empty input range [%g, %g)", c.Inputs.Start, c.Inputs.Stop)
		}
		if n := math.Ceil((c.Inputs.Stop - c.Inputs.Start) / c.Inputs.Step); !(n <= MaxInputs) {
			return invalid("input range [%g, %g) by %g has %g steps, more than %d",
				c.Inputs.Start, c.Inputs.Stop, c.Inputs.Step, n, MaxInputs)
		}
	}
	return nil
}

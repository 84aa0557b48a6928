package main

import (
	"context"
	"flag"
	"fmt"
	"runtime"

	"github.com/janpfeifer/must"
	"github.com/pkg/errors"

	"github.com/protobrain/protobrain/internal/benchmark"
	"github.com/protobrain/protobrain/internal/brain"
	"github.com/protobrain/protobrain/internal/computation"
	"github.com/protobrain/protobrain/internal/encoder"
	"github.com/protobrain/protobrain/internal/learning"
	"github.com/protobrain/protobrain/internal/metrics"
	"github.com/protobrain/protobrain/internal/neuron"
	"github.com/protobrain/protobrain/internal/sensor"
	"github.com/protobrain/protobrain/internal/tensor"
)

// benchMax bounds the cyclic sensor; inputs cycle over [0, benchMax).
const benchMax = 1000

func benchCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("bench", flag.ContinueOnError)
	steps := fs.Int("steps", benchMax, "Number of inputs fed to each brain.")
	bits := fs.Int("bits", 1024, "Length of the sensor representation.")
	layers := fs.Int("layers", 3, "Number of feed forward layers.")
	size := fs.Int("size", 10, "Neurons per layer.")
	sparsity := fs.Float64("sparsity", 0.02, "Fraction of neurons spiking per layer.")
	workers := fs.Int("workers", runtime.NumCPU(), "Brains evaluated concurrently.")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *steps <= 0 || *bits <= 0 || *layers <= 0 || *size <= 0 {
		return errors.New("-steps, -bits, -layers and -size must be positive")
	}
	if *sparsity <= 0 || *sparsity > 1 {
		return errors.Errorf("-sparsity must be in (0, 1], got %g", *sparsity)
	}

	comp := computation.NewSparseFraction(*sparsity)
	brains := []*brain.Brain[float64]{
		newBenchBrain(*bits, *layers, *size, comp, learning.DefaultHebbian()),
		newBenchBrain(*bits, *layers, *size, comp, nil),
	}
	names := []string{"hebbian", "no learning"}

	inputs := make([]float64, *steps)
	for i := range inputs {
		inputs[i] = float64(i % benchMax)
	}

	bar := newProgressBar(len(brains)*len(inputs), "bench")
	results, err := benchmark.New[float64](metrics.NewSpikeDensity(), metrics.NewSpikeCount()).
		Run(ctx, brains, inputs,
			benchmark.WithWorkers(*workers),
			benchmark.WithProgress(func(_, _ int) { _ = bar.Add(1) }))
	_ = bar.Finish()
	if err != nil {
		return err
	}

	title := fmt.Sprintf("%d x %d feed forward, %d-bit cyclic sensor", *layers, *size, *bits)
	fmt.Println(renderResults(title, names, len(inputs), results))
	return nil
}

// newBenchBrain panics on errors: every parameter was validated by the caller.
func newBenchBrain(bits, numLayers, size int, comp computation.Computation, l learning.Learning) *brain.Brain[float64] {
	enc := must.M1(encoder.NewCyclic(0, benchMax, bits, encoder.DefaultSparsity))
	s := must.M1(sensor.New[float64](enc))

	layers := make([]neuron.Unit, numLayers)
	for i := range layers {
		layers[i] = must.M1(neuron.New(tensor.Shape{size},
			neuron.WithComputation(comp), neuron.WithLearning(l)))
	}
	cortex := must.M1(neuron.FeedForward(layers, neuron.MainInput, nil))
	return must.M1(brain.New(cortex, s))
}

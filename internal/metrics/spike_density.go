package metrics

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/protobrain/protobrain/internal/neuron"
)

// SpikeDensityName is the name of the SpikeDensity metric.
const SpikeDensityName = "spike_density"

// DensityTree holds spike densities shaped like the layer tree.
//
// Size is the number of neurons below the node. On a layered node Density
// is the size-weighted mean of its layers.
type DensityTree struct {
	Density float64
	Size    int
	Layers  []*DensityTree
}

func (d *DensityTree) String() string {
	if d.Layers == nil {
		return fmt.Sprintf("%g", d.Density)
	}
	parts := make([]string, len(d.Layers))
	for i, layer := range d.Layers {
		parts[i] = layer.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// sameShape reports whether d and other describe the same layer tree.
func (d *DensityTree) sameShape(other *DensityTree) bool {
	if d.Size != other.Size || len(d.Layers) != len(other.Layers) || (d.Layers == nil) != (other.Layers == nil) {
		return false
	}
	for i := range d.Layers {
		if !d.Layers[i].sameShape(other.Layers[i]) {
			return false
		}
	}
	return true
}

// DensityResult summarizes SpikeDensity.
type DensityResult struct {
	// Global is the mean of PerStep.
	Global float64
	// PerLayer is the density of each layer averaged over the steps.
	PerLayer *DensityTree
	// PerStep is the density of the whole network at each step.
	PerStep []float64
	// PerLayerPerStep is the density of each layer at each step.
	PerLayerPerStep []*DensityTree
}

// MetricName implements Summary.
func (r *DensityResult) MetricName() string { return SpikeDensityName }

func (r *DensityResult) String() string {
	steps := make([]string, len(r.PerLayerPerStep))
	for i, step := range r.PerLayerPerStep {
		steps[i] = step.String()
	}
	return fmt.Sprintf("%s:\nGlobal: %g\nPer layer:\n%v\nPer step:\n%v\nPer layer per step:\n%s",
		SpikeDensityName, r.Global, r.PerLayer, r.PerStep, strings.Join(steps, "\n"))
}

// SpikeDensity measures the fraction of neurons spiking at each step.
type SpikeDensity struct {
	steps []*DensityTree
}

// NewSpikeDensity creates a SpikeDensity metric.
func NewSpikeDensity() *SpikeDensity {
	return &SpikeDensity{}
}

// Name implements Metric.
func (m *SpikeDensity) Name() string { return SpikeDensityName }

// Reset implements Metric.
func (m *SpikeDensity) Reset() { m.steps = nil }

// Clone implements Metric.
func (m *SpikeDensity) Clone() Metric { return NewSpikeDensity() }

// Next implements Metric.
func (m *SpikeDensity) Next(u neuron.Unit) error {
	step := density(u)
	if len(m.steps) > 0 && !m.steps[0].sameShape(step) {
		return errors.Wrapf(ErrTopologyChanged, "step %d", len(m.steps))
	}
	m.steps = append(m.steps, step)
	return nil
}

func density(u neuron.Unit) *DensityTree {
	layers := children(u)
	if layers == nil {
		values := u.Values().Data()
		return &DensityTree{Density: floats.Sum(values) / float64(len(values)), Size: len(values)}
	}

	node := &DensityTree{Layers: make([]*DensityTree, len(layers))}
	for i, layer := range layers {
		node.Layers[i] = density(layer)
	}
	node.reweigh()
	return node
}

// reweigh recomputes Size and Density of a layered node from its layers.
func (d *DensityTree) reweigh() {
	weighted, size := 0.0, 0
	for _, layer := range d.Layers {
		weighted += layer.Density * float64(layer.Size)
		size += layer.Size
	}
	d.Size = size
	d.Density = weighted / float64(size)
}

// mean averages trees of the same shape node by node.
func mean(trees []*DensityTree) *DensityTree {
	first := trees[0]
	if first.Layers == nil {
		densities := make([]float64, len(trees))
		for i, tree := range trees {
			densities[i] = tree.Density
		}
		return &DensityTree{Density: floats.Sum(densities) / float64(len(trees)), Size: first.Size}
	}

	node := &DensityTree{Layers: make([]*DensityTree, len(first.Layers))}
	column := make([]*DensityTree, len(trees))
	for i := range first.Layers {
		for j, tree := range trees {
			column[j] = tree.Layers[i]
		}
		node.Layers[i] = mean(column)
	}
	node.reweigh()
	return node
}

// Compute summarizes the recorded steps.
func (m *SpikeDensity) Compute() (*DensityResult, error) {
	if len(m.steps) == 0 {
		return nil, ErrNoSteps
	}

	perStep := make([]float64, len(m.steps))
	for i, step := range m.steps {
		perStep[i] = step.Density
	}
	return &DensityResult{
		Global:          floats.Sum(perStep) / float64(len(perStep)),
		PerLayer:        mean(m.steps),
		PerStep:         perStep,
		PerLayerPerStep: m.steps,
	}, nil
}

// Summary implements Metric.
func (m *SpikeDensity) Summary() (Summary, error) {
	r, err := m.Compute()
	if err != nil {
		return nil, err
	}
	return r, nil
}

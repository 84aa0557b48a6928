package metrics

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/protobrain/protobrain/internal/neuron"
)

// SpikeCountName is the name of the SpikeCount metric.
const SpikeCountName = "spike_count"

// Histogram maps a spike total to the number of neurons that reached it.
// Key 0 counts the neurons that never spiked.
type Histogram map[float64]int

// Add adds other into h.
func (h Histogram) Add(other Histogram) {
	for spikes, n := range other {
		h[spikes] += n
	}
}

// String lists the buckets in increasing order.
func (h Histogram) String() string {
	parts := make([]string, 0, len(h))
	for _, spikes := range slices.Sorted(maps.Keys(h)) {
		parts = append(parts, fmt.Sprintf("%g: %d", spikes, h[spikes]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// LayerCounts is a histogram per layer, shaped like the layer tree.
type LayerCounts struct {
	// Counts is set on leaves.
	Counts Histogram
	// Layers is set on layered units.
	Layers []*LayerCounts
}

// Total sums the histograms of every leaf below c.
func (c *LayerCounts) Total() Histogram {
	total := Histogram{}
	if c.Layers == nil {
		total.Add(c.Counts)
		return total
	}
	for _, layer := range c.Layers {
		total.Add(layer.Total())
	}
	return total
}

func (c *LayerCounts) String() string {
	if c.Layers == nil {
		return c.Counts.String()
	}
	parts := make([]string, len(c.Layers))
	for i, layer := range c.Layers {
		parts[i] = layer.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// CountResult summarizes SpikeCount.
type CountResult struct {
	Global   Histogram
	PerLayer *LayerCounts
}

// MetricName implements Summary.
func (r *CountResult) MetricName() string { return SpikeCountName }

func (r *CountResult) String() string {
	return fmt.Sprintf("%s:\nGlobal: %v\nPer layer:\n%v", SpikeCountName, r.Global, r.PerLayer)
}

// countNode accumulates spike totals, shaped like the layer tree.
type countNode struct {
	totals   []float64
	children []*countNode
}

// SpikeCount counts how many times each neuron spiked during a run.
type SpikeCount struct {
	root *countNode
}

// NewSpikeCount creates a SpikeCount metric.
func NewSpikeCount() *SpikeCount {
	return &SpikeCount{}
}

// Name implements Metric.
func (m *SpikeCount) Name() string { return SpikeCountName }

// Reset implements Metric.
func (m *SpikeCount) Reset() { m.root = nil }

// Clone implements Metric.
func (m *SpikeCount) Clone() Metric { return NewSpikeCount() }

// Next implements Metric.
func (m *SpikeCount) Next(u neuron.Unit) error {
	if err := matches(m.root, u); err != nil {
		return err
	}
	m.root = accumulate(m.root, u)
	return nil
}

// matches checks that u has the layer tree recorded in node. A nil node
// matches anything.
func matches(node *countNode, u neuron.Unit) error {
	if node == nil {
		return nil
	}
	if layers := children(u); layers != nil {
		if node.children == nil {
			return errors.Wrapf(ErrTopologyChanged, "leaf became %d layers", len(layers))
		}
		if err := checkLayers(len(layers), len(node.children)); err != nil {
			return err
		}
		for i, layer := range layers {
			if err := matches(node.children[i], layer); err != nil {
				return err
			}
		}
		return nil
	}
	if n := u.Values().NumElements(); node.children != nil || len(node.totals) != n {
		return errors.Wrapf(ErrTopologyChanged, "leaf of %d neurons", n)
	}
	return nil
}

func accumulate(node *countNode, u neuron.Unit) *countNode {
	if layers := children(u); layers != nil {
		if node == nil {
			node = &countNode{children: make([]*countNode, len(layers))}
		}
		for i, layer := range layers {
			node.children[i] = accumulate(node.children[i], layer)
		}
		return node
	}

	values := u.Values().Data()
	if node == nil {
		node = &countNode{totals: make([]float64, len(values))}
	}
	floats.Add(node.totals, values)
	return node
}

func count(node *countNode) *LayerCounts {
	if node.children != nil {
		layers := make([]*LayerCounts, len(node.children))
		for i, child := range node.children {
			layers[i] = count(child)
		}
		return &LayerCounts{Layers: layers}
	}

	h := Histogram{0: 0}
	for _, total := range node.totals {
		if total > 0 {
			h[total]++
		} else {
			h[0]++
		}
	}
	return &LayerCounts{Counts: h}
}

// Compute summarizes the recorded steps.
func (m *SpikeCount) Compute() (*CountResult, error) {
	if m.root == nil {
		return nil, ErrNoSteps
	}
	perLayer := count(m.root)
	return &CountResult{Global: perLayer.Total(), PerLayer: perLayer}, nil
}

// Summary implements Metric.
func (m *SpikeCount) Summary() (Summary, error) {
	r, err := m.Compute()
	if err != nil {
		return nil, err
	}
	return r, nil
}

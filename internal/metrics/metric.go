// Package metrics aggregates statistics about spiking activity over a run.
//
// A Metric is fed the root unit after every step and summarizes the run at
// the end. Layered units are walked recursively, so results come back shaped
// like the layer tree.
package metrics

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/protobrain/protobrain/internal/neuron"
)

// Common errors.
var (
	ErrNoSteps          = errors.New("no iterations - cannot compute metric")
	ErrTopologyChanged  = errors.New("layer structure changed between steps")
	errUnexpectedLayers = errors.New("unexpected layer count")
)

// Summary is the result of a metric over a run.
type Summary interface {
	fmt.Stringer

	// MetricName returns the name of the metric that produced this summary.
	MetricName() string
}

// Metric records unit states step by step.
type Metric interface {
	// Name returns the metric name.
	Name() string

	// Reset clears everything recorded.
	Reset()

	// Next records the state of u after a step.
	Next(u neuron.Unit) error

	// Summary summarizes the recorded steps.
	Summary() (Summary, error)

	// Clone returns an empty metric of the same kind.
	Clone() Metric
}

// children returns the sub-layers of u, or nil for a leaf.
func children(u neuron.Unit) []neuron.Unit {
	if l, ok := u.(*neuron.Layered); ok {
		return l.Layers()
	}
	return nil
}

func checkLayers(got, want int) error {
	if got != want {
		return errors.Wrapf(ErrTopologyChanged, "%v: got %d, previously %d", errUnexpectedLayers, got, want)
	}
	return nil
}

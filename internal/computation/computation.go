// Package computation defines how neurons turn their inputs into outputs.
//
// A Computation receives every named input of the unit it is attached to and
// returns the unit's next output. Both strategies here weigh the main input
// through its synapses:
//
//	activation[j] = Σ_i main.values[i] * main.synapses[i, j]
//
// and then binarize the activations.
package computation

import (
	"fmt"
	"math"
	"sort"

	"github.com/pkg/errors"

	"github.com/protobrain/protobrain/internal/synapse"
	"github.com/protobrain/protobrain/internal/tensor"
)

// Computation computes a unit's output from its named inputs.
type Computation interface {
	Compute(inputs synapse.Inputs) (*tensor.Tensor, error)
}

// Func adapts an ordinary function to the Computation interface.
type Func func(inputs synapse.Inputs) (*tensor.Tensor, error)

// Compute implements Computation.
func (f Func) Compute(inputs synapse.Inputs) (*tensor.Tensor, error) {
	return f(inputs)
}

// Activations weighs the main input's values through its synapses.
func Activations(inputs synapse.Inputs) (*tensor.Tensor, error) {
	main, ok := inputs[synapse.Main]
	if !ok {
		return nil, errors.Wrapf(synapse.ErrNotConnected, "no %q input", synapse.Main)
	}
	values, err := main.Values()
	if err != nil {
		return nil, err
	}
	return tensor.Contract(values, main.Synapses())
}

// Standard is a thresholded dot product.
type Standard struct {
	Threshold float64
}

// NewStandard creates a Standard computation.
func NewStandard(threshold float64) *Standard {
	return &Standard{Threshold: threshold}
}

// Compute implements Computation.
// Units whose activation is strictly above the threshold output 1.
func (s *Standard) Compute(inputs synapse.Inputs) (*tensor.Tensor, error) {
	activations, err := Activations(inputs)
	if err != nil {
		return nil, err
	}
	data := activations.Data()
	for i, a := range data {
		if a > s.Threshold {
			data[i] = 1
		} else {
			data[i] = 0
		}
	}
	return activations, nil
}

func (s *Standard) String() string {
	return fmt.Sprintf("StandardComputation(threshold=%g)", s.Threshold)
}

// Sparse activates a fixed number of units: the ones with the highest
// activations (k-winners-take-all).
type Sparse struct {
	count    int
	fraction float64
}

// NewSparse activates exactly n units per step.
func NewSparse(n int) *Sparse {
	return &Sparse{count: n}
}

// NewSparseFraction activates ceil(fraction * units) units per step.
func NewSparseFraction(fraction float64) *Sparse {
	return &Sparse{count: -1, fraction: fraction}
}

// Winners returns how many of size units are activated.
func (s *Sparse) Winners(size int) int {
	n := s.count
	if n < 0 {
		n = int(math.Ceil(s.fraction * float64(size)))
	}
	return min(max(n, 0), size)
}

// Compute implements Computation.
// Ties between equal activations go to the lowest index.
func (s *Sparse) Compute(inputs synapse.Inputs) (*tensor.Tensor, error) {
	activations, err := Activations(inputs)
	if err != nil {
		return nil, err
	}
	data := activations.Data()

	order := make([]int, len(data))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return data[order[a]] > data[order[b]]
	})

	result := tensor.Zeros(activations.Shape())
	winners := result.Data()
	for _, idx := range order[:s.Winners(len(data))] {
		winners[idx] = 1
	}
	return result, nil
}

func (s *Sparse) String() string {
	if s.count < 0 {
		return fmt.Sprintf("SparseComputation(fraction=%g)", s.fraction)
	}
	return fmt.Sprintf("SparseComputation(n=%d)", s.count)
}

// Package learning defines how neurons adapt their synapses.
package learning

import (
	"github.com/pkg/errors"

	"github.com/protobrain/protobrain/internal/synapse"
	"github.com/protobrain/protobrain/internal/tensor"
)

// Unit is the view of a neural unit a learning rule works on.
type Unit interface {
	// Values returns the unit's latest output.
	Values() *tensor.Tensor

	// Inputs returns the unit's named inputs.
	Inputs() synapse.Inputs
}

// Learning adapts the synapses of a unit after it computed its output.
type Learning interface {
	Learn(u Unit) error
}

// Func adapts an ordinary function to the Learning interface.
type Func func(u Unit) error

// Learn implements Learning.
func (f Func) Learn(u Unit) error {
	return f(u)
}

// Default Hebbian rates.
const (
	DefaultIncrease = 0.05
	DefaultDecrease = 0.002
)

// Hebbian strengthens synapses between co-active units and weakens synapses
// where only one side was active.
//
// Synapses at exactly 0 are pruned: they stay at 0 forever. All weights are
// kept in [0, 1].
type Hebbian struct {
	Increase float64
	Decrease float64
}

// NewHebbian creates a Hebbian rule with the given rates.
func NewHebbian(increase, decrease float64) *Hebbian {
	return &Hebbian{Increase: increase, Decrease: decrease}
}

// DefaultHebbian creates a Hebbian rule with the default rates.
func DefaultHebbian() *Hebbian {
	return NewHebbian(DefaultIncrease, DefaultDecrease)
}

// Learn implements Learning.
//
// For producer element i and unit j:
//
//	in active,  out active   → +Increase
//	in active,  out inactive → -Decrease
//	in inactive, out active  → -Decrease
//	both inactive            → unchanged
func (h *Hebbian) Learn(u Unit) error {
	active := u.Values().Data()
	inputs := u.Inputs()

	// Every input is checked before any synapse changes.
	names := inputs.Names()
	activeIns := make([][]float64, len(names))
	for k, name := range names {
		in := inputs[name]
		values, err := in.Values()
		if err != nil {
			return errors.Wrapf(err, "hebbian learning on input %q", name)
		}
		if in.Synapses().NumElements() != values.NumElements()*len(active) {
			return errors.Wrapf(tensor.ErrShapeMismatch,
				"input %q: synapses %v do not connect %v to %d units",
				name, in.Synapses().Shape(), values.Shape(), len(active))
		}
		activeIns[k] = values.Data()
	}

	for k, name := range names {
		h.update(inputs[name].Synapses(), activeIns[k], active)
	}
	return nil
}

func (h *Hebbian) update(synapses *tensor.Tensor, activeIn, active []float64) {
	weights := synapses.Data()
	cols := len(active)
	for i, x := range activeIn {
		inOn := x == 1
		row := weights[i*cols : (i+1)*cols]
		for j, w := range row {
			// Pruned synapses never regrow.
			if w == 0 {
				continue
			}
			outOn := active[j] == 1
			switch {
			case inOn && outOn:
				row[j] = w + h.Increase
			case inOn != outOn:
				row[j] = w - h.Decrease
			}
		}
	}
	synapses.Clip(0, 1)
}

package tensor

import (
	"math"

	"github.com/pkg/errors"
)

// End marks an open upper bound in a Range.
const End = math.MaxInt

// Range selects elements [Start, Stop) along one axis.
//
// Negative bounds count from the end of the axis, and bounds past either end
// are clamped, so Range{-2, End} selects the last two elements of any axis.
type Range struct {
	Start int
	Stop  int
}

// Span selects [start, stop).
func Span(start, stop int) Range {
	return Range{Start: start, Stop: stop}
}

// From selects everything from start to the end of the axis.
func From(start int) Range {
	return Range{Start: start, Stop: End}
}

// Upto selects the first stop elements.
func Upto(stop int) Range {
	return Range{Start: 0, Stop: stop}
}

// All selects the whole axis.
func All() Range {
	return Range{Start: 0, Stop: End}
}

// resolve maps the range onto an axis of the given size.
func (r Range) resolve(size int) (lo, hi int) {
	norm := func(i int) int {
		if i < 0 {
			i += size
		}
		return min(max(i, 0), size)
	}
	lo, hi = norm(r.Start), norm(r.Stop)
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// SliceShape computes the shape selected by ranges on a tensor of shape s.
// Axes without a range are taken whole.
func SliceShape(s Shape, ranges ...Range) (Shape, error) {
	if len(ranges) > len(s) {
		return nil, errors.Wrapf(ErrIndex, "%d ranges for a tensor of rank %d", len(ranges), len(s))
	}
	out := s.Clone()
	for axis, r := range ranges {
		lo, hi := r.resolve(s[axis])
		out[axis] = hi - lo
	}
	return out, nil
}

// Slice copies the sub-tensor selected by ranges.
// The result may have zero-sized axes.
func (t *Tensor) Slice(ranges ...Range) (*Tensor, error) {
	shape, err := SliceShape(t.shape, ranges...)
	if err != nil {
		return nil, err
	}

	rank := len(t.shape)
	starts := make([]int, rank)
	for axis, r := range ranges {
		starts[axis], _ = r.resolve(t.shape[axis])
	}

	out := &Tensor{shape: shape, data: make([]float64, shape.NumElements())}
	if len(out.data) == 0 {
		return out, nil
	}

	srcStrides := t.shape.ComputeStrides()
	dstStrides := shape.ComputeStrides()
	for pos := range out.data {
		rem, src := pos, 0
		for axis := 0; axis < rank; axis++ {
			idx := rem / dstStrides[axis]
			rem %= dstStrides[axis]
			src += (starts[axis] + idx) * srcStrides[axis]
		}
		out.data[pos] = t.data[src]
	}
	return out, nil
}

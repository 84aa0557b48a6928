package tensor

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Concat joins tensors along axis.
//
// The inputs are not modified; the result owns fresh storage.
func Concat(axis int, tensors ...*Tensor) (*Tensor, error) {
	shapes := make([]Shape, len(tensors))
	for i, t := range tensors {
		shapes[i] = t.shape
	}
	shape, err := ConcatShapes(axis, shapes...)
	if err != nil {
		return nil, err
	}

	// outer iterates the axes before axis; each tensor then contributes one
	// contiguous block per outer position.
	outer := Shape(shape[:axis]).NumElements()
	data := make([]float64, 0, shape.NumElements())
	for o := 0; o < outer; o++ {
		for _, t := range tensors {
			block := Shape(t.shape[axis:]).NumElements()
			data = append(data, t.data[o*block:(o+1)*block]...)
		}
	}
	return &Tensor{shape: shape, data: data}, nil
}

// Contract sums values against weights over all axes of values.
//
// With values of shape P and weights of shape P+Q the result has shape Q:
//
//	out[q] = Σ_p values[p] * weights[p, q]
//
// For a vector and a matrix this is the usual vector-matrix product.
func Contract(values, weights *Tensor) (*Tensor, error) {
	vs, ws := values.shape, weights.shape
	if len(ws) < len(vs) || !Shape(ws[:len(vs)]).Equal(vs) {
		return nil, errors.Wrapf(ErrShapeMismatch, "cannot contract values %v with weights %v", vs, ws)
	}

	outShape := Shape(ws[len(vs):]).Clone()
	p, q := vs.NumElements(), outShape.NumElements()
	out := &Tensor{shape: outShape, data: make([]float64, q)}
	if p == 0 || q == 0 {
		return out, nil
	}

	v := mat.NewVecDense(p, values.data)
	w := mat.NewDense(p, q, weights.data)
	var r mat.VecDense
	r.MulVec(w.T(), v)
	for i := range out.data {
		out.data[i] = r.AtVec(i)
	}
	return out, nil
}

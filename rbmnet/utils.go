package rbm

import (
	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
	"gorgonia.org/tensor/native"
	"gorgonia.org/vecf32"
)

// Float is the element type of every tensor the RBM works with.
var Float = tensor.Float32

type slicer struct {
	v   tensor.View
	err error
}

func (s *slicer) Slice(a *tensor.Dense, slices ...tensor.Slice) *tensor.Dense {
	if s.err != nil {
		return nil
	}
	if s.v, s.err = a.Slice(slices...); s.err != nil {
		s.err = errors.Wrapf(s.err, "Slicer failed") // get a stack trace
		return nil
	}
	return s.v.(*tensor.Dense)
}

type rs struct {
	start, end, step int
}

func (s rs) Start() int { return s.start }
func (s rs) End() int   { return s.end }
func (s rs) Step() int  { return s.step }

// s creates a ranged slice. It takes an optional step param.
func sli(start, end int, opts ...int) rs {
	step := 1
	if len(opts) > 0 {
		step = opts[0]
	}
	return rs{
		start: start,
		end:   end,
		step:  step,
	}
}

// newMatrix returns a zeroed r×c matrix.
func newMatrix(r, c int) *tensor.Dense {
	return tensor.New(tensor.WithShape(r, c), tensor.WithBacking(make([]float32, r*c)))
}

func newVector(n int) *tensor.Dense {
	return tensor.New(tensor.WithShape(n), tensor.WithBacking(make([]float32, n)))
}

// contiguous returns a, or a materialized copy of it if a is a view.
func contiguous(a *tensor.Dense) *tensor.Dense {
	if a.IsMaterializable() {
		return a.Materialize().(*tensor.Dense)
	}
	return a
}

// checkMatrix ensures a is a float32 matrix with the given number of columns
// and returns a contiguous version of it.
func checkMatrix(a *tensor.Dense, cols int, what string) (*tensor.Dense, error) {
	if a == nil {
		return nil, errors.Wrapf(ErrDimensionMismatch, "%s is nil", what)
	}
	if a.Dtype() != Float {
		return nil, errors.Wrapf(ErrDimensionMismatch, "%s has dtype %v, expected %v", what, a.Dtype(), Float)
	}
	shp := a.Shape()
	if shp.Dims() != 2 {
		return nil, errors.Wrapf(ErrDimensionMismatch, "%s has shape %v, expected a matrix", what, shp)
	}
	if shp[0] == 0 {
		return nil, errors.Wrapf(ErrDimensionMismatch, "%s has no rows", what)
	}
	if shp[1] != cols {
		return nil, errors.Wrapf(ErrDimensionMismatch, "%s has %d columns, expected %d", what, shp[1], cols)
	}
	return contiguous(a), nil
}

func rows(a *tensor.Dense) [][]float32 {
	retVal, err := native.MatrixF32(a)
	if err != nil {
		panic(err) // a is always a checked float32 matrix here
	}
	return retVal
}

func floats(a *tensor.Dense) []float32 { return a.Data().([]float32) }

// transpose returns a materialized transpose of the matrix a. a is left untouched.
func transpose(a *tensor.Dense) (*tensor.Dense, error) {
	retVal := a.Clone().(*tensor.Dense)
	if err := retVal.T(); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := retVal.Transpose(); err != nil {
		return nil, errors.WithStack(err)
	}
	return retVal, nil
}

// affine computes a·b + bias, with bias broadcast across the rows.
func affine(a, b *tensor.Dense, bias []float32) (*tensor.Dense, error) {
	retVal, err := a.MatMul(b)
	if err != nil {
		return nil, errors.Wrapf(err, "matmul %v × %v", a.Shape(), b.Shape())
	}
	for _, row := range rows(retVal) {
		vecf32.Add(row, bias)
	}
	return retVal, nil
}

func sigmoid(x float32) float32 { return 1 / (1 + math32.Exp(-x)) }

// sigmoidInPlace applies the logistic function to every entry of a.
func sigmoidInPlace(a *tensor.Dense) *tensor.Dense {
	data := floats(a)
	for i, v := range data {
		data[i] = sigmoid(v)
	}
	return a
}

// colMean returns the mean of each column of a matrix.
func colMean(a *tensor.Dense) []float32 {
	shp := a.Shape()
	retVal := make([]float32, shp[1])
	for _, row := range rows(a) {
		vecf32.Add(retVal, row)
	}
	if shp[0] > 0 {
		vecf32.Scale(retVal, 1/float32(shp[0]))
	}
	return retVal
}

func cloneDense(a *tensor.Dense) *tensor.Dense { return a.Clone().(*tensor.Dense) }

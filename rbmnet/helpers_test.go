package rbm

import (
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
	"gorgonia.org/tensor"
	"gorgonia.org/tensor/native"
)

func dense(r, c int, data ...float32) *tensor.Dense {
	if len(data) == 0 {
		data = make([]float32, r*c)
	}
	return tensor.New(tensor.WithShape(r, c), tensor.WithBacking(data))
}

func mat(t *testing.T, a *tensor.Dense) [][]float32 {
	t.Helper()
	retVal, err := native.MatrixF32(a)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	return retVal
}

// newTestRBM creates an RBM with a fixed seed, failing the test on error.
func newTestRBM(t *testing.T, conf Config, seed int64) *RBM {
	t.Helper()
	m, err := New(conf, WithRand(rand.New(rand.NewSource(seed))))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	return m
}

// binaryBatch returns a batch of rows×cols 0/1 values.
func binaryBatch(r *rand.Rand, rows, cols int) *tensor.Dense {
	data := make([]float32, rows*cols)
	for i := range data {
		if r.Intn(2) == 1 {
			data[i] = 1
		}
	}
	return dense(rows, cols, data...)
}

// hasNaN reports whether any entry is NaN or infinite.
func hasNaN(a []float32) bool {
	for _, v := range a {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return true
		}
	}
	return false
}

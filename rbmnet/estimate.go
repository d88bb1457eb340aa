package rbm

import (
	"math"

	"gorgonia.org/tensor"
	"gorgonia.org/vecf32"
)

// normEpsilon is the floor on the squared row norm when normalizing rows. A zero row normalizes to zero.
const normEpsilon = 1e-12

// Error computes the reconstruction error of the batch x, using the configured ErrorMode.
func (m *RBM) Error(x *tensor.Dense) (float32, error) {
	x, err := checkMatrix(x, m.Visible, "visible batch")
	if err != nil {
		return 0, err
	}
	recon, err := m.reconstruct(x)
	if err != nil {
		return 0, err
	}
	switch m.Err {
	case CosineAngle:
		return cosineAngle(x, recon), nil
	default:
		return meanSquared(floats(x), floats(recon)), nil
	}
}

// meanSquared returns mean((a - b)²)
func meanSquared(a, b []float32) float32 {
	if len(a) == 0 {
		return 0
	}
	diff := make([]float32, len(a))
	copy(diff, a)
	vecf32.Sub(diff, b)
	vecf32.Mul(diff, diff)
	return vecf32.Sum(diff) / float32(len(diff))
}

// cosineAngle L2 normalizes the rows of a and b, averages the cosine similarity of
// corresponding rows and maps it to an angle in [0, 1] with acos(cos)/π.
//
// Accumulation is done in float64 so that identical rows give a cosine of exactly 1.
func cosineAngle(a, b *tensor.Dense) float32 {
	aRows, bRows := rows(a), rows(b)
	if len(aRows) == 0 {
		return 0
	}
	var sum float64
	for i := range aRows {
		ab, aa, bb := dots(aRows[i], bRows[i])
		sum += ab / math.Sqrt(math.Max(aa, normEpsilon)*math.Max(bb, normEpsilon))
	}
	cos := sum / float64(len(aRows))

	// rounding can push cos slightly past ±1, where acos is NaN
	switch {
	case cos > 1:
		cos = 1
	case cos < -1:
		cos = -1
	case math.IsNaN(cos):
		cos = 0
	}
	return float32(math.Acos(cos) / math.Pi)
}

// dots returns a·b, a·a and b·b.
func dots(a, b []float32) (ab, aa, bb float64) {
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		ab += x * y
		aa += x * x
		bb += y * y
	}
	return
}

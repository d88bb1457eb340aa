package rbm

import (
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// XavierBound is the half width of the interval XavierInit draws from.
func XavierBound(nVisible, nHidden int, constant float32) float32 {
	return constant * math32.Sqrt(6/float32(nVisible+nHidden))
}

// XavierInit returns a nVisible×nHidden matrix drawn uniformly from [-b, b], where
// b = constant * sqrt(6 / (nVisible + nHidden)).
func XavierInit(r *rand.Rand, nVisible, nHidden int, constant float32) (*tensor.Dense, error) {
	if nVisible <= 0 || nHidden <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimension, "xavier init of %d×%d", nVisible, nHidden)
	}
	bound := XavierBound(nVisible, nHidden, constant)
	retVal := newMatrix(nVisible, nHidden)
	data := floats(retVal)
	for i := range data {
		data[i] = (2*r.Float32() - 1) * bound
	}
	return retVal, nil
}

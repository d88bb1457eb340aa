package rbm

import (
	"math/rand"

	"gorgonia.org/tensor"
)

// SampleBernoulli draws a 0/1 tensor the shape of p, where each entry is 1 with probability p.
// Entries are drawn in row-major order, so equal seeds give equal samples.
func SampleBernoulli(r *rand.Rand, p *tensor.Dense) *tensor.Dense {
	retVal := cloneDense(p)
	data := floats(retVal)
	for i, prob := range data {
		if r.Float32() < prob {
			data[i] = 1
		} else {
			data[i] = 0
		}
	}
	return retVal
}

// SampleGaussian draws a tensor the shape of mean, with each entry from N(mean, sigma²).
func SampleGaussian(r *rand.Rand, mean *tensor.Dense, sigma float32) *tensor.Dense {
	retVal := cloneDense(mean)
	data := floats(retVal)
	for i, mu := range data {
		data[i] = mu + sigma*float32(r.NormFloat64())
	}
	return retVal
}

package rbm

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSampleBernoulli(t *testing.T) {
	assert := assert.New(t)
	r := rand.New(rand.NewSource(1337))

	p := dense(2, 3, 0, 1, 0.5, 0, 1, 0.5)
	s := SampleBernoulli(r, p)
	assert.Equal(p.Shape(), s.Shape())
	data := floats(s)
	assert.Equal(float32(0), data[0])
	assert.Equal(float32(1), data[1])
	assert.Equal(float32(0), data[3])
	assert.Equal(float32(1), data[4])
	for _, v := range data {
		assert.True(v == 0 || v == 1, "%v is not binary", v)
	}
	assert.Equal([]float32{0, 1, 0.5, 0, 1, 0.5}, floats(p), "p should not be mutated")

	// frequency of ones follows p
	probs := make([]float32, 10000)
	for i := range probs {
		probs[i] = 0.3
	}
	s = SampleBernoulli(r, dense(100, 100, probs...))
	var ones float32
	for _, v := range floats(s) {
		ones += v
	}
	assert.InDelta(0.3, ones/10000, 0.02)
}

func TestSampleGaussian(t *testing.T) {
	assert := assert.New(t)
	r := rand.New(rand.NewSource(1337))

	mean := dense(1, 3, -1, 0, 5)
	s := SampleGaussian(r, mean, 0)
	assert.Equal(floats(mean), floats(s), "a sigma of 0 should return the mean")

	means := make([]float32, 10000)
	for i := range means {
		means[i] = 2
	}
	s = SampleGaussian(r, dense(100, 100, means...), 0.5)
	var sum, sq float32
	for _, v := range floats(s) {
		sum += v
	}
	mu := sum / 10000
	for _, v := range floats(s) {
		sq += (v - mu) * (v - mu)
	}
	assert.InDelta(2, mu, 0.05)
	assert.InDelta(0.25, sq/10000, 0.05)
}

func TestSamplersAreReproducible(t *testing.T) {
	p := dense(3, 3, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9)
	r1 := rand.New(rand.NewSource(42))
	r2 := rand.New(rand.NewSource(42))

	assert.Equal(t, floats(SampleBernoulli(r1, p)), floats(SampleBernoulli(r2, p)))
	assert.Equal(t, floats(SampleGaussian(r1, p, 1)), floats(SampleGaussian(r2, p, 1)))
}

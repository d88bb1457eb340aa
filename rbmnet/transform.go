package rbm

import (
	"math/rand"

	"gorgonia.org/tensor"
)

// hiddenFromVisible computes p(h|v) and a sample of h. For gaussian hidden units the
// "probability" is the pre-activation itself.
func (m *RBM) hiddenFromVisible(r *rand.Rand, x *tensor.Dense) (prob, sample *tensor.Dense, err error) {
	if prob, err = affine(x, m.w, floats(m.hb)); err != nil {
		return nil, nil, err
	}
	switch m.HiddenUnit {
	case Bernoulli:
		sigmoidInPlace(prob)
		sample = SampleBernoulli(r, prob)
	case Gaussian:
		sample = SampleGaussian(r, prob, m.Sigma)
	}
	return prob, sample, nil
}

// hiddenProb is hiddenFromVisible without the sampling.
func (m *RBM) hiddenProb(x *tensor.Dense) (*tensor.Dense, error) {
	prob, err := affine(x, m.w, floats(m.hb))
	if err != nil {
		return nil, err
	}
	if m.HiddenUnit == Bernoulli {
		sigmoidInPlace(prob)
	}
	return prob, nil
}

// visibleFromHidden reconstructs the visible layer. Bernoulli visible units return
// the probability and are not resampled; gaussian ones return a fresh sample.
func (m *RBM) visibleFromHidden(r *rand.Rand, h, wT *tensor.Dense) (*tensor.Dense, error) {
	aux, err := affine(h, wT, floats(m.vb))
	if err != nil {
		return nil, err
	}
	switch m.VisibleUnit {
	case Bernoulli:
		return sigmoidInPlace(aux), nil
	case Gaussian:
		return SampleGaussian(r, aux, m.Sigma), nil
	}
	return aux, nil
}

// visibleProb is the deterministic decoder.
func (m *RBM) visibleProb(h, wT *tensor.Dense) (*tensor.Dense, error) {
	aux, err := affine(h, wT, floats(m.vb))
	if err != nil {
		return nil, err
	}
	if m.VisibleUnit == Bernoulli {
		sigmoidInPlace(aux)
	}
	return aux, nil
}

// Transform encodes a batch of visible vectors into their hidden representation.
// This is deterministic: it returns probabilities (or the identity for gaussian units), never samples.
func (m *RBM) Transform(x *tensor.Dense) (*tensor.Dense, error) {
	x, err := checkMatrix(x, m.Visible, "visible batch")
	if err != nil {
		return nil, err
	}
	return m.hiddenProb(x)
}

// TransformInv decodes an externally supplied batch of hidden vectors.
func (m *RBM) TransformInv(h *tensor.Dense) (*tensor.Dense, error) {
	h, err := checkMatrix(h, m.Hidden, "hidden batch")
	if err != nil {
		return nil, err
	}
	wT, err := transpose(m.w)
	if err != nil {
		return nil, err
	}
	return m.visibleProb(h, wT)
}

// Reconstruct encodes then decodes x.
func (m *RBM) Reconstruct(x *tensor.Dense) (*tensor.Dense, error) {
	x, err := checkMatrix(x, m.Visible, "visible batch")
	if err != nil {
		return nil, err
	}
	return m.reconstruct(x)
}

func (m *RBM) reconstruct(x *tensor.Dense) (*tensor.Dense, error) {
	h, err := m.hiddenProb(x)
	if err != nil {
		return nil, err
	}
	wT, err := transpose(m.w)
	if err != nil {
		return nil, err
	}
	return m.visibleProb(h, wT)
}

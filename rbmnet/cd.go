package rbm

import (
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
	"gorgonia.org/vecf32"
)

// step holds everything one round of CD-1 produces before it is committed to the model.
type step struct {
	hProb, hSample *tensor.Dense // positive phase
	vRecon         *tensor.Dense // reconstruction of the visible layer
	hReconProb     *tensor.Dense // negative phase

	dw, dvb, dhb []float32 // new momentum deltas
}

// PartialFit performs one step of contrastive divergence on the batch x.
//
// Either the whole update is applied, or (on error) the model is left untouched.
func (m *RBM) PartialFit(x *tensor.Dense) error {
	x, err := checkMatrix(x, m.Visible, "visible batch")
	if err != nil {
		return err
	}
	s, err := m.contrastiveDivergence(x)
	if err != nil {
		return err
	}
	m.apply(s)
	return nil
}

// contrastiveDivergence runs the positive and negative phases and derives the momentum smoothed deltas.
func (m *RBM) contrastiveDivergence(x *tensor.Dense) (s step, err error) {
	batchSize := float32(x.Shape()[0])

	if s.hProb, s.hSample, err = m.hiddenFromVisible(m.r, x); err != nil {
		return s, errors.WithMessage(err, "positive phase")
	}
	wT, err := transpose(m.w)
	if err != nil {
		return s, err
	}
	if s.vRecon, err = m.visibleFromHidden(m.r, s.hSample, wT); err != nil {
		return s, errors.WithMessage(err, "reconstruction")
	}
	if s.hReconProb, err = m.hiddenProb(s.vRecon); err != nil {
		return s, errors.WithMessage(err, "negative phase")
	}

	// weights: Xᵀ·p(h|x) - v'ᵀ·p(h|v')
	xT, err := transpose(x)
	if err != nil {
		return s, err
	}
	pos, err := xT.MatMul(s.hProb)
	if err != nil {
		return s, errors.Wrap(err, "positive gradient")
	}
	vReconT, err := transpose(s.vRecon)
	if err != nil {
		return s, err
	}
	neg, err := vReconT.MatMul(s.hReconProb)
	if err != nil {
		return s, errors.Wrap(err, "negative gradient")
	}
	gradW := floats(pos)
	vecf32.Sub(gradW, floats(neg))

	// biases
	diffV := borrowScratch(x.Shape().TotalSize())
	copy(diffV, floats(x))
	vecf32.Sub(diffV, floats(s.vRecon))
	gradVB := colMean(tensor.New(tensor.WithShape(x.Shape()...), tensor.WithBacking(diffV)))
	returnScratch(diffV)

	diffH := borrowScratch(s.hProb.Shape().TotalSize())
	copy(diffH, floats(s.hProb))
	vecf32.Sub(diffH, floats(s.hReconProb))
	gradHB := colMean(tensor.New(tensor.WithShape(s.hProb.Shape()...), tensor.WithBacking(diffH)))
	returnScratch(diffH)

	s.dw = m.momentumDelta(floats(m.dw), gradW, batchSize)
	s.dvb = m.momentumDelta(floats(m.dvb), gradVB, batchSize)
	s.dhb = m.momentumDelta(floats(m.dhb), gradHB, batchSize)
	return s, nil
}

// momentumDelta computes
//	momentum * old + learnRate * grad * (1 - momentum) / batchSize
// into a new slice. grad is clobbered.
func (m *RBM) momentumDelta(old, grad []float32, batchSize float32) []float32 {
	retVal := make([]float32, len(old))
	copy(retVal, old)
	vecf32.Scale(retVal, m.Momentum)
	vecf32.Scale(grad, m.LearnRate*(1-m.Momentum)/batchSize)
	vecf32.Add(retVal, grad)
	return retVal
}

// apply commits the deltas of a step: the parameters move by the deltas, and the deltas become the new accumulators.
func (m *RBM) apply(s step) {
	vecf32.Add(floats(m.w), s.dw)
	vecf32.Add(floats(m.vb), s.dvb)
	vecf32.Add(floats(m.hb), s.dhb)

	copy(floats(m.dw), s.dw)
	copy(floats(m.dvb), s.dvb)
	copy(floats(m.dhb), s.dhb)
}

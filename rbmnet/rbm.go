package rbm

import (
	"bytes"
	"encoding/gob"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// RBM is a restricted boltzmann machine trained with one step contrastive divergence.
//
// The parameters and the momentum accumulators are mutated in place by PartialFit.
// An *RBM must not be used from multiple goroutines at once.
type RBM struct {
	Config

	w  *tensor.Dense // Visible × Hidden
	vb *tensor.Dense // Visible
	hb *tensor.Dense // Hidden

	// momentum accumulators. Never persisted.
	dw  *tensor.Dense
	dvb *tensor.Dense
	dhb *tensor.Dense

	r      *rand.Rand
	logger *log.Logger
}

// Option configures the non-parameter state of a *RBM.
type Option func(m *RBM)

// WithRand makes the RBM draw all its samples from r.
func WithRand(r *rand.Rand) Option {
	return func(m *RBM) { m.r = r }
}

// WithSeed seeds the random source of the RBM.
func WithSeed(seed int64) Option {
	return func(m *RBM) { m.r = rand.New(rand.NewSource(seed)) }
}

// WithLogger sets the logger used for verbose training output.
func WithLogger(l *log.Logger) Option {
	return func(m *RBM) { m.logger = l }
}

// New creates a new RBM with xavier initialized weights and zeroed biases.
func New(conf Config, opts ...Option) (*RBM, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	retVal := &RBM{Config: conf}
	for _, opt := range opts {
		opt(retVal)
	}
	if retVal.r == nil {
		retVal.r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if retVal.logger == nil {
		retVal.logger = log.New(os.Stderr, "", 0)
	}

	var err error
	if retVal.w, err = XavierInit(retVal.r, conf.Visible, conf.Hidden, conf.XavierConst); err != nil {
		return nil, err
	}
	retVal.vb = newVector(conf.Visible)
	retVal.hb = newVector(conf.Hidden)
	retVal.ResetMomentum()
	return retVal, nil
}

// ResetMomentum zeroes the momentum accumulators.
func (m *RBM) ResetMomentum() {
	m.dw = newMatrix(m.Visible, m.Hidden)
	m.dvb = newVector(m.Visible)
	m.dhb = newVector(m.Hidden)
}

// Weights returns copies of the weight matrix, the visible bias and the hidden bias.
func (m *RBM) Weights() (w, visibleBias, hiddenBias *tensor.Dense) {
	return cloneDense(m.w), cloneDense(m.vb), cloneDense(m.hb)
}

// Deltas returns copies of the momentum accumulators, in the same order as Weights.
func (m *RBM) Deltas() (dw, dVisibleBias, dHiddenBias *tensor.Dense) {
	return cloneDense(m.dw), cloneDense(m.dvb), cloneDense(m.dhb)
}

// SetWeights overwrites the parameters with copies of the given tensors.
// The momentum accumulators are left as they are.
func (m *RBM) SetWeights(w, visibleBias, hiddenBias *tensor.Dense) error {
	w2, vb2, hb2, err := m.checkParams(w, visibleBias, hiddenBias)
	if err != nil {
		return err
	}
	m.w, m.vb, m.hb = w2, vb2, hb2
	return nil
}

// checkParams validates the shapes of a candidate parameter set and returns contiguous copies.
func (m *RBM) checkParams(w, visibleBias, hiddenBias *tensor.Dense) (w2, vb2, hb2 *tensor.Dense, err error) {
	if w == nil || visibleBias == nil || hiddenBias == nil {
		return nil, nil, nil, errors.Wrap(ErrDimensionMismatch, "nil parameter")
	}
	expected := []struct {
		name string
		t    *tensor.Dense
		shp  tensor.Shape
	}{
		{"weights", w, tensor.Shape{m.Visible, m.Hidden}},
		{"visible bias", visibleBias, tensor.Shape{m.Visible}},
		{"hidden bias", hiddenBias, tensor.Shape{m.Hidden}},
	}
	for _, e := range expected {
		if e.t.Dtype() != Float {
			return nil, nil, nil, errors.Wrapf(ErrDimensionMismatch, "%s has dtype %v, expected %v", e.name, e.t.Dtype(), Float)
		}
		if !sameShape(e.t.Shape(), e.shp) {
			return nil, nil, nil, errors.Wrapf(ErrDimensionMismatch, "%s has shape %v, expected %v", e.name, e.t.Shape(), e.shp)
		}
	}
	return cloneDense(contiguous(w)), cloneDense(contiguous(visibleBias)), cloneDense(contiguous(hiddenBias)), nil
}

// sameShape is a strict shape comparison. Unlike tensor.Shape.Eq, a (1, n) matrix is not the same as a (n) vector.
func sameShape(a, b tensor.Shape) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// gobRBM is the on-the-wire representation of a *RBM.
type gobRBM struct {
	Config    Config
	W, VB, HB *tensor.Dense
}

func (m *RBM) GobEncode() (retVal []byte, err error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	g := gobRBM{Config: m.Config, W: m.w, VB: m.vb, HB: m.hb}
	if err = enc.Encode(&g); err != nil {
		return nil, errors.WithStack(err)
	}
	return buf.Bytes(), nil
}

// GobDecode restores the configuration and parameters. The momentum is reset, and
// a random source is created if the RBM does not already have one.
func (m *RBM) GobDecode(p []byte) error {
	var g gobRBM
	dec := gob.NewDecoder(bytes.NewBuffer(p))
	if err := dec.Decode(&g); err != nil {
		return errors.WithStack(err)
	}
	if err := g.Config.Validate(); err != nil {
		return err
	}

	tmp := &RBM{Config: g.Config}
	w, vb, hb, err := tmp.checkParams(g.W, g.VB, g.HB)
	if err != nil {
		return err
	}
	m.Config = g.Config
	m.w, m.vb, m.hb = w, vb, hb
	m.ResetMomentum()
	if m.r == nil {
		m.r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if m.logger == nil {
		m.logger = log.New(os.Stderr, "", 0)
	}
	return nil
}

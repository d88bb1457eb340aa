package rbm

import (
	"github.com/pkg/errors"
	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// Inferencer holds a gorgonia graph of the deterministic encode/decode path of an RBM and a VM to run it.
// The graph is built from a copy of the parameters at the time Infer is called, so training the RBM
// afterwards does not change the Inferencer.
type Inferencer struct {
	conf      Config
	batchSize int

	g       *G.ExprGraph
	x       *G.Node
	hidden  *G.Node
	visible *G.Node

	hiddenVal  G.Value
	visibleVal G.Value

	m G.VM
}

// Infer takes a *RBM and creates an inference data structure for batches of exactly batchSize rows.
func Infer(m *RBM, batchSize int) (*Inferencer, error) {
	if batchSize <= 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "batch size should be > 0, got %d", batchSize)
	}
	w, vb, hb := m.Weights()
	if err := vb.Reshape(1, m.Visible); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := hb.Reshape(1, m.Hidden); err != nil {
		return nil, errors.WithStack(err)
	}

	retVal := &Inferencer{
		conf:      m.Config,
		batchSize: batchSize,
		g:         G.NewGraph(),
	}
	g := retVal.g
	retVal.x = G.NewMatrix(g, Float, G.WithShape(batchSize, m.Visible), G.WithName("x"))
	wn := G.NewMatrix(g, Float, G.WithShape(m.Visible, m.Hidden), G.WithName("w"), G.WithValue(w))
	vbn := G.NewMatrix(g, Float, G.WithShape(1, m.Visible), G.WithName("visibleBias"), G.WithValue(vb))
	hbn := G.NewMatrix(g, Float, G.WithShape(1, m.Hidden), G.WithName("hiddenBias"), G.WithValue(hb))

	var mb maebe
	retVal.hidden = mb.activate(mb.linear(retVal.x, wn, hbn), m.HiddenUnit)
	retVal.visible = mb.activate(mb.linear(retVal.hidden, mb.transpose(wn), vbn), m.VisibleUnit)
	if mb.err != nil {
		return nil, mb.err
	}
	G.Read(retVal.hidden, &retVal.hiddenVal)
	G.Read(retVal.visible, &retVal.visibleVal)

	retVal.m = G.NewTapeMachine(g)
	return retVal, nil
}

// BatchSize is the number of rows every batch given to the Inferencer must have.
func (inf *Inferencer) BatchSize() int { return inf.batchSize }

func (inf *Inferencer) run(x *tensor.Dense) error {
	x, err := checkMatrix(x, inf.conf.Visible, "visible batch")
	if err != nil {
		return err
	}
	if x.Shape()[0] != inf.batchSize {
		return errors.Wrapf(ErrDimensionMismatch, "batch has %d rows, inferencer was built for %d", x.Shape()[0], inf.batchSize)
	}
	inf.m.Reset()
	if err = G.Let(inf.x, x); err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(inf.m.RunAll())
}

// Transform encodes x. See (*RBM).Transform.
func (inf *Inferencer) Transform(x *tensor.Dense) (*tensor.Dense, error) {
	if err := inf.run(x); err != nil {
		return nil, err
	}
	return valueToDense(inf.hiddenVal)
}

// Reconstruct encodes then decodes x. See (*RBM).Reconstruct.
func (inf *Inferencer) Reconstruct(x *tensor.Dense) (*tensor.Dense, error) {
	if err := inf.run(x); err != nil {
		return nil, err
	}
	return valueToDense(inf.visibleVal)
}

// Close implements a closer, because well, a gorgonia VM is a resource.
func (inf *Inferencer) Close() error { return inf.m.Close() }

// valueToDense copies a value read out of the graph, as the VM reuses its memory between runs.
func valueToDense(v G.Value) (*tensor.Dense, error) {
	t, ok := v.(*tensor.Dense)
	if !ok {
		return nil, errors.Errorf("expected a *tensor.Dense out of the graph, got %T", v)
	}
	return cloneDense(t), nil
}

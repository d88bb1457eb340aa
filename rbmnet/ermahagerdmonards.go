package rbm

import (
	"github.com/pkg/errors"
	G "gorgonia.org/gorgonia"
)

// maebe carries the first error that happens while building a graph.
type maebe struct {
	err error
}

// generic monad... may be useful
func (m *maebe) do(f func() (*G.Node, error)) (retVal *G.Node) {
	if m.err != nil {
		return nil
	}
	if retVal, m.err = f(); m.err != nil {
		m.err = errors.WithStack(m.err)
	}
	return
}

// linear computes input·w + b, where b is a 1×n row broadcast over the rows of input·w.
func (m *maebe) linear(input, w, b *G.Node) *G.Node {
	xw := m.do(func() (*G.Node, error) { return G.Mul(input, w) })
	return m.do(func() (*G.Node, error) { return G.BroadcastAdd(xw, b, nil, []byte{0}) })
}

// activate applies the activation of the given unit type. Gaussian units are linear.
func (m *maebe) activate(input *G.Node, unit UnitType) *G.Node {
	if m.err != nil {
		return nil
	}
	if unit == Gaussian {
		return input
	}
	return m.do(func() (*G.Node, error) { return G.Sigmoid(input) })
}

func (m *maebe) transpose(input *G.Node) *G.Node {
	return m.do(func() (*G.Node, error) { return G.Transpose(input) })
}

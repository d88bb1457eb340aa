package rbm

import (
	"fmt"

	"github.com/awalterschulze/gographviz"
	"github.com/chewxy/math32"
	"github.com/pkg/errors"
)

const (
	graphName   = "RBM"
	maxPenWidth = 4
)

// ToDot returns the RBM as a graphviz graph: the visible and the hidden layer are clusters,
// and every weight is an undirected edge whose width is proportional to its magnitude.
func (m *RBM) ToDot() (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName(graphName); err != nil {
		return "", errors.WithStack(err)
	}
	g.SetDir(false)
	if err := g.AddAttr(graphName, "rankdir", "LR"); err != nil {
		return "", errors.WithStack(err)
	}

	vb, hb := floats(m.vb), floats(m.hb)
	layers := []struct {
		cluster, prefix, label string
		unit                   UnitType
		bias                   []float32
	}{
		{"cluster_visible", "v", "visible", m.VisibleUnit, vb},
		{"cluster_hidden", "h", "hidden", m.HiddenUnit, hb},
	}
	for _, l := range layers {
		if err := g.AddSubGraph(graphName, l.cluster, map[string]string{
			"label": fmt.Sprintf("%q", fmt.Sprintf("%s (%v)", l.label, l.unit)),
		}); err != nil {
			return "", errors.WithStack(err)
		}
		for i, b := range l.bias {
			attrs := map[string]string{
				"shape": "circle",
				"label": fmt.Sprintf("%q", fmt.Sprintf("%s%d\nb=%.3f", l.prefix, i, b)),
			}
			if err := g.AddNode(l.cluster, fmt.Sprintf("%s%d", l.prefix, i), attrs); err != nil {
				return "", errors.WithStack(err)
			}
		}
	}

	w := floats(m.w)
	var maxAbs float32
	for _, v := range w {
		maxAbs = math32.Max(maxAbs, math32.Abs(v))
	}
	for i := 0; i < m.Visible; i++ {
		for j := 0; j < m.Hidden; j++ {
			v := w[i*m.Hidden+j]
			width := float32(1)
			if maxAbs > 0 {
				width = 0.25 + maxPenWidth*math32.Abs(v)/maxAbs
			}
			colour := "black"
			if v < 0 {
				colour = "red"
			}
			attrs := map[string]string{
				"label":    fmt.Sprintf("%q", fmt.Sprintf("%.3f", v)),
				"penwidth": fmt.Sprintf("%.2f", width),
				"color":    colour,
			}
			if err := g.AddEdge(fmt.Sprintf("v%d", i), fmt.Sprintf("h%d", j), false, attrs); err != nil {
				return "", errors.WithStack(err)
			}
		}
	}
	return g.String(), nil
}

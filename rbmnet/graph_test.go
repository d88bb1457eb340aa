package rbm

import (
	"strings"
	"testing"

	"github.com/awalterschulze/gographviz"
	"github.com/stretchr/testify/assert"
	"gorgonia.org/tensor"
)

func TestRBM_ToDot(t *testing.T) {
	m := newTestRBM(t, DefaultConf(3, 2), 1)
	w := dense(3, 2, 1, -0.5, 0, 2, -2, 0.25)
	vb := tensor.New(tensor.WithShape(3), tensor.WithBacking([]float32{0, 0.5, -0.5}))
	hb := tensor.New(tensor.WithShape(2), tensor.WithBacking([]float32{1, -1}))
	if err := m.SetWeights(w, vb, hb); err != nil {
		t.Fatalf("%+v", err)
	}

	dot, err := m.ToDot()
	if err != nil {
		t.Fatalf("%+v", err)
	}
	assert.True(t, strings.HasPrefix(dot, "graph RBM {"), dot)

	ast, err := gographviz.ParseString(dot)
	if err != nil {
		t.Fatalf("generated dot does not parse: %v\n%s", err, dot)
	}
	g := gographviz.NewGraph()
	if err = gographviz.Analyse(ast, g); err != nil {
		t.Fatal(err)
	}
	assert.Len(t, g.Nodes.Nodes, 5)
	assert.Len(t, g.Edges.Edges, 6)
	assert.Contains(t, g.SubGraphs.SubGraphs, "cluster_visible")
	assert.Contains(t, g.SubGraphs.SubGraphs, "cluster_hidden")

	var red int
	for _, e := range g.Edges.Edges {
		if e.Attrs["color"] == "red" {
			red++
		}
	}
	assert.Equal(t, 2, red)
}

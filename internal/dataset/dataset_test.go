package dataset

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"gorgonia.org/tensor"
)

func TestLoadCSV(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		shape   tensor.Shape
		data    []float32
		wantErr bool
	}{
		{"header", "a,b,c\n1,2,3\n4,5,6\n", tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6}, false},
		{"no header", "1, 2\n0.5, -1\n", tensor.Shape{2, 2}, []float32{1, 2, 0.5, -1}, false},
		{"ragged", "1,2\n3\n", nil, nil, true},
		{"bad number", "1,2\n3,x\n", nil, nil, true},
		{"header only", "a,b\n", nil, nil, true},
		{"empty", "", nil, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := LoadCSV(strings.NewReader(tt.in))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			if err != nil {
				t.Fatalf("%+v", err)
			}
			assert.True(t, tt.shape.Eq(a.Shape()), "got shape %v", a.Shape())
			if diff := cmp.Diff(tt.data, a.Data().([]float32)); diff != "" {
				t.Errorf("LoadCSV() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMinMax(t *testing.T) {
	a := tensor.New(tensor.WithShape(3, 3), tensor.WithBacking([]float32{
		0, 10, 7,
		5, 20, 7,
		10, 15, 7,
	}))
	if err := MinMax(a); err != nil {
		t.Fatal(err)
	}
	expected := []float32{
		0, 0, 0,
		0.5, 1, 0,
		1, 0.5, 0,
	}
	if diff := cmp.Diff(expected, a.Data().([]float32)); diff != "" {
		t.Errorf("MinMax() mismatch (-want +got):\n%s", diff)
	}
}

func TestBinarize(t *testing.T) {
	a := tensor.New(tensor.WithShape(2, 2), tensor.WithBacking([]float32{0.1, 0.5, 0.51, 1}))
	Binarize(a, 0.5)
	assert.Equal(t, []float32{0, 0, 1, 1}, a.Data().([]float32))
}

func TestIris(t *testing.T) {
	a, labels, err := Iris()
	if err != nil {
		t.Fatalf("%+v", err)
	}
	assert.True(t, tensor.Shape{150, 4}.Eq(a.Shape()), "got shape %v", a.Shape())
	assert.Len(t, labels, 150)
	if err = MinMax(a); err != nil {
		t.Fatal(err)
	}
	for _, v := range a.Data().([]float32) {
		assert.True(t, v >= 0 && v <= 1)
	}
}

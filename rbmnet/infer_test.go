package rbm

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestInferencer(t *testing.T) {
	for _, units := range [][2]UnitType{{Bernoulli, Bernoulli}, {Gaussian, Bernoulli}, {Bernoulli, Gaussian}} {
		conf := DefaultConf(6, 4)
		conf.VisibleUnit, conf.HiddenUnit = units[0], units[1]
		m := newTestRBM(t, conf, 11)
		if err := m.PartialFit(binaryBatch(rand.New(rand.NewSource(1)), 5, 6)); err != nil {
			t.Fatalf("%+v", err)
		}

		inf, err := Infer(m, 5)
		if err != nil {
			t.Fatalf("%+v", err)
		}
		assert.Equal(t, 5, inf.BatchSize())

		r := rand.New(rand.NewSource(2))
		for i := 0; i < 2; i++ {
			x := binaryBatch(r, 5, 6)
			want, err := m.Transform(x)
			if err != nil {
				t.Fatalf("%+v", err)
			}
			got, err := inf.Transform(x)
			if err != nil {
				t.Fatalf("%+v", err)
			}
			assert.Equal(t, want.Shape(), got.Shape())
			assert.InDeltaSlice(t, floats(want), floats(got), 1e-5, "%v", units)

			want, err = m.Reconstruct(x)
			if err != nil {
				t.Fatalf("%+v", err)
			}
			got, err = inf.Reconstruct(x)
			if err != nil {
				t.Fatalf("%+v", err)
			}
			assert.InDeltaSlice(t, floats(want), floats(got), 1e-5, "%v", units)
		}

		_, err = inf.Transform(binaryBatch(r, 4, 6))
		assert.True(t, errors.Is(err, ErrDimensionMismatch), "%v", err)
		_, err = inf.Reconstruct(binaryBatch(r, 5, 3))
		assert.True(t, errors.Is(err, ErrDimensionMismatch), "%v", err)
		assert.NoError(t, inf.Close())
	}

	m := newTestRBM(t, DefaultConf(2, 2), 1)
	_, err := Infer(m, 0)
	assert.True(t, errors.Is(err, ErrInvalidArgument), "%v", err)
}

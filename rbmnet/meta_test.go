package rbm

import (
	"bytes"
	"context"
	"log"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestTrain_History(t *testing.T) {
	tests := []struct {
		name            string
		rows, batchSize int
		epochs          int
		batches         int
	}{
		{"exact", 10, 5, 3, 2},
		{"short last batch", 10, 3, 2, 4},
		{"single batch", 7, 0, 2, 1},
		{"negative batch size", 7, -1, 1, 1},
		{"batch larger than data", 4, 100, 3, 1},
		{"one row batches", 4, 1, 2, 4},
		{"one row last batch", 7, 3, 2, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestRBM(t, DefaultConf(6, 3), 1)
			data := binaryBatch(rand.New(rand.NewSource(2)), tt.rows, 6)

			var reports []Progress
			conf := FitConfig{
				Epochs:    tt.epochs,
				BatchSize: tt.batchSize,
				Shuffle:   true,
				Progress:  func(p Progress) { reports = append(reports, p) },
			}
			errs, err := m.Fit(context.Background(), data, conf)
			if err != nil {
				t.Fatalf("%+v", err)
			}
			assert.Len(t, errs, tt.epochs*tt.batches)
			assert.Len(t, reports, tt.epochs*(tt.batches+1))

			var epochs int
			for _, p := range reports {
				assert.Equal(t, tt.batches, p.Batches)
				if p.EpochDone {
					assert.Equal(t, epochs, p.Epoch)
					assert.InDelta(t, mean(errs[epochs*tt.batches:(epochs+1)*tt.batches]), p.EpochError, 1e-6)
					epochs++
				}
			}
			assert.Equal(t, tt.epochs, epochs)
		})
	}
}

func TestTrain_OneRowLastBatch(t *testing.T) {
	m := newTestRBM(t, DefaultConf(4, 2), 1)
	data := binaryBatch(rand.New(rand.NewSource(2)), 7, 4)
	w0, _, _ := m.Weights()

	var seen []int
	conf := FitConfig{
		Epochs:    1,
		BatchSize: 3,
		Progress: func(p Progress) {
			if !p.EpochDone {
				seen = append(seen, p.Batch)
			}
		},
	}
	errs, err := m.Fit(context.Background(), data, conf)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	assert.Len(t, errs, 3)
	assert.Equal(t, []int{0, 1, 2}, seen)

	// the single row batch is trained on like any other
	twin := newTestRBM(t, DefaultConf(4, 2), 1)
	if _, err = twin.Fit(context.Background(), dense(6, 4, floats(data)[:24]...), FitConfig{Epochs: 1, BatchSize: 3}); err != nil {
		t.Fatalf("%+v", err)
	}
	w, _, _ := m.Weights()
	tw, _, _ := twin.Weights()
	assert.NotEqual(t, floats(tw), floats(w))
	assert.NotEqual(t, floats(w0), floats(w))
}

func TestTrain_InvalidEpochs(t *testing.T) {
	m := newTestRBM(t, DefaultConf(4, 2), 1)
	data := binaryBatch(rand.New(rand.NewSource(2)), 4, 4)
	for _, e := range []int{0, -1} {
		conf := DefaultFitConf()
		conf.Epochs = e
		errs, err := Train(context.Background(), m, data, conf)
		assert.True(t, errors.Is(err, ErrInvalidArgument), "%v", err)
		assert.Empty(t, errs)
	}

	_, err := Train(context.Background(), m, dense(4, 3), DefaultFitConf())
	assert.True(t, errors.Is(err, ErrDimensionMismatch), "%v", err)
}

func TestTrain_ShuffleLeavesDataAlone(t *testing.T) {
	m := newTestRBM(t, DefaultConf(5, 2), 1)
	data := binaryBatch(rand.New(rand.NewSource(2)), 12, 5)
	orig := append([]float32(nil), floats(data)...)

	conf := DefaultFitConf()
	conf.Verbose = false
	conf.BatchSize = 4
	if _, err := m.Fit(context.Background(), data, conf); err != nil {
		t.Fatalf("%+v", err)
	}
	assert.Equal(t, orig, floats(data))
}

func TestTrain_Reproducible(t *testing.T) {
	data := binaryBatch(rand.New(rand.NewSource(2)), 20, 6)
	conf := FitConfig{Epochs: 3, BatchSize: 6, Shuffle: true}

	var histories [2][]float32
	var weights [2][]float32
	for i := range histories {
		m := newTestRBM(t, DefaultConf(6, 4), 99)
		errs, err := m.Fit(context.Background(), data, conf)
		if err != nil {
			t.Fatalf("%+v", err)
		}
		histories[i] = errs
		w, _, _ := m.Weights()
		weights[i] = floats(w)
	}
	assert.Equal(t, histories[0], histories[1])
	assert.Equal(t, weights[0], weights[1])
}

func TestTrain_Cancel(t *testing.T) {
	m := newTestRBM(t, DefaultConf(4, 2), 1)
	data := binaryBatch(rand.New(rand.NewSource(2)), 8, 4)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var seen int
	conf := FitConfig{
		Epochs:    5,
		BatchSize: 2,
		Progress: func(p Progress) {
			if p.EpochDone {
				return
			}
			seen++
			if seen == 3 {
				cancel()
			}
		},
	}
	errs, err := Train(ctx, m, data, conf)
	assert.True(t, errors.Is(err, context.Canceled), "%v", err)
	assert.Len(t, errs, 3)
}

func TestTrain_Verbose(t *testing.T) {
	var buf bytes.Buffer
	m, err := New(DefaultConf(4, 2), WithSeed(1), WithLogger(log.New(&buf, "", 0)))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	data := binaryBatch(rand.New(rand.NewSource(2)), 8, 4)

	conf := FitConfig{Epochs: 2, BatchSize: 4, Verbose: true}
	if _, err = m.Fit(context.Background(), data, conf); err != nil {
		t.Fatalf("%+v", err)
	}
	out := buf.String()
	assert.Contains(t, out, "Epoch: 0")
	assert.Contains(t, out, "Epoch: 1")
	assert.Contains(t, out, "Train error: ")

	buf.Reset()
	conf.Verbose = false
	if _, err = m.Fit(context.Background(), data, conf); err != nil {
		t.Fatalf("%+v", err)
	}
	assert.Empty(t, buf.String())
}

func TestTrain_Learns(t *testing.T) {
	patterns := [][]float32{
		{1, 1, 1, 0, 0, 0},
		{0, 0, 0, 1, 1, 1},
	}
	var data []float32
	for i := 0; i < 20; i++ {
		data = append(data, patterns[i%2]...)
	}
	x := dense(20, 6, data...)

	conf := DefaultConf(6, 4)
	conf.LearnRate = 0.5
	conf.Momentum = 0.5
	m := newTestRBM(t, conf, 5)
	before, err := m.Error(x)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if _, err = m.Fit(context.Background(), x, FitConfig{Epochs: 200, BatchSize: 5, Shuffle: true}); err != nil {
		t.Fatalf("%+v", err)
	}
	after, err := m.Error(x)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	assert.True(t, after < before, "expected the error to go down: %v -> %v", before, after)
}

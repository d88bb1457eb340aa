package rbm

import (
	"context"

	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// FitConfig configures a training run.
type FitConfig struct {
	Epochs    int  // must be > 0
	BatchSize int  // <= 0 means the whole dataset is a single batch
	Shuffle   bool // shuffle the rows (of a copy of the data) at the start of every epoch
	Verbose   bool // log the mean error of each epoch

	// Progress, if not nil, is called after every batch and after every epoch.
	Progress func(Progress)
}

func DefaultFitConf() FitConfig {
	return FitConfig{
		Epochs:    10,
		BatchSize: 10,
		Shuffle:   true,
		Verbose:   true,
	}
}

// Progress is a report of the state of a training run.
type Progress struct {
	Epoch   int
	Batch   int // index of the batch within the epoch
	Batches int // batches per epoch

	BatchError float32

	// EpochDone is true for the report sent at the end of an epoch, in which case
	// EpochError is the mean error over the batches of the epoch.
	EpochDone  bool
	EpochError float32
}

// Fit trains the RBM on data. See Train.
func (m *RBM) Fit(ctx context.Context, data *tensor.Dense, conf FitConfig) ([]float32, error) {
	return Train(ctx, m, data, conf)
}

// Train is a basic trainer. It runs conf.Epochs passes of PartialFit over data and returns
// the reconstruction error of every batch, in the order they were trained on.
//
// The context is checked between batches. If it is done, the errors recorded so far are returned
// along with the context's error; the model is never left half way through an update.
func Train(ctx context.Context, m *RBM, data *tensor.Dense, conf FitConfig) ([]float32, error) {
	if conf.Epochs <= 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "epochs should be > 0, got %d", conf.Epochs)
	}
	data, err := checkMatrix(data, m.Visible, "training data")
	if err != nil {
		return nil, err
	}

	n := data.Shape()[0]
	batchSize := conf.BatchSize
	if batchSize <= 0 || batchSize > n {
		batchSize = n
	}
	batches := n / batchSize
	if n%batchSize != 0 {
		batches++
	}

	work := data
	if conf.Shuffle {
		work = cloneDense(data)
	}

	errs := make([]float32, 0, conf.Epochs*batches)
	epochErrs := make([]float32, batches)
	for e := 0; e < conf.Epochs; e++ {
		if conf.Verbose {
			m.logger.Printf("Epoch: %d", e)
		}
		if conf.Shuffle {
			shuffleRows(m, work)
		}

		for b := 0; b < batches; b++ {
			if err := ctx.Err(); err != nil {
				return errs, errors.WithStack(err)
			}
			start := b * batchSize
			end := start + batchSize
			if end > n {
				end = n
			}

			var s slicer
			batch := s.Slice(work, sli(start, end))
			if s.err != nil {
				return errs, s.err
			}
			// a one row slice comes back as a vector
			batch = contiguous(batch)
			if err := batch.Reshape(end-start, m.Visible); err != nil {
				return errs, errors.Wrapf(err, "epoch %d batch %d", e, b)
			}

			if err := m.PartialFit(batch); err != nil {
				return errs, errors.WithMessagef(err, "epoch %d batch %d", e, b)
			}
			batchErr, err := m.Error(batch)
			if err != nil {
				return errs, errors.WithMessagef(err, "epoch %d batch %d", e, b)
			}
			epochErrs[b] = batchErr
			errs = append(errs, batchErr)

			if conf.Progress != nil {
				conf.Progress(Progress{Epoch: e, Batch: b, Batches: batches, BatchError: batchErr})
			}
		}

		epochErr := mean(epochErrs)
		if conf.Verbose {
			m.logger.Printf("Train error: %.4f\n", epochErr)
		}
		if conf.Progress != nil {
			conf.Progress(Progress{
				Epoch:      e,
				Batch:      batches - 1,
				Batches:    batches,
				BatchError: epochErrs[batches-1],
				EpochDone:  true,
				EpochError: epochErr,
			})
		}
	}
	return errs, nil
}

// shuffleRows shuffles the rows of the matrix Xs in place with the random source of the RBM.
func shuffleRows(m *RBM, Xs *tensor.Dense) {
	matXs := rows(Xs)
	if len(matXs) == 0 {
		return
	}
	tmp := make([]float32, len(matXs[0]))
	for i := range matXs {
		j := m.r.Intn(i + 1)

		rowI := matXs[i]
		rowJ := matXs[j]
		copy(tmp, rowI)
		copy(rowI, rowJ)
		copy(rowJ, tmp)
	}
}

func mean(a []float32) float32 {
	if len(a) == 0 {
		return 0
	}
	var sum float32
	for _, v := range a {
		sum += v
	}
	return sum / float32(len(a))
}

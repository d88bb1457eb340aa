package boltz

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"time"

	rbm "github.com/gorgonia/boltz/rbmnet"
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// Trainer is the top level structure and the entry point of the API.
// It wraps an RBM with the bookkeeping of a training run: statistics, logs and output encoders.
type Trainer struct {
	Statistics

	name    string
	model   *rbm.RBM
	fitConf rbm.FitConfig
	outEnc  OutputEncoder

	// current state, for MetaState
	progress rbm.Progress

	buf    bytes.Buffer
	logger *log.Logger
}

// New creates a Trainer with a freshly initialized RBM.
func New(conf Config) (*Trainer, error) {
	seed := conf.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	name := conf.Name
	if name == "" {
		name = "rbm"
	}

	retVal := &Trainer{
		name:       name,
		fitConf:    conf.FitConf,
		outEnc:     conf.OutputEncoder,
		Statistics: makeStatistics(),
	}
	var w io.Writer = &retVal.buf
	if conf.LogWriter != nil {
		w = io.MultiWriter(&retVal.buf, conf.LogWriter)
	}
	retVal.logger = log.New(w, "", log.Ltime)

	var err error
	if retVal.model, err = rbm.New(conf.NNConf,
		rbm.WithRand(rand.New(rand.NewSource(seed))),
		rbm.WithLogger(retVal.logger),
	); err != nil {
		return nil, errors.WithMessage(err, "Unable to create RBM")
	}
	return retVal, nil
}

// Learn trains the model on data, and returns the error of every batch.
func (t *Trainer) Learn(ctx context.Context, data *tensor.Dense) ([]float32, error) {
	conf := t.fitConf
	var encErr error
	conf.Progress = func(p rbm.Progress) {
		t.progress = p
		if p.EpochDone {
			t.recordEpoch(p.Epoch, p.EpochError)
		} else {
			t.recordBatch(p.Epoch, p.Batch, p.BatchError)
		}
		if t.outEnc != nil && encErr == nil {
			encErr = t.outEnc.Encode(t)
		}
	}

	t.logger.Printf("Training %q for %d epochs", t.name, conf.Epochs)
	errs, err := rbm.Train(ctx, t.model, data, conf)
	if err != nil {
		return errs, errors.WithMessage(err, "Train fail")
	}
	if encErr != nil {
		return errs, errors.WithMessage(encErr, "output encoder")
	}
	if t.outEnc != nil {
		if err = t.outEnc.Flush(); err != nil {
			return errs, errors.WithMessage(err, "output encoder")
		}
	}
	return errs, nil
}

// Save writes the weights of the model into filename, under the name of the trainer.
func (t *Trainer) Save(filename string) error {
	_, err := t.model.SaveWeights(filename, t.name)
	return err
}

// Load restores the weights of the model from filename.
func (t *Trainer) Load(filename string) error {
	return t.model.LoadWeights(filename, t.name)
}

// Log writes what has been logged during training into w.
func (t *Trainer) Log(w io.Writer) {
	fmt.Fprint(w, t.buf.String())
}

func (t *Trainer) Name() string        { return t.name }
func (t *Trainer) Epoch() int          { return t.progress.Epoch }
func (t *Trainer) Batch() int          { return t.progress.Batch }
func (t *Trainer) Batches() int        { return t.progress.Batches }
func (t *Trainer) BatchError() float32 { return t.progress.BatchError }
func (t *Trainer) EpochDone() bool     { return t.progress.EpochDone }
func (t *Trainer) EpochError() float32 { return t.progress.EpochError }
func (t *Trainer) Model() *rbm.RBM     { return t.model }

type manyErr []error

func (err manyErr) Error() string {
	var buf bytes.Buffer
	for _, e := range err {
		fmt.Fprintln(&buf, e.Error())
	}
	return buf.String()
}

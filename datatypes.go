package boltz

import (
	"io"

	rbm "github.com/gorgonia/boltz/rbmnet"
)

type Config struct {
	Name    string
	NNConf  rbm.Config
	FitConf rbm.FitConfig
	Seed    int64 // 0 seeds from the clock

	// LogWriter, if not nil, also receives everything the trainer logs.
	LogWriter io.Writer

	// extensions
	OutputEncoder OutputEncoder
}

// MetaState is the state of a training run, as seen by an OutputEncoder.
type MetaState interface {
	Name() string // name of the run
	Epoch() int
	Batch() int
	Batches() int // number of batches per epoch
	BatchError() float32

	// EpochDone is true when the state is reported at the end of an epoch.
	// EpochError is only meaningful then.
	EpochDone() bool
	EpochError() float32

	Model() *rbm.RBM
}

// OutputEncoder encodes the entire meta state as whatever.
//
// An example OutputEncoder is the GifEncoder. Another example would be a logger.
type OutputEncoder interface {
	Encode(ms MetaState) error
	Flush() error
}

// MultiEncoder sends the meta state to every encoder in it.
type MultiEncoder []OutputEncoder

func (m MultiEncoder) Encode(ms MetaState) error {
	var errs manyErr
	for _, enc := range m {
		if err := enc.Encode(ms); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (m MultiEncoder) Flush() error {
	var errs manyErr
	for _, enc := range m {
		if err := enc.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

package rbm

import (
	"fmt"

	"github.com/pkg/errors"
)

// UnitType is the kind of stochastic unit a layer is made of.
type UnitType int

const (
	Bernoulli UnitType = iota
	Gaussian
	MAXUNITTYPE
)

func (u UnitType) String() string {
	switch u {
	case Bernoulli:
		return "bernoulli"
	case Gaussian:
		return "gaussian"
	}
	return fmt.Sprintf("UnitType(%d)", int(u))
}

// IsValid returns true if u is one of the known unit types.
func (u UnitType) IsValid() bool { return u >= Bernoulli && u < MAXUNITTYPE }

// ParseUnitType accepts the short ("b", "g") and long forms of the unit type names.
func ParseUnitType(s string) (UnitType, error) {
	switch s {
	case "b", "bernoulli":
		return Bernoulli, nil
	case "g", "gaussian":
		return Gaussian, nil
	}
	return MAXUNITTYPE, errors.Wrapf(ErrInvalidArgument, "unit type should be either 'b' or 'g', got %q", s)
}

// ErrorMode selects how reconstruction quality is scored.
type ErrorMode int

const (
	MeanSquaredError ErrorMode = iota
	CosineAngle
	MAXERRORMODE
)

func (e ErrorMode) String() string {
	switch e {
	case MeanSquaredError:
		return "mse"
	case CosineAngle:
		return "cosine"
	}
	return fmt.Sprintf("ErrorMode(%d)", int(e))
}

func (e ErrorMode) IsValid() bool { return e >= MeanSquaredError && e < MAXERRORMODE }

// ParseErrorMode parses "mse" or "cosine".
func ParseErrorMode(s string) (ErrorMode, error) {
	switch s {
	case "mse":
		return MeanSquaredError, nil
	case "cosine":
		return CosineAngle, nil
	}
	return MAXERRORMODE, errors.Wrapf(ErrInvalidArgument, "error mode should be either 'mse' or 'cosine', got %q", s)
}

// Config configures the RBM
type Config struct {
	Visible int // number of visible units
	Hidden  int // number of hidden units

	VisibleUnit UnitType
	HiddenUnit  UnitType

	Sigma       float32 // std dev of the gaussian units
	LearnRate   float32
	Momentum    float32 // in [0, 1]
	XavierConst float32 // scales the xavier bound of the initial weights

	Err ErrorMode
}

func DefaultConf(visible, hidden int) Config {
	return Config{
		Visible:     visible,
		Hidden:      hidden,
		VisibleUnit: Bernoulli,
		HiddenUnit:  Bernoulli,
		Sigma:       1,
		LearnRate:   0.01,
		Momentum:    0.95,
		XavierConst: 1,
		Err:         MeanSquaredError,
	}
}

func (conf Config) IsValid() bool { return conf.Validate() == nil }

// Validate returns the first problem found with the configuration.
func (conf Config) Validate() error {
	if conf.Visible <= 0 || conf.Hidden <= 0 {
		return errors.Wrapf(ErrInvalidDimension, "visible %d, hidden %d", conf.Visible, conf.Hidden)
	}
	if !(conf.Momentum >= 0 && conf.Momentum <= 1) {
		return errors.Wrapf(ErrInvalidArgument, "momentum should be in range [0, 1], got %v", conf.Momentum)
	}
	if !conf.Err.IsValid() {
		return errors.Wrapf(ErrInvalidArgument, "unknown error mode %v", conf.Err)
	}
	if !conf.VisibleUnit.IsValid() {
		return errors.Wrapf(ErrInvalidArgument, "unknown visible unit type %v", conf.VisibleUnit)
	}
	if !conf.HiddenUnit.IsValid() {
		return errors.Wrapf(ErrInvalidArgument, "unknown hidden unit type %v", conf.HiddenUnit)
	}
	return nil
}

package rbm

import "github.com/pkg/errors"

var (
	// ErrInvalidArgument is returned when a configuration or call parameter is out of range.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidDimension is returned when a layer size is not positive.
	ErrInvalidDimension = errors.New("invalid dimension")

	// ErrDimensionMismatch is returned when a matrix does not have the shape the model expects.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrIO is returned when weights cannot be saved or restored.
	ErrIO = errors.New("weights i/o")
)

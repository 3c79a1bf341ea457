package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidInput indicates a body creation request with a non-finite
	// value or a non-positive mass.
	ErrInvalidInput = errors.New("dynamo: invalid body input")

	// ErrDegenerateConfig indicates a softening length that is zero,
	// negative or non-finite.
	ErrDegenerateConfig = errors.New("dynamo: degenerate configuration (softening must be positive)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrUnknownIntegrator indicates an integrator name with no registered implementation.
	ErrUnknownIntegrator = errors.New("dynamo: unknown integrator")

	ErrUnknownPreset = errors.New("dynamo: unknown preset")
)

// InputError wraps ErrInvalidInput with the offending field.
type InputError struct {
	Field string
	Value float64
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s = %v", ErrInvalidInput, e.Field, e.Value)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

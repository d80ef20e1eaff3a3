package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for headless runs. The step path itself never returns errors.
var (
	// ErrInvalidState indicates a snapshot containing NaN or Inf values.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrNoFrames indicates a run was requested with a non-positive frame count.
	ErrNoFrames = errors.New("dynamo: run needs at least one frame")
)

// SimulationError wraps an error with the frame it was detected on.
type SimulationError struct {
	Frame   int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("frame %d (t=%.4f): %v", e.Frame, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}

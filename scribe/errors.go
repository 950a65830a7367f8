package scribe

import (
	"errors"
	"fmt"
)

// Sentinel errors for error classification.
var (
	// ErrNotInstrumented indicates that a value passed to Inspect or
	// InspectMethod carries no call history.
	ErrNotInstrumented = errors.New("not instrumented")

	// ErrConfiguration indicates an invalid configuration or input.
	ErrConfiguration = errors.New("configuration error")
)

// InspectError describes a failed inspection lookup.
type InspectError struct {
	// Target names what was inspected ("object" or "method").
	Target string

	// Reason describes why no history was found.
	Reason string
}

// Error returns the error message.
func (e *InspectError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrNotInstrumented, e.Target, e.Reason)
}

// Is reports whether this error matches the target.
// InspectError matches ErrNotInstrumented.
func (e *InspectError) Is(target error) bool {
	return target == ErrNotInstrumented
}

package endpoint

import (
	"errors"
	"fmt"
)

// ErrProbeTimeout marks a candidate attempt that exceeded the probe timeout.
// It is wrapped into the attempt error and treated like any other failure.
var ErrProbeTimeout = errors.New("probe timed out")

// ErrNoCandidates is returned when neither the typed nor the detected base
// produced a usable origin.
var ErrNoCandidates = errors.New("no backend candidates")

// UnreachableError reports that no candidate answered. Only the last
// attempt's failure is kept.
type UnreachableError struct {
	Attempts int
	Last     error
}

func (e *UnreachableError) Error() string {
	if e.Last == nil {
		return "backend unreachable"
	}
	return e.Last.Error()
}

func (e *UnreachableError) Unwrap() error { return e.Last }

// StatusError is a health check answered with a non-2xx status.
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d", e.Status)
}

// Package fdtderr names the error taxonomy of the solver: configuration
// and resource errors are fatal before the time loop starts, invariant
// violations are fatal at runtime, numerical warnings and non-convergence
// are not errors a caller should abort on.
package fdtderr

import "fmt"

// ConfigError reports a malformed or missing input: wrong shape, missing
// named tensor, non-scalar flag. Always raised before TimeStepping.
type ConfigError struct {
	Field string
	Msg   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Msg)
}

// NewConfigError builds a ConfigError for the named input field.
func NewConfigError(field, msg string) error {
	return &ConfigError{Field: field, Msg: msg}
}

// ResourceError reports an unreadable or unopenable external resource
// (input file, grid file, output directory).
type ResourceError struct {
	Resource string
	Err      error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("resource: %s: %v", e.Resource, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// NewResourceError wraps a failure to open or read an external resource.
func NewResourceError(resource string, err error) error {
	return &ResourceError{Resource: resource, Err: err}
}

// InvariantError reports a runtime invariant violation detected by a
// core component: a negative extent, an unknown axial direction, a
// mismatched plane size. Not recoverable by retry.
type InvariantError struct {
	Component string
	Index     []int
	Msg       string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violated in %s at %v: %s", e.Component, e.Index, e.Msg)
}

// NewInvariantError builds an InvariantError carrying the violating index.
func NewInvariantError(component string, index []int, msg string) error {
	return &InvariantError{Component: component, Index: index, Msg: msg}
}

// NonConvergence is not a failure: it records that steady-state mode
// ran to completion (Nt reached) without the convergence monitor
// triggering. The caller still receives the last completed cycle's
// phasors; this type is carried as a diagnostic note, not returned as
// a fatal error from the run.
type NonConvergence struct {
	CyclesRun     int
	LastResidual  float64
	Tolerance     float64
}

func (e *NonConvergence) Error() string {
	return fmt.Sprintf("steady-state did not converge after %d cycles (residual %.3e, tolerance %.3e)",
		e.CyclesRun, e.LastResidual, e.Tolerance)
}

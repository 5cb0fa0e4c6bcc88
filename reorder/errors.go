/*
errors.go - Centralized error types for the scheduling engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Callers (the API, the batch driver) classify errors with errors.Is and
  the helpers at the bottom of this file.

ERROR CATEGORIES:
  1. Input errors - Malformed scenarios, bad lot sizing configuration
  2. Selection errors - Unknown policy names
  3. Catalog errors - Missing datasets

USAGE:
  schedule, err := engine.ComputeSchedule(s, policy)
  if reorder.IsClientError(err) {
      // 400: the caller sent something we cannot plan
  }

SEE ALSO:
  - validate.go: Produces ValidationError
  - policy.go: Produces UnknownPolicyError
  - engine.go: Produces ScenarioError for batches
*/
package reorder

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidScenario is returned when a scenario is malformed: sequence
	// lengths do not match the horizon, or quantities are negative.
	ErrInvalidScenario = errors.New("invalid scenario")

	// ErrInvalidConfiguration is returned when lot sizing parameters would
	// make rounding undefined (MOQ or PkQty below 1).
	ErrInvalidConfiguration = errors.New("invalid lot sizing configuration")

	// ErrUnknownPolicy is returned when a policy name is not recognized.
	ErrUnknownPolicy = errors.New("unknown policy")

	// ErrInvalidHorizon is returned when the planning horizon is below 1.
	ErrInvalidHorizon = errors.New("invalid horizon")

	// ErrInvalidOrders is returned when an order vector has the wrong length
	// or a negative quantity.
	ErrInvalidOrders = errors.New("invalid order vector")

	// ErrDatasetNotFound is returned when a named dataset does not exist.
	ErrDatasetNotFound = errors.New("dataset not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError describes which field of which scenario is wrong.
// It unwraps to ErrInvalidScenario, ErrInvalidConfiguration or
// ErrInvalidOrders depending on Kind.
type ValidationError struct {
	MPN    string
	Field  string
	Reason string
	Kind   error
}

func (e *ValidationError) Error() string {
	if e.MPN == "" {
		return fmt.Sprintf("%v: %s %s", e.Kind, e.Field, e.Reason)
	}
	return fmt.Sprintf("%v: %s: %s %s", e.Kind, e.MPN, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// UnknownPolicyError names the policy that could not be resolved.
type UnknownPolicyError struct {
	Name string
}

func (e *UnknownPolicyError) Error() string {
	return fmt.Sprintf("unknown policy %q (want one of %v)", e.Name, PolicyNames())
}

func (e *UnknownPolicyError) Unwrap() error {
	return ErrUnknownPolicy
}

// ScenarioError locates a failure inside a batch.
type ScenarioError struct {
	Index int
	MPN   string
	Err   error
}

func (e *ScenarioError) Error() string {
	return fmt.Sprintf("scenario %d (%s): %v", e.Index, e.MPN, e.Err)
}

func (e *ScenarioError) Unwrap() error {
	return e.Err
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidScenario) ||
		errors.Is(err, ErrInvalidConfiguration) ||
		errors.Is(err, ErrUnknownPolicy) ||
		errors.Is(err, ErrInvalidHorizon) ||
		errors.Is(err, ErrInvalidOrders)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrDatasetNotFound)
}

/*
errors.go - Centralized error types for the compliance engine

PURPOSE:
  All error kinds in one place for consistency and discoverability.
  The engine never catches-and-swallows a data error to produce a "best
  guess" compliance number: a wrong number is worse than a visible
  failure, given the legal stakes. Every error here propagates to the
  caller unchanged.

ERROR CATEGORIES:
  1. Data errors    - malformed trips, unparseable dates, unknown countries
  2. Config errors  - invalid window/limit/reference date, rejected at
                      construction time so failures are attributable to
                      the actual bad input

USAGE:
  Callers branch with errors.Is():

    if errors.Is(err, schengen.ErrUnknownCountry) {
        // data needs fixing, distinct from known-and-excluded
    }

SEE ALSO:
  - types.go: Config.Validate uses these errors
  - presence.go: trip/date validation
  - registry.go: country validation
*/
package schengen

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidTrip is returned for a malformed trip interval
	// (exit before entry).
	ErrInvalidTrip = errors.New("invalid trip")

	// ErrInvalidDateRange is returned for an empty or unparseable date
	// string. A parse failure never degrades to "zero presence days".
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrUnknownCountry is returned when a country is not recognized in
	// any category. Distinct from known-and-excluded countries, which
	// are valid input that simply contributes no presence days.
	ErrUnknownCountry = errors.New("unknown country")

	// ErrInvalidConfig is returned for a non-positive limit or window,
	// or inverted risk thresholds.
	ErrInvalidConfig = errors.New("invalid compliance config")

	// ErrInvalidReferenceDate is returned for a zero reference date.
	ErrInvalidReferenceDate = errors.New("invalid reference date")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidTripError describes a malformed trip interval.
type InvalidTripError struct {
	TripID string
	Entry  Day
	Exit   Day
	Reason string
}

func (e *InvalidTripError) Error() string {
	return fmt.Sprintf("invalid trip %s: %s (entry %s, exit %s)",
		e.TripID, e.Reason, e.Entry, e.Exit)
}

func (e *InvalidTripError) Unwrap() error { return ErrInvalidTrip }

// DateParseError describes an unparseable date string.
type DateParseError struct {
	Raw    string
	Reason string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("cannot parse date %q: %s", e.Raw, e.Reason)
}

func (e *DateParseError) Unwrap() error { return ErrInvalidDateRange }

// UnknownCountryError describes a country code that matched no known
// category. Callers should treat this as a data-entry problem, not as
// an intentionally excluded destination.
type UnknownCountryError struct {
	Raw string
}

func (e *UnknownCountryError) Error() string {
	return fmt.Sprintf("unknown country %q: not a recognized Schengen, microstate, or excluded country", e.Raw)
}

func (e *UnknownCountryError) Unwrap() error { return ErrUnknownCountry }

// ConfigError describes an invalid Config field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError reports whether the error is caused by invalid caller
// input, as opposed to an internal failure. The API layer maps these
// to 4xx responses.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidTrip) ||
		errors.Is(err, ErrInvalidDateRange) ||
		errors.Is(err, ErrUnknownCountry) ||
		errors.Is(err, ErrInvalidConfig) ||
		errors.Is(err, ErrInvalidReferenceDate)
}

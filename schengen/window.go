/*
window.go - Rolling-window aggregation

PURPOSE:
  Counts presence days inside the backward-looking window for a single
  reference date and derives days-remaining and the compliance verdict.

THE WINDOW:
  For reference date R and window size w the window is [R-w, R-1],
  inclusive on both ends. The reference date itself is EXCLUDED: the
  question is "as of the start of day R, how many of the preceding w
  days were spent present". A presence day equal to R never counts in
  R's own window.

COMPLIANCE BOUNDARY:
  Compliant iff daysUsed < limit. 89 used days is still compliant,
  90 is a breach. DaysRemaining = limit - daysUsed and goes negative
  on breach (breach magnitude, never clamped here).

SEE ALSO:
  - vector.go: O(range) batch evaluation over the same window
*/
package schengen

// =============================================================================
// WINDOW BOUNDS
// =============================================================================

// WindowBounds returns the rolling window [ref-windowDays, ref-1] for
// the given reference date.
func WindowBounds(ref Day, windowDays int) DayRange {
	return DayRange{
		Start: ref.AddDays(-windowDays),
		End:   ref.AddDays(-1),
	}
}

// =============================================================================
// AGGREGATION
// =============================================================================

// DaysUsedInWindow counts presence days inside the rolling window
// ending the day before cfg-relative reference date ref.
func DaysUsedInWindow(set DaySet, ref Day, cfg Config) (int, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	if ref.IsZero() {
		return 0, ErrInvalidReferenceDate
	}
	return set.CountInRange(WindowBounds(ref, cfg.WindowDays)), nil
}

// DaysRemaining returns limit - daysUsed for the reference date.
// Negative values carry the breach magnitude; callers needing a
// clamped display value clamp themselves.
func DaysRemaining(set DaySet, ref Day, cfg Config) (int, error) {
	used, err := DaysUsedInWindow(set, ref, cfg)
	if err != nil {
		return 0, err
	}
	return cfg.Limit - used, nil
}

// IsCompliant reports whether the subject is compliant as of ref.
func IsCompliant(set DaySet, ref Day, cfg Config) (bool, error) {
	used, err := DaysUsedInWindow(set, ref, cfg)
	if err != nil {
		return false, err
	}
	return used < cfg.Limit, nil
}

// Evaluate produces the full Result for one reference date.
func Evaluate(set DaySet, ref Day, cfg Config) (Result, error) {
	used, err := DaysUsedInWindow(set, ref, cfg)
	if err != nil {
		return Result{}, err
	}
	return resultFor(ref, used, cfg), nil
}

// Calculate runs the whole pipeline for a trip collection at
// cfg.ReferenceDate: expansion, aggregation, risk classification.
func Calculate(trips []Trip, cfg Config) (Result, error) {
	set, err := PresenceDays(trips, cfg)
	if err != nil {
		return Result{}, err
	}
	return Evaluate(set, cfg.ReferenceDate, cfg)
}

// resultFor derives the Result fields from a days-used count. Shared
// by Evaluate and the vector engine so both produce bit-identical
// output for the same inputs.
func resultFor(ref Day, used int, cfg Config) Result {
	remaining := cfg.Limit - used
	return Result{
		ReferenceDate: ref,
		DaysUsed:      used,
		DaysRemaining: remaining,
		RiskLevel:     RiskFor(remaining, cfg.Thresholds),
		Compliant:     used < cfg.Limit,
	}
}

/*
vector.go - O(range) batch compliance evaluation

PURPOSE:
  Evaluates compliance for every day across a range (calendar month,
  year, or arbitrary span) so calendar cells can be painted without
  per-cell recomputation.

THE SLIDING-WINDOW PROPERTY:
  Naively recomputing the window for each day costs O(range x window).
  Advancing the reference date from R to R+1 shifts the window from
  [R-w, R-1] to [R+1-w, R]: exactly one day (R) may enter and one day
  (R-w) may leave. Maintaining a running counter with two set-membership
  checks per day makes the whole vector O(range). This is the single
  most important performance property of the engine; vector_test.go
  asserts the optimized and naive computations agree exactly.
*/
package schengen

import "time"

// =============================================================================
// VECTOR COMPUTATION
// =============================================================================

// ComplianceVector evaluates every day in [start, end] inclusive and
// returns one Result per day, in order.
func ComplianceVector(set DaySet, start, end Day, cfg Config) (Vector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if start.IsZero() || end.IsZero() {
		return nil, ErrInvalidReferenceDate
	}
	if end.Before(start) {
		return nil, &ConfigError{Field: "range", Reason: "end before start"}
	}

	vector := make(Vector, 0, DaysBetween(start, end)+1)

	// Full count once for the first day, then +-1 updates.
	used := set.CountInRange(WindowBounds(start, cfg.WindowDays))
	for ref := start; ref.BeforeOrEqual(end); ref = ref.AddDays(1) {
		vector = append(vector, resultFor(ref, used, cfg))

		if set.Contains(ref) {
			used++
		}
		if set.Contains(ref.AddDays(-cfg.WindowDays)) {
			used--
		}
	}
	return vector, nil
}

// MonthCompliance returns the daily vector for one calendar month.
func MonthCompliance(set DaySet, year int, month time.Month, cfg Config) (Vector, error) {
	r := MonthRange(year, month)
	return ComplianceVector(set, r.Start, r.End, cfg)
}

// YearCompliance returns the daily vector for one calendar year.
func YearCompliance(set DaySet, year int, cfg Config) (Vector, error) {
	r := YearRange(year)
	return ComplianceVector(set, r.Start, r.End, cfg)
}

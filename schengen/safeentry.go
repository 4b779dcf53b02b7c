/*
safeentry.go - Safe-entry planning over a moving window

PURPOSE:
  Answers forward-looking planning questions: when can a new stay of N
  days safely begin, how long until compliance is restored, and how
  long could a stay starting on a given date last. These are searches
  over time because the window is a moving target - a day that counts
  today ages out of the lookback N days from now.

TERMINATION:
  Every search is explicitly bounded. Compliance always self-resolves
  as old presence ages out of the window, so a horizon of window size
  plus stay length is sufficient; a search that exhausts its horizon
  returns a defined "not found" signal instead of looping.
*/
package schengen

// =============================================================================
// EARLIEST SAFE ENTRY
// =============================================================================

// EarliestSafeEntry returns the first date on or after 'from' where a
// new stay of stayLen days fits inside the allowance: daysUsed at the
// candidate date plus stayLen must not exceed the limit. The second
// return is false when no safe date exists within the search horizon
// (window size + stay length days).
//
// The scan advances the window incrementally (+-1 membership checks per
// candidate) rather than recounting it from scratch.
func EarliestSafeEntry(set DaySet, stayLen int, from Day, cfg Config) (Day, bool, error) {
	if err := cfg.Validate(); err != nil {
		return Day{}, false, err
	}
	if stayLen <= 0 {
		return Day{}, false, &ConfigError{Field: "stay_length", Reason: "must be positive"}
	}
	if from.IsZero() {
		return Day{}, false, ErrInvalidReferenceDate
	}
	if stayLen > cfg.Limit {
		// No amount of aging out makes a stay longer than the limit fit.
		return Day{}, false, nil
	}

	horizon := cfg.WindowDays + stayLen
	used := set.CountInRange(WindowBounds(from, cfg.WindowDays))
	for i := 0; i <= horizon; i++ {
		candidate := from.AddDays(i)
		if used+stayLen <= cfg.Limit {
			return candidate, true, nil
		}
		// Advance the reference date by one day: candidate enters the
		// next window, candidate-windowDays leaves it.
		if set.Contains(candidate) {
			used++
		}
		if set.Contains(candidate.AddDays(-cfg.WindowDays)) {
			used--
		}
	}
	return Day{}, false, nil
}

// =============================================================================
// DAYS UNTIL COMPLIANT
// =============================================================================

// DaysUntilCompliant returns how many days after cfg.ReferenceDate the
// subject first reports compliant again. Zero when already compliant.
// Bounded by the window size: with no new presence, the window drains
// completely within windowDays.
func DaysUntilCompliant(set DaySet, cfg Config) (int, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}

	ref := cfg.ReferenceDate
	used := set.CountInRange(WindowBounds(ref, cfg.WindowDays))
	for i := 0; i <= cfg.WindowDays; i++ {
		if used < cfg.Limit {
			return i, nil
		}
		day := ref.AddDays(i)
		if set.Contains(day) {
			used++
		}
		if set.Contains(day.AddDays(-cfg.WindowDays)) {
			used--
		}
	}
	return cfg.WindowDays, nil
}

// =============================================================================
// MAX STAY
// =============================================================================

// MaxStayDays returns the longest stay that could begin on 'entry'
// without breaching on any day of the stay. Each prospective stay day
// is checked against the window ending on that day, counting both
// historical presence and the stay days spent so far; days already in
// the presence set are not counted twice. Capped at the window size
// (no stay inside one window can lawfully exceed it).
func MaxStayDays(set DaySet, entry Day, cfg Config) (int, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	if entry.IsZero() {
		return 0, ErrInvalidReferenceDate
	}

	// Historical presence in the window ending on the entry day.
	histUsed := set.CountInRange(DayRange{
		Start: entry.AddDays(-cfg.WindowDays + 1),
		End:   entry,
	})

	stay := 0
	stayNew := 0
	for i := 0; i < cfg.WindowDays; i++ {
		d := entry.AddDays(i)
		if !set.Contains(d) {
			stayNew++
		}
		if histUsed+stayNew > cfg.Limit {
			break
		}
		stay++

		// Slide the window one day forward for the next stay day.
		next := d.AddDays(1)
		if set.Contains(next) {
			histUsed++
		}
		if set.Contains(next.AddDays(-cfg.WindowDays)) {
			histUsed--
		}
	}
	return stay, nil
}

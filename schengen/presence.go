/*
presence.go - Trip-to-day-set expansion

PURPOSE:
  Converts a collection of trip intervals into the canonical set of
  distinct presence days: country filtering, the compliance start-date
  floor, and set semantics so overlapping trips never double-count.

COST:
  O(total trip-days). This is the dominant cost for subjects with many
  or long trips, so callers evaluating multiple reference dates should
  expand once and reuse the DaySet (the calculator package does this).

SEE ALSO:
  - registry.go: country classification
  - window.go: consumes the DaySet
*/
package schengen

// =============================================================================
// PRESENCE EXPANSION
// =============================================================================

// PresenceDays expands trips into the canonical presence-day set.
//
// Per trip: private/ghosted trips are skipped entirely; countries are
// classified via the registry (unknown countries are an error, known
// non-Schengen countries skip the trip); every day from entry to exit
// inclusive on or after cfg.StartDate is inserted with set semantics.
func PresenceDays(trips []Trip, cfg Config) (DaySet, error) {
	if err := cfg.Validate(); err != nil {
		return DaySet{}, err
	}

	set := NewDaySet()
	for _, trip := range trips {
		if trip.Private {
			continue
		}
		if trip.ExitDate.Before(trip.EntryDate) {
			return DaySet{}, &InvalidTripError{
				TripID: trip.ID,
				Entry:  trip.EntryDate,
				Exit:   trip.ExitDate,
				Reason: "exit date before entry date",
			}
		}
		cv, err := ValidateCountry(trip.Country)
		if err != nil {
			return DaySet{}, err
		}
		if !cv.InScope {
			continue
		}

		start := trip.EntryDate
		if start.Before(cfg.StartDate) {
			// Compliance start floor: only the portion on/after the
			// cutover counts. A trip entirely before it contributes
			// zero days.
			start = cfg.StartDate
		}
		for cur := start; cur.BeforeOrEqual(trip.ExitDate); cur = cur.AddDays(1) {
			set.Add(cur)
		}
	}
	return set, nil
}

// PresenceDaysFromRecords parses wire records and expands them in one
// step. Any malformed record fails the whole expansion.
func PresenceDaysFromRecords(recs []TripRecord, cfg Config) (DaySet, error) {
	trips, err := ParseTrips(recs)
	if err != nil {
		return DaySet{}, err
	}
	return PresenceDays(trips, cfg)
}

// TravelDays returns the inclusive day count of a single interval:
// TravelDays(d, d) == 1.
func TravelDays(entry, exit Day) (int, error) {
	if exit.Before(entry) {
		return 0, &InvalidTripError{Entry: entry, Exit: exit, Reason: "exit date before entry date"}
	}
	return DaysBetween(entry, exit) + 1, nil
}

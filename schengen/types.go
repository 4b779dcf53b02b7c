/*
Package schengen implements the 90/180-day Schengen compliance engine.

PURPOSE:
  Given a set of travel intervals and a reference date, determine how
  many days of presence fall inside the rolling backward-looking window
  and what risk status that implies. Outputs drive legal/compliance
  decisions and audit exports, so every result must be deterministic
  and bit-exact: identical (trips, config) always yields identical
  output, with no wall-clock dependency unless the caller explicitly
  passes "today" as the reference date.

KEY CONCEPTS IN THIS FILE (types.go):
  - Trip:     An inclusive [entry, exit] travel interval with a country
  - DaySet:   The canonical set of distinct in-scope presence days
  - Config:   Per-calculation parameters (window, limit, start date,
              risk thresholds) - immutable, constructed fresh per call
  - Result:   The compliance verdict for one reference date
  - RiskLevel: green | amber | red over configurable cut points

DESIGN PRINCIPLES:
  1. Purity: every stage is a pure function; the engine holds no state
  2. Set semantics: a presence day counts at most once, however many
     overlapping trips cover it
  3. Loud failure: malformed input is an error, never a silent zero
  4. Unclamped domain values: DaysRemaining goes negative on breach;
     "breach" is a display classification, not a calculation path

PIPELINE:
  registry.go -> presence.go -> window.go -> {risk.go, safeentry.go,
  vector.go}; the calculator package wraps the whole pipeline with a
  fingerprint-keyed cache.

SEE ALSO:
  - presence.go: trip-to-day-set expansion
  - window.go: rolling-window aggregation
  - vector.go: O(range) batch evaluation
*/
package schengen

import "sort"

// =============================================================================
// TRIP - Immutable travel interval
// =============================================================================

// Trip is an inclusive date interval spent in one country. Both the entry
// and exit days count as full presence days. Trips are immutable inputs;
// creation, editing and overlap prevention belong to the data layer. The
// engine is robust to overlapping or duplicate intervals.
type Trip struct {
	ID        string
	EntryDate Day
	ExitDate  Day
	Country   string // normalized ISO-2 code
	Purpose   string
	Private   bool // private/ghosted trips never count toward presence
}

// Duration returns the trip length in days, both endpoints inclusive.
// A same-day trip has duration 1.
func (t Trip) Duration() int {
	return DaysBetween(t.EntryDate, t.ExitDate) + 1
}

// TripRecord is the wire shape consumed from the data layer: ISO-8601
// date strings and a raw country code or full name. Ghosted and private
// both mean "do not count" and are folded into Trip.Private.
type TripRecord struct {
	ID        string `json:"id,omitempty"`
	EntryDate string `json:"entry_date"`
	ExitDate  string `json:"exit_date"`
	Country   string `json:"country"`
	Purpose   string `json:"purpose,omitempty"`
	IsPrivate bool   `json:"is_private,omitempty"`
	Ghosted   bool   `json:"ghosted,omitempty"`
}

// ParseTrip validates and normalizes a wire record into a Trip.
// The country is normalized but NOT scope-checked here: a trip to a
// known non-Schengen country is a valid trip that contributes no days,
// while an unknown country surfaces during presence expansion.
func ParseTrip(rec TripRecord) (Trip, error) {
	entry, err := ParseDay(rec.EntryDate)
	if err != nil {
		return Trip{}, err
	}
	exit, err := ParseDay(rec.ExitDate)
	if err != nil {
		return Trip{}, err
	}
	if exit.Before(entry) {
		return Trip{}, &InvalidTripError{
			TripID: rec.ID,
			Entry:  entry,
			Exit:   exit,
			Reason: "exit date before entry date",
		}
	}
	return Trip{
		ID:        rec.ID,
		EntryDate: entry,
		ExitDate:  exit,
		Country:   NormalizeCountryCode(rec.Country),
		Purpose:   rec.Purpose,
		Private:   rec.IsPrivate || rec.Ghosted,
	}, nil
}

// ParseTrips converts a batch of wire records, failing on the first
// malformed record.
func ParseTrips(recs []TripRecord) ([]Trip, error) {
	trips := make([]Trip, 0, len(recs))
	for _, rec := range recs {
		trip, err := ParseTrip(rec)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}
	return trips, nil
}

// =============================================================================
// CONFIG - Per-calculation parameters
// =============================================================================

// Mode documents caller intent. It changes nothing about the math.
type Mode string

const (
	ModeAudit    Mode = "audit"
	ModeForecast Mode = "forecast"
)

const (
	// DefaultLimit is the Schengen day allowance inside one window.
	DefaultLimit = 90

	// DefaultWindowDays is the rolling lookback length.
	DefaultWindowDays = 180
)

// DefaultStartDate is the legal cutover before which no presence counts,
// regardless of trip data. Trips straddling it contribute only the
// portion on or after it.
var DefaultStartDate = NewDay(2021, 1, 1)

// Config carries every tunable of a single calculation. It is an
// immutable value object: constructed fresh per calculation, never
// mutated, and every field is overridable per call so nothing about
// the math is a baked-in constant.
type Config struct {
	ReferenceDate Day
	Mode          Mode
	Limit         int
	WindowDays    int
	StartDate     Day
	Thresholds    Thresholds
}

// DefaultConfig returns an audit-mode config with the standard 90/180
// parameters for the given reference date.
func DefaultConfig(ref Day) Config {
	return Config{
		ReferenceDate: ref,
		Mode:          ModeAudit,
		Limit:         DefaultLimit,
		WindowDays:    DefaultWindowDays,
		StartDate:     DefaultStartDate,
		Thresholds:    DefaultThresholds(),
	}
}

// Validate rejects malformed configs at construction time, so failures
// are attributable to the actual bad input rather than a confusing
// downstream symptom deep inside aggregation.
func (c Config) Validate() error {
	if c.ReferenceDate.IsZero() {
		return ErrInvalidReferenceDate
	}
	if c.Limit <= 0 {
		return &ConfigError{Field: "limit", Reason: "must be positive"}
	}
	if c.WindowDays <= 0 {
		return &ConfigError{Field: "window_days", Reason: "must be positive"}
	}
	if c.StartDate.IsZero() {
		return &ConfigError{Field: "start_date", Reason: "must be set"}
	}
	if c.Thresholds.GreenMin < c.Thresholds.AmberMin {
		return &ConfigError{Field: "thresholds", Reason: "green boundary below amber boundary"}
	}
	return nil
}

// =============================================================================
// RISK LEVEL
// =============================================================================

type RiskLevel string

const (
	RiskGreen RiskLevel = "green"
	RiskAmber RiskLevel = "amber"
	RiskRed   RiskLevel = "red"
)

// =============================================================================
// RESULT - Compliance verdict for one reference date
// =============================================================================

// Result is the output of a single evaluation. DaysRemaining is signed
// and unclamped: negative values carry the breach magnitude. Result is
// derived and ephemeral; the engine never persists it.
type Result struct {
	ReferenceDate Day       `json:"reference_date"`
	DaysUsed      int       `json:"days_used"`
	DaysRemaining int       `json:"days_remaining"`
	RiskLevel     RiskLevel `json:"risk_level"`
	Compliant     bool      `json:"is_compliant"`
}

// Breach reports whether the allowance is fully used or exceeded.
// This is a display-level refinement over red, not a calculation path.
func (r Result) Breach() bool { return r.DaysRemaining < 0 }

// Vector is an ordered sequence of daily Results across a range, used
// to paint calendar cells without per-cell recomputation.
type Vector []Result

// =============================================================================
// DAY SET - Canonical presence-day set
// =============================================================================

// DaySet is the set of distinct in-scope presence days derived from a
// trip collection. Invariants: no duplicates, no days before the
// compliance start date, only Schengen or microstate territory, no
// private/ghosted contributions.
type DaySet struct {
	days map[Day]struct{}
}

// NewDaySet returns an empty presence-day set.
func NewDaySet() DaySet {
	return DaySet{days: make(map[Day]struct{})}
}

// Add inserts a day. Re-inserting an already-present day is a no-op,
// which is what makes overlapping trips never double-count.
func (s DaySet) Add(d Day) {
	s.days[d] = struct{}{}
}

// Contains reports set membership.
func (s DaySet) Contains(d Day) bool {
	_, ok := s.days[d]
	return ok
}

// Len returns the number of distinct presence days.
func (s DaySet) Len() int { return len(s.days) }

// SortedDays returns all presence days in chronological order.
func (s DaySet) SortedDays() []Day {
	days := make([]Day, 0, len(s.days))
	for d := range s.days {
		days = append(days, d)
	}
	sortDays(days)
	return days
}

// CountInRange returns how many presence days fall within r.
func (s DaySet) CountInRange(r DayRange) int {
	// Iterate whichever side is smaller: the set for long histories
	// over short windows, the range for short sets.
	if r.Len() < len(s.days) {
		n := 0
		for cur := r.Start; cur.BeforeOrEqual(r.End); cur = cur.AddDays(1) {
			if s.Contains(cur) {
				n++
			}
		}
		return n
	}
	n := 0
	for d := range s.days {
		if r.Contains(d) {
			n++
		}
	}
	return n
}

func sortDays(days []Day) {
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
}

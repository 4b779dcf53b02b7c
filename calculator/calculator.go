/*
Package calculator wraps the pure schengen engine with a
fingerprint-keyed cache.

PURPOSE:
  Presence expansion is O(total trip-days) and dominates cost for
  subjects with long histories. A Calculator expands the trip set once,
  then serves every evaluation, vector, and planning query from the
  shared day set, memoizing results under content-derived keys so
  repeated dashboard/calendar requests cost a map lookup.

USAGE:
  calc, err := calculator.New(trips, cfg, cache)
  res, err := calc.Evaluate(ref)
  vec, err := calc.Vector(start, end)

SEE ALSO:
  - fingerprint.go: key derivation
  - cache.go: bounded LRU + metrics
*/
package calculator

import (
	"github.com/thisjamieguy/complyeur-v2-sub005/schengen"
)

// Calculator evaluates compliance for one subject's trip set. Create
// one per (trip set, config); it is safe for concurrent use.
type Calculator struct {
	cfg         schengen.Config
	set         schengen.DaySet
	fingerprint string
	cache       *Cache
}

// New validates the config, expands the presence-day set once, and
// returns a ready calculator. A nil cache disables memoization-sharing
// with other calculators by creating a private one.
func New(trips []schengen.Trip, cfg schengen.Config, cache *Cache) (*Calculator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	set, err := schengen.PresenceDays(trips, cfg)
	if err != nil {
		return nil, err
	}
	if cache == nil {
		cache = NewCache(DefaultCacheSize)
	}
	return &Calculator{
		cfg:         cfg,
		set:         set,
		fingerprint: Fingerprint(trips, cfg),
		cache:       cache,
	}, nil
}

// NewFromRecords parses wire records and builds a calculator.
func NewFromRecords(recs []schengen.TripRecord, cfg schengen.Config, cache *Cache) (*Calculator, error) {
	trips, err := schengen.ParseTrips(recs)
	if err != nil {
		return nil, err
	}
	return New(trips, cfg, cache)
}

// Fingerprint exposes the content key, used by callers embedding it in
// audit exports to prove which inputs produced a result.
func (c *Calculator) Fingerprint() string { return c.fingerprint }

// PresenceDays returns the number of distinct in-scope presence days.
func (c *Calculator) PresenceDays() int { return c.set.Len() }

// Evaluate returns the compliance result at the given reference date,
// served from cache when the same inputs were evaluated before.
func (c *Calculator) Evaluate(ref schengen.Day) (schengen.Result, error) {
	v, err := c.cache.GetOrCompute(evalKey(c.fingerprint, ref), func() (any, error) {
		return schengen.Evaluate(c.set, ref, c.cfg)
	})
	if err != nil {
		return schengen.Result{}, err
	}
	return v.(schengen.Result), nil
}

// Vector returns per-day results for [start, end] inclusive.
func (c *Calculator) Vector(start, end schengen.Day) (schengen.Vector, error) {
	v, err := c.cache.GetOrCompute(rangeKey(c.fingerprint, start, end), func() (any, error) {
		return schengen.ComplianceVector(c.set, start, end, c.cfg)
	})
	if err != nil {
		return nil, err
	}
	return v.(schengen.Vector), nil
}

// EarliestSafeEntry plans the next safe stay of stayLen days starting
// no earlier than 'from'. Not memoized: planning queries vary too much
// to be worth cache slots.
func (c *Calculator) EarliestSafeEntry(stayLen int, from schengen.Day) (schengen.Day, bool, error) {
	return schengen.EarliestSafeEntry(c.set, stayLen, from, c.cfg)
}

// DaysUntilCompliant reports days until compliance is restored.
func (c *Calculator) DaysUntilCompliant() (int, error) {
	return schengen.DaysUntilCompliant(c.set, c.cfg)
}

// MaxStay returns the longest breach-free stay starting at entry.
func (c *Calculator) MaxStay(entry schengen.Day) (int, error) {
	return schengen.MaxStayDays(c.set, entry, c.cfg)
}

/*
Package report computes numeric audit summaries over a subject's
compliance history.

PURPOSE:
  The export surface (CSV/PDF rendering, out of scope here) needs a
  small set of headline numbers per employee: total in-scope presence,
  per-country day counts, the worst point of the year, and allowance
  utilization. Everything here is derived from the same deterministic
  pipeline as the per-day results, so an exported summary is
  reproducible bit-for-bit from the trip data.

PRECISION:
  Utilization is a percentage shown on legal documents; it is computed
  with decimal arithmetic and rounded to two places, never with floats.
*/
package report

import (
	"github.com/shopspring/decimal"

	"github.com/thisjamieguy/complyeur-v2-sub005/schengen"
)

// Summary is the audit-facing rollup for one subject and one calendar
// year.
type Summary struct {
	Year               int                `json:"year"`
	TotalPresenceDays  int                `json:"total_presence_days"`
	DaysByCountry      map[string]int     `json:"days_by_country"`
	PeakDaysUsed       int                `json:"peak_days_used"`
	PeakDate           schengen.Day       `json:"peak_date"`
	BreachDays         int                `json:"breach_days"`
	UtilizationPercent decimal.Decimal    `json:"utilization_percent"`
	RiskLevel          schengen.RiskLevel `json:"risk_level"`
}

// BuildSummary computes the yearly rollup. Per-country counts follow
// the same rules as presence expansion: private trips and out-of-scope
// countries contribute nothing, the start-date floor applies, and a
// day covered by trips to two countries is attributed to each (country
// attribution is informational; the presence total stays deduplicated).
func BuildSummary(trips []schengen.Trip, year int, cfg schengen.Config) (Summary, error) {
	set, err := schengen.PresenceDays(trips, cfg)
	if err != nil {
		return Summary{}, err
	}
	vec, err := schengen.YearCompliance(set, year, cfg)
	if err != nil {
		return Summary{}, err
	}

	s := Summary{
		Year:          year,
		DaysByCountry: make(map[string]int),
	}

	yr := schengen.YearRange(year)
	s.TotalPresenceDays = set.CountInRange(yr)

	for _, trip := range trips {
		if trip.Private {
			continue
		}
		cv, err := schengen.ValidateCountry(trip.Country)
		if err != nil {
			return Summary{}, err
		}
		if !cv.InScope {
			continue
		}
		n := 0
		for d := trip.EntryDate; d.BeforeOrEqual(trip.ExitDate); d = d.AddDays(1) {
			if d.Before(cfg.StartDate) || !yr.Contains(d) {
				continue
			}
			n++
		}
		if n > 0 {
			s.DaysByCountry[cv.Normalized] += n
		}
	}

	for _, r := range vec {
		if r.DaysUsed > s.PeakDaysUsed {
			s.PeakDaysUsed = r.DaysUsed
			s.PeakDate = r.ReferenceDate
		}
		if r.Breach() {
			s.BreachDays++
		}
	}

	s.UtilizationPercent = decimal.NewFromInt(int64(s.PeakDaysUsed)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(cfg.Limit))).
		Round(2)
	s.RiskLevel = schengen.RiskFor(cfg.Limit-s.PeakDaysUsed, cfg.Thresholds)

	return s, nil
}

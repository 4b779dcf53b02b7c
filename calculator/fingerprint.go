/*
fingerprint.go - Stable cache keys over trip sets

PURPOSE:
  Derives a cache key from the CONTENT of a trip set plus the relevant
  config, never from object identity: two logically identical trip sets
  presented as different slices must hit the same cache entry.

STABILITY:
  Trips are normalized to (entry|exit|country|private) tuples, sorted,
  and hashed with SHA-256 together with limit, window size, start date
  and thresholds. Purpose and ID are deliberately excluded - they do
  not affect the math.
*/
package calculator

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/thisjamieguy/complyeur-v2-sub005/schengen"
)

// Fingerprint returns a stable hex digest identifying the calculation
// inputs that affect results: the normalized trip set and the config
// parameters (excluding the reference date, which becomes part of the
// per-evaluation key).
func Fingerprint(trips []schengen.Trip, cfg schengen.Config) string {
	tuples := make([]string, 0, len(trips))
	for _, t := range trips {
		tuples = append(tuples, fmt.Sprintf("%s|%s|%s|%t",
			t.EntryDate, t.ExitDate, schengen.NormalizeCountryCode(t.Country), t.Private))
	}
	sort.Strings(tuples)

	h := sha256.New()
	fmt.Fprintf(h, "limit=%d;window=%d;start=%s;green=%d;amber=%d;",
		cfg.Limit, cfg.WindowDays, cfg.StartDate,
		cfg.Thresholds.GreenMin, cfg.Thresholds.AmberMin)
	h.Write([]byte(strings.Join(tuples, "\n")))
	return hex.EncodeToString(h.Sum(nil))
}

// evalKey scopes a fingerprint to one reference date.
func evalKey(fingerprint string, ref schengen.Day) string {
	return fingerprint + "@" + ref.String()
}

// rangeKey scopes a fingerprint to a vector range.
func rangeKey(fingerprint string, start, end schengen.Day) string {
	return fingerprint + "@" + start.String() + ".." + end.String()
}

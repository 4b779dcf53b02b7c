package schengen_test

import (
	"errors"
	"testing"
	"time"

	"github.com/thisjamieguy/complyeur-v2-sub005/schengen"
)

func TestParseDay_ValidISO(t *testing.T) {
	d, err := schengen.ParseDay("2025-11-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Year() != 2025 || d.Month() != time.November || d.Day() != 1 {
		t.Errorf("parsed wrong day: %s", d)
	}
}

func TestParseDay_EmptyFailsLoudly(t *testing.T) {
	// A parse failure must not masquerade as "no travel".
	_, err := schengen.ParseDay("")
	if !errors.Is(err, schengen.ErrInvalidDateRange) {
		t.Errorf("expected ErrInvalidDateRange for empty string, got %v", err)
	}
}

func TestParseDay_GarbageFailsLoudly(t *testing.T) {
	for _, raw := range []string{"not-a-date", "2025-13-01", "01/02/2025", "2025-02-30"} {
		if _, err := schengen.ParseDay(raw); !errors.Is(err, schengen.ErrInvalidDateRange) {
			t.Errorf("ParseDay(%q): expected ErrInvalidDateRange, got %v", raw, err)
		}
	}
}

func TestFromTime_NormalizesToUTCMidnight(t *testing.T) {
	// 23:30 in UTC+2 on Jan 2 is 21:30 UTC on Jan 2.
	loc := time.FixedZone("CEST", 2*60*60)
	d := schengen.FromTime(time.Date(2025, time.January, 2, 23, 30, 0, 0, loc))
	if d.String() != "2025-01-02" {
		t.Errorf("expected 2025-01-02, got %s", d)
	}
}

func TestDaysBetween(t *testing.T) {
	a := schengen.MustDay("2025-01-01")
	b := schengen.MustDay("2025-01-10")
	if got := schengen.DaysBetween(a, b); got != 9 {
		t.Errorf("DaysBetween = %d, want 9", got)
	}
	if got := schengen.DaysBetween(b, a); got != -9 {
		t.Errorf("reverse DaysBetween = %d, want -9", got)
	}
}

func TestDayRange_ContainsAndLen(t *testing.T) {
	r := schengen.DayRange{Start: schengen.MustDay("2025-03-01"), End: schengen.MustDay("2025-03-10")}
	if r.Len() != 10 {
		t.Errorf("Len = %d, want 10", r.Len())
	}
	if !r.Contains(schengen.MustDay("2025-03-01")) || !r.Contains(schengen.MustDay("2025-03-10")) {
		t.Error("range must include both endpoints")
	}
	if r.Contains(schengen.MustDay("2025-03-11")) {
		t.Error("range must exclude days past the end")
	}
}

func TestMonthRange_HandlesFebruary(t *testing.T) {
	r := schengen.MonthRange(2024, time.February) // leap year
	if r.Len() != 29 {
		t.Errorf("Feb 2024 should have 29 days, got %d", r.Len())
	}
	r = schengen.MonthRange(2025, time.February)
	if r.Len() != 28 {
		t.Errorf("Feb 2025 should have 28 days, got %d", r.Len())
	}
}

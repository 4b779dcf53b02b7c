/*
window_test.go - Executable specification for the rolling window

These tests pin the window's boundary behavior and the compliance
cutoff, the two places where an off-by-one turns into a legal problem.
*/
package schengen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thisjamieguy/complyeur-v2-sub005/schengen"
)

// =============================================================================
// WINDOW BOUNDS
// =============================================================================

func TestWindowBounds_ExcludesReferenceDate(t *testing.T) {
	ref := schengen.MustDay("2025-11-20")
	w := schengen.WindowBounds(ref, 180)

	assert.Equal(t, "2025-05-24", w.Start.String())
	assert.Equal(t, "2025-11-19", w.End.String())
	assert.False(t, w.Contains(ref), "window must exclude the reference date itself")
	assert.Equal(t, 180, w.Len())
}

func TestDaysUsed_PresenceOnReferenceDateDoesNotCount(t *testing.T) {
	// GIVEN: a single presence day equal to the reference date
	// WHEN: evaluating that date
	// THEN: daysUsed is 0 - the window is [R-180, R-1]
	ref := schengen.MustDay("2025-11-20")
	cfg := schengen.DefaultConfig(ref)
	set, err := schengen.PresenceDays([]schengen.Trip{trip("2025-11-20", "2025-11-20", "FR")}, cfg)
	require.NoError(t, err)

	used, err := schengen.DaysUsedInWindow(set, ref, cfg)
	require.NoError(t, err)
	assert.Equal(t, 0, used)

	// One day later the same presence day has entered the window.
	used, err = schengen.DaysUsedInWindow(set, ref.AddDays(1), cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, used)
}

// =============================================================================
// COMPLIANCE CUTOFF
// =============================================================================

func TestIsCompliant_89Yes90No(t *testing.T) {
	// 89 used days is still compliant; 90 is a breach.
	ref := schengen.MustDay("2025-11-20")
	cfg := schengen.DefaultConfig(ref)

	set89, err := schengen.PresenceDays([]schengen.Trip{trip("2025-08-01", "2025-10-28", "FR")}, cfg) // 89 days
	require.NoError(t, err)
	require.Equal(t, 89, set89.Len())
	ok, err := schengen.IsCompliant(set89, ref, cfg)
	require.NoError(t, err)
	assert.True(t, ok, "89 days used must be compliant")

	set90, err := schengen.PresenceDays([]schengen.Trip{trip("2025-08-01", "2025-10-29", "FR")}, cfg) // 90 days
	require.NoError(t, err)
	require.Equal(t, 90, set90.Len())
	ok, err = schengen.IsCompliant(set90, ref, cfg)
	require.NoError(t, err)
	assert.False(t, ok, "90 days used must be a breach")
}

// =============================================================================
// SCENARIOS
// =============================================================================

func TestScenario_TenDayFranceTrip(t *testing.T) {
	// GIVEN: a single 10-day trip 2025-11-01..2025-11-10 to France
	// WHEN: evaluating at 2025-11-20
	// THEN: daysUsed=10, daysRemaining=80, risk green, compliant
	cfg := schengen.DefaultConfig(schengen.MustDay("2025-11-20"))
	res, err := schengen.Calculate([]schengen.Trip{trip("2025-11-01", "2025-11-10", "FR")}, cfg)
	require.NoError(t, err)

	assert.Equal(t, 10, res.DaysUsed)
	assert.Equal(t, 80, res.DaysRemaining)
	assert.Equal(t, schengen.RiskGreen, res.RiskLevel)
	assert.True(t, res.Compliant)
	assert.False(t, res.Breach())
}

func TestScenario_95DaysIsBreachWithNegativeRemaining(t *testing.T) {
	// GIVEN: 95 presence days inside the current window
	// THEN: not compliant, daysRemaining = -5 (unclamped breach magnitude)
	cfg := schengen.DefaultConfig(schengen.MustDay("2025-11-20"))
	res, err := schengen.Calculate([]schengen.Trip{trip("2025-08-01", "2025-11-03", "FR")}, cfg) // 95 days
	require.NoError(t, err)

	assert.Equal(t, 95, res.DaysUsed)
	assert.Equal(t, -5, res.DaysRemaining)
	assert.False(t, res.Compliant)
	assert.True(t, res.Breach())
	assert.Equal(t, schengen.RiskRed, res.RiskLevel)
}

func TestCalculate_Idempotent(t *testing.T) {
	// Identical (trips, config) must yield identical results.
	trips := []schengen.Trip{
		trip("2025-03-01", "2025-03-20", "DE"),
		trip("2025-06-10", "2025-07-01", "ES"),
	}
	cfg := schengen.DefaultConfig(schengen.MustDay("2025-08-15"))

	first, err := schengen.Calculate(trips, cfg)
	require.NoError(t, err)
	second, err := schengen.Calculate(trips, cfg)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// =============================================================================
// CONFIG VALIDATION
// =============================================================================

func TestConfigValidate_RejectsBadInput(t *testing.T) {
	base := schengen.DefaultConfig(schengen.MustDay("2025-01-01"))

	zeroRef := base
	zeroRef.ReferenceDate = schengen.Day{}
	assert.ErrorIs(t, zeroRef.Validate(), schengen.ErrInvalidReferenceDate)

	badLimit := base
	badLimit.Limit = 0
	assert.ErrorIs(t, badLimit.Validate(), schengen.ErrInvalidConfig)

	badWindow := base
	badWindow.WindowDays = -1
	assert.ErrorIs(t, badWindow.Validate(), schengen.ErrInvalidConfig)

	badThresholds := base
	badThresholds.Thresholds = schengen.Thresholds{GreenMin: 5, AmberMin: 10}
	assert.ErrorIs(t, badThresholds.Validate(), schengen.ErrInvalidConfig)

	assert.NoError(t, base.Validate())
}

func TestWindowSize_Overridable(t *testing.T) {
	// A 30-day window sees only the last 30 days.
	cfg := schengen.DefaultConfig(schengen.MustDay("2025-06-01"))
	cfg.WindowDays = 30

	set, err := schengen.PresenceDays([]schengen.Trip{trip("2025-01-01", "2025-05-20", "FR")}, cfg)
	require.NoError(t, err)

	used, err := schengen.DaysUsedInWindow(set, cfg.ReferenceDate, cfg)
	require.NoError(t, err)
	// Window [2025-05-02, 2025-05-31]; presence 2025-05-02..2025-05-20.
	assert.Equal(t, 19, used)
}

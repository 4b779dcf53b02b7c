package schengen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thisjamieguy/complyeur-v2-sub005/schengen"
)

// =============================================================================
// EARLIEST SAFE ENTRY
// =============================================================================

func TestEarliestSafeEntry_ImmediateWhenAllowanceFree(t *testing.T) {
	// GIVEN: 10 used days, plenty of headroom
	// THEN: the from date itself is safe
	cfg := schengen.DefaultConfig(schengen.MustDay("2025-11-20"))
	set, err := schengen.PresenceDays([]schengen.Trip{trip("2025-11-01", "2025-11-10", "FR")}, cfg)
	require.NoError(t, err)

	from := schengen.MustDay("2025-11-20")
	got, ok, err := schengen.EarliestSafeEntry(set, 30, from, cfg)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, from, got)
}

func TestEarliestSafeEntry_Soundness(t *testing.T) {
	// GIVEN: a full 90-day block just spent
	// WHEN: solving for a 30-day stay
	// THEN: at the returned date, used + stay fits the limit;
	//       one day earlier it must not
	cfg := schengen.DefaultConfig(schengen.MustDay("2025-11-20"))
	set, err := schengen.PresenceDays([]schengen.Trip{trip("2025-08-13", "2025-11-10", "FR")}, cfg) // 90 days
	require.NoError(t, err)
	require.Equal(t, 90, set.Len())

	from := schengen.MustDay("2025-11-20")
	stay := 30
	got, ok, err := schengen.EarliestSafeEntry(set, stay, from, cfg)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.AfterOrEqual(from))

	usedAt, err := schengen.DaysUsedInWindow(set, got, cfg)
	require.NoError(t, err)
	assert.LessOrEqual(t, usedAt+stay, cfg.Limit, "returned date must fit the stay")

	usedBefore, err := schengen.DaysUsedInWindow(set, got.AddDays(-1), cfg)
	require.NoError(t, err)
	assert.Greater(t, usedBefore+stay, cfg.Limit, "one day earlier must not fit")
}

func TestEarliestSafeEntry_StayLongerThanLimitNeverSafe(t *testing.T) {
	cfg := schengen.DefaultConfig(schengen.MustDay("2025-11-20"))
	set := schengen.NewDaySet()

	_, ok, err := schengen.EarliestSafeEntry(set, 91, schengen.MustDay("2025-11-20"), cfg)
	require.NoError(t, err)
	assert.False(t, ok, "a stay longer than the limit has no safe entry date")
}

func TestEarliestSafeEntry_RejectsNonPositiveStay(t *testing.T) {
	cfg := schengen.DefaultConfig(schengen.MustDay("2025-11-20"))
	_, _, err := schengen.EarliestSafeEntry(schengen.NewDaySet(), 0, schengen.MustDay("2025-11-20"), cfg)
	assert.ErrorIs(t, err, schengen.ErrInvalidConfig)
}

// =============================================================================
// DAYS UNTIL COMPLIANT
// =============================================================================

func TestDaysUntilCompliant_ZeroWhenCompliant(t *testing.T) {
	cfg := schengen.DefaultConfig(schengen.MustDay("2025-11-20"))
	set, err := schengen.PresenceDays([]schengen.Trip{trip("2025-11-01", "2025-11-10", "FR")}, cfg)
	require.NoError(t, err)

	n, err := schengen.DaysUntilCompliant(set, cfg)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestDaysUntilCompliant_BreachSelfResolves(t *testing.T) {
	// GIVEN: in breach at the reference date
	// THEN: the count is positive, and evaluating at ref+count is
	//       compliant while ref+count-1 is not
	cfg := schengen.DefaultConfig(schengen.MustDay("2025-11-20"))
	set, err := schengen.PresenceDays([]schengen.Trip{trip("2025-08-01", "2025-11-03", "FR")}, cfg) // 95 days
	require.NoError(t, err)

	n, err := schengen.DaysUntilCompliant(set, cfg)
	require.NoError(t, err)
	require.Greater(t, n, 0)

	ok, err := schengen.IsCompliant(set, cfg.ReferenceDate.AddDays(n), cfg)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = schengen.IsCompliant(set, cfg.ReferenceDate.AddDays(n-1), cfg)
	require.NoError(t, err)
	assert.False(t, ok)
}

// =============================================================================
// MAX STAY
// =============================================================================

func TestMaxStayDays_EmptyHistoryGivesFullAllowance(t *testing.T) {
	cfg := schengen.DefaultConfig(schengen.MustDay("2025-11-20"))
	n, err := schengen.MaxStayDays(schengen.NewDaySet(), schengen.MustDay("2025-11-20"), cfg)
	require.NoError(t, err)
	assert.Equal(t, 90, n)
}

func TestMaxStayDays_RecentPresenceShortens(t *testing.T) {
	// GIVEN: 10 days just used, none aging out during the stay
	// THEN: 80 days remain
	cfg := schengen.DefaultConfig(schengen.MustDay("2025-11-20"))
	set, err := schengen.PresenceDays([]schengen.Trip{trip("2025-11-01", "2025-11-10", "FR")}, cfg)
	require.NoError(t, err)

	n, err := schengen.MaxStayDays(set, schengen.MustDay("2025-11-20"), cfg)
	require.NoError(t, err)
	assert.Equal(t, 80, n)
}

func TestMaxStayDays_AgingOutExtendsStay(t *testing.T) {
	// GIVEN: 30 presence days that start aging out shortly into the stay
	// THEN: the stay exceeds the naive limit-minus-used bound
	cfg := schengen.DefaultConfig(schengen.MustDay("2025-11-20"))
	set, err := schengen.PresenceDays([]schengen.Trip{trip("2025-06-01", "2025-06-30", "FR")}, cfg)
	require.NoError(t, err)

	entry := schengen.MustDay("2025-11-20")
	n, err := schengen.MaxStayDays(set, entry, cfg)
	require.NoError(t, err)
	assert.Greater(t, n, 60, "aging-out presence must extend the possible stay beyond limit-used")
	assert.LessOrEqual(t, n, 90)
}

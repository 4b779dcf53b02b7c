package calculator_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thisjamieguy/complyeur-v2-sub005/calculator"
	"github.com/thisjamieguy/complyeur-v2-sub005/schengen"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func testTrips() []schengen.Trip {
	return []schengen.Trip{
		{EntryDate: schengen.MustDay("2025-11-01"), ExitDate: schengen.MustDay("2025-11-10"), Country: "FR"},
		{EntryDate: schengen.MustDay("2025-06-01"), ExitDate: schengen.MustDay("2025-06-20"), Country: "DE"},
	}
}

func testConfig() schengen.Config {
	return schengen.DefaultConfig(schengen.MustDay("2025-11-20"))
}

// =============================================================================
// FINGERPRINT
// =============================================================================

func TestFingerprint_IndependentOfOrderAndIdentity(t *testing.T) {
	cfg := testConfig()
	a := testTrips()
	b := []schengen.Trip{a[1], a[0]} // same content, different order/instances

	assert.Equal(t, calculator.Fingerprint(a, cfg), calculator.Fingerprint(b, cfg))
}

func TestFingerprint_SensitiveToContentAndConfig(t *testing.T) {
	cfg := testConfig()
	base := calculator.Fingerprint(testTrips(), cfg)

	changed := testTrips()
	changed[0].ExitDate = changed[0].ExitDate.AddDays(1)
	assert.NotEqual(t, base, calculator.Fingerprint(changed, cfg))

	cfg2 := cfg
	cfg2.Limit = 60
	assert.NotEqual(t, base, calculator.Fingerprint(testTrips(), cfg2))
}

func TestFingerprint_IgnoresPurposeAndID(t *testing.T) {
	cfg := testConfig()
	a := testTrips()
	b := testTrips()
	b[0].ID = "other-id"
	b[0].Purpose = "conference"
	assert.Equal(t, calculator.Fingerprint(a, cfg), calculator.Fingerprint(b, cfg))
}

// =============================================================================
// CACHED EVALUATION
// =============================================================================

func TestCalculator_EvaluateHitsCacheOnRepeat(t *testing.T) {
	cache := calculator.NewCache(64)
	calc, err := calculator.New(testTrips(), testConfig(), cache)
	require.NoError(t, err)
	cache.ClearMetrics()

	ref := schengen.MustDay("2025-11-20")
	first, err := calc.Evaluate(ref)
	require.NoError(t, err)
	second, err := calc.Evaluate(ref)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	m := cache.MetricsSnapshot()
	assert.Equal(t, uint64(1), m.Misses)
	assert.Equal(t, uint64(1), m.Hits)
}

func TestCalculator_LogicallyIdenticalTripSetsShareEntries(t *testing.T) {
	// Two calculators over distinct slice instances with identical
	// content must hit the same cache entries.
	cache := calculator.NewCache(64)
	cfg := testConfig()

	calcA, err := calculator.New(testTrips(), cfg, cache)
	require.NoError(t, err)
	calcB, err := calculator.New(testTrips(), cfg, cache)
	require.NoError(t, err)
	cache.ClearMetrics()

	ref := schengen.MustDay("2025-11-20")
	_, err = calcA.Evaluate(ref)
	require.NoError(t, err)
	_, err = calcB.Evaluate(ref)
	require.NoError(t, err)

	m := cache.MetricsSnapshot()
	assert.Equal(t, uint64(1), m.Misses, "second calculator must reuse the entry")
	assert.Equal(t, uint64(1), m.Hits)
}

func TestCalculator_VectorCached(t *testing.T) {
	cache := calculator.NewCache(64)
	calc, err := calculator.New(testTrips(), testConfig(), cache)
	require.NoError(t, err)
	cache.ClearMetrics()

	start := schengen.MustDay("2025-11-01")
	end := schengen.MustDay("2025-11-30")
	v1, err := calc.Vector(start, end)
	require.NoError(t, err)
	v2, err := calc.Vector(start, end)
	require.NoError(t, err)

	assert.Equal(t, v1, v2)
	assert.Equal(t, uint64(1), cache.MetricsSnapshot().Hits)
}

func TestCalculator_RejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.WindowDays = 0
	_, err := calculator.New(testTrips(), cfg, nil)
	assert.ErrorIs(t, err, schengen.ErrInvalidConfig)
}

func TestCalculator_SurfacesUnknownCountry(t *testing.T) {
	trips := []schengen.Trip{
		{EntryDate: schengen.MustDay("2025-01-01"), ExitDate: schengen.MustDay("2025-01-05"), Country: "ZZ"},
	}
	_, err := calculator.New(trips, testConfig(), nil)
	assert.ErrorIs(t, err, schengen.ErrUnknownCountry)
}

// =============================================================================
// CONCURRENCY
// =============================================================================

func TestCache_ConcurrentAccessIsSafe(t *testing.T) {
	cache := calculator.NewCache(256)
	calc, err := calculator.New(testTrips(), testConfig(), cache)
	require.NoError(t, err)

	want, err := calc.Evaluate(schengen.MustDay("2025-11-20"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			ref := schengen.MustDay("2025-11-20").AddDays(n % 4)
			got, err := calc.Evaluate(ref)
			if err != nil {
				t.Error(err)
				return
			}
			if n%4 == 0 && got != want {
				t.Errorf("concurrent evaluate diverged: %+v != %+v", got, want)
			}
		}(i)
	}
	wg.Wait()
}

// =============================================================================
// EVICTION
// =============================================================================

func TestCache_EvictsUnderBound(t *testing.T) {
	cache := calculator.NewCache(4)
	calc, err := calculator.New(testTrips(), testConfig(), cache)
	require.NoError(t, err)
	cache.ClearMetrics()

	for i := 0; i < 10; i++ {
		_, err := calc.Evaluate(schengen.MustDay("2025-11-20").AddDays(i))
		require.NoError(t, err)
	}

	assert.LessOrEqual(t, cache.Len(), 4)
	assert.Greater(t, cache.MetricsSnapshot().Evictions, uint64(0))
}

func TestCache_ClearMetricsIsolatesTests(t *testing.T) {
	cache := calculator.NewCache(16)
	_, err := cache.GetOrCompute("k", func() (any, error) { return 1, nil })
	require.NoError(t, err)
	require.NotZero(t, cache.MetricsSnapshot().Misses)

	cache.ClearMetrics()
	assert.Equal(t, calculator.Metrics{}, cache.MetricsSnapshot())
}

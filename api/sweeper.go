/*
sweeper.go - Periodic fleet-wide risk sweep

PURPOSE:
  Periodically evaluates every employee's compliance position and keeps
  the latest snapshot in memory for the dashboard overview endpoint.
  Individual compliance requests stay on-demand; the sweep exists so
  "who is amber or red right now" doesn't fan out N requests from the UI.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Each pass lists employees, evaluates each against today, tallies
    risk levels
  - Employees whose trip data fails to parse are logged and skipped,
    never aborting the sweep
  - The snapshot is replaced atomically under a mutex

CONFIGURATION:
  - Interval: how often to sweep (default: 1 hour)

USAGE:
  sweeper := api.NewRiskSweeper(store, handler)
  sweeper.Start()
  // ... later
  sweeper.Stop()

SEE ALSO:
  - handlers.go: GetRiskOverview serves the snapshot
  - calculator/calculator.go: per-employee evaluation
*/
package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/thisjamieguy/complyeur-v2-sub005/calculator"
	"github.com/thisjamieguy/complyeur-v2-sub005/schengen"
	"github.com/thisjamieguy/complyeur-v2-sub005/store"
)

// RiskSweeper periodically evaluates the whole fleet.
type RiskSweeper struct {
	Store    store.TripStore
	Handler  *Handler
	Interval time.Duration
	Log      zerolog.Logger

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup

	mu   sync.Mutex
	last RiskOverviewDTO
}

// NewRiskSweeper creates a sweeper with the default interval.
func NewRiskSweeper(st store.TripStore, h *Handler) *RiskSweeper {
	return &RiskSweeper{
		Store:    st,
		Handler:  h,
		Interval: time.Hour,
		Log:      h.Log,
		stop:     make(chan struct{}),
	}
}

// Start begins the background sweep loop.
func (rs *RiskSweeper) Start() {
	rs.ticker = time.NewTicker(rs.Interval)
	rs.wg.Add(1)
	go rs.run()
	rs.Log.Info().Dur("interval", rs.Interval).Msg("risk sweeper started")
}

// Stop halts the loop and waits for an in-flight sweep to finish.
func (rs *RiskSweeper) Stop() {
	if rs.ticker != nil {
		rs.ticker.Stop()
		close(rs.stop)
		rs.wg.Wait()
		rs.Log.Info().Msg("risk sweeper stopped")
	}
}

func (rs *RiskSweeper) run() {
	defer rs.wg.Done()

	// Run immediately on start
	rs.Sweep(context.Background())

	for {
		select {
		case <-rs.ticker.C:
			rs.Sweep(context.Background())
		case <-rs.stop:
			return
		}
	}
}

// Sweep evaluates every employee at today's date and replaces the
// snapshot. Exported so tests and admin tooling can trigger it directly.
func (rs *RiskSweeper) Sweep(ctx context.Context) {
	ref := schengen.Today()
	cfg := rs.Handler.Base
	cfg.ReferenceDate = ref

	employees, err := rs.Store.ListEmployees(ctx)
	if err != nil {
		rs.Log.Error().Err(err).Msg("sweep: listing employees failed")
		return
	}

	overview := RiskOverviewDTO{
		SweptAt:   time.Now().UTC().Format(time.RFC3339),
		Reference: ref,
		Employees: make([]EmployeeRiskDTO, 0, len(employees)),
	}

	for _, emp := range employees {
		trips, err := rs.Store.ListTrips(ctx, emp.ID)
		if err != nil {
			rs.Log.Error().Err(err).Str("employee", emp.ID).Msg("sweep: loading trips failed")
			continue
		}
		calc, err := calculator.NewFromRecords(store.Records(trips), cfg, rs.Handler.Cache)
		if err != nil {
			rs.Log.Warn().Err(err).Str("employee", emp.ID).Msg("sweep: skipping employee with bad trip data")
			continue
		}
		res, err := calc.Evaluate(ref)
		if err != nil {
			rs.Log.Warn().Err(err).Str("employee", emp.ID).Msg("sweep: evaluation failed")
			continue
		}

		overview.Employees = append(overview.Employees, EmployeeRiskDTO{
			EmployeeID:    emp.ID,
			Name:          emp.Name,
			DaysUsed:      res.DaysUsed,
			DaysRemaining: res.DaysRemaining,
			RiskLevel:     res.RiskLevel,
			Compliant:     res.Compliant,
		})
		switch res.RiskLevel {
		case schengen.RiskGreen:
			overview.Green++
		case schengen.RiskAmber:
			overview.Amber++
		case schengen.RiskRed:
			overview.Red++
		}
	}

	rs.mu.Lock()
	rs.last = overview
	rs.mu.Unlock()

	if overview.Red > 0 || overview.Amber > 0 {
		rs.Log.Info().
			Int("green", overview.Green).
			Int("amber", overview.Amber).
			Int("red", overview.Red).
			Msg("risk sweep completed")
	}
}

// Overview returns the latest snapshot.
func (rs *RiskSweeper) Overview() RiskOverviewDTO {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.last
}

// GetRiskOverview serves the sweeper's latest snapshot. A nil sweeper
// (sweeps disabled) computes one synchronously so the endpoint still
// answers.
func (h *Handler) GetRiskOverview(w http.ResponseWriter, r *http.Request) {
	if h.Sweeper == nil {
		rs := NewRiskSweeper(h.Store, h)
		rs.Sweep(r.Context())
		writeJSON(w, http.StatusOK, rs.Overview())
		return
	}
	writeJSON(w, http.StatusOK, h.Sweeper.Overview())
}

/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	travel data for testing and demos. Each scenario creates employees and
	trips that demonstrate a specific compliance situation.

AVAILABLE SCENARIOS:

	fresh-start:       New employee, no travel history
	frequent-traveller: Consultant with regular Schengen trips, green/amber
	near-limit:        Heavy traveller a few days from the 90-day limit
	breach:            Employee currently over the limit
	mixed-scope:       Schengen + out-of-scope + private trips together

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Create employees
 3. Add trips positioned relative to today so the demo always looks live

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "near-limit"}

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description
 2. Create loader function: loadXxxScenario(ctx, h)
 3. Add case to LoadScenario handler

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: writeError, writeJSON helpers
  - schengen/registry.go: country classification the scenarios exercise
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/thisjamieguy/complyeur-v2-sub005/schengen"
	"github.com/thisjamieguy/complyeur-v2-sub005/store"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "fresh-start",
		Name:        "Fresh Start",
		Description: "New employee with no travel history, full 90 days available",
		Category:    "basic",
	},
	{
		ID:          "frequent-traveller",
		Name:        "Frequent Traveller",
		Description: "Consultant with recurring week-long Schengen trips, comfortably compliant",
		Category:    "basic",
	},
	{
		ID:          "near-limit",
		Name:        "Near Limit",
		Description: "Heavy traveller with only a handful of days remaining",
		Category:    "risk",
	},
	{
		ID:          "breach",
		Name:        "Breach",
		Description: "Employee currently over the 90-day limit",
		Category:    "risk",
	},
	{
		ID:          "mixed-scope",
		Name:        "Mixed Scope",
		Description: "Schengen trips next to UK/US travel and private trips that never count",
		Category:    "scope",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	if h.currentScenario == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	for _, s := range scenarios {
		if s.ID == h.currentScenario {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}

	// Scenario ID exists but not in list (shouldn't happen)
	writeJSON(w, http.StatusOK, ScenarioDTO{
		ID:          h.currentScenario,
		Name:        h.currentScenario,
		Description: "Currently loaded scenario",
	})
}

// LoadScenario loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScenarioID string `json:"scenario_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStatus(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}

	ctx := r.Context()

	// Reset first
	if err := h.Store.Reset(ctx); err != nil {
		h.writeError(w, err)
		return
	}
	h.Cache.Purge()
	h.currentScenario = ""

	var err error
	switch req.ScenarioID {
	case "fresh-start":
		err = h.loadFreshStartScenario(ctx)
	case "frequent-traveller":
		err = h.loadFrequentTravellerScenario(ctx)
	case "near-limit":
		err = h.loadNearLimitScenario(ctx)
	case "breach":
		err = h.loadBreachScenario(ctx)
	case "mixed-scope":
		err = h.loadMixedScopeScenario(ctx)
	default:
		writeErrorStatus(w, http.StatusBadRequest, "unknown scenario", nil)
		return
	}

	if err != nil {
		h.writeError(w, err)
		return
	}

	h.currentScenario = req.ScenarioID
	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario": req.ScenarioID})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

// seedTrip positions a trip by offset from today, so loaded demos show a
// live window rather than dates that age out.
func (h *Handler) seedTrip(ctx context.Context, employeeID, country string, startOffset, length int, private bool, purpose string) error {
	today := schengen.Today()
	entry := today.AddDays(startOffset)
	exit := entry.AddDays(length - 1)
	return h.Store.AddTrip(ctx, store.StoredTrip{
		ID:         fmt.Sprintf("trip-%s-%s-%s", employeeID, country, entry.String()),
		EmployeeID: employeeID,
		EntryDate:  entry.String(),
		ExitDate:   exit.String(),
		Country:    country,
		Purpose:    purpose,
		IsPrivate:  private,
	})
}

func (h *Handler) loadFreshStartScenario(ctx context.Context) error {
	return h.Store.SaveEmployee(ctx, store.Employee{
		ID:    "emp-fresh",
		Name:  "Alice Johnson",
		Email: "alice@example.com",
	})
}

func (h *Handler) loadFrequentTravellerScenario(ctx context.Context) error {
	emp := store.Employee{ID: "emp-frequent", Name: "Ben Carter", Email: "ben@example.com"}
	if err := h.Store.SaveEmployee(ctx, emp); err != nil {
		return err
	}

	// One working week per month in the client's office, alternating
	// FR and DE, going back six months. Roughly 30 days used.
	countries := []string{"FR", "DE"}
	for i := 0; i < 6; i++ {
		offset := -30*(i+1) + 7
		if err := h.seedTrip(ctx, emp.ID, countries[i%2], offset, 5, false, "Client workshop"); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) loadNearLimitScenario(ctx context.Context) error {
	emp := store.Employee{ID: "emp-near", Name: "Carla Mendes", Email: "carla@example.com"}
	if err := h.Store.SaveEmployee(ctx, emp); err != nil {
		return err
	}

	// Two long assignments inside the current window: 60 + 25 days
	// used, 5 remaining.
	if err := h.seedTrip(ctx, emp.ID, "NL", -170, 60, false, "Rotterdam rollout"); err != nil {
		return err
	}
	return h.seedTrip(ctx, emp.ID, "NL", -60, 25, false, "Rotterdam phase two")
}

func (h *Handler) loadBreachScenario(ctx context.Context) error {
	emp := store.Employee{ID: "emp-breach", Name: "Daniel Novak", Email: "daniel@example.com"}
	if err := h.Store.SaveEmployee(ctx, emp); err != nil {
		return err
	}

	// A single 95-day assignment that ended last week. Five days over.
	return h.seedTrip(ctx, emp.ID, "ES", -102, 95, false, "Madrid secondment")
}

func (h *Handler) loadMixedScopeScenario(ctx context.Context) error {
	emp := store.Employee{ID: "emp-mixed", Name: "Erin Walsh", Email: "erin@example.com"}
	if err := h.Store.SaveEmployee(ctx, emp); err != nil {
		return err
	}

	// Only the FR and IT trips count: 20 days. UK and US are out of
	// scope, IE is EU-but-not-Schengen, and the private trip is
	// excluded regardless of destination.
	steps := []struct {
		country string
		offset  int
		length  int
		private bool
		purpose string
	}{
		{"FR", -150, 10, false, "Paris onboarding"},
		{"GB", -120, 14, false, "London office"},
		{"US", -90, 7, false, "New York summit"},
		{"IE", -70, 5, false, "Dublin review"},
		{"IT", -40, 10, false, "Milan audit"},
		{"PT", -20, 7, true, "Holiday"},
	}
	for _, s := range steps {
		if err := h.seedTrip(ctx, emp.ID, s.country, s.offset, s.length, s.private, s.purpose); err != nil {
			return err
		}
	}
	return nil
}

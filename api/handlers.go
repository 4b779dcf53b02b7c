/*
handlers.go - HTTP API handlers for the compliance service

PURPOSE:
  Exposes the compliance engine via REST. Handles HTTP
  request/response, JSON serialization, and delegates every calculation
  to the engine; no compliance math lives here.

ENDPOINTS:
  Employees:
    GET    /api/employees                        List employees
    POST   /api/employees                        Create employee
    GET    /api/employees/{id}                   Get employee
    GET    /api/employees/{id}/trips             List trips
    POST   /api/employees/{id}/trips             Record trip
    GET    /api/employees/{id}/compliance        Result at ?date=
    GET    /api/employees/{id}/compliance/calendar  ?year=&month= vector
    GET    /api/employees/{id}/safe-entry        ?stay=&from= planning
    GET    /api/employees/{id}/summary           ?year= audit summary

  Trips:
    DELETE /api/trips/{id}                       Delete trip

  Stateless (audit/export path):
    POST   /api/compliance/evaluate              Trips in body, no store

  Fleet:
    GET    /api/compliance/overview              Latest risk sweep snapshot

  Demo (see scenarios.go):
    GET    /api/scenarios                        List demo scenarios
    GET    /api/scenarios/current                Currently loaded scenario
    POST   /api/scenarios/load                   Load a scenario (resets DB)

ERROR HANDLING:
  - 400: malformed JSON/query, invalid dates, invalid trips or config
  - 404: employee/trip not found
  - 422: unknown country (distinct: fix the data, not the request)
  - 500: storage failures

SEE ALSO:
  - dto.go: request/response shapes
  - server.go: router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/thisjamieguy/complyeur-v2-sub005/calculator"
	"github.com/thisjamieguy/complyeur-v2-sub005/report"
	"github.com/thisjamieguy/complyeur-v2-sub005/schengen"
	"github.com/thisjamieguy/complyeur-v2-sub005/store"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store store.TripStore
	Cache *calculator.Cache
	Log   zerolog.Logger

	// Base engine parameters; the reference date is set per request.
	Base schengen.Config

	// Sweeper is optional; set by the server when background sweeps
	// are running so the overview endpoint can serve its snapshot.
	Sweeper *RiskSweeper

	currentScenario string
}

// NewHandler wires a handler. A nil cache gets the default bound.
func NewHandler(st store.TripStore, base schengen.Config, cache *calculator.Cache, log zerolog.Logger) *Handler {
	if cache == nil {
		cache = calculator.NewCache(calculator.DefaultCacheSize)
	}
	return &Handler{Store: st, Cache: cache, Log: log, Base: base}
}

// calcFor loads an employee's trips and builds a calculator at ref.
func (h *Handler) calcFor(r *http.Request, employeeID string, ref schengen.Day) (*calculator.Calculator, error) {
	if _, err := h.Store.GetEmployee(r.Context(), employeeID); err != nil {
		return nil, err
	}
	trips, err := h.Store.ListTrips(r.Context(), employeeID)
	if err != nil {
		return nil, err
	}
	cfg := h.Base
	cfg.ReferenceDate = ref
	return calculator.NewFromRecords(store.Records(trips), cfg, h.Cache)
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	emps, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	if emps == nil {
		emps = []store.Employee{}
	}
	writeJSON(w, http.StatusOK, emps)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStatus(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}
	if req.Name == "" {
		writeErrorStatus(w, http.StatusBadRequest, "name is required", nil)
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	emp := store.Employee{ID: req.ID, Name: req.Name, Email: req.Email}
	if err := h.Store.SaveEmployee(r.Context(), emp); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, emp)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Store.GetEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, emp)
}

// =============================================================================
// TRIPS
// =============================================================================

func (h *Handler) ListTrips(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.Store.GetEmployee(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	trips, err := h.Store.ListTrips(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	dtos := make([]TripDTO, 0, len(trips))
	for _, t := range trips {
		dtos = append(dtos, tripDTO(t))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	var req CreateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStatus(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}

	// Reject malformed records before they reach storage; country
	// scope-checking stays in the engine where it belongs.
	rec := schengen.TripRecord{
		EntryDate: req.EntryDate, ExitDate: req.ExitDate, Country: req.Country,
		Purpose: req.Purpose, IsPrivate: req.IsPrivate, Ghosted: req.Ghosted,
	}
	parsed, err := schengen.ParseTrip(rec)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if !parsed.Private {
		if _, err := schengen.ValidateCountry(parsed.Country); err != nil {
			h.writeError(w, err)
			return
		}
	}

	trip := store.StoredTrip{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		EntryDate:  req.EntryDate,
		ExitDate:   req.ExitDate,
		Country:    parsed.Country,
		Purpose:    req.Purpose,
		IsPrivate:  req.IsPrivate,
		Ghosted:    req.Ghosted,
	}
	if err := h.Store.AddTrip(r.Context(), trip); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tripDTO(trip))
}

func (h *Handler) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteTrip(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// COMPLIANCE
// =============================================================================

func (h *Handler) GetCompliance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ref, err := queryDay(r, "date", schengen.Today())
	if err != nil {
		h.writeError(w, err)
		return
	}

	calc, err := h.calcFor(r, id, ref)
	if err != nil {
		h.writeError(w, err)
		return
	}
	res, err := calc.Evaluate(ref)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ComplianceDTO{
		EmployeeID:  id,
		Fingerprint: calc.Fingerprint(),
		Result:      res,
	})
}

func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	year, err := queryInt(r, "year", time.Now().UTC().Year())
	if err != nil {
		h.writeError(w, err)
		return
	}
	month, err := queryInt(r, "month", 0)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var rng schengen.DayRange
	if month == 0 {
		rng = schengen.YearRange(year)
	} else {
		if month < 1 || month > 12 {
			writeErrorStatus(w, http.StatusBadRequest, "month must be 1-12", nil)
			return
		}
		rng = schengen.MonthRange(year, time.Month(month))
	}

	calc, err := h.calcFor(r, id, rng.Start)
	if err != nil {
		h.writeError(w, err)
		return
	}
	vec, err := calc.Vector(rng.Start, rng.End)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, CalendarDTO{
		EmployeeID:  id,
		Fingerprint: calc.Fingerprint(),
		Days:        vec,
	})
}

func (h *Handler) GetSafeEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	stay, err := queryInt(r, "stay", 1)
	if err != nil {
		h.writeError(w, err)
		return
	}
	from, err := queryDay(r, "from", schengen.Today())
	if err != nil {
		h.writeError(w, err)
		return
	}

	calc, err := h.calcFor(r, id, from)
	if err != nil {
		h.writeError(w, err)
		return
	}
	safe, found, err := calc.EarliestSafeEntry(stay, from)
	if err != nil {
		h.writeError(w, err)
		return
	}
	maxStay, err := calc.MaxStay(from)
	if err != nil {
		h.writeError(w, err)
		return
	}

	dto := SafeEntryDTO{EmployeeID: id, StayLength: stay, Found: found, MaxStayToday: maxStay}
	if found {
		dto.SafeDate = &safe
	}
	writeJSON(w, http.StatusOK, dto)
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	year, err := queryInt(r, "year", time.Now().UTC().Year())
	if err != nil {
		h.writeError(w, err)
		return
	}

	if _, err := h.Store.GetEmployee(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	stored, err := h.Store.ListTrips(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	trips, err := schengen.ParseTrips(store.Records(stored))
	if err != nil {
		h.writeError(w, err)
		return
	}

	cfg := h.Base
	cfg.ReferenceDate = schengen.YearRange(year).End
	summary, err := report.BuildSummary(trips, year, cfg)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// Evaluate is the stateless audit/export path: the caller supplies the
// trip records, and identical input reproduces identical output.
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStatus(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}

	ref, err := schengen.ParseDay(req.ReferenceDate)
	if err != nil {
		h.writeError(w, err)
		return
	}

	cfg := h.Base
	cfg.ReferenceDate = ref
	if req.Limit > 0 {
		cfg.Limit = req.Limit
	}
	if req.WindowDays > 0 {
		cfg.WindowDays = req.WindowDays
	}
	if req.Thresholds != nil {
		cfg.Thresholds = *req.Thresholds
	}

	calc, err := calculator.NewFromRecords(req.Trips, cfg, h.Cache)
	if err != nil {
		h.writeError(w, err)
		return
	}
	res, err := calc.Evaluate(ref)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ComplianceDTO{
		Fingerprint: calc.Fingerprint(),
		Result:      res,
	})
}

// =============================================================================
// HELPERS
// =============================================================================

func queryDay(r *http.Request, key string, fallback schengen.Day) (schengen.Day, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	return schengen.ParseDay(raw)
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &schengen.ConfigError{Field: key, Reason: "must be an integer"}
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeErrorStatus(w http.ResponseWriter, status int, msg string, err error) {
	dto := ErrorDTO{Error: msg}
	if err != nil {
		dto.Reason = err.Error()
	}
	writeJSON(w, status, dto)
}

// writeError maps engine and store errors onto HTTP statuses. Unknown
// country gets its own status: it means "fix the data", not "fix the
// request", and the import UI treats the two differently.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrEmployeeNotFound), errors.Is(err, store.ErrTripNotFound):
		writeErrorStatus(w, http.StatusNotFound, "not found", err)
	case errors.Is(err, schengen.ErrUnknownCountry):
		writeErrorStatus(w, http.StatusUnprocessableEntity, "unknown country", err)
	case schengen.IsClientError(err):
		writeErrorStatus(w, http.StatusBadRequest, "invalid input", err)
	default:
		h.Log.Error().Err(err).Msg("internal error")
		writeErrorStatus(w, http.StatusInternalServerError, "internal error", nil)
	}
}

/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication, decoupling the
  engine's domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers and the engine, not in DTOs. DTOs are
  pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/thisjamieguy/complyeur-v2-sub005/schengen"
	"github.com/thisjamieguy/complyeur-v2-sub005/store"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// CreateEmployeeRequest is the request to create an employee.
type CreateEmployeeRequest struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// CreateTripRequest is the request to record a trip for an employee.
type CreateTripRequest struct {
	EntryDate string `json:"entry_date"`
	ExitDate  string `json:"exit_date"`
	Country   string `json:"country"`
	Purpose   string `json:"purpose,omitempty"`
	IsPrivate bool   `json:"is_private,omitempty"`
	Ghosted   bool   `json:"ghosted,omitempty"`
}

/// EvaluateRequest is the stateless evaluation request: caller-supplied
// trips, nothing read from the store. This is the audit/export path -
// identical input must reproduce identical output bit-for-bit.
type EvaluateRequest struct {
	Trips         []schengen.TripRecord `json:"trips"`
	ReferenceDate string                `json:"reference_date"`

	// Optional overrides; zero values fall back to server config.
	Limit      int                  `json:"limit,omitempty"`
	WindowDays int                  `json:"window_days,omitempty"`
	Thresholds *schengen.Thresholds `json:"thresholds,omitempty"`
}

// ComplianceDTO wraps an engine result with the input fingerprint so
// exports can prove which trip data produced it.
type ComplianceDTO struct {
	EmployeeID  string          `json:"employee_id,omitempty"`
	Fingerprint string          `json:"fingerprint"`
	Result      schengen.Result `json:"result"`
}

// CalendarDTO is a month/range of per-day results for calendar cells.
type CalendarDTO struct {
	EmployeeID  string          `json:"employee_id"`
	Fingerprint string          `json:"fingerprint"`
	Days        schengen.Vector `json:"days"`
}

// SafeEntryDTO answers a planning query.
type SafeEntryDTO struct {
	EmployeeID   string        `json:"employee_id"`
	StayLength   int           `json:"stay_length"`
	SafeDate     *schengen.Day `json:"safe_date"` // null when no date in horizon
	Found        bool          `json:"found"`
	MaxStayToday int           `json:"max_stay_today"`
}

// TripDTO mirrors the stored trip.
type TripDTO struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	EntryDate  string `json:"entry_date"`
	ExitDate   string `json:"exit_date"`
	Country    string `json:"country"`
	Purpose    string `json:"purpose,omitempty"`
	IsPrivate  bool   `json:"is_private"`
	Ghosted    bool   `json:"ghosted"`
}

func tripDTO(t store.StoredTrip) TripDTO {
	return TripDTO{
		ID:         t.ID,
		EmployeeID: t.EmployeeID,
		EntryDate:  t.EntryDate,
		ExitDate:   t.ExitDate,
		Country:    t.Country,
		Purpose:    t.Purpose,
		IsPrivate:  t.IsPrivate,
		Ghosted:    t.Ghosted,
	}
}

// ScenarioDTO describes a loadable demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
}

// EmployeeRiskDTO is one row of a fleet-wide risk sweep.
type EmployeeRiskDTO struct {
	EmployeeID    string             `json:"employee_id"`
	Name          string             `json:"name"`
	DaysUsed      int                `json:"days_used"`
	DaysRemaining int                `json:"days_remaining"`
	RiskLevel     schengen.RiskLevel `json:"risk_level"`
	Compliant     bool               `json:"compliant"`
}

// RiskOverviewDTO is the result of the last completed sweep.
type RiskOverviewDTO struct {
	SweptAt   string            `json:"swept_at"` // RFC3339; empty before first sweep
	Reference schengen.Day      `json:"reference_date"`
	Green     int               `json:"green"`
	Amber     int               `json:"amber"`
	Red       int               `json:"red"`
	Employees []EmployeeRiskDTO `json:"employees"`
}

// ErrorDTO is the uniform error body.
type ErrorDTO struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

/*
Package store defines the persistence interface between the HTTP layer
and the database.

PURPOSE:
  The engine itself has no I/O; this package owns the trip records the
  API feeds into it. Implementations: store/sqlite (production),
  store/memory (tests/dev).

OWNERSHIP NOTE:
  Trip lifecycle (creation, editing, overlap prevention at write time)
  lives here, NOT in the engine - the engine is deliberately robust to
  overlapping intervals so the two layers cannot disagree about a day
  count.
*/
package store

import (
	"context"
	"errors"

	"github.com/thisjamieguy/complyeur-v2-sub005/schengen"
)

// Sentinel errors shared by all implementations.
var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrTripNotFound     = errors.New("trip not found")
	ErrDuplicateID      = errors.New("duplicate id")
)

// Employee is a compliance subject. Identity and HR detail beyond a
// display name belong to the excluded SaaS layer.
type Employee struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// StoredTrip is a persisted trip record. Dates stay ISO strings at
// this layer; parsing/validation happens in the engine so a bad row
// fails loudly at evaluation time instead of silently skewing counts.
type StoredTrip struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	EntryDate  string `json:"entry_date"`
	ExitDate   string `json:"exit_date"`
	Country    string `json:"country"`
	Purpose    string `json:"purpose,omitempty"`
	IsPrivate  bool   `json:"is_private"`
	Ghosted    bool   `json:"ghosted"`
	CreatedAt  string `json:"created_at"`
}

// Record converts to the engine's wire shape.
func (t StoredTrip) Record() schengen.TripRecord {
	return schengen.TripRecord{
		ID:        t.ID,
		EntryDate: t.EntryDate,
		ExitDate:  t.ExitDate,
		Country:   t.Country,
		Purpose:   t.Purpose,
		IsPrivate: t.IsPrivate,
		Ghosted:   t.Ghosted,
	}
}

// Records converts a batch.
func Records(trips []StoredTrip) []schengen.TripRecord {
	recs := make([]schengen.TripRecord, len(trips))
	for i, t := range trips {
		recs[i] = t.Record()
	}
	return recs
}

// TripStore persists employees and their trips.
type TripStore interface {
	SaveEmployee(ctx context.Context, e Employee) error
	GetEmployee(ctx context.Context, id string) (Employee, error)
	ListEmployees(ctx context.Context) ([]Employee, error)

	AddTrip(ctx context.Context, t StoredTrip) error
	ListTrips(ctx context.Context, employeeID string) ([]StoredTrip, error)
	DeleteTrip(ctx context.Context, tripID string) error

	// Reset wipes all data. Used by the demo scenario loader; never
	// reachable from normal request paths.
	Reset(ctx context.Context) error
}

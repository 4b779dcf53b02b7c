// Package memory provides an in-memory TripStore for tests and dev.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/thisjamieguy/complyeur-v2-sub005/store"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Store struct {
	mu        sync.RWMutex
	employees map[string]store.Employee
	trips     map[string]store.StoredTrip // keyed by trip ID
}

var _ store.TripStore = (*Store)(nil)

func New() *Store {
	return &Store{
		employees: make(map[string]store.Employee),
		trips:     make(map[string]store.StoredTrip),
	}
}

func (m *Store) SaveEmployee(_ context.Context, e store.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.CreatedAt == "" {
		e.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	m.employees[e.ID] = e
	return nil
}

func (m *Store) GetEmployee(_ context.Context, id string) (store.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.employees[id]
	if !ok {
		return store.Employee{}, store.ErrEmployeeNotFound
	}
	return e, nil
}

func (m *Store) ListEmployees(_ context.Context) ([]store.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]store.Employee, 0, len(m.employees))
	for _, e := range m.employees {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Store) AddTrip(_ context.Context, t store.StoredTrip) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.employees[t.EmployeeID]; !ok {
		return store.ErrEmployeeNotFound
	}
	if _, ok := m.trips[t.ID]; ok {
		return store.ErrDuplicateID
	}
	if t.CreatedAt == "" {
		t.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	m.trips[t.ID] = t
	return nil
}

func (m *Store) ListTrips(_ context.Context, employeeID string) ([]store.StoredTrip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []store.StoredTrip
	for _, t := range m.trips {
		if t.EmployeeID == employeeID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntryDate < out[j].EntryDate })
	return out, nil
}

func (m *Store) DeleteTrip(_ context.Context, tripID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.trips[tripID]; !ok {
		return store.ErrTripNotFound
	}
	delete(m.trips, tripID)
	return nil
}

func (m *Store) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.employees = make(map[string]store.Employee)
	m.trips = make(map[string]store.StoredTrip)
	return nil
}

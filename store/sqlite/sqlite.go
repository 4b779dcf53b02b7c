/*
Package sqlite provides a SQLite-backed implementation of store.TripStore.

PURPOSE:
  Persists employees and their trip records. In production the same
  patterns apply to PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  employees: Compliance subjects
  trips:     Travel intervals (the engine's only input)

INDEXES:
  idx_trips_employee_entry is the hot path: every compliance request
  loads one employee's trips ordered by entry date.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) so calendar reads
  don't block trip writes.

USAGE:
  st, err := sqlite.New("./data/complyeur.db")  // or ":memory:"
  defer st.Close()

SEE ALSO:
  - store/store.go: interface definition
  - store/memory: in-memory implementation for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/thisjamieguy/complyeur-v2-sub005/store"
)

// Store implements store.TripStore using SQLite.
type Store struct {
	db *sql.DB
}

var _ store.TripStore = (*Store)(nil)

// New creates a SQLite store at the given path. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS trips (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL REFERENCES employees(id),
		entry_date TEXT NOT NULL,
		exit_date TEXT NOT NULL,
		country TEXT NOT NULL,
		purpose TEXT,
		is_private INTEGER NOT NULL DEFAULT 0,
		ghosted INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);

	-- Hot path: load one employee's trips ordered by entry date
	CREATE INDEX IF NOT EXISTS idx_trips_employee_entry
		ON trips(employee_id, entry_date);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func (s *Store) SaveEmployee(ctx context.Context, e store.Employee) error {
	if e.CreatedAt == "" {
		e.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO employees (id, name, email, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, email = excluded.email`,
		e.ID, e.Name, e.Email, e.CreatedAt)
	return err
}

func (s *Store) GetEmployee(ctx context.Context, id string) (store.Employee, error) {
	var e store.Employee
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, COALESCE(email, ''), created_at FROM employees WHERE id = ?`, id).
		Scan(&e.ID, &e.Name, &e.Email, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return store.Employee{}, store.ErrEmployeeNotFound
	}
	return e, err
}

func (s *Store) ListEmployees(ctx context.Context) ([]store.Employee, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, COALESCE(email, ''), created_at FROM employees ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Employee
	for rows.Next() {
		var e store.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// =============================================================================
// TRIPS
// =============================================================================

func (s *Store) AddTrip(ctx context.Context, t store.StoredTrip) error {
	if _, err := s.GetEmployee(ctx, t.EmployeeID); err != nil {
		return err
	}
	if t.CreatedAt == "" {
		t.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO trips (id, employee_id, entry_date, exit_date, country, purpose, is_private, ghosted, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.EmployeeID, t.EntryDate, t.ExitDate, t.Country, t.Purpose,
		boolToInt(t.IsPrivate), boolToInt(t.Ghosted), t.CreatedAt)
	return err
}

func (s *Store) ListTrips(ctx context.Context, employeeID string) ([]store.StoredTrip, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, employee_id, entry_date, exit_date, country, COALESCE(purpose, ''), is_private, ghosted, created_at
		FROM trips WHERE employee_id = ? ORDER BY entry_date`, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.StoredTrip
	for rows.Next() {
		var t store.StoredTrip
		var private, ghosted int
		if err := rows.Scan(&t.ID, &t.EmployeeID, &t.EntryDate, &t.ExitDate,
			&t.Country, &t.Purpose, &private, &ghosted, &t.CreatedAt); err != nil {
			return nil, err
		}
		t.IsPrivate = private != 0
		t.Ghosted = ghosted != 0
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) DeleteTrip(ctx context.Context, tripID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM trips WHERE id = ?`, tripID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrTripNotFound
	}
	return nil
}

// Reset clears all tables. Demo scenario loading only.
func (s *Store) Reset(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM trips; DELETE FROM employees;`)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// ErrNotFound is returned by single-record lookups when no row matches.
var ErrNotFound = errors.New("store: record not found")

// Querier is the subset of pgxpool.Pool the store needs. Satisfied by
// pgxmock in tests.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Postgres reads clinic records from the management system's database.
type Postgres struct {
	db      Querier
	timeout time.Duration
}

// NewPostgres creates a store backed by a pgx pool or compatible querier.
func NewPostgres(db Querier, timeout time.Duration) *Postgres {
	if db == nil {
		panic("store: querier required")
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Postgres{db: db, timeout: timeout}
}

const appointmentColumns = `id, reference_number, name, contact, pet_name, pet_species, pet_breed, service, date, time, end_time, doctor_id, status`

// SearchClients finds clients whose name contains every token of name.
func (s *Postgres) SearchClients(ctx context.Context, name string) ([]Client, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cond, args := TokenPredicate("name", name, 0)
	query := "SELECT id, name, email, cellnumber, address FROM clients WHERE " + cond
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: client search failed: %w", err)
	}
	defer rows.Close()

	var clients []Client
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address); err != nil {
			return nil, fmt.Errorf("store: client scan failed: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: client search failed: %w", err)
	}
	return clients, nil
}

// SearchPatients finds patients whose name contains every token of petName.
func (s *Postgres) SearchPatients(ctx context.Context, petName string) ([]Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cond, args := TokenPredicate("name", petName, 0)
	query := "SELECT id, name, species, breed, birthdate, age, owner_id FROM patients WHERE " + cond
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: patient search failed: %w", err)
	}
	defer rows.Close()

	var patients []Patient
	for rows.Next() {
		var p Patient
		if err := rows.Scan(&p.ID, &p.Name, &p.Species, &p.Breed, &p.Birthdate, &p.Age, &p.OwnerID); err != nil {
			return nil, fmt.Errorf("store: patient scan failed: %w", err)
		}
		patients = append(patients, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: patient search failed: %w", err)
	}
	return patients, nil
}

// OwnerName resolves a client's display name by id.
func (s *Postgres) OwnerName(ctx context.Context, ownerID int64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var name string
	err := s.db.QueryRow(ctx, "SELECT name FROM clients WHERE id = $1", ownerID).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("store: owner lookup failed: %w", err)
	}
	return name, nil
}

// DoctorName resolves an internal staff member's full name by id.
func (s *Postgres) DoctorName(ctx context.Context, doctorID int64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var first, last string
	err := s.db.QueryRow(ctx, "SELECT first_name, last_name FROM internal_users WHERE id = $1", doctorID).Scan(&first, &last)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("store: doctor lookup failed: %w", err)
	}
	return first + " " + last, nil
}

// terminalStatusFilter excludes appointments that can no longer be acted
// on. Done and Cancelled are terminal.
const terminalStatusFilter = " AND status NOT IN ('Done', 'Cancelled')"

// AppointmentsByReference looks up appointments by their reference number.
// With activeOnly set, records already in a terminal status are excluded so
// the lookup surfaces only actionable appointments.
func (s *Postgres) AppointmentsByReference(ctx context.Context, reference string, activeOnly bool) ([]Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	query := "SELECT " + appointmentColumns + " FROM appointments WHERE reference_number = $1"
	if activeOnly {
		query += terminalStatusFilter
	}
	rows, err := s.db.Query(ctx, query, reference)
	if err != nil {
		return nil, fmt.Errorf("store: appointment lookup failed: %w", err)
	}
	defer rows.Close()
	return scanAppointments(rows)
}

// SearchAppointments finds appointments whose client name contains every
// token of name, with the same terminal-status handling as reference
// lookups.
func (s *Postgres) SearchAppointments(ctx context.Context, name string, activeOnly bool) ([]Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cond, args := TokenPredicate("name", name, 0)
	query := "SELECT " + appointmentColumns + " FROM appointments WHERE " + cond
	if activeOnly {
		query += terminalStatusFilter
	}
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: appointment search failed: %w", err)
	}
	defer rows.Close()
	return scanAppointments(rows)
}

func scanAppointments(rows pgx.Rows) ([]Appointment, error) {
	var appointments []Appointment
	for rows.Next() {
		var (
			a          Appointment
			start, end pgtype.Time
		)
		if err := rows.Scan(
			&a.ID,
			&a.ReferenceNumber,
			&a.ClientName,
			&a.Contact,
			&a.PetName,
			&a.PetSpecies,
			&a.PetBreed,
			&a.Service,
			&a.Date,
			&start,
			&end,
			&a.DoctorID,
			&a.Status,
		); err != nil {
			return nil, fmt.Errorf("store: appointment scan failed: %w", err)
		}
		a.Start = time.Duration(start.Microseconds) * time.Microsecond
		a.End = time.Duration(end.Microseconds) * time.Microsecond
		appointments = append(appointments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: appointment rows failed: %w", err)
	}
	return appointments, nil
}

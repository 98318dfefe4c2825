package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func TestSearchClientsMultiTokenPredicate(t *testing.T) {
	mock := newMock(t)
	store := NewPostgres(mock, time.Second)

	rows := pgxmock.NewRows([]string{"id", "name", "email", "cellnumber", "address"}).
		AddRow(int64(7), "John Smith", "john@example.com", "09171234567", "Quezon City")
	mock.ExpectQuery("SELECT id, name, email, cellnumber, address FROM clients WHERE name ILIKE .+ AND name ILIKE .+").
		WithArgs("%John%", "%Smith%").
		WillReturnRows(rows)

	clients, err := store.SearchClients(context.Background(), "John Smith")
	if err != nil {
		t.Fatalf("SearchClients: %v", err)
	}
	if len(clients) != 1 {
		t.Fatalf("expected 1 client, got %d", len(clients))
	}
	if clients[0].Name != "John Smith" || clients[0].Phone != "09171234567" {
		t.Fatalf("unexpected client: %+v", clients[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSearchClientsQueryError(t *testing.T) {
	mock := newMock(t)
	store := NewPostgres(mock, time.Second)

	mock.ExpectQuery("SELECT id, name, email, cellnumber, address FROM clients").
		WillReturnError(errors.New("connection refused"))

	_, err := store.SearchClients(context.Background(), "Anna")
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); got != "store: client search failed: connection refused" {
		t.Fatalf("unexpected error: %s", got)
	}
}

func TestSearchPatients(t *testing.T) {
	mock := newMock(t)
	store := NewPostgres(mock, time.Second)

	birth := time.Date(2021, time.March, 14, 0, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows([]string{"id", "name", "species", "breed", "birthdate", "age", "owner_id"}).
		AddRow(int64(3), "Bella", "Dog", "Poodle", &birth, "4", int64(7))
	mock.ExpectQuery("SELECT id, name, species, breed, birthdate, age, owner_id FROM patients WHERE name ILIKE").
		WithArgs("%Bella%").
		WillReturnRows(rows)

	patients, err := store.SearchPatients(context.Background(), "Bella")
	if err != nil {
		t.Fatalf("SearchPatients: %v", err)
	}
	if len(patients) != 1 || patients[0].OwnerID != 7 {
		t.Fatalf("unexpected patients: %+v", patients)
	}
	if patients[0].Birthdate == nil || !patients[0].Birthdate.Equal(birth) {
		t.Fatalf("unexpected birthdate: %v", patients[0].Birthdate)
	}
}

// birthdate is nullable in the clinic schema; a NULL must not fail the scan.
func TestSearchPatientsNullBirthdate(t *testing.T) {
	mock := newMock(t)
	store := NewPostgres(mock, time.Second)

	rows := pgxmock.NewRows([]string{"id", "name", "species", "breed", "birthdate", "age", "owner_id"}).
		AddRow(int64(3), "Bella", "Dog", "Poodle", (*time.Time)(nil), "4", int64(7))
	mock.ExpectQuery("SELECT id, name, species, breed, birthdate, age, owner_id FROM patients WHERE name ILIKE").
		WithArgs("%Bella%").
		WillReturnRows(rows)

	patients, err := store.SearchPatients(context.Background(), "Bella")
	if err != nil {
		t.Fatalf("SearchPatients: %v", err)
	}
	if len(patients) != 1 || patients[0].Birthdate != nil {
		t.Fatalf("expected nil birthdate, got %+v", patients)
	}
}

func TestOwnerNameNotFound(t *testing.T) {
	mock := newMock(t)
	store := NewPostgres(mock, time.Second)

	mock.ExpectQuery("SELECT name FROM clients WHERE id").
		WithArgs(int64(99)).
		WillReturnRows(pgxmock.NewRows([]string{"name"}))

	_, err := store.OwnerName(context.Background(), 99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDoctorName(t *testing.T) {
	mock := newMock(t)
	store := NewPostgres(mock, time.Second)

	mock.ExpectQuery("SELECT first_name, last_name FROM internal_users WHERE id").
		WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"first_name", "last_name"}).AddRow("Maria", "Reyes"))

	name, err := store.DoctorName(context.Background(), 2)
	if err != nil {
		t.Fatalf("DoctorName: %v", err)
	}
	if name != "Maria Reyes" {
		t.Fatalf("unexpected doctor name: %s", name)
	}
}

func appointmentRows() *pgxmock.Rows {
	date := time.Date(2025, time.July, 24, 0, 0, 0, 0, time.UTC)
	doctorID := int64(2)
	return pgxmock.NewRows([]string{
		"id", "reference_number", "name", "contact", "pet_name", "pet_species",
		"pet_breed", "service", "date", "time", "end_time", "doctor_id", "status",
	}).AddRow(
		int64(11), "REF123", "John Smith", "09171234567", "Bella", "Dog",
		"Poodle", "Dog Bathing", date,
		pgtype.Time{Microseconds: int64(13 * time.Hour / time.Microsecond), Valid: true},
		pgtype.Time{Microseconds: int64((14*time.Hour + 30*time.Minute) / time.Microsecond), Valid: true},
		&doctorID, "Confirmed",
	)
}

func TestAppointmentsByReferenceActiveOnly(t *testing.T) {
	mock := newMock(t)
	store := NewPostgres(mock, time.Second)

	mock.ExpectQuery(`FROM appointments WHERE reference_number = \$1 AND status NOT IN \('Done', 'Cancelled'\)`).
		WithArgs("REF123").
		WillReturnRows(appointmentRows())

	appts, err := store.AppointmentsByReference(context.Background(), "REF123", true)
	if err != nil {
		t.Fatalf("AppointmentsByReference: %v", err)
	}
	if len(appts) != 1 {
		t.Fatalf("expected 1 appointment, got %d", len(appts))
	}
	a := appts[0]
	if a.Start != 13*time.Hour {
		t.Fatalf("unexpected start: %s", a.Start)
	}
	if a.End != 14*time.Hour+30*time.Minute {
		t.Fatalf("unexpected end: %s", a.End)
	}
	if a.DoctorID == nil || *a.DoctorID != 2 {
		t.Fatalf("unexpected doctor id: %v", a.DoctorID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestAppointmentsByReferenceUnfilteredOmitsStatusFilter(t *testing.T) {
	mock := newMock(t)
	store := NewPostgres(mock, time.Second)

	mock.ExpectQuery(`FROM appointments WHERE reference_number = \$1$`).
		WithArgs("REF123").
		WillReturnRows(appointmentRows())

	appts, err := store.AppointmentsByReference(context.Background(), "REF123", false)
	if err != nil {
		t.Fatalf("AppointmentsByReference: %v", err)
	}
	if len(appts) != 1 {
		t.Fatalf("expected 1 appointment, got %d", len(appts))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSearchAppointmentsByName(t *testing.T) {
	mock := newMock(t)
	store := NewPostgres(mock, time.Second)

	mock.ExpectQuery(`FROM appointments WHERE name ILIKE \$1 AND name ILIKE \$2 AND status NOT IN \('Done', 'Cancelled'\)`).
		WithArgs("%John%", "%Smith%").
		WillReturnRows(appointmentRows())

	appts, err := store.SearchAppointments(context.Background(), "John Smith", true)
	if err != nil {
		t.Fatalf("SearchAppointments: %v", err)
	}
	if len(appts) != 1 || appts[0].ReferenceNumber != "REF123" {
		t.Fatalf("unexpected appointments: %+v", appts)
	}
}

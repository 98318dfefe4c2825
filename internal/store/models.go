package store

import "time"

// Client is a clinic client record. All store records are read-only from
// this service's perspective; the clinic management system owns the schema.
type Client struct {
	ID      int64
	Name    string
	Email   string
	Phone   string
	Address string
}

// Patient is a pet record tied to an owning client. Birthdate is nullable
// in the clinic schema, as is doctor_id on Appointment.
type Patient struct {
	ID        int64
	Name      string
	Species   string
	Breed     string
	Birthdate *time.Time
	Age       string
	OwnerID   int64
}

// Appointment statuses as stored by the clinic management system.
const (
	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
	StatusDone      = "Done"
	StatusCancelled = "Cancelled"
)

// Appointment is a booking record. Start and End are elapsed time since
// midnight on Date.
type Appointment struct {
	ID              int64
	ReferenceNumber string
	ClientName      string
	Contact         string
	PetName         string
	PetSpecies      string
	PetBreed        string
	Service         string
	Date            time.Time
	Start           time.Duration
	End             time.Duration
	DoctorID        *int64
	Status          string
}

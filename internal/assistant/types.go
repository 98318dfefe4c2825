// Package assistant turns recognized dialogue entities into ranked record
// lookups against the clinic database and renders them as chat responses
// with deep links into the management UI.
package assistant

import (
	"context"
	"strings"

	"github.com/pawspoint/clinic-assistant/internal/catalog"
	"github.com/pawspoint/clinic-assistant/internal/store"
)

// Actions the dialogue manager can request per turn.
const (
	ActionRetrieveClient      = "retrieve_client"
	ActionRetrieveAppointment = "retrieve_appointment"
	ActionRetrievePatient     = "retrieve_patient"
	ActionServicePrice        = "service_price"
	ActionListServices        = "list_services"
)

// Entity names supplied by the NLU layer.
const (
	EntityClientName      = "client_name"
	EntityPetName         = "pet_name"
	EntityReferenceNumber = "reference_number"
	EntityName            = "name"
	EntityServiceName     = "service_name"
	EntityDate            = "date"
)

// TurnRequest is one dialogue turn: the recognized action, its entities, the
// raw utterance, and the conversation slots carried from earlier turns.
type TurnRequest struct {
	Sender   string
	Action   string
	Text     string
	Entities map[string]string
	Slots    map[string]string
}

// Entity returns the trimmed value of a recognized entity, or "".
func (r TurnRequest) Entity(name string) string {
	return strings.TrimSpace(r.Entities[name])
}

// Slot returns the trimmed value of a conversation slot, or "".
func (r TurnRequest) Slot(name string) string {
	return strings.TrimSpace(r.Slots[name])
}

// Link is a deep link into a filtered view of the management UI.
type Link struct {
	URL        string `json:"url"`
	SearchName string `json:"searchName,omitempty"`
	Label      string `json:"label"`
}

// RecordMessage is one rendered record: a text body plus its deep link.
type RecordMessage struct {
	Text string `json:"text"`
	Link *Link  `json:"link,omitempty"`
}

// OutboundMessage is one chat message: either plain text or a structured
// payload keyed by record kind ("clients", "appointments", "patients").
type OutboundMessage struct {
	Text   string
	Custom map[string][]RecordMessage
}

// TurnResponse carries the messages to deliver and the slot updates the
// caller must apply before the next turn. SlotUpdates is empty on every
// error path.
type TurnResponse struct {
	Messages    []OutboundMessage
	SlotUpdates map[string]string
}

// Store is the read-only record access the resolvers need.
type Store interface {
	SearchClients(ctx context.Context, name string) ([]store.Client, error)
	SearchPatients(ctx context.Context, petName string) ([]store.Patient, error)
	OwnerName(ctx context.Context, ownerID int64) (string, error)
	AppointmentsByReference(ctx context.Context, reference string, activeOnly bool) ([]store.Appointment, error)
	SearchAppointments(ctx context.Context, name string, activeOnly bool) ([]store.Appointment, error)
	DoctorName(ctx context.Context, doctorID int64) (string, error)
}

// Catalog supplies the priced service catalog.
type Catalog interface {
	ListServices(ctx context.Context) ([]catalog.Service, error)
}

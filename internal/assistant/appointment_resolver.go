package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pawspoint/clinic-assistant/internal/store"
)

// statusToPage maps an appointment status to the UI page that lists it.
var statusToPage = map[string]string{
	store.StatusPending:   "/appointment/pending",
	store.StatusConfirmed: "/appointment/confirmed",
	store.StatusDone:      "/appointment/done",
	store.StatusCancelled: "/appointment/cancelled",
}

const fallbackAppointmentsPage = "/appointments"

func (e *Engine) resolveAppointment(ctx context.Context, req TurnRequest) (TurnResponse, error) {
	reference := req.Entity(EntityReferenceNumber)
	clientName := req.Entity(EntityName)
	if reference == "" && clientName == "" {
		return TurnResponse{}, missingEntity("Provide a reference number or client name.")
	}

	wantDate, filterByDate, err := e.requestedDate(req)
	if err != nil {
		return TurnResponse{}, err
	}

	activeOnly := !e.allStatuses
	var appointments []store.Appointment
	var lookupErr error
	if reference != "" {
		appointments, lookupErr = e.store.AppointmentsByReference(ctx, reference, activeOnly)
	} else {
		appointments, lookupErr = e.store.SearchAppointments(ctx, clientName, activeOnly)
	}
	if lookupErr != nil {
		return TurnResponse{}, storeFailure(lookupErr)
	}
	if filterByDate {
		appointments = filterOnDate(appointments, wantDate)
	}
	if len(appointments) == 0 {
		return TurnResponse{}, noMatch("No appointment found.")
	}

	records := make([]RecordMessage, 0, len(appointments))
	for _, a := range appointments {
		doctorName := "N/A"
		if a.DoctorID != nil {
			name, err := e.store.DoctorName(ctx, *a.DoctorID)
			if err != nil {
				if !errors.Is(err, store.ErrNotFound) {
					return TurnResponse{}, storeFailure(err)
				}
			} else {
				doctorName = name
			}
		}

		timeRange := ClockFromMidnight(a.Start) + " to " + ClockFromMidnight(a.End)
		text := fmt.Sprintf(
			"Here are the appointment details for %s:\n"+
				"**Ref #:** %s\n"+
				"**Client:** %s\n"+
				"**Contact #:** %s\n"+
				"**Pet:** %s (%s, %s)\n"+
				"**Service(s):** %s\n"+
				"**Date:** %s\n"+
				"**Time:** %s\n"+
				"**Doctor:** %s\n"+
				"**Status:** %s\n\n"+
				"You can also find this client in the Appointments Table:",
			a.ClientName, a.ReferenceNumber, a.ClientName, a.Contact,
			a.PetName, a.PetSpecies, a.PetBreed, a.Service,
			FormatDate(a.Date), timeRange, doctorName, a.Status,
		)

		page, ok := statusToPage[a.Status]
		if !ok {
			page = fallbackAppointmentsPage
		}
		records = append(records, RecordMessage{
			Text: text,
			Link: &Link{
				URL:        e.link(page),
				SearchName: a.ClientName,
				Label:      fmt.Sprintf("View in %s Appointments Table", a.Status),
			},
		})
	}

	return TurnResponse{
		Messages: []OutboundMessage{{Custom: map[string][]RecordMessage{"appointments": records}}},
	}, nil
}

// requestedDate resolves an optional date constraint for the lookup. A date
// entity that fails to parse is a hard stop: asking the user to rephrase
// beats silently returning every appointment.
func (e *Engine) requestedDate(req TurnRequest) (time.Time, bool, error) {
	dateValue := req.Entity(EntityDate)
	if dateValue == "" {
		dateValue = req.Slot(SlotDate)
	}

	utterance := strings.ToLower(req.Text)
	mentionsRelative := strings.Contains(utterance, "today") || strings.Contains(utterance, "tomorrow")
	if dateValue == "" && !mentionsRelative {
		return time.Time{}, false, nil
	}

	resolved, ok := ResolveDate(dateValue, req.Text, e.now())
	if !ok {
		return time.Time{}, false, &TurnError{
			Kind:   KindUnparseableDate,
			Prompt: "I couldn't understand that date. Could you rephrase it, for example \"July 24, 2025\"?",
		}
	}
	return resolved, true, nil
}

func filterOnDate(appointments []store.Appointment, want time.Time) []store.Appointment {
	var out []store.Appointment
	for _, a := range appointments {
		if sameDay(a.Date, want) {
			out = append(out, a)
		}
	}
	return out
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

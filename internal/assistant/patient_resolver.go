package assistant

import (
	"context"
	"errors"
	"fmt"

	"github.com/pawspoint/clinic-assistant/internal/store"
)

func (e *Engine) resolvePatient(ctx context.Context, req TurnRequest) (TurnResponse, error) {
	petName := req.Entity(EntityPetName)
	if petName == "" {
		return TurnResponse{}, missingEntity("Please provide the pet name.")
	}

	patients, err := e.store.SearchPatients(ctx, petName)
	if err != nil {
		return TurnResponse{}, storeFailure(err)
	}
	if len(patients) == 0 {
		return TurnResponse{}, noMatch(fmt.Sprintf("No patient found for %s", petName))
	}

	records := make([]RecordMessage, 0, len(patients))
	for _, p := range patients {
		ownerName, err := e.store.OwnerName(ctx, p.OwnerID)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				return TurnResponse{}, storeFailure(err)
			}
			ownerName = "N/A"
		}

		birthdate := "N/A"
		if p.Birthdate != nil {
			birthdate = FormatDate(*p.Birthdate)
		}

		text := fmt.Sprintf(
			"Here are the details for patient %s:\n"+
				"**Name:** %s\n"+
				"**Species:** %s\n"+
				"**Breed:** %s\n"+
				"**Birthdate:** %s\n"+
				"**Age:** %s\n"+
				"**Owner:** %s\n\n"+
				"You can also find this information under the owner in the Clients Table:",
			p.Name, p.Name, p.Species, p.Breed, birthdate, p.Age, ownerName,
		)
		records = append(records, RecordMessage{
			Text: text,
			Link: &Link{
				URL:        e.link("/information/clients"),
				SearchName: ownerName,
				Label:      fmt.Sprintf("View (%s) in Clients Table", ownerName),
			},
		})
	}

	return TurnResponse{
		Messages: []OutboundMessage{{Custom: map[string][]RecordMessage{"patients": records}}},
	}, nil
}

package assistant

import (
	"context"
	"fmt"
)

func (e *Engine) resolveClient(ctx context.Context, req TurnRequest) (TurnResponse, error) {
	name := req.Entity(EntityClientName)
	if name == "" {
		return TurnResponse{}, missingEntity("Please provide the client's full name.")
	}

	clients, err := e.store.SearchClients(ctx, name)
	if err != nil {
		return TurnResponse{}, storeFailure(err)
	}
	if len(clients) == 0 {
		return TurnResponse{}, noMatch(fmt.Sprintf("No record found for %s", name))
	}

	records := make([]RecordMessage, 0, len(clients))
	for _, c := range clients {
		text := fmt.Sprintf(
			"Here are the details I found for %s:\n"+
				"**Name:** %s\n"+
				"**Email:** %s\n"+
				"**Phone:** %s\n"+
				"**Address:** %s\n\n"+
				"You can also find this client in the Clients Table:",
			c.Name, c.Name, c.Email, c.Phone, c.Address,
		)
		records = append(records, RecordMessage{
			Text: text,
			Link: &Link{
				URL:        e.link("/information/clients"),
				SearchName: c.Name,
				Label:      "View in Clients Table",
			},
		})
	}

	return TurnResponse{
		Messages: []OutboundMessage{{Custom: map[string][]RecordMessage{"clients": records}}},
	}, nil
}

package assistant

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Equivalent phrasings for presenting a price. All take (service, price).
var pricePhrases = []string{
	"The price for %s is ₱%s.",
	"%s costs ₱%s.",
	"Our %s service is priced at ₱%s.",
	"You can get %s for ₱%s.",
}

func (e *Engine) resolveServicePrice(ctx context.Context, req TurnRequest) (TurnResponse, error) {
	// The live utterance must win over remembered state: a stored
	// service_name slot only answers turns that carry no text at all.
	phrase := req.Entity(EntityServiceName)
	if phrase == "" {
		phrase = strings.TrimSpace(req.Text)
	}
	if phrase == "" {
		phrase = req.Slot(SlotServiceName)
	}
	if phrase == "" {
		return TurnResponse{}, missingEntity("Which service would you like to know the price of?")
	}

	services, err := e.catalog.ListServices(ctx)
	if err != nil {
		return TurnResponse{}, storeFailure(err)
	}

	svc, outcome := MatchService(phrase, req.Slot(SlotLastService), services)
	switch outcome {
	case MatchNeedsClarification:
		return TurnResponse{}, &TurnError{
			Kind:   KindAmbiguousFollowup,
			Prompt: "Which service are you asking about?",
		}
	case MatchNone:
		return TurnResponse{}, noMatch("Sorry, I couldn't find that service in our catalog. You can ask me to list our services.")
	}

	template := pricePhrases[e.selectPhrase(len(pricePhrases))]
	text := fmt.Sprintf(template, svc.Name, formatPrice(svc.Price))

	return TurnResponse{
		Messages: []OutboundMessage{{Text: text}},
		SlotUpdates: map[string]string{
			SlotServiceName: svc.Name,
			SlotLastService: svc.Name,
		},
	}, nil
}

func (e *Engine) resolveListServices(ctx context.Context) (TurnResponse, error) {
	services, err := e.catalog.ListServices(ctx)
	if err != nil {
		return TurnResponse{}, storeFailure(err)
	}
	if len(services) == 0 {
		return TurnResponse{
			Messages: []OutboundMessage{{Text: "Sorry, we don't have any services listed at the moment."}},
		}, nil
	}

	var b strings.Builder
	b.WriteString("Here are the services we offer:")
	for _, svc := range services {
		b.WriteString("\n- ")
		b.WriteString(svc.Name)
	}
	return TurnResponse{Messages: []OutboundMessage{{Text: b.String()}}}, nil
}

// formatPrice renders a whole currency amount with thousands separators.
func formatPrice(amount int64) string {
	s := strconv.FormatInt(amount, 10)
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}
	var b strings.Builder
	for i, digit := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	if negative {
		return "-" + b.String()
	}
	return b.String()
}

package assistant

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/pawspoint/clinic-assistant/internal/observability/metrics"
	"github.com/pawspoint/clinic-assistant/pkg/logging"
)

var turnTracer = otel.Tracer("pawspoint.internal.assistant")

// PhraseSelector picks an index into a phrase pool of size n. Injectable so
// tests can pin the phrasing; production defaults to pseudo-random.
type PhraseSelector func(n int) int

// Engine resolves one dialogue turn at a time against the clinic store and
// the service catalog. It never writes to clinic tables; its only output is
// chat messages plus slot-update directives.
type Engine struct {
	store        Store
	catalog      Catalog
	logger       *logging.Logger
	metrics      *metrics.TurnMetrics
	linkBase     string
	allStatuses  bool
	selectPhrase PhraseSelector
	now          func() time.Time
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLinkBase prepends a base URL to every deep link.
func WithLinkBase(base string) EngineOption {
	return func(e *Engine) { e.linkBase = base }
}

// WithAllStatuses switches appointment lookups to the unfiltered variant
// that also returns appointments already in a terminal status.
func WithAllStatuses(include bool) EngineOption {
	return func(e *Engine) { e.allStatuses = include }
}

// WithPhraseSelector overrides the price-phrase selection.
func WithPhraseSelector(sel PhraseSelector) EngineOption {
	return func(e *Engine) { e.selectPhrase = sel }
}

// WithClock overrides the time source for relative-date resolution.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

// WithMetrics attaches turn metrics.
func WithMetrics(m *metrics.TurnMetrics) EngineOption {
	return func(e *Engine) { e.metrics = m }
}

// NewEngine creates a turn-resolution engine.
func NewEngine(st Store, cat Catalog, logger *logging.Logger, opts ...EngineOption) *Engine {
	if logger == nil {
		logger = logging.Default()
	}
	e := &Engine{
		store:        st,
		catalog:      cat,
		logger:       logger,
		selectPhrase: func(n int) int { return rand.IntN(n) },
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// HandleTurn dispatches one turn to the matching resolver and folds every
// recoverable failure into a single chat message. Slot updates are only ever
// present on fully successful turns.
func (e *Engine) HandleTurn(ctx context.Context, req TurnRequest) TurnResponse {
	ctx, span := turnTracer.Start(ctx, "assistant.handle_turn")
	defer span.End()
	span.SetAttributes(attribute.String("assistant.action", req.Action))

	start := time.Now()

	var (
		resp TurnResponse
		err  error
	)
	switch req.Action {
	case ActionRetrieveClient:
		resp, err = e.resolveClient(ctx, req)
	case ActionRetrieveAppointment:
		resp, err = e.resolveAppointment(ctx, req)
	case ActionRetrievePatient:
		resp, err = e.resolvePatient(ctx, req)
	case ActionServicePrice:
		resp, err = e.resolveServicePrice(ctx, req)
	case ActionListServices:
		resp, err = e.resolveListServices(ctx)
	default:
		span.SetAttributes(attribute.String("assistant.outcome", "unknown_action"))
		e.metrics.ObserveTurn(req.Action, "unknown_action")
		return TurnResponse{Messages: []OutboundMessage{
			{Text: "I'm not sure how to help with that yet. You can ask me about clients, pets, appointments, or service prices."},
		}}
	}

	outcome := "ok"
	if err != nil {
		var te *TurnError
		if !errors.As(err, &te) {
			te = storeFailure(err)
		}
		outcome = string(te.Kind)
		if te.Kind == KindStoreFailure {
			span.RecordError(te.Err)
			e.logger.Error("turn failed", "action", req.Action, "error", te.Err)
		} else {
			e.logger.Debug("turn recovered", "action", req.Action, "kind", te.Kind)
		}
		resp = TurnResponse{Messages: []OutboundMessage{{Text: te.Message()}}}
	}

	span.SetAttributes(attribute.String("assistant.outcome", outcome))
	e.metrics.ObserveTurn(req.Action, outcome)
	e.metrics.ObserveTurnDuration(req.Action, time.Since(start).Seconds())
	return resp
}

func (e *Engine) link(path string) string {
	return e.linkBase + path
}

package assistant

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/pawspoint/clinic-assistant/pkg/logging"
)

// Handler exposes the dialogue-manager webhook. One POST is one turn.
type Handler struct {
	engine *Engine
	slots  SlotStore
	logger *logging.Logger
}

// NewHandler creates the webhook handler.
func NewHandler(engine *Engine, slots SlotStore, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{engine: engine, slots: slots, logger: logger}
}

// webhookRequest is the turn payload the dialogue manager sends.
type webhookRequest struct {
	Sender   string            `json:"sender"`
	Action   string            `json:"action"`
	Text     string            `json:"text"`
	Entities map[string]string `json:"entities"`
	Slots    map[string]string `json:"slots"`
}

// responseMessage is one element of the webhook reply, REST-channel shape:
// either a plain text message or a structured custom payload.
type responseMessage struct {
	Text   string                     `json:"text,omitempty"`
	Custom map[string][]RecordMessage `json:"custom,omitempty"`
}

// HandleTurn handles POST /webhooks/actions.
func (h *Handler) HandleTurn(w http.ResponseWriter, r *http.Request) {
	var req webhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode turn request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Sender == "" {
		http.Error(w, "sender is required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	turnID := uuid.NewString()
	h.logger.Info("turn received", "turn_id", turnID, "sender", req.Sender, "action", req.Action)

	// Stored slots seed the turn; anything the dialogue manager sends for
	// this turn wins over what we remembered.
	slots := map[string]string{}
	if h.slots != nil {
		stored, err := h.slots.Get(ctx, req.Sender)
		if err != nil {
			h.logger.Warn("slot read failed, continuing without state", "turn_id", turnID, "error", err)
		} else if stored != nil {
			slots = stored
		}
	}
	for k, v := range req.Slots {
		slots[k] = v
	}

	resp := h.engine.HandleTurn(ctx, TurnRequest{
		Sender:   req.Sender,
		Action:   req.Action,
		Text:     req.Text,
		Entities: req.Entities,
		Slots:    slots,
	})

	if len(resp.SlotUpdates) > 0 && h.slots != nil {
		if err := h.slots.SetAll(ctx, req.Sender, resp.SlotUpdates); err != nil {
			h.logger.Error("slot write failed", "turn_id", turnID, "error", err)
		}
	}

	out := make([]responseMessage, 0, len(resp.Messages))
	for _, m := range resp.Messages {
		out = append(out, responseMessage{Text: m.Text, Custom: m.Custom})
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", "error", err)
	}
}

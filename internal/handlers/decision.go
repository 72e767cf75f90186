package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/jwebster45206/nitecrawlers/internal/engine"
	"github.com/jwebster45206/nitecrawlers/pkg/consequence"
	"github.com/jwebster45206/nitecrawlers/pkg/item"
	"github.com/jwebster45206/nitecrawlers/pkg/recognition"
)

// DecisionRequest carries the player's choice. Item wins over Label; a
// label alone is resolved through the recognizer.
type DecisionRequest struct {
	Action string            `json:"action"`
	Item   *item.ScannedItem `json:"item,omitempty"`
	Label  string            `json:"label,omitempty"`
}

type DecisionHandler struct {
	controller *engine.Controller
	recognizer recognition.Recognizer
	logger     *slog.Logger
}

func NewDecisionHandler(controller *engine.Controller, recognizer recognition.Recognizer, logger *slog.Logger) *DecisionHandler {
	return &DecisionHandler{
		controller: controller,
		recognizer: recognizer,
		logger:     logger,
	}
}

// ServeHTTP handles POST /v1/decisions
func (h *DecisionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, h.logger, r, http.MethodPost)
		return
	}

	var req DecisionRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.logger.Warn("Invalid decision request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	action, err := consequence.ParseAction(req.Action)
	if err != nil {
		h.logger.Warn("Rejected decision", "action", req.Action)
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	it := req.Item
	if it == nil && strings.TrimSpace(req.Label) != "" && h.recognizer != nil {
		it, err = h.recognizer.Recognize(r.Context(), req.Label)
		if err != nil {
			h.logger.Warn("Failed to recognize label", "label", req.Label, "error", err)
			writeError(w, h.logger, http.StatusBadRequest, err.Error())
			return
		}
	}

	res, err := h.controller.Decide(r.Context(), action, it)
	if err != nil {
		h.logger.Warn("Decision failed", "action", action, "error", err)
		writeError(w, h.logger, statusFor(err), err.Error())
		return
	}
	writeJSON(w, h.logger, http.StatusOK, res)
}

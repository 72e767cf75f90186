package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jwebster45206/nitecrawlers/internal/engine"
	"github.com/jwebster45206/nitecrawlers/pkg/profile"
)

// AllowanceRequest is the body for onboarding and allowance updates.
type AllowanceRequest struct {
	Allowance *int   `json:"allowance"`
	Frequency string `json:"frequency"`
}

type ProfileResponse struct {
	Profile    profile.PlayerProfile `json:"profile"`
	Statistics profile.Statistics    `json:"statistics"`
}

type ProfileHandler struct {
	controller *engine.Controller
	logger     *slog.Logger
}

func NewProfileHandler(controller *engine.Controller, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		controller: controller,
		logger:     logger,
	}
}

// ServeHTTP handles HTTP requests for the player profile
// Routes:
// GET /v1/profile              - Read profile and statistics
// POST /v1/profile             - Onboard with an allowance
// DELETE /v1/profile           - Reset everything
// PUT /v1/profile/allowance    - Change the allowance
func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sub := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/profile"), "/")

	switch sub {
	case "":
		switch r.Method {
		case http.MethodGet:
			h.respond(w, h.controller.Profile())
		case http.MethodPost:
			h.handleAllowance(w, r, h.controller.Onboard)
		case http.MethodDelete:
			h.handleReset(w, r)
		default:
			methodNotAllowed(w, h.logger, r, http.MethodGet, http.MethodPost, http.MethodDelete)
		}
	case "allowance":
		if r.Method != http.MethodPut {
			methodNotAllowed(w, h.logger, r, http.MethodPut)
			return
		}
		h.handleAllowance(w, r, h.controller.UpdateAllowance)
	default:
		writeError(w, h.logger, http.StatusNotFound, "Not found")
	}
}

func (h *ProfileHandler) respond(w http.ResponseWriter, p profile.PlayerProfile) {
	writeJSON(w, h.logger, http.StatusOK, ProfileResponse{
		Profile:    p,
		Statistics: h.controller.Stats(),
	})
}

type allowanceFunc func(ctx context.Context, amount int, freq profile.Frequency) (profile.PlayerProfile, error)

func (h *ProfileHandler) handleAllowance(w http.ResponseWriter, r *http.Request, apply allowanceFunc) {
	var req AllowanceRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.logger.Warn("Invalid allowance request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Allowance == nil {
		writeError(w, h.logger, http.StatusBadRequest, "allowance is required")
		return
	}

	p, err := apply(r.Context(), *req.Allowance, profile.Frequency(req.Frequency))
	if err != nil {
		h.logger.Warn("Allowance change failed", "error", err)
		writeError(w, h.logger, statusFor(err), err.Error())
		return
	}
	h.respond(w, p)
}

func (h *ProfileHandler) handleReset(w http.ResponseWriter, r *http.Request) {
	p, err := h.controller.Reset(r.Context())
	if err != nil {
		h.logger.Error("Failed to reset profile", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to reset profile")
		return
	}
	h.respond(w, p)
}

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/jwebster45206/nitecrawlers/internal/engine"
	"github.com/jwebster45206/nitecrawlers/pkg/dictionary"
	"github.com/jwebster45206/nitecrawlers/pkg/ledger"
)

type DictionaryResponse struct {
	Entries []dictionary.Entry `json:"entries"`
}

type SimilarResponse struct {
	Match string `json:"match"`
	Found bool   `json:"found"`
}

type TransactionsResponse struct {
	Transactions []ledger.Transaction `json:"transactions"`
}

type DictionaryHandler struct {
	controller *engine.Controller
	logger     *slog.Logger
}

func NewDictionaryHandler(controller *engine.Controller, logger *slog.Logger) *DictionaryHandler {
	return &DictionaryHandler{
		controller: controller,
		logger:     logger,
	}
}

// ServeHTTP handles HTTP requests for discovered items
// Routes:
// GET /v1/dictionary                - All entries in discovery order
// GET /v1/dictionary/similar?name=  - Earlier discovery resembling name
func (h *DictionaryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, h.logger, r, http.MethodGet)
		return
	}

	switch strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/dictionary"), "/") {
	case "":
		writeJSON(w, h.logger, http.StatusOK, DictionaryResponse{Entries: h.controller.Dictionary()})
	case "similar":
		name := r.URL.Query().Get("name")
		if strings.TrimSpace(name) == "" {
			writeError(w, h.logger, http.StatusBadRequest, "name query parameter is required")
			return
		}
		match, found := h.controller.FindSimilar(name)
		writeJSON(w, h.logger, http.StatusOK, SimilarResponse{Match: match, Found: found})
	default:
		writeError(w, h.logger, http.StatusNotFound, "Not found")
	}
}

type TransactionsHandler struct {
	controller *engine.Controller
	logger     *slog.Logger
}

func NewTransactionsHandler(controller *engine.Controller, logger *slog.Logger) *TransactionsHandler {
	return &TransactionsHandler{
		controller: controller,
		logger:     logger,
	}
}

// ServeHTTP handles GET /v1/transactions
func (h *TransactionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, h.logger, r, http.MethodGet)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, TransactionsResponse{Transactions: h.controller.Transactions()})
}

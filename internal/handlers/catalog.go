package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/jwebster45206/nitecrawlers/pkg/recognition"
)

type CatalogHandler struct {
	catalog *recognition.Catalog
	logger  *slog.Logger
}

func NewCatalogHandler(catalog *recognition.Catalog, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// ServeHTTP handles GET /v1/catalog. With ?label= it returns the
// recognized item instead of the whole catalogue.
func (h *CatalogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, h.logger, r, http.MethodGet)
		return
	}

	label := r.URL.Query().Get("label")
	if strings.TrimSpace(label) == "" {
		writeJSON(w, h.logger, http.StatusOK, h.catalog)
		return
	}

	it, err := h.catalog.Recognize(r.Context(), label)
	if err != nil {
		h.logger.Warn("Failed to recognize label", "label", label, "error", err)
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, h.logger, http.StatusOK, it)
}

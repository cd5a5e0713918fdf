// Package handler exposes the offer catalog over JSON HTTP.
package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/FACorreiaa/cardwise-api/internal/domain/catalog"
	"github.com/FACorreiaa/cardwise-api/pkg/server"
)

// CatalogHandler serves offer listing and search.
type CatalogHandler struct {
	svc    *catalog.Service
	logger *slog.Logger
}

// NewCatalogHandler constructs the handler.
func NewCatalogHandler(svc *catalog.Service, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{svc: svc, logger: logger}
}

// List handles GET /v1/offers.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	offers, err := h.svc.ActiveOffers(r.Context())
	if err != nil {
		h.logger.Error("failed to list offers", slog.Any("error", err))
		server.Error(w, http.StatusServiceUnavailable, "offer catalog unavailable")
		return
	}
	server.JSON(w, http.StatusOK, map[string]any{"offers": offers})
}

// Search handles GET /v1/offers/search?q=...&limit=...
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		server.Error(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	offers, err := h.svc.Search(r.Context(), query, limit)
	if err != nil {
		h.logger.Error("offer search failed", slog.Any("error", err))
		server.Error(w, http.StatusServiceUnavailable, "offer search unavailable")
		return
	}
	server.JSON(w, http.StatusOK, map[string]any{"offers": offers})
}

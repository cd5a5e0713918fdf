// Package handler exposes stored analysis reports over JSON HTTP.
package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/FACorreiaa/cardwise-api/internal/domain/report"
	"github.com/FACorreiaa/cardwise-api/pkg/auth"
	"github.com/FACorreiaa/cardwise-api/pkg/server"
)

// ReportHandler serves stored reports. All routes require authentication.
type ReportHandler struct {
	svc    *report.Service
	logger *slog.Logger
}

// NewReportHandler constructs the handler.
func NewReportHandler(svc *report.Service, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{svc: svc, logger: logger}
}

// Get handles GET /v1/reports/{id}.
func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.identify(w, r)
	if !ok {
		return
	}

	stored, err := h.svc.Get(r.Context(), userID, id)
	if errors.Is(err, report.ErrNotFound) {
		server.Error(w, http.StatusNotFound, "report not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to fetch report", slog.Any("error", err))
		server.Error(w, http.StatusInternalServerError, "failed to fetch report")
		return
	}

	server.JSON(w, http.StatusOK, map[string]any{
		"report_id":  stored.ID,
		"created_at": stored.CreatedAt,
		"report":     stored.Report,
	})
}

// Export handles GET /v1/reports/{id}/export and returns an XLSX workbook.
func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.identify(w, r)
	if !ok {
		return
	}

	workbook, err := h.svc.Export(r.Context(), userID, id)
	if errors.Is(err, report.ErrNotFound) {
		server.Error(w, http.StatusNotFound, "report not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to export report", slog.Any("error", err))
		server.Error(w, http.StatusInternalServerError, "failed to export report")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="analysis-%s.xlsx"`, id))
	_, _ = w.Write(workbook)
}

func (h *ReportHandler) identify(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		server.Error(w, http.StatusUnauthorized, "authentication required")
		return uuid.Nil, uuid.Nil, false
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		server.Error(w, http.StatusBadRequest, "invalid report id")
		return uuid.Nil, uuid.Nil, false
	}
	return userID, id, true
}

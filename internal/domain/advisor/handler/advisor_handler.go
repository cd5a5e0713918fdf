// Package handler exposes the analysis pipeline over JSON HTTP.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/FACorreiaa/cardwise-api/internal/domain/advisor"
	"github.com/FACorreiaa/cardwise-api/internal/domain/analysis"
	"github.com/FACorreiaa/cardwise-api/internal/domain/report"
	"github.com/FACorreiaa/cardwise-api/pkg/auth"
	"github.com/FACorreiaa/cardwise-api/pkg/server"
)

// AnalyzeResponse wraps the report with the storage id when the analysis was
// persisted for an authenticated caller.
type AnalyzeResponse struct {
	*advisor.Report
	ReportID string `json:"report_id,omitempty"`
}

// AdvisorHandler serves analysis requests.
type AdvisorHandler struct {
	svc     *advisor.Service
	reports *report.Service
	logger  *slog.Logger
}

// NewAdvisorHandler constructs the handler. The report service may be nil
// when persistence is disabled.
func NewAdvisorHandler(svc *advisor.Service, reports *report.Service, logger *slog.Logger) *AdvisorHandler {
	return &AdvisorHandler{svc: svc, reports: reports, logger: logger}
}

// Analyze handles POST /v1/analyze. The body is either a JSON request or a
// bare CSV statement (date,description,amount[,category]); CSV requests take
// profile fields from query parameters.
func (h *AdvisorHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	req, err := h.decodeRequest(r)
	if err != nil {
		server.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	rep, err := h.svc.Analyze(r.Context(), req)
	if errors.Is(err, advisor.ErrNoTransactions) {
		server.Error(w, http.StatusBadRequest, "at least one transaction is required")
		return
	}
	if err != nil {
		h.logger.Error("analysis failed", slog.Any("error", err))
		server.Error(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	resp := AnalyzeResponse{Report: rep}
	if userID, ok := auth.UserIDFromContext(r.Context()); ok && h.reports != nil {
		id, saveErr := h.reports.Save(r.Context(), userID, rep)
		if saveErr != nil {
			// Persistence is best effort; the analysis itself succeeded.
			h.logger.Warn("failed to store analysis report", slog.Any("error", saveErr))
		} else {
			resp.ReportID = id.String()
		}
	}

	server.JSON(w, http.StatusOK, resp)
}

func (h *AdvisorHandler) decodeRequest(r *http.Request) (*advisor.Request, error) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "text/csv") {
		transactions, err := analysis.ParseCSV(r.Body)
		if err != nil {
			return nil, err
		}
		return &advisor.Request{
			Transactions: transactions,
			AnalysisType: r.URL.Query().Get("analysis_type"),
			UserProfile: advisor.ProfileInput{
				RedemptionPreference: r.URL.Query().Get("redemption_preference"),
				TravelFrequency:      r.URL.Query().Get("travel_frequency"),
			},
		}, nil
	}

	var req advisor.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, errors.New("invalid request body")
	}
	return &req, nil
}

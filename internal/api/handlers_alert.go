package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/highlightagent/highlight-agent/internal/api/respond"
	"github.com/highlightagent/highlight-agent/internal/model"
	"github.com/highlightagent/highlight-agent/internal/services"
)

// AlertHandler is a thin HTTP transport over the AlertService.
type AlertHandler struct {
	svc *services.AlertService
}

func NewAlertHandler(svc *services.AlertService) *AlertHandler { return &AlertHandler{svc: svc} }

// writeServiceError maps service errors onto HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrValidation):
		respond.WriteBadRequest(w, err.Error())
	case errors.Is(err, model.ErrNotFound):
		respond.WriteNotFound(w, err.Error())
	case errors.Is(err, model.ErrConflict):
		respond.WriteConflict(w, err.Error())
	default:
		respond.WriteInternalError(w, err.Error())
	}
}

// CreateAlert POST /api/alerts
func (h *AlertHandler) CreateAlert(w http.ResponseWriter, r *http.Request) {
	var req services.CreateAlertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	out, err := h.svc.CreateAlert(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

// ListAlerts GET /api/alerts?email=...&limit=...
func (h *AlertHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	req := model.ListAlertsRequest{Recipient: r.URL.Query().Get("email")}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			respond.WriteBadRequest(w, "limit must be a non-negative integer")
			return
		}
		req.Limit = limit
	}
	out, err := h.svc.ListAlerts(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// GetAlert GET /api/alerts/{alertId}
func (h *AlertHandler) GetAlert(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.GetAlert(r.Context(), mux.Vars(r)["alertId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// DeleteAlert DELETE /api/alerts/{alertId}?email=...
func (h *AlertHandler) DeleteAlert(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if err := h.svc.DeleteAlert(r.Context(), email, mux.Vars(r)["alertId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

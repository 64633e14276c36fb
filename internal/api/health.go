package api

import (
	"net/http"
	"time"

	"github.com/highlightagent/highlight-agent/internal/api/respond"
	"github.com/highlightagent/highlight-agent/internal/store"
)

// HealthHandler reports service and storage health.
type HealthHandler struct {
	st store.Store
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(st store.Store) *HealthHandler { return &HealthHandler{st: st} }

// CheckHealth handles GET /api/health
// Always returns 200; the body reports healthy/unhealthy.
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	if err := h.st.HealthPing(r.Context()); err != nil {
		status = "unhealthy"
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

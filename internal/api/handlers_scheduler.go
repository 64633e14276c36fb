package api

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/highlightagent/highlight-agent/internal/api/respond"
	"github.com/highlightagent/highlight-agent/internal/scheduler"
)

// SchedulerHandler exposes the on-demand tick trigger used by operators
// and external cron services.
type SchedulerHandler struct {
	sched *scheduler.Scheduler
}

func NewSchedulerHandler(sched *scheduler.Scheduler) *SchedulerHandler {
	return &SchedulerHandler{sched: sched}
}

// Tick POST /api/scheduler/tick
// The optional body {"now":"<RFC3339>"} pins the scheduling instant,
// otherwise wall-clock now is used.
func (h *SchedulerHandler) Tick(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Now string `json:"now,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}

	var now time.Time
	if req.Now != "" {
		t, err := time.Parse(time.RFC3339, req.Now)
		if err != nil {
			respond.WriteBadRequest(w, "now must be RFC3339")
			return
		}
		now = t
	}

	sum := h.sched.Tick(r.Context(), now)
	respond.WriteJSON(w, http.StatusOK, sum)
}

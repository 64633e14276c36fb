package api

import (
	"github.com/gorilla/mux"

	"github.com/highlightagent/highlight-agent/internal/api/recovery"
	"github.com/highlightagent/highlight-agent/internal/scheduler"
	"github.com/highlightagent/highlight-agent/internal/services"
	"github.com/highlightagent/highlight-agent/internal/store"
)

// NewRouter creates the HTTP router with all API routes.
func NewRouter(st store.Store, alertSvc *services.AlertService, sched *scheduler.Scheduler) *mux.Router {
	router := mux.NewRouter()

	// Global middlewares
	router.Use(recovery.Middleware)

	healthHandler := NewHealthHandler(st)
	alertHandler := NewAlertHandler(alertSvc)

	// Health endpoint
	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")

	// Alert capture and management
	router.HandleFunc("/api/alerts", alertHandler.CreateAlert).Methods("POST")
	router.HandleFunc("/api/alerts", alertHandler.ListAlerts).Methods("GET")
	router.HandleFunc("/api/alerts/{alertId}", alertHandler.GetAlert).Methods("GET")
	router.HandleFunc("/api/alerts/{alertId}", alertHandler.DeleteAlert).Methods("DELETE")

	// On-demand scheduler trigger
	if sched != nil {
		schedulerHandler := NewSchedulerHandler(sched)
		router.HandleFunc("/api/scheduler/tick", schedulerHandler.Tick).Methods("POST")
	}

	return router
}

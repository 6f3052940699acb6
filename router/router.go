// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/band-planner/cliparse"
	"github.com/danielhkuo/band-planner/handlers"
	"github.com/danielhkuo/band-planner/middleware"
	"github.com/danielhkuo/band-planner/notify"
	"github.com/danielhkuo/band-planner/store"
)

const healthTimeout = 2 * time.Second

func NewRouter(st store.Store, cfg cliparse.Config, n notify.Notifier) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(st, cfg)
	responseHandler := handlers.NewResponseHandler(st, cfg, n)
	planningHandler := handlers.NewPlanningHandler(st, cfg)
	exportHandler := handlers.NewExportHandler(st)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()
		if err := st.Ping(ctx); err != nil {
			slog.Warn("health check failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("Database unavailable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Polls
	mux.HandleFunc("POST /polls", middleware.WithLogging(pollHandler.CreatePoll))
	mux.HandleFunc("GET /polls/{id}", middleware.WithLogging(pollHandler.GetPoll))
	mux.HandleFunc("DELETE /polls/{id}", middleware.WithLogging(pollHandler.DeletePoll))
	mux.HandleFunc("PATCH /polls/{id}/roster", middleware.WithLogging(pollHandler.UpdateRoster))

	// Responses (public)
	mux.HandleFunc("POST /polls/{id}/responses", middleware.WithLogging(responseHandler.SubmitResponse))

	// Planning (admin, requires X-Admin-Key)
	mux.HandleFunc("POST /polls/{id}/planning/compose", middleware.WithLogging(planningHandler.Compose))
	mux.HandleFunc("PUT /polls/{id}/planning", middleware.WithLogging(planningHandler.SavePlanning))
	mux.HandleFunc("PATCH /polls/{id}/planning/cell", middleware.WithLogging(planningHandler.SetCell))
	mux.HandleFunc("GET /polls/{id}/planning/candidates", middleware.WithLogging(planningHandler.Candidates))

	// Read-only views (public)
	mux.HandleFunc("GET /polls/{id}/summary", middleware.WithLogging(exportHandler.Summary))
	mux.HandleFunc("GET /polls/{id}/export", middleware.WithLogging(exportHandler.Export))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("band-planner API v1"))
	})

	return mux
}
